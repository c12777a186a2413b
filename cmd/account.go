package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rbxkit/rbxkit/presence"
	"github.com/rbxkit/rbxkit/trades"
	"github.com/rbxkit/rbxkit/users"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the configured session cookie",
	RunE:  runWhoami,
}

// robuxCmd represents the robux command
var robuxCmd = &cobra.Command{
	Use:   "robux",
	Short: "Show the account's robux balance",
	RunE:  runRobux,
}

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show an account overview (identity, robux, presence, inbound trades)",
	Long: `Fetch the authenticated account's identity, robux balance, presence
and inbound trade count in parallel and print a compact overview.`,
	RunE: runSnapshot,
}

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <username>...",
	Short: "Resolve usernames to user ids",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(robuxCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(lookupCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := usersClient.Authenticated(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%s (@%s, id %d)\n", user.DisplayName, user.Username, user.ID)
	return nil
}

func runRobux(cmd *cobra.Command, args []string) error {
	robux, err := economyClient.Robux(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Robux: %d\n", robux)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Identity first; the rest of the calls need the user id anyway and
	// this primes the client's cache.
	user, err := usersClient.Authenticated(ctx)
	if err != nil {
		return err
	}

	var (
		robux     int64
		presences []presence.UserPresence
		inbound   []trades.TradeSummary
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		robux, err = economyClient.Robux(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		presences, err = presenceClient.Users(ctx, []int64{user.ID})
		return err
	})
	g.Go(func() error {
		var err error
		inbound, _, err = tradesClient.List(ctx, trades.StatusInbound, 25, "")
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%s (@%s, id %d)\n", user.DisplayName, user.Username, user.ID)
	fmt.Printf("Robux: %d\n", robux)
	if len(presences) > 0 {
		fmt.Printf("Presence: %s", presences[0].Type)
		if presences[0].LastLocation != "" {
			fmt.Printf(" (%s)", presences[0].LastLocation)
		}
		fmt.Println()
	}
	fmt.Printf("Inbound trades: %d\n", len(inbound))

	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	results, err := usersClient.FromUsernames(context.Background(), args)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	printUserTable(results)
	return nil
}

func printUserTable(results []users.UserSummary) {
	for _, user := range results {
		fmt.Printf("%-12s %s (@%s)\n", strconv.FormatInt(user.ID, 10), user.DisplayName, user.Username)
	}
}
