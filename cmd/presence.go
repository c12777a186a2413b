package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// presenceCmd represents the presence command
var presenceCmd = &cobra.Command{
	Use:   "presence <user-id>...",
	Short: "Show the current presence of one or more users",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPresence,
}

func init() {
	rootCmd.AddCommand(presenceCmd)
}

func runPresence(cmd *cobra.Command, args []string) error {
	userIDs := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", arg)
		}
		userIDs = append(userIDs, id)
	}

	presences, err := presenceClient.Users(context.Background(), userIDs)
	if err != nil {
		return err
	}

	for _, p := range presences {
		location := ""
		if p.LastLocation != "" {
			location = " @ " + p.LastLocation
		}
		fmt.Printf("%-12d %-10s%s  (last online %s)\n",
			p.UserID, p.Type, location, p.LastOnline.Format("2006-01-02 15:04"))
	}

	return nil
}
