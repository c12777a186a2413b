package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rbxkit/rbxkit/roblox"
	"github.com/rbxkit/rbxkit/trades"
)

// tradesCmd represents the trades command
var tradesCmd = &cobra.Command{
	Use:   "trades [inbound|outbound|completed|inactive]",
	Short: "List the account's trades",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTrades,
}

// tradeShowCmd represents the trades show command
var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show the full offer breakdown of a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

// tradeAcceptCmd represents the trades accept command
var tradeAcceptCmd = &cobra.Command{
	Use:   "accept <trade-id>",
	Short: "Accept an inbound trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeRespond,
}

// tradeDeclineCmd represents the trades decline command
var tradeDeclineCmd = &cobra.Command{
	Use:   "decline <trade-id>",
	Short: "Decline an inbound trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeRespond,
}

func init() {
	rootCmd.AddCommand(tradesCmd)
	tradesCmd.AddCommand(tradeShowCmd)
	tradesCmd.AddCommand(tradeAcceptCmd)
	tradesCmd.AddCommand(tradeDeclineCmd)
}

func runTrades(cmd *cobra.Command, args []string) error {
	status := trades.StatusInbound
	if len(args) > 0 {
		status = trades.Status(strings.ToLower(args[0]))
	}

	list, _, err := tradesClient.List(context.Background(), status, roblox.Limit25, "")
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Printf("No %s trades.\n", status)
		return nil
	}

	for _, trade := range list {
		fmt.Printf("%-12d %-20s %-10s created %s\n",
			trade.ID, trade.PartnerName, trade.Status, trade.Created.Format("2006-01-02"))
	}

	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	tradeID, err := parseTradeID(args[0])
	if err != nil {
		return err
	}

	details, err := tradesClient.Details(context.Background(), tradeID)
	if err != nil {
		return err
	}

	fmt.Printf("Trade %d (%s)\n", details.ID, details.Status)
	for _, offer := range details.Offers {
		fmt.Printf("  User %d offers:\n", offer.UserID)
		if offer.Robux > 0 {
			fmt.Printf("    %d R$\n", offer.Robux)
		}
		for _, asset := range offer.Assets {
			serial := ""
			if asset.SerialNumber != nil {
				serial = fmt.Sprintf(" #%d", *asset.SerialNumber)
			}
			fmt.Printf("    %s%s (uaid %d)\n", asset.Name, serial, asset.UserAssetID)
		}
	}

	return nil
}

func runTradeRespond(cmd *cobra.Command, args []string) error {
	tradeID, err := parseTradeID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	action := "accepted"
	if cmd.Name() == "accept" {
		err = tradesClient.Accept(ctx, tradeID)
	} else {
		action = "declined"
		err = tradesClient.Decline(ctx, tradeID)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Trade %d %s.\n", tradeID, action)
	return nil
}

func parseTradeID(arg string) (int64, error) {
	tradeID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid trade id %q", arg)
	}
	return tradeID, nil
}
