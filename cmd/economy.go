package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rbxkit/rbxkit/economy"
	"github.com/rbxkit/rbxkit/filter"
	"github.com/rbxkit/rbxkit/roblox"
)

var (
	maxPages    int
	buyPrice    int64
	buySellerID int64
	buyUAID     int64
	buyWait     time.Duration
)

// salesCmd represents the sales command
var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "List the account's sale transactions",
	Long: `List the account's sale transactions, newest first. An expr filter
narrows the output client-side, e.g.:

  rbxkit sales --filter 'robux_received > 100'
  rbxkit sales --filter 'contains(lower(asset_name), "helm")'`,
	RunE: runSales,
}

// resellersCmd represents the resellers command
var resellersCmd = &cobra.Command{
	Use:   "resellers <asset-id>",
	Short: "List resale listings of a limited item, cheapest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runResellers,
}

// buyCmd represents the buy command
var buyCmd = &cobra.Command{
	Use:   "buy <product-id>",
	Short: "Buy a limited item resale listing",
	Long: `Buy a limited item resale listing. The expected price, seller and
user asset id must match the listing; a mismatch is rejected by the
service. With --wait the purchase is retried through rate limiting for
up to the given duration.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuy,
}

func init() {
	rootCmd.AddCommand(salesCmd)
	rootCmd.AddCommand(resellersCmd)
	rootCmd.AddCommand(buyCmd)

	salesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	salesCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	salesCmd.Flags().IntVar(&maxPages, "pages", 1, "number of pages to fetch")

	resellersCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	resellersCmd.Flags().IntVar(&maxPages, "pages", 1, "number of pages to fetch")

	buyCmd.Flags().Int64Var(&buyPrice, "price", 0, "expected price of the listing")
	buyCmd.Flags().Int64Var(&buySellerID, "seller", 0, "expected seller user id")
	buyCmd.Flags().Int64Var(&buyUAID, "uaid", 0, "user asset id of the listing")
	buyCmd.Flags().DurationVar(&buyWait, "wait", 0, "keep retrying through rate limits for this long")
	buyCmd.MarkFlagRequired("price")
	buyCmd.MarkFlagRequired("seller")
	buyCmd.MarkFlagRequired("uaid")
}

func runSales(cmd *cobra.Command, args []string) error {
	salesFilter, err := compileFilterFlag()
	if err != nil {
		return err
	}

	ctx := context.Background()
	cursor := ""
	shown := 0

	for page := 0; page < maxPages; page++ {
		sales, next, err := economyClient.UserSales(ctx, roblox.Limit100, cursor)
		if err != nil {
			return err
		}

		for _, sale := range sales {
			if salesFilter != nil {
				matched, err := salesFilter.Match(saleEnv(sale))
				if err != nil {
					return err
				}
				if !matched {
					continue
				}
			}

			pending := ""
			if sale.IsPending {
				pending = " [PENDING]"
			}
			fmt.Printf("%s  %-30s %6d R$  from %s%s\n",
				sale.TransactionDate.Format("2006-01-02"),
				sale.AssetName, sale.RobuxReceived, sale.BuyerName, pending)
			shown++
		}

		if next == "" {
			break
		}
		cursor = next
	}

	if shown == 0 {
		fmt.Println("No sales found.")
	}

	return nil
}

func runResellers(cmd *cobra.Command, args []string) error {
	assetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid asset id %q", args[0])
	}

	listingFilter, err := compileFilterFlag()
	if err != nil {
		return err
	}

	ctx := context.Background()
	cursor := ""

	for page := 0; page < maxPages; page++ {
		listings, next, err := economyClient.Resellers(ctx, assetID, roblox.Limit100, cursor)
		if err != nil {
			return err
		}

		for _, listing := range listings {
			if listingFilter != nil {
				matched, err := listingFilter.Match(listingEnv(listing))
				if err != nil {
					return err
				}
				if !matched {
					continue
				}
			}

			serial := ""
			if listing.SerialNumber != nil {
				serial = fmt.Sprintf("  #%d", *listing.SerialNumber)
			}
			fmt.Printf("%8d R$  uaid %-12d seller %s%s\n",
				listing.Price, listing.UserAssetID, listing.Reseller.Name, serial)
		}

		if next == "" {
			break
		}
		cursor = next
	}

	return nil
}

func runBuy(cmd *cobra.Command, args []string) error {
	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	ctx := context.Background()

	purchase := func() (struct{}, error) {
		return struct{}{}, economyClient.PurchaseLimited(ctx, productID, buySellerID, buyUAID, buyPrice)
	}

	if buyWait > 0 {
		_, err = roblox.RetryRateLimited(ctx, buyWait, purchase)
	} else {
		_, err = purchase()
	}
	if err != nil {
		return err
	}

	fmt.Println("Purchased!")
	return nil
}

// compileFilterFlag compiles the effective filter expression, or returns
// nil when no filtering was requested.
func compileFilterFlag() (*filter.Filter, error) {
	expression, err := getFilterExpression()
	if err != nil {
		return nil, err
	}
	if expression == "" {
		return nil, nil
	}

	logger.Debug().Str("filter", expression).Msg("Using filter")

	return filter.Compile(expression)
}

func saleEnv(sale economy.Sale) map[string]any {
	return map[string]any{
		"sale_id":        sale.SaleID,
		"is_pending":     sale.IsPending,
		"buyer_name":     sale.BuyerName,
		"robux_received": sale.RobuxReceived,
		"asset_id":       sale.AssetID,
		"asset_name":     sale.AssetName,
		"created":        sale.TransactionDate,
	}
}

func listingEnv(listing economy.Listing) map[string]any {
	env := map[string]any{
		"uaid":   listing.UserAssetID,
		"price":  listing.Price,
		"seller": listing.Reseller.Name,
	}
	if listing.SerialNumber != nil {
		env["serial"] = *listing.SerialNumber
	}
	return env
}
