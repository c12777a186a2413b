package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rbxkit/rbxkit/catalog"
)

var itemType string

// itemsCmd represents the items command
var itemsCmd = &cobra.Command{
	Use:   "items <id>...",
	Short: "Look up catalog item details",
	Long: `Look up catalog item details by id. Large id sets are fetched in
concurrent batches. An expr filter narrows the output, e.g.:

  rbxkit items 1365767 4819740796 --filter 'price != nil && price < 1000'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runItems,
}

func init() {
	rootCmd.AddCommand(itemsCmd)

	itemsCmd.Flags().StringVar(&itemType, "type", "Asset", "item type (Asset or Bundle)")
	itemsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
}

func runItems(cmd *cobra.Command, args []string) error {
	refType := catalog.ItemType(itemType)
	if refType != catalog.ItemTypeAsset && refType != catalog.ItemTypeBundle {
		return fmt.Errorf("invalid item type %q (must be Asset or Bundle)", itemType)
	}

	refs := make([]catalog.ItemRef, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", arg)
		}
		refs = append(refs, catalog.ItemRef{Type: refType, ID: id})
	}

	itemFilter, err := compileFilterFlag()
	if err != nil {
		return err
	}

	details, err := catalogClient.AllItemDetails(context.Background(), refs)
	if err != nil {
		return err
	}

	for _, item := range details {
		if itemFilter != nil {
			matched, err := itemFilter.Match(itemEnv(item))
			if err != nil {
				return err
			}
			if !matched {
				continue
			}
		}

		price := "-"
		if item.Price != nil {
			price = fmt.Sprintf("%d R$", *item.Price)
		} else if item.PriceStatus != "" {
			price = string(item.PriceStatus)
		}

		limited := ""
		if item.IsLimited() {
			limited = " [LIMITED]"
		}

		fmt.Printf("%-12d %-40s %10s  by %s%s\n", item.ID, item.Name, price, item.CreatorName, limited)
	}

	return nil
}

func itemEnv(item catalog.ItemDetails) map[string]any {
	env := map[string]any{
		"id":           item.ID,
		"name":         item.Name,
		"creator":      item.CreatorName,
		"favorites":    item.FavoriteCount,
		"limited":      item.IsLimited(),
		"price_status": string(item.PriceStatus),
	}
	if item.Price != nil {
		env["price"] = *item.Price
	}
	return env
}
