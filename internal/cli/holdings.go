package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wealthmap/wealthmap/internal/config"
	"github.com/wealthmap/wealthmap/pkg/chart"
	"github.com/wealthmap/wealthmap/pkg/holdings"
)

// holdingsCommand creates the holdings management command group.
func (c *CLI) holdingsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "holdings",
		Short: "Manage portfolio holdings",
		Long: `Manage portfolio holdings.

Holdings live in the store named by the configuration file; without a
MongoDB URI the store is in-memory and holdings do not survive the command.
Asset types are normalized, so '401k' and 'Roth IRA' work as typed.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML configuration file")

	cmd.AddCommand(c.holdingsAddCommand(&configPath))
	cmd.AddCommand(c.holdingsListCommand(&configPath))
	cmd.AddCommand(c.holdingsRemoveCommand(&configPath))
	cmd.AddCommand(c.holdingsExportCommand(&configPath))

	return cmd
}

// openStore loads the configuration and connects to the holdings store.
func (c *CLI) openStore(ctx context.Context, configPath string) (holdings.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return c.newStore(ctx, cfg)
}

// holdingsAddCommand creates the "holdings add" subcommand.
func (c *CLI) holdingsAddCommand(configPath *string) *cobra.Command {
	var (
		name      string
		assetType string
		shares    string
		cost      string
		price     string
		sector    string
		platform  string
	)

	cmd := &cobra.Command{
		Use:   "add [symbol]",
		Short: "Add a holding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sharesDec, err := decimal.NewFromString(shares)
			if err != nil {
				return fmt.Errorf("invalid --shares %q: %w", shares, err)
			}
			costDec, err := decimal.NewFromString(cost)
			if err != nil {
				return fmt.Errorf("invalid --cost %q: %w", cost, err)
			}

			h, err := holdings.New(args[0], name, assetType, sharesDec, costDec)
			if err != nil {
				return err
			}
			if price != "" {
				priceDec, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid --price %q: %w", price, err)
				}
				h.CurrentPrice = priceDec
			}
			h.Sector = sector
			h.Platform = platform
			if err := h.Validate(); err != nil {
				return err
			}

			store, err := c.openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			if err := store.Create(ctx, h); err != nil {
				return err
			}

			printSuccess("Added %s (%s)", h.Symbol, h.Type.DisplayName())
			printDetail("id: %s", h.ID)
			printDetail("market value: %s", h.MarketValue().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (default: symbol)")
	cmd.Flags().StringVarP(&assetType, "type", "t", "stock", "asset type (stock, crypto, etf, cash, 401k, ...)")
	cmd.Flags().StringVar(&shares, "shares", "", "number of shares or units (required)")
	cmd.Flags().StringVar(&cost, "cost", "", "average cost per share (required)")
	cmd.Flags().StringVar(&price, "price", "", "current price per share (default: cost for non-tradable types)")
	cmd.Flags().StringVar(&sector, "sector", "", "sector label")
	cmd.Flags().StringVar(&platform, "platform", "", "brokerage or platform")
	_ = cmd.MarkFlagRequired("shares")
	_ = cmd.MarkFlagRequired("cost")

	return cmd
}

// holdingsListCommand creates the "holdings list" subcommand.
func (c *CLI) holdingsListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List holdings with gains and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			hs, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(hs) == 0 {
				printInfo("No holdings")
				return nil
			}

			for _, h := range hs {
				fmt.Printf("%-8s %-14s %12s %+10s  %s\n",
					h.Symbol,
					h.Type.DisplayName(),
					h.MarketValue().StringFixed(2),
					h.GainLoss().StringFixed(2),
					StyleDim.Render(h.ID))
			}
			printNewline()
			printKeyValue("total", holdings.TotalValue(hs).StringFixed(2))
			return nil
		},
	}
}

// holdingsRemoveCommand creates the "holdings rm" subcommand.
func (c *CLI) holdingsRemoveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a holding by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Removed %s", args[0])
			return nil
		},
	}
}

// holdingsExportCommand creates the "holdings export" subcommand, which
// writes allocation items for the chart commands.
func (c *CLI) holdingsExportCommand(configPath *string) *cobra.Command {
	var (
		output string
		gains  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export aggregated chart items",
		Long: `Export aggregated chart items.

By default the export holds the allocation by asset type (market value per
type). With --gains it holds gain/loss per type instead, suitable for the
diverging chart. The output feeds 'layout', 'render', and 'view'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			hs, err := store.List(ctx)
			if err != nil {
				return err
			}

			var items []chart.Item
			if gains {
				items = holdings.GainLossItems(hs)
			} else {
				items = holdings.Allocation(hs, nil)
			}
			if err := chart.WriteItemsFile(items, output); err != nil {
				return err
			}

			printSuccess("Exported %d items", len(items))
			printFile(output)
			printNewline()
			printNextStep("Render", "wealthmap render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "items.json", "output file")
	cmd.Flags().BoolVar(&gains, "gains", false, "export gain/loss per type instead of allocation")

	return cmd
}
