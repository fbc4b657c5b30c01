package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abojja9/sleep-better-ai/internal/config"
	"github.com/abojja9/sleep-better-ai/internal/database"
	"github.com/abojja9/sleep-better-ai/internal/logger"
	"github.com/abojja9/sleep-better-ai/internal/orders"
)

var showLast int

var checkCmd = &cobra.Command{
	Use:   "check-orders",
	Short: "List recent orders in the store",
	Long: `List the most recent orders in the configured database. Useful for
verifying what the agent has actually written.`,
	RunE: checkOrders,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVar(&showLast, "last", 10, "Number of recent orders to show")
}

func checkOrders(cmd *cobra.Command, args []string) error {
	fmt.Printf("🔍 Checking last %d orders...\n", showLast)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.SetupSchema(); err != nil {
		return fmt.Errorf("failed to set up schema: %w", err)
	}

	store := orders.NewStore(db, log)
	recent, err := store.ListRecent(context.Background(), showLast)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}

	if len(recent) == 0 {
		fmt.Println("   (no orders yet)")
		return nil
	}

	for _, o := range recent {
		confirmed := " "
		if o.Confirmed {
			confirmed = "✓"
		}
		fmt.Printf("   %s [%s] %-11s %s (%s) $%.2f — ordered %s, delivery %s\n",
			o.OrderID, confirmed, o.Status, o.ProductName, o.Size, o.Price,
			o.OrderDate.Format(time.DateOnly),
			o.EstimatedDelivery.Format(time.DateOnly))
	}

	return nil
}
