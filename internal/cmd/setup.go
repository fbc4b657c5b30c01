package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abojja9/sleep-better-ai/internal/config"
	"github.com/abojja9/sleep-better-ai/internal/database"
	"github.com/abojja9/sleep-better-ai/internal/logger"
	"github.com/abojja9/sleep-better-ai/internal/orders"
)

var (
	dropFirst  bool
	withSample bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the orders database",
	Long: `Creates the orders table in the configured database, optionally seeding a
couple of sample orders so the chat flow has something to query.`,
	RunE: setupDatabase,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().BoolVar(&dropFirst, "drop-first", false, "Drop the existing orders table before creating")
	setupCmd.Flags().BoolVar(&withSample, "with-sample", false, "Insert sample orders after creating the schema")
}

func setupDatabase(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Setting up orders database...")

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

	if dropFirst {
		fmt.Println("🗑️  Dropping existing orders table...")
		if err := db.DropSchema(); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	fmt.Println("📋 Creating orders table...")
	if err := db.SetupSchema(); err != nil {
		return fmt.Errorf("failed to set up schema: %w", err)
	}

	if withSample {
		fmt.Println("📦 Inserting sample orders...")
		if err := insertSampleOrders(db, log); err != nil {
			return fmt.Errorf("failed to insert sample orders: %w", err)
		}
	}

	fmt.Println("✅ Database setup complete!")
	return nil
}

func insertSampleOrders(db *database.DB, log *logger.Logger) error {
	ctx := context.Background()
	store := orders.NewStore(db, log)

	draftID, err := store.CreateDraft(ctx, "CUSTDEMO01", "Ultra Comfort Mattress", "Queen", 1299.00, "123 Dreamland Ave")
	if err != nil {
		return err
	}
	fmt.Printf("   📝 Draft order %s\n", draftID)

	orderID, err := store.Create(ctx, "CUSTDEMO02", "Dream Sleep Mattress", "King", 899.00, "456 Slumber St", "credit_card")
	if err != nil {
		return err
	}
	fmt.Printf("   ✅ Confirmed order %s\n", orderID)

	return nil
}
