package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abojja9/sleep-better-ai/internal/agent"
	"github.com/abojja9/sleep-better-ai/internal/config"
	"github.com/abojja9/sleep-better-ai/internal/database"
	"github.com/abojja9/sleep-better-ai/internal/llm"
	"github.com/abojja9/sleep-better-ai/internal/logger"
	"github.com/abojja9/sleep-better-ai/internal/metrics"
	"github.com/abojja9/sleep-better-ai/internal/orders"
	"github.com/abojja9/sleep-better-ai/internal/server"
	"github.com/abojja9/sleep-better-ai/internal/toolkit"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Frodo server",
	Long: `Start the Frodo server which provides:
- POST /api/chat for conversational order handling
- POST /api/commands for direct toolkit invocations
- /api/health and /metrics for monitoring`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🛏️  Frodo starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)

	fmt.Println("🔌 Connecting to database...")
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.SetupSchema(); err != nil {
		return fmt.Errorf("failed to set up schema: %w", err)
	}

	fmt.Println("✅ Database ready")

	generator, err := llm.NewGenerator(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	store := orders.NewStore(db, log)
	m := metrics.NewCommandMetrics()
	tk := toolkit.New(store, log, m)
	ag := agent.New(generator, tk, log)

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(db, tk, ag)

	fmt.Printf("🌐 Starting server on %s (generator: %s)...\n", cfg.Server.Addr, generator.Model())
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
