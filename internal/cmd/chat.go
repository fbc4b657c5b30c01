package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abojja9/sleep-better-ai/internal/agent"
	"github.com/abojja9/sleep-better-ai/internal/config"
	"github.com/abojja9/sleep-better-ai/internal/database"
	"github.com/abojja9/sleep-better-ai/internal/llm"
	"github.com/abojja9/sleep-better-ai/internal/logger"
	"github.com/abojja9/sleep-better-ai/internal/orders"
	"github.com/abojja9/sleep-better-ai/internal/toolkit"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to Frodo from the terminal",
	Long: `Start an interactive terminal session with the orders agent. Each line you
type runs one agent turn; commands the model emits are executed against the
order store. Type "exit" or press Ctrl-D to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
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

	generator, err := llm.NewGenerator(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	store := orders.NewStore(db, log)
	tk := toolkit.New(store, log, nil)
	ag := agent.New(generator, tk, log)

	fmt.Printf("Frodo: Welcome to Sleep Better! I'm Frodo, your personal sleep consultant. (model: %s)\n", generator.Model())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		reply, err := ag.Chat(context.Background(), line)
		if err != nil {
			fmt.Printf("⚠️  %v\n", err)
			continue
		}
		fmt.Println(reply)
	}

	return scanner.Err()
}
