package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smartuae/agent/bootstrap"
	"github.com/smartuae/agent/config"
	"github.com/smartuae/agent/log"
)

var (
	knowledgePath string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "smartuae",
	Short: "UAE travel assistant",
	Long:  "A tool-augmented chat assistant for UAE travel: attractions, cultural tips, prayer times, trip budgets and preferences.",
	RunE:  runChat,
}

func init() {
	rootCmd.Flags().StringVarP(&knowledgePath, "knowledge", "k", "", "Path to the knowledge base JSON (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load .env if present
	_ = godotenv.Load()

	log.Init()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if knowledgePath != "" {
		cfg.Knowledge.Path = knowledgePath
	}

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		return err
	}

	log.Infof(ctx, "Session %s ready with %d tools", app.Session.ID, len(app.Registry.GetTools()))
	fmt.Println("Ask about itineraries, prayer times, budgets, or attractions. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		answer, err := app.Dispatcher.Chat(ctx, query)
		if err != nil {
			log.Errorf(ctx, "Turn failed: %v", err)
			fmt.Println("Sorry, something went wrong. Please try again.")
			continue
		}
		fmt.Println(answer)
	}

	return scanner.Err()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
