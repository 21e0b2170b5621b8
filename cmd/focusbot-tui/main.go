package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"focusbot/internal/apiclient"
	"focusbot/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, serverURL string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./focusbot.yaml or ~/.config/focusbot/client.yaml if not provided)")
	flag.StringVar(&serverURL, "server", "", "FocusBot server URL (overrides config)")
	flag.Parse()

	var cfg *tui.ClientConfig
	var err error
	if cfgPath == "" {
		cfg, cfgPath, err = tui.LoadDefaultConfig()
	} else {
		cfg, err = tui.LoadConfig(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if env := os.Getenv("FOCUSBOT_SERVER_URL"); env != "" {
		cfg.ServerURL = env
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	client := apiclient.New(cfg.ServerURL, cfg.Timeout())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	health, err := client.Ready(ctx)
	cancel()
	if err != nil {
		var apiErr *apiclient.APIError
		if !errors.As(err, &apiErr) {
			log.Fatalf("cannot reach FocusBot at %s: %v", cfg.ServerURL, err)
		}
		fmt.Fprintf(os.Stderr, "warning: server not ready: %v\n", err)
	} else if cfgPath != "" {
		log.Printf("focusbot-tui: config %s, model %s", cfgPath, health.Model)
	}

	p := tea.NewProgram(tui.New(client, cfg.ServerURL, cfg.Timeout()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.EndSession(ctx); err != nil {
		log.Printf("focusbot-tui: ending session: %v", err)
	}
}
