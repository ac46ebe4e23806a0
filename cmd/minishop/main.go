package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gurpreet/minishop/internal/api"
	"github.com/gurpreet/minishop/internal/config"
	"github.com/gurpreet/minishop/internal/service"
	"github.com/gurpreet/minishop/internal/storage"
	"github.com/gurpreet/minishop/internal/store"
	"github.com/gurpreet/minishop/internal/tui"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Storage.Backend == "" || cfg.Storage.Backend == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			log.Fatalf("Failed to create data dir: %v", err)
		}
		migrationsPath := getEnv("MINISHOP_MIGRATIONS_PATH", "./internal/storage/migrations")
		if err := storage.RunMigrations(cfg.Storage.Path, migrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	st, err := storage.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.Close()

	notifier := store.NewChannelNotifier(16)
	session := store.NewSessionStore(st.Slot(store.SessionSlotName))
	session.Load(ctx)
	cart := store.NewCartStore(st.Slot(store.CartSlotName), notifier)
	cart.Load(ctx)

	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	checkout := &service.CheckoutService{API: client, Cart: cart}

	app := tui.New(ctx, cfg, client,
		tui.Stores{Session: session, Cart: cart},
		tui.Services{Checkout: checkout},
		notifier.C())
	p := tea.NewProgram(app, tea.WithAltScreen())

	// follow session writes made by other processes, like a second tab
	session.Subscribe(func(id *store.Identity) {
		p.Send(tui.SessionChanged{User: id})
	})
	go session.Watch(ctx, time.Duration(cfg.UI.SessionPollSeconds)*time.Second)

	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
