package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/seralin/inkwell/internal/api"
	"github.com/seralin/inkwell/internal/config"
	"github.com/seralin/inkwell/internal/log"
	"github.com/seralin/inkwell/internal/service"
	"github.com/seralin/inkwell/internal/state"
	"github.com/seralin/inkwell/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("inkwell %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.Setup(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.Null()
	}
	slog.SetDefault(logger)

	logger.Info("starting inkwell", "version", Version)

	if !cfg.HasServer() {
		return runSetupFlow(cfg, logger)
	}

	client := api.NewClient(cfg.Server.URL, cfg.Server.Token, logger)

	// The durable state store never blocks startup; if the file can't be
	// opened it degrades to memory-only.
	store := state.Open(config.DefaultStatePath(), logger)

	session := service.NewSessionService(client, cfg, store, logger)
	svcs := tui.Services{
		Catalog:  service.NewCatalogService(client, logger),
		Rankings: service.NewRankingService(client, logger),
		Shelf:    service.NewShelfService(client, logger),
		Reader:   service.NewReaderService(client, client, store, logger),
		Social:   service.NewSocialService(client, store, session, logger),
		Session:  session,
	}

	model := tui.NewModel(svcs, cfg, store)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when no server is configured.
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Inkwell!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var serverURL string
	for {
		fmt.Print("Enter your server URL (e.g., https://novels.example.com): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimRight(strings.TrimSpace(input), "/")

		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}
		break
	}

	cfg.Server.URL = serverURL

	fmt.Println()
	fmt.Print("Sign in now? Browsing works as a guest, but the library, history, and reviews need an account. [y/N]: ")
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
		if err := runSignIn(cfg, reader, logger); err != nil {
			return err
		}
	} else if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run inkwell again to start the application.")
	return nil
}

func runSignIn(cfg *config.Config, reader *bufio.Reader, logger *slog.Logger) error {
	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	client := api.NewClient(cfg.Server.URL, "", logger)
	store := state.Open(config.DefaultStatePath(), logger)
	session := service.NewSessionService(client, cfg, store, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := session.SignIn(ctx, username, string(passwordBytes)); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	fmt.Printf("✓ Signed in as %s\n", cfg.Server.Username)
	return nil
}
