package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saanpro/saanbot/internal/config"
	"github.com/saanpro/saanbot/internal/convo"
	"github.com/saanpro/saanbot/internal/db"
	"github.com/saanpro/saanbot/internal/knowledge"
	"github.com/saanpro/saanbot/internal/leads"
	"github.com/saanpro/saanbot/internal/llm"
	"github.com/saanpro/saanbot/internal/server"
	"github.com/saanpro/saanbot/internal/session"
)

// sweepInterval is how often idle sessions are evicted.
const sweepInterval = 5 * time.Minute

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SAANBOT chat server",
	Long:  `Starts the SAANBOT HTTP server with the chat API, knowledge admin API, lead listing, and websocket chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}

		provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
		if err != nil {
			return fmt.Errorf("creating completion provider: %w", err)
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, "saanbot.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		sessions := session.NewRegistry(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
		kbStore := knowledge.NewStore(database)
		turnStore := convo.NewStore(database)
		leadStore := leads.NewStore(database)
		engine := convo.NewEngine(kbStore, turnStore, leadStore, sessions, provider, cfg.Model)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})

		r := srv.Router()
		convo.RegisterRoutes(r, engine)
		convo.RegisterWebsocket(r, engine)
		knowledge.RegisterRoutes(r, kbStore)
		leads.RegisterRoutes(r, leadStore)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					sessions.Sweep()
				}
			}
		}()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "saanbot v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", cfg.Provider, cfg.Model)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured port")
	rootCmd.AddCommand(serveCmd)
}
