package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/fnc/internal/server"
	"github.com/msto63/fnc/internal/store"
	"github.com/msto63/fnc/pkg/core/cache"
	"github.com/msto63/fnc/pkg/core/health"
	"github.com/msto63/fnc/pkg/core/version"
)

var (
	serveHost      string
	servePort      int
	serveNoHistory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den gRPC Parse-Service",
	Long: `Startet den gRPC-Service fnc.v1.ParseService mit den Methoden
Tokenize, Parse und History sowie dem Standard-Health-Service.

Antworten auf Parse ohne record und auf Tokenize werden zwischengespeichert
(server.cache_size, server.cache_ttl). Die Health-Pruefungen laufen alle
server.health_interval und steuern den gRPC-Health-Status.

Nachrichten sind google.protobuf.Struct:
  Tokenize {source}                 -> {tokens, faults}
  Parse    {name, source, record}   -> {job_id, ast, program, faults, stats}
  History  {limit}                  -> {jobs}

Beispiele:
  fnc serve
  fnc serve --port 9400
  fnc serve --no-history`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host (ueberschreibt server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port (ueberschreibt server.port)")
	serveCmd.Flags().BoolVar(&serveNoHistory, "no-history", false, "Ohne Verlauf starten")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	logger := newLogger(cfg)

	var history *store.Store
	if !serveNoHistory {
		history, err = store.Open(store.Config{Path: cfg.Store.Path, Logger: logger})
		if err != nil {
			return err
		}
		defer history.Close()
	}

	var opts []server.ServiceOption
	if cfg.Server.CacheSize > 0 {
		opts = append(opts, server.WithReplyCache(cache.Config{
			MaxItems: cfg.Server.CacheSize,
			TTL:      cfg.Server.CacheTTL.Duration,
		}))
	}

	engine := newEngine(cfg, logger, false)
	service := server.NewService(engine, history, logger, opts...)
	defer service.Close()
	srv := server.New(cfg.Server, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report := srv.Health(ctx)
	fmt.Printf("fnc Parse-Service v%s auf %s\n", version.Server, cfg.ServerAddress())
	for _, c := range report.Checks {
		label := okStyle.Render(string(c.Status))
		if c.Status != health.StatusHealthy {
			label = errorLabelStyle.Render(string(c.Status))
		}
		fmt.Printf("  %-8s %s %s\n", c.Name, label, mutedStyle.Render(c.Message))
	}
	fmt.Println("Druecke Ctrl+C zum Beenden")

	return srv.Run(ctx)
}
