package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/georgemunganga/autek-admin/internal/apiclient"
	"github.com/georgemunganga/autek-admin/internal/config"
	"github.com/georgemunganga/autek-admin/internal/cookie"
	"github.com/georgemunganga/autek-admin/internal/modules/auth"
	"github.com/georgemunganga/autek-admin/internal/modules/catalog"
	"github.com/georgemunganga/autek-admin/internal/modules/crud"
	"github.com/georgemunganga/autek-admin/internal/modules/dashboard"
	"github.com/georgemunganga/autek-admin/internal/modules/session"
	"github.com/georgemunganga/autek-admin/internal/web"
)

const sweepInterval = 10 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var port string
	root := &cobra.Command{
		Use:   "console",
		Short: "Autek catalog admin console",
		Long: `Serves the Autek admin console: server-rendered pages for managing
the product catalog through the remote catalog API.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	root.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides APP_PORT)")
	root.AddCommand(newResourcesCmd())
	return root
}

// newResourcesCmd lists the administered resources and the API host serving each.
func newResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the catalog resources and their API endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			registry, err := crud.NewRegistry(catalog.Resources()...)
			if err != nil {
				return err
			}
			hosts := map[string]string{"": cfg.APIBaseURL, catalog.MediaAPI: cfg.MediaAPIBaseURL}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PAGE\tMENU\tENDPOINT")
			for _, res := range registry.All() {
				fmt.Fprintf(w, "%s\t%s\t%s%s\n", res.Path(), res.Menu(), hosts[res.API], res.Endpoint)
			}
			return w.Flush()
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if cfg.UsesDevSecret() {
		logger.Warn("SESSION_SECRET not set, using the development secret")
	}

	// ── Sessions ────────────────────────────────────────────
	repo, closeRepo, err := sessionRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("session storage: %w", err)
	}
	defer closeRepo()

	cookies := cookie.NewCodec(cfg.SessionSecret, cfg.CookieSecure)
	sessions := session.NewManager(repo, cookies, cfg.SessionTTL, logger)
	go sessions.Sweep(ctx, sweepInterval)
	flasher := web.NewFlasher(cookies)

	// ── Remote API ──────────────────────────────────────────
	clientOpts := []apiclient.Option{apiclient.WithTimeout(cfg.APITimeout), apiclient.WithLogger(logger)}
	clients := apiclient.Registry{
		"":               apiclient.New(cfg.APIBaseURL, clientOpts...),
		catalog.MediaAPI: apiclient.New(cfg.MediaAPIBaseURL, clientOpts...),
	}

	// ── Resources & shell ───────────────────────────────────
	registry, err := crud.NewRegistry(catalog.Resources()...)
	if err != nil {
		return fmt.Errorf("register resources: %w", err)
	}
	renderer, err := web.NewRenderer(dashboard.Menu(registry), session.ViewerName, logger)
	if err != nil {
		return err
	}
	stats, err := dashboard.NewService(registry, clients, dashboard.DefaultStats, logger)
	if err != nil {
		return fmt.Errorf("dashboard stats: %w", err)
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(flasher.Middleware)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dashboard.Path, http.StatusSeeOther)
	})
	auth.NewHandler(auth.NewService(clients.For(""), cfg.AuthLoginPath, logger), sessions, renderer, logger).
		RegisterRoutes(router)

	router.Route(dashboard.Path, func(r chi.Router) {
		r.Use(sessions.Require)
		dashboard.NewHandler(stats, sessions, renderer, logger).RegisterRoutes(r)
		crud.NewHandler(registry, crud.NewService(clients, logger), sessions, renderer, flasher, logger).
			RegisterRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Autek admin console starting",
		slog.String("addr", srv.Addr), slog.String("api", cfg.APIBaseURL), slog.String("media_api", cfg.MediaAPIBaseURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sessionRepository stores sessions in PostgreSQL when DATABASE_URL is set
// and in memory otherwise.
func sessionRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (session.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("sessions kept in memory")
		return session.NewMemoryRepository(), func() {}, nil
	}
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := session.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("Successfully connected to the database!")
	return session.NewPostgresRepository(db), func() { db.Close() }, nil
}
