package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/admission-advisor/internal/applications"
	"github.com/jonathan/admission-advisor/internal/cache"
	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/chat"
	"github.com/jonathan/admission-advisor/internal/config"
	"github.com/jonathan/admission-advisor/internal/db"
	"github.com/jonathan/admission-advisor/internal/notify"
	"github.com/jonathan/admission-advisor/internal/server"
	"github.com/jonathan/admission-advisor/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

// defaultDatabaseURL keeps applications in a local file when DATABASE_URL is unset.
const defaultDatabaseURL = db.SQLitePrefix + "admissions.db"

var (
	serveFlags  commonFlags
	servePort   int
	serveDBURL  string
	serveWatch  bool
	serveNoAuth bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing /suggest-admission, /suggest-admission/stream, /ai-chat,
/submit-application and the JWT protected dashboard endpoints.`,
	RunE: runServe,
}

func init() {
	serveFlags.register(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "postgres:// or sqlite:// URL (defaults to DATABASE_URL, then sqlite://admissions.db)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the catalog file when it changes (defaults to CATALOG_WATCH)")
	serveCmd.Flags().BoolVar(&serveNoAuth, "no-dashboard", false, "Disable the login and dashboard endpoints")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := serveFlags.resolve(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDBURL
	}
	if cmd.Flags().Changed("watch") {
		cfg.CatalogWatch = serveWatch
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
	}

	store, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	if cfg.CatalogWatch {
		if _, isFile := store.Source().(catalog.FileSource); isFile {
			if err := catalog.Watch(ctx, store, cfg.Catalog, catalog.DefaultDebounce); err != nil {
				log.Printf("[catalog] Warning: hot reload disabled: %v", err)
			}
		} else {
			log.Printf("[catalog] Warning: watch is only supported for local files")
		}
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	redisCache := cache.NewRedis(cache.ConfigFromEnv(), log.Default())
	defer redisCache.Close()

	apps, closeApps, err := newApplications(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeApps()

	srvCfg := server.Config{
		Port:         cfg.Port,
		Suggester:    newPipeline(store, client, redisCache, cfg),
		Counselor:    chat.NewCounselor(client, store, cfg.AITimeout()),
		Applications: apps,
		Catalog:      store,
		RateLimit:    ratelimit.LoadConfig(),
	}
	if !serveNoAuth {
		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			log.Printf("[server] Warning: %v", err)
		} else {
			passwords, err := config.NewPasswordConfig()
			if err != nil {
				return fmt.Errorf("failed to create password config: %w", err)
			}
			srvCfg.JWT = jwtCfg
			srvCfg.Passwords = passwords
			srvCfg.Dashboard = config.NewDashboardConfig()
		}
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

// newApplications opens the application store and the optional notifiers.
// The returned func closes everything that was opened.
func newApplications(ctx context.Context, cfg config.Config) (*applications.Service, func(), error) {
	store, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open application store: %w", err)
	}
	closers := []func(){store.Close}

	var publisher notify.Publisher
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		amqpPublisher, err := notify.DialAMQP(url)
		if err != nil {
			log.Printf("[notify] Warning: application events disabled: %v", err)
		} else {
			publisher = amqpPublisher
			closers = append(closers, func() { _ = amqpPublisher.Close() })
		}
	}

	mailer := notify.NewMailer(notify.SMTPConfigFromEnv(), cfg.EmailSimulationDir)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return applications.NewService(store, mailer, publisher), closeAll, nil
}
