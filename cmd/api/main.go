package main

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/joshua-simon/gig-fort-v2/internal/app"
	"github.com/joshua-simon/gig-fort-v2/internal/auth"
	"github.com/joshua-simon/gig-fort-v2/internal/clock"
	"github.com/joshua-simon/gig-fort-v2/internal/config"
	"github.com/joshua-simon/gig-fort-v2/internal/feed"
	"github.com/joshua-simon/gig-fort-v2/internal/filter"
	"github.com/joshua-simon/gig-fort-v2/internal/metrics"
	"github.com/joshua-simon/gig-fort-v2/internal/notify"
	"github.com/joshua-simon/gig-fort-v2/internal/storage/postgres"
	transporthttp "github.com/joshua-simon/gig-fort-v2/internal/transport/http"
	"github.com/joshua-simon/gig-fort-v2/migrations"
)

const jobTimeout = 30 * time.Second

func main() {
	logger := log.Default()
	loadEnvFile(logger)

	configPath := os.Getenv("CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("resolve timezone: %v", err)
	}
	clk := clock.NewSystem(loc)

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	gigRepo := postgres.NewGigRepository(pool)
	engagementRepo := postgres.NewEngagementRepository(pool)
	reminderRepo := postgres.NewReminderRepository(pool)

	engine := filter.NewEngine(clk,
		filter.WithRadiusKm(cfg.Filters.RadiusKm),
		filter.WithStartingSoonMinutes(cfg.Filters.StartingSoonMinutes),
	)

	hub := feed.NewHub(feed.NewStoreSource(gigRepo), logger, m)
	unsubscribe := hub.Subscribe(engine.SetSnapshot)
	defer unsubscribe()

	gigSvc := app.NewGigService(gigRepo, engine, hub, clk)
	engagementSvc := app.NewEngagementService(engagementRepo)
	reminderSvc := app.NewReminderService(reminderRepo, gigRepo, notify.NewLogNotifier(logger), clk)

	if err := hub.Refresh(startupCtx); err != nil {
		logger.Printf("WARN: initial gig snapshot failed, serving empty until refresh: %v", err)
	}

	guard, err := auth.LoadSecretFile(cfg.AuthSecretFile, logger)
	if err != nil {
		log.Fatalf("load admin secret: %v", err)
	}

	jobs := cron.New()
	if _, err := jobs.AddFunc(cfg.Jobs.FeedRefresh, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_ = hub.Refresh(ctx)
	}); err != nil {
		log.Fatalf("schedule feed refresh: %v", err)
	}
	if _, err := jobs.AddFunc(cfg.Jobs.ReminderSweep, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		n, err := reminderSvc.DispatchDue(ctx)
		if n > 0 {
			m.RemindersDispatched.Add(float64(n))
			logger.Printf("dispatched %d reminders", n)
		}
		if err != nil {
			m.ReminderErrors.Inc()
			logger.Printf("WARN: reminder dispatch: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule reminder sweep: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	mux := http.NewServeMux()
	mux.Handle("/health", transporthttp.HandleHealth(hub))
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/gigs", transporthttp.HandleGigs(gigSvc))
	mux.Handle("/gigs/today", transporthttp.HandleGigsToday(gigSvc))
	mux.Handle("/gigs/week", transporthttp.HandleGigsWeek(gigSvc))
	mux.Handle("/gigs/week.ics", transporthttp.HandleGigsWeekICS(gigSvc))
	mux.Handle("/gigs/", transporthttp.HandleGigItem(gigSvc, engagementSvc))
	mux.Handle("/saved", transporthttp.HandleSaved(engagementSvc))
	mux.Handle("/filters/proximity", transporthttp.HandleToggleProximity(engine))
	mux.Handle("/filters/starting-soon", transporthttp.HandleToggleStartingSoon(engine))
	mux.Handle("/filters/custom", transporthttp.HandleFilters(engine))
	mux.Handle("/filters", transporthttp.HandleFilters(engine))
	mux.Handle("/location", transporthttp.HandleLocation(engine))
	mux.Handle("/reminders", transporthttp.HandleReminders(reminderSvc))
	mux.Handle("/admin/gigs", guard.Middleware(transporthttp.HandleAdminGigs(gigSvc)))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s timezone=%s", cfg.Port, loc)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

func loadEnvFile(logger *log.Logger) {
	path, err := findEnvFile()
	if err != nil {
		logger.Printf("WARN: failed to locate .env: %v", err)
		return
	}
	if path == "" {
		return
	}

	file, err := os.Open(path)
	if err != nil {
		logger.Printf("WARN: failed to open %s: %v", path, err)
		return
	}
	if err := parseEnvFile(logger, file); err != nil {
		logger.Printf("WARN: failed to load %s: %v", path, err)
	} else {
		logger.Printf("loaded env from %s", path)
	}
	_ = file.Close()
}

func findEnvFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for i := 0; i < 6; i++ {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

func parseEnvFile(logger *log.Logger, file *os.File) error {
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		value = trimQuotes(value)
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			logger.Printf("WARN: failed to set %s from env file", key)
		}
	}
	return scanner.Err()
}

func trimQuotes(value string) string {
	if len(value) < 2 {
		return value
	}
	if (value[0] == '"' && value[len(value)-1] == '"') ||
		(value[0] == '\'' && value[len(value)-1] == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
