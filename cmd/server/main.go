package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/velobg/rental-backend/api"
	"github.com/velobg/rental-backend/coordinator"
	"github.com/velobg/rental-backend/internal/o11y"
	"github.com/velobg/rental-backend/internal/photostore"
	"github.com/velobg/rental-backend/internal/syncbridge"
	"github.com/velobg/rental-backend/state"
)

var cli = struct {
	StateFile  string `name:"state-file" env:"STATE_FILE" default:"data/state.json"`
	AdminsFile string `name:"admins-file" env:"ADMINS_FILE" default:"data/admins.json"`
	UploadsDir string `name:"uploads-dir" env:"UPLOADS_DIR" default:"data/uploads"`
	Port       int    `name:"port" env:"PORT" default:"8080"`

	SyncURL          string `name:"sync-url" env:"SYNC_URL" help:"Base URL of a peer instance to mirror state to."`
	AutosyncSchedule string `name:"autosync-schedule" env:"AUTOSYNC_SCHEDULE" default:"@every 5m"`

	OTLPEndpoint string `name:"otlp-endpoint" env:"OTLP_ENDPOINT" default:"localhost:4318"`

	MetricsUsername string `name:"metrics-username" env:"METRICS_USERNAME"`
	MetricsPassword string `name:"metrics-password" env:"METRICS_PASSWORD"`
}{}

func main() {
	if err := run(); err != nil {
		log.Fatalf("unexpected error: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	godotenv.Load()
	kong.Parse(&cli)

	obs, cleanup, err := o11y.Setup(ctx, cli.OTLPEndpoint)
	defer cleanup()
	if err != nil {
		return err
	}

	store, err := state.Open(cli.StateFile, cli.AdminsFile, obs.Logger)
	if err != nil {
		return err
	}

	opts := []coordinator.Option{}
	var syncClient *syncbridge.HTTPClient
	if cli.SyncURL != "" {
		syncClient = syncbridge.NewHTTPClient(cli.SyncURL)
		opts = append(opts, coordinator.WithSync(syncClient))
	}

	coord := coordinator.New(store, obs.Logger, opts...)
	coordinator.RegisterMetrics(obs.Registry)

	photos := photostore.New(cli.UploadsDir)

	a := api.New(store, coord, photos, obs, cli.MetricsUsername, cli.MetricsPassword)

	var sched *cron.Cron
	if syncClient != nil {
		sched = cron.New()
		_, err := sched.AddFunc(cli.AutosyncSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := syncClient.Push(ctx, store.View()); err != nil {
				obs.Logger.Warn("autosync push failed", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid autosync schedule %q: %w", cli.AutosyncSchedule, err)
		}
		sched.Start()
	}

	serv := http.Server{
		Addr:    fmt.Sprintf(":%d", cli.Port),
		Handler: a.Router(),
	}

	go func() {
		if err := serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()
	obs.Logger.Info("server started", "port", cli.Port, "state_file", cli.StateFile)

	<-ctx.Done()
	if sched != nil {
		<-sched.Stop().Done()
	}
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return serv.Shutdown(ctx)
}
