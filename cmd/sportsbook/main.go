package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/betbot/sportsbook/internal/api"
	"github.com/betbot/sportsbook/internal/metrics"
	"github.com/betbot/sportsbook/internal/session"
	"github.com/betbot/sportsbook/internal/state"
	"github.com/betbot/sportsbook/internal/stream"
	"github.com/betbot/sportsbook/pkg/config"
	"github.com/betbot/sportsbook/pkg/logger"
	"github.com/betbot/sportsbook/pkg/shutdown"
)

// logNotifier writes server notifications to the log; a UI front end would
// replace it with something user-visible.
type logNotifier struct{}

func (logNotifier) Notify(n stream.Notification) {
	logrus.WithFields(logrus.Fields{
		"type":  n.Type,
		"title": n.Title,
	}).Info(n.Message)
}

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := logger.Setup(cfg.Log); err != nil {
		logrus.WithError(err).Fatal("failed to set up logging")
	}

	sess, err := session.Open(filepath.Join(cfg.DataDir, "session"))
	if err != nil {
		logrus.WithError(err).Fatal("failed to open session store")
	}

	apiClient := api.NewClient(api.Config{BaseURL: cfg.APIBaseURL}, sess)
	apiClient.OnUnauthorized(sess.ClearToken)

	store := state.NewStore()
	dispatcher := stream.NewDispatcher(store, logNotifier{})
	manager := stream.NewManager(stream.Config{
		URL:           cfg.WSURL,
		ReconnectBase: cfg.Stream.ReconnectBase(),
		MaxReconnects: cfg.Stream.MaxReconnects,
	}, sess, dispatcher.Dispatch)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := metrics.StartAsync(ctx, cfg.MetricsAddr); err != nil {
		logrus.WithError(err).Warn("metrics server not started")
	}

	if sess.Authenticated() {
		bootstrap(ctx, apiClient, store)
		if err := manager.Connect(); err != nil {
			// The manager keeps retrying on its own schedule.
			logrus.WithError(err).Warn("initial channel connect failed")
		}
	} else {
		logrus.Info("no session token; log in via the API before connecting the channel")
	}

	sd := shutdown.NewManager()
	sd.OnShutdown(func(ctx context.Context, wg *sync.WaitGroup) {
		defer wg.Done()
		manager.Disconnect()
	})
	sd.OnShutdown(func(ctx context.Context, wg *sync.WaitGroup) {
		defer wg.Done()
		if err := sess.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close session store")
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logrus.WithField("signal", sig.String()).Info("shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	sd.Shutdown(shutdownCtx)
}

// bootstrap seeds the store from REST before live updates take over.
func bootstrap(ctx context.Context, apiClient *api.Client, store *state.Store) {
	loadCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if user, err := apiClient.CurrentUser(loadCtx); err != nil {
		logrus.WithError(err).Warn("failed to load current user")
	} else {
		store.SetUser(user)
	}

	events, err := apiClient.UpcomingEvents(loadCtx)
	if err != nil {
		logrus.WithError(err).Warn("failed to load upcoming events")
	}
	live, err := apiClient.LiveEvents(loadCtx)
	if err != nil {
		logrus.WithError(err).Warn("failed to load live events")
	}
	if len(events)+len(live) > 0 {
		store.SetMatches(append(events, live...))
	}
}
