package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-qr-tracker/internal/adapters/auth/statictoken"
	"pet-qr-tracker/internal/adapters/storage"
	"pet-qr-tracker/internal/config"
	"pet-qr-tracker/internal/domain/alerts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/notify"
	"pet-qr-tracker/internal/platform/logger"
	"pet-qr-tracker/internal/router"

	"golang.org/x/sync/errgroup"
)

// @title Pet QR Tracker API
// @version 1.0
// @description Registro de escaneos de chapitas QR y alertas de mascotas perdidas.
// @BasePath /
func main() {
	log := logger.NewFromEnv()
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Zap().Sync() }()
	}

	if err := run(log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(log logger.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	alertsCfg, err := cfg.AlertsConfig()
	if err != nil {
		return err
	}

	stores, err := storage.Open(storage.Options{
		PostgresDSN: cfg.Storage.PostgresDSN,
		SQLitePath:  cfg.Storage.SQLitePath,
	})
	if err != nil {
		return err
	}
	defer stores.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	created, err := pets.NewService(stores.Pets).EnsureDefault(ctx, cfg.Pets.DefaultID, cfg.Pets.DefaultName)
	if err != nil {
		return err
	}
	if created {
		log.Info("default pet created", map[string]any{"pet_id": cfg.Pets.DefaultID})
	}

	sink, err := buildSink(cfg)
	if err != nil {
		return err
	}
	if sink == nil {
		log.Warn("no notification sink configured; alerts will only be logged", nil)
	}
	disp := notify.NewDispatcher(sink, notify.Options{
		QueueSize:   cfg.Notify.QueueSize,
		Workers:     cfg.Notify.Workers,
		SendTimeout: cfg.Notify.Timeout,
	}, log)

	if cfg.Admin.Token == "" {
		log.Warn("ADMIN_TOKEN not set; admin API is disabled", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:  statictoken.NewVerifier(cfg.Admin.Token),
		Stores:        stores,
		Evaluator:     alerts.NewEvaluator(alertsCfg),
		Dispatcher:    disp,
		Log:           log,
		BaseURL:       cfg.Server.BaseURL,
		DefaultPetID:  cfg.Pets.DefaultID,
		PetAliases:    cfg.Pets.Aliases,
		RatePerMinute: cfg.RatePerMinute(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// el dispatcher se apaga después del server, así no llegan mensajes a una cola cerrada
	dispCtx, stopDisp := context.WithCancel(context.Background())
	defer stopDisp()

	g.Go(func() error {
		return disp.Run(dispCtx)
	})

	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":        srv.Addr,
			"store":       string(stores.Kind),
			"default_pet": cfg.Pets.DefaultID,
			"alert_tz":    cfg.Alerts.TimeZone,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		stopDisp()
		return err
	})

	return g.Wait()
}

// buildSink arma los destinos configurados. nil si no hay ninguno.
func buildSink(cfg *config.Config) (notify.Sink, error) {
	var sinks notify.MultiSink

	if cfg.Notify.WebhookURL != "" {
		wh, err := notify.NewWebhookSink(cfg.Notify.WebhookURL, cfg.Notify.Timeout, nil)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, wh)
	}
	if cfg.Notify.AMQPURL != "" {
		mq, err := notify.NewAMQPSink(cfg.Notify.AMQPURL, cfg.Notify.AMQPExchange)
		if err != nil {
			for _, s := range sinks {
				_ = s.Close()
			}
			return nil, err
		}
		sinks = append(sinks, mq)
	}

	switch len(sinks) {
	case 0:
		return nil, nil
	case 1:
		return sinks[0], nil
	default:
		return sinks, nil
	}
}
