package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"sheets-proxy/internal/config"
	"sheets-proxy/internal/server"
	"sheets-proxy/internal/sheets"
)

func main() {
	_ = godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	sheetsClient := loadSheets(context.Background(), cfg)

	httpSrv := server.New(cfg, sheetsClient)

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP listening")
		if sheetsClient == nil {
			log.Warnf("Google Sheets integration will not work until %s is provided", cfg.CredentialsFile)
		}
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctxTimeout)

	log.Info("bye")
}

// loadSheets runs once at startup. A failure is logged and yields nil so the
// server still starts and reports the problem per request.
func loadSheets(ctx context.Context, cfg config.Config) *sheets.Client {
	if _, err := os.Stat(cfg.CredentialsFile); errors.Is(err, os.ErrNotExist) {
		log.WithField("file", cfg.CredentialsFile).
			Warn("credentials file not found, place your Google service account key there")
	}

	c, err := sheets.New(ctx, cfg.CredentialsFile)
	if err == nil && cfg.VerifyCredentials {
		err = c.Verify()
	}
	if err != nil {
		log.WithFields(log.Fields{
			"file": cfg.CredentialsFile,
			"err":  err,
		}).Error("failed to load credentials")
		return nil
	}

	log.WithField("account", c.Account()).Info("Google Sheets service initialized")
	return c
}
