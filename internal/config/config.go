package config

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultCredentialsFile = "credentials.json"
	DefaultPort            = "8000"
)

type Config struct {
	CredentialsFile   string
	VerifyCredentials bool

	HTTPAddr string

	LogLevel log.Level
}

func FromEnv() (Config, error) {
	var c Config
	c.CredentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_FILE"))
	if c.CredentialsFile == "" {
		c.CredentialsFile = DefaultCredentialsFile
	}
	c.VerifyCredentials = parseBool(os.Getenv("VERIFY_CREDENTIALS"))

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		port := strings.TrimSpace(os.Getenv("PORT"))
		if port == "" {
			port = DefaultPort
		}
		c.HTTPAddr = ":" + port
	}

	c.LogLevel = log.InfoLevel
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		lvl, err := log.ParseLevel(raw)
		if err != nil {
			return c, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		c.LogLevel = lvl
	}
	if parseBool(os.Getenv("DEBUG")) {
		c.LogLevel = log.DebugLevel
	}

	return c, nil
}

func parseBool(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "yes", "true", "1", "y", "on":
		return true
	default:
		return false
	}
}
