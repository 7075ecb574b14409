package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogger switches logrus to JSON output in production.
func ConfigureLogger(env string) {
	log.SetOutput(os.Stdout)
	if env == "production" {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.DebugLevel)
}
