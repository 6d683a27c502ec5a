package confs

import (
	"os"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:3536"`
	SettingsFile  string        `env:"SETTINGS_FILE" envDefault:"rent-settings.yaml"`
	AlertInterval time.Duration `env:"ALERT_INTERVAL" envDefault:"1h"`
	// UserBackendHosts lists the postgres hosts users may point their own
	// backend at. Empty disables per-user backends.
	UserBackendHosts []string `env:"USER_BACKEND_HOSTS" envSeparator:","`
	DB               Database
	Log              Log
}

// Database holds the environment fallback used when no backend has been
// saved in the settings file.
type Database struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	URL      string `env:"DB_URL"`
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	Path     string `env:"DB_PATH"`
}

// Configured reports whether the environment names any backend at all.
func (d Database) Configured() bool {
	return d.URL != "" || d.Path != "" || d.Host != ""
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConfig loads a .env file if present and parses the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("could not load .env: %v", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogging applies the log level and format to the standard logrus logger.
func SetupLogging(l Log) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", l.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if l.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
