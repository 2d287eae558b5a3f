// Package config arma la configuración una sola vez al arrancar:
// archivo YAML opcional (CONFIG_FILE), luego variables de entorno, luego defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // la zona de alertas tiene que cargar aunque el host no tenga zoneinfo

	"gopkg.in/yaml.v3"

	"pet-qr-tracker/internal/domain/alerts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/platform/httpclient"
)

const (
	DefaultPort          = "8080"
	DefaultBaseURL       = "http://localhost:8080"
	DefaultPetID         = "frida"
	DefaultPetName       = "Frida"
	DefaultTimeZone      = "America/Argentina/Buenos_Aires"
	DefaultRatePerMin    = 30
	DefaultNotifyTimeout = 10 * time.Second
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Pets    PetsConfig    `yaml:"pets"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Notify  NotifyConfig  `yaml:"notify"`
	Admin   AdminConfig   `yaml:"admin"`
}

type ServerConfig struct {
	Port               string `yaml:"port"`
	BaseURL            string `yaml:"base_url"`
	RateLimitPerMinute *int   `yaml:"rate_limit_per_minute"` // 0 = sin límite
}

type StorageConfig struct {
	PostgresDSN string `yaml:"postgres_dsn"` // DB_DSN
	SQLitePath  string `yaml:"sqlite_path"`  // DB_PATH
}

type PetsConfig struct {
	DefaultID   string `yaml:"default_id"`
	DefaultName string `yaml:"default_name"`
	// Aliases redirige slugs viejos (ej: rocky -> frida).
	Aliases map[string]string `yaml:"aliases"`
}

type AlertsConfig struct {
	TimeZone            string        `yaml:"time_zone"`
	NightStartHour      *int          `yaml:"night_start_hour"`
	NightEndHour        *int          `yaml:"night_end_hour"`
	BurstWindow         time.Duration `yaml:"burst_window"`
	BurstThreshold      int           `yaml:"burst_threshold"`
	DistanceThresholdKm float64       `yaml:"distance_threshold_km"`
}

type NotifyConfig struct {
	WebhookURL   string        `yaml:"webhook_url"`
	Timeout      time.Duration `yaml:"timeout"`
	QueueSize    int           `yaml:"queue_size"`
	Workers      int           `yaml:"workers"`
	AMQPURL      string        `yaml:"amqp_url"`
	AMQPExchange string        `yaml:"amqp_exchange"`
}

type AdminConfig struct {
	Token string `yaml:"token"`
}

// Load lee CONFIG_FILE (si está) y aplica el entorno del proceso.
func Load() (*Config, error) {
	return LoadWith(os.Getenv)
}

// LoadWith permite inyectar getenv (tests).
func LoadWith(getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if path := strings.TrimSpace(getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
	// optInt distingue "no seteado" de 0.
	optInt := func(key string, dst **int) {
		var n int
		before := len(errs)
		num(key, &n)
		if len(errs) == before && strings.TrimSpace(getenv(key)) != "" {
			*dst = &n
		}
	}

	str("PORT", &c.Server.Port)
	str("BASE_URL", &c.Server.BaseURL)
	optInt("RATE_LIMIT_PER_MINUTE", &c.Server.RateLimitPerMinute)

	str("DB_DSN", &c.Storage.PostgresDSN)
	str("DB_PATH", &c.Storage.SQLitePath)

	str("DEFAULT_PET_ID", &c.Pets.DefaultID)
	str("DEFAULT_PET_NAME", &c.Pets.DefaultName)
	if v := strings.TrimSpace(getenv("PET_ALIASES")); v != "" {
		aliases, err := parseAliases(v)
		if err != nil {
			errs = append(errs, err)
		}
		c.Pets.Aliases = aliases
	}

	str("ALERT_TZ", &c.Alerts.TimeZone)
	optInt("NIGHT_START_HOUR", &c.Alerts.NightStartHour)
	optInt("NIGHT_END_HOUR", &c.Alerts.NightEndHour)
	var burstMin int
	num("BURST_WINDOW_MINUTES", &burstMin)
	if burstMin > 0 {
		c.Alerts.BurstWindow = time.Duration(burstMin) * time.Minute
	}
	num("BURST_THRESHOLD", &c.Alerts.BurstThreshold)
	if v := strings.TrimSpace(getenv("DISTANCE_THRESHOLD_KM")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("DISTANCE_THRESHOLD_KM: %w", err))
		} else {
			c.Alerts.DistanceThresholdKm = f
		}
	}

	str("NOTIFY_WEBHOOK_URL", &c.Notify.WebhookURL)
	if v := strings.TrimSpace(getenv("NOTIFY_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("NOTIFY_TIMEOUT: %w", err))
		} else {
			c.Notify.Timeout = d
		}
	}
	num("NOTIFY_QUEUE_SIZE", &c.Notify.QueueSize)
	num("NOTIFY_WORKERS", &c.Notify.Workers)
	str("AMQP_URL", &c.Notify.AMQPURL)
	str("AMQP_EXCHANGE", &c.Notify.AMQPExchange)

	str("ADMIN_TOKEN", &c.Admin.Token)

	return errors.Join(errs...)
}

// parseAliases lee "rocky=frida,viejo=nuevo".
func parseAliases(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		from, to, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("PET_ALIASES: invalid pair %q", pair)
		}
		out[pets.NormalizeID(from)] = pets.NormalizeID(to)
	}
	return out, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = DefaultBaseURL
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	if c.Server.RateLimitPerMinute == nil {
		n := DefaultRatePerMin
		c.Server.RateLimitPerMinute = &n
	}

	c.Pets.DefaultID = pets.NormalizeID(c.Pets.DefaultID)
	if c.Pets.DefaultID == "" {
		c.Pets.DefaultID = DefaultPetID
	}
	if c.Pets.DefaultName == "" {
		c.Pets.DefaultName = DefaultPetName
	}

	if c.Alerts.TimeZone == "" {
		c.Alerts.TimeZone = DefaultTimeZone
	}
	if c.Alerts.NightStartHour == nil {
		h := alerts.DefaultNightStartHour
		c.Alerts.NightStartHour = &h
	}
	if c.Alerts.NightEndHour == nil {
		h := alerts.DefaultNightEndHour
		c.Alerts.NightEndHour = &h
	}
	if c.Alerts.BurstWindow <= 0 {
		c.Alerts.BurstWindow = alerts.DefaultBurstWindow
	}
	if c.Alerts.BurstThreshold <= 0 {
		c.Alerts.BurstThreshold = alerts.DefaultBurstThreshold
	}
	if c.Alerts.DistanceThresholdKm <= 0 {
		c.Alerts.DistanceThresholdKm = alerts.DefaultDistanceThresholdKm
	}

	if c.Notify.Timeout <= 0 {
		c.Notify.Timeout = DefaultNotifyTimeout
	}
}

func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric: %q", c.Server.Port)
	}
	if !pets.ValidID(c.Pets.DefaultID) {
		return fmt.Errorf("pets.default_id is not a valid slug: %q", c.Pets.DefaultID)
	}
	if c.Notify.WebhookURL != "" {
		if err := httpclient.ValidateURL(c.Notify.WebhookURL); err != nil {
			return fmt.Errorf("notify.webhook_url: %w", err)
		}
	}
	if _, err := c.AlertsConfig(); err != nil {
		return err
	}
	return nil
}

// AlertsConfig arma la config inmutable del evaluador (carga la zona horaria una vez).
func (c *Config) AlertsConfig() (alerts.Config, error) {
	loc, err := time.LoadLocation(c.Alerts.TimeZone)
	if err != nil {
		return alerts.Config{}, fmt.Errorf("alerts.time_zone: %w", err)
	}

	out := alerts.Config{
		Location:            loc,
		NightStartHour:      alerts.DefaultNightStartHour,
		NightEndHour:        alerts.DefaultNightEndHour,
		BurstWindow:         c.Alerts.BurstWindow,
		BurstThreshold:      c.Alerts.BurstThreshold,
		DistanceThresholdKm: c.Alerts.DistanceThresholdKm,
	}
	if c.Alerts.NightStartHour != nil {
		out.NightStartHour = *c.Alerts.NightStartHour
	}
	if c.Alerts.NightEndHour != nil {
		out.NightEndHour = *c.Alerts.NightEndHour
	}
	if err := out.Validate(); err != nil {
		return alerts.Config{}, err
	}
	return out, nil
}

// RatePerMinute devuelve el límite por IP de los endpoints públicos de escritura (0 = sin límite).
func (c *Config) RatePerMinute() int {
	if c.Server.RateLimitPerMinute == nil || *c.Server.RateLimitPerMinute < 0 {
		return 0
	}
	return *c.Server.RateLimitPerMinute
}

// Addr es la dirección de escucha del server HTTP.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// StoreKind describe qué backend se va a usar (para logs y /health).
func (c *Config) StoreKind() string {
	switch {
	case c.Storage.PostgresDSN != "":
		return "postgres"
	case c.Storage.SQLitePath != "":
		return "sqlite"
	default:
		return "memory"
	}
}
