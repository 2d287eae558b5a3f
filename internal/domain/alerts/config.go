package alerts

import (
	"errors"
	"time"
)

const (
	DefaultNightStartHour      = 22
	DefaultNightEndHour        = 6
	DefaultBurstWindow         = 10 * time.Minute
	DefaultBurstThreshold      = 4
	DefaultDistanceThresholdKm = 2.0
)

// Config es inmutable: se arma una vez al arrancar y se pasa por valor.
// El evaluador nunca lee env ni estado global.
type Config struct {
	Location *time.Location

	// Ventana nocturna [NightStartHour, NightEndHour) en hora local.
	// Si start > end la ventana cruza medianoche.
	NightStartHour int
	NightEndHour   int

	BurstWindow    time.Duration
	BurstThreshold int

	DistanceThresholdKm float64
}

func DefaultConfig() Config {
	return Config{
		Location:            time.UTC,
		NightStartHour:      DefaultNightStartHour,
		NightEndHour:        DefaultNightEndHour,
		BurstWindow:         DefaultBurstWindow,
		BurstThreshold:      DefaultBurstThreshold,
		DistanceThresholdKm: DefaultDistanceThresholdKm,
	}
}

func (c Config) Validate() error {
	if c.Location == nil {
		return errors.New("alerts: time zone is required")
	}
	if c.NightStartHour < 0 || c.NightStartHour > 23 || c.NightEndHour < 0 || c.NightEndHour > 23 {
		return errors.New("alerts: night hours must be within 0..23")
	}
	if c.BurstWindow <= 0 {
		return errors.New("alerts: burst window must be positive")
	}
	if c.BurstThreshold < 1 {
		return errors.New("alerts: burst threshold must be >= 1")
	}
	if c.DistanceThresholdKm <= 0 {
		return errors.New("alerts: distance threshold must be positive")
	}
	return nil
}

// IsNight indica si la hora local cae en la ventana nocturna.
func (c Config) IsNight(hour int) bool {
	start, end := c.NightStartHour, c.NightEndHour
	if start > end {
		return hour >= start || hour < end
	}
	return hour >= start && hour < end
}
