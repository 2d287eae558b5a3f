package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
	"pet-qr-tracker/internal/platform/geo"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	return cfg
}

func lostPet(home *geo.Point) pets.Pet {
	return pets.Pet{ID: "frida", Status: pets.StatusLost, Home: home}
}

func eventAt(hour int, loc *geo.Location) scans.ScanEvent {
	return scans.ScanEvent{
		ID:        1,
		PetID:     "frida",
		Kind:      scans.KindLocation,
		Timestamp: time.Date(2025, 3, 10, hour, 15, 0, 0, time.UTC),
		Location:  loc,
	}
}

func kinds(rs []Reason) []Kind {
	out := make([]Kind, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Kind)
	}
	return out
}

func TestEvaluate_HomePetNeverAlerts(t *testing.T) {
	ev := NewEvaluator(testConfig())
	home := &geo.Point{Lat: -34.6, Lon: -58.4}
	far := &geo.Location{Point: geo.Point{Lat: 40.4, Lon: -3.7}}

	pet := pets.Pet{ID: "frida", Status: pets.StatusHome, Home: home}

	// nocturno + ráfaga + lejos: igual no debe disparar nada
	got := ev.Evaluate(pet, eventAt(23, far), History{EventsInBurstWindow: 50})
	assert.Empty(t, got)
}

func TestConfig_IsNight(t *testing.T) {
	t.Run("wrapping window 22-6", func(t *testing.T) {
		cfg := Config{NightStartHour: 22, NightEndHour: 6}
		for h := 0; h < 24; h++ {
			want := h >= 22 || h < 6
			assert.Equal(t, want, cfg.IsNight(h), "hour %d", h)
		}
	})

	t.Run("non wrapping window 6-22", func(t *testing.T) {
		cfg := Config{NightStartHour: 6, NightEndHour: 22}
		for h := 0; h < 24; h++ {
			want := h >= 6 && h < 22
			assert.Equal(t, want, cfg.IsNight(h), "hour %d", h)
		}
	})
}

func TestEvaluate_NightUsesConfiguredZone(t *testing.T) {
	cfg := testConfig()
	cfg.Location = time.FixedZone("ART", -3*60*60)
	ev := NewEvaluator(cfg)

	// 02:15 UTC = 23:15 ART -> noche
	got := ev.Evaluate(lostPet(nil), eventAt(2, nil), History{EventsInBurstWindow: 1})
	require.Len(t, got, 1)
	assert.Equal(t, KindNight, got[0].Kind)
	assert.Equal(t, 23, got[0].LocalTime.Hour())

	// 12:15 UTC = 09:15 ART -> día
	got = ev.Evaluate(lostPet(nil), eventAt(12, nil), History{EventsInBurstWindow: 1})
	assert.Empty(t, got)
}

func TestEvaluate_Burst(t *testing.T) {
	ev := NewEvaluator(testConfig())

	got := ev.Evaluate(lostPet(nil), eventAt(12, nil), History{EventsInBurstWindow: 4})
	require.Len(t, got, 1)
	assert.Equal(t, KindBurst, got[0].Kind)
	assert.Equal(t, 4, got[0].Count)
	assert.Equal(t, 10*time.Minute, got[0].Window)

	got = ev.Evaluate(lostPet(nil), eventAt(12, nil), History{EventsInBurstWindow: 3})
	assert.Empty(t, got)
}

func TestEvaluate_Distance(t *testing.T) {
	ev := NewEvaluator(testConfig())

	t.Run("zero home is treated as unset", func(t *testing.T) {
		far := &geo.Location{Point: geo.Point{Lat: 40.4, Lon: -3.7}}
		got := ev.Evaluate(lostPet(&geo.Point{Lat: 0, Lon: 0}), eventAt(12, far), History{})
		assert.Empty(t, got)
	})

	t.Run("nil home", func(t *testing.T) {
		far := &geo.Location{Point: geo.Point{Lat: 40.4, Lon: -3.7}}
		got := ev.Evaluate(lostPet(nil), eventAt(12, far), History{})
		assert.Empty(t, got)
	})

	t.Run("same point does not fire", func(t *testing.T) {
		home := &geo.Point{Lat: -34.6, Lon: -58.4}
		here := &geo.Location{Point: *home}
		got := ev.Evaluate(lostPet(home), eventAt(12, here), History{})
		assert.Empty(t, got)
	})

	t.Run("event without coordinates", func(t *testing.T) {
		home := &geo.Point{Lat: -34.6, Lon: -58.4}
		got := ev.Evaluate(lostPet(home), eventAt(12, nil), History{})
		assert.Empty(t, got)
	})

	t.Run("one degree away fires with full precision distance", func(t *testing.T) {
		home := &geo.Point{Lat: -34.6, Lon: -58.4}
		away := &geo.Location{Point: geo.Point{Lat: -33.6, Lon: -58.4}}
		got := ev.Evaluate(lostPet(home), eventAt(12, away), History{})
		require.Len(t, got, 1)
		assert.Equal(t, KindDistance, got[0].Kind)
		assert.InDelta(t, 111.19, got[0].DistanceKm, 0.5)
		assert.NotEqual(t, geo.Round2(got[0].DistanceKm), got[0].DistanceKm)
		assert.Contains(t, got[0].Describe(), "111.19 km")
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		cfg := testConfig()
		home := geo.Point{Lat: -34.6, Lon: -58.4}
		away := geo.Point{Lat: -34.5, Lon: -58.4}
		cfg.DistanceThresholdKm = geo.DistanceKm(home, away)

		got := NewEvaluator(cfg).Evaluate(lostPet(&home), eventAt(12, &geo.Location{Point: away}), History{})
		require.Len(t, got, 1)
		assert.Equal(t, KindDistance, got[0].Kind)
	})
}

func TestEvaluate_UnionOfAllRules(t *testing.T) {
	ev := NewEvaluator(testConfig())
	home := &geo.Point{Lat: -34.6, Lon: -58.4}
	far := &geo.Location{Point: geo.Point{Lat: -34.0, Lon: -58.4}}

	got := ev.Evaluate(lostPet(home), eventAt(23, far), History{EventsInBurstWindow: 7})
	assert.Equal(t, []Kind{KindNight, KindBurst, KindDistance}, kinds(got))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.NightStartHour = 24
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Location = nil
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.BurstThreshold = 0
	assert.Error(t, cfg.Validate())
}

func TestReason_Describe(t *testing.T) {
	r := Reason{Kind: KindBurst, Count: 5, Window: 10 * time.Minute, Threshold: 4}
	assert.Equal(t, "Muchos escaneos seguidos: 5 en los últimos 10 min (umbral 4)", r.Describe())

	r = Reason{Kind: KindDistance, DistanceKm: 3.14159, ThresholdKm: 2}
	assert.Equal(t, "Lejos de casa: 3.14 km (umbral 2.00 km)", r.Describe())
}
