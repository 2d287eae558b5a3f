package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-qr-tracker/internal/domain/alerts"
	"pet-qr-tracker/internal/domain/contacts"
	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/domain/scans"
	"pet-qr-tracker/internal/platform/geo"
	"pet-qr-tracker/internal/platform/logger"
)

type recordingSink struct {
	mu   sync.Mutex
	got  []Message
	fail error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Send(ctx context.Context, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, m)
	return s.fail
}

func (s *recordingSink) Close() error { return nil }

func (s *recordingSink) messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.got...)
}

func runDispatcher(t *testing.T, d *Dispatcher) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(done)
	}()
	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("dispatcher did not stop")
		}
	}
}

func TestDispatcher_NoSinkIsNoop(t *testing.T) {
	d := NewDispatcher(nil, Options{}, logger.Nop())
	assert.False(t, d.Enabled())
	assert.False(t, d.Enqueue(Message{Kind: KindScan}))

	stop := runDispatcher(t, d)
	stop()
}

func TestDispatcher_DrainsQueueOnShutdown(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, Options{QueueSize: 10, Workers: 1}, logger.Nop())

	for i := 0; i < 5; i++ {
		require.True(t, d.Enqueue(Message{Kind: KindScan, PetID: "frida"}))
	}

	stop := runDispatcher(t, d)
	stop()

	assert.Len(t, sink.messages(), 5)
	assert.False(t, d.Enqueue(Message{Kind: KindScan}), "closed dispatcher must not accept messages")
}

func TestDispatcher_RunOnlyOnce(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, Options{Workers: 1}, logger.Nop())

	stop := runDispatcher(t, d)
	require.True(t, d.Enqueue(Message{Kind: KindScan}))
	// el mensaje entregado prueba que el primer Run ya arrancó
	require.Eventually(t, func() bool { return len(sink.messages()) == 1 }, 2*time.Second, 10*time.Millisecond)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Run(canceled), ErrAlreadyRunning)

	stop()

	// después del apagado tampoco: no hay doble close de la cola
	assert.NotPanics(t, func() {
		assert.ErrorIs(t, d.Run(context.Background()), ErrAlreadyRunning)
	})
}

func TestDispatcher_FullQueueDrops(t *testing.T) {
	d := NewDispatcher(&recordingSink{}, Options{QueueSize: 1}, logger.Nop())

	assert.True(t, d.Enqueue(Message{Kind: KindScan}))
	assert.False(t, d.Enqueue(Message{Kind: KindScan}))
}

func TestDispatcher_SinkFailureIsSwallowed(t *testing.T) {
	sink := &recordingSink{fail: errors.New("boom")}
	d := NewDispatcher(sink, Options{Workers: 1}, logger.Nop())

	require.True(t, d.Enqueue(Message{Kind: KindAlert}))
	stop := runDispatcher(t, d)
	stop()

	// se intentó una sola vez, sin reintento
	assert.Len(t, sink.messages(), 1)
}

func TestDispatcher_SlowWebhookIsBoundedByTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	sink, err := NewWebhookSink(srv.URL, time.Minute, nil)
	require.NoError(t, err)
	d := NewDispatcher(sink, Options{Workers: 1, SendTimeout: 50 * time.Millisecond}, logger.Nop())

	start := time.Now()
	require.True(t, d.Enqueue(Message{Kind: KindAlert}))
	assert.Less(t, time.Since(start), 50*time.Millisecond, "enqueue must not wait for the sink")

	stop := runDispatcher(t, d)
	stop()
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestWebhookSink(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/fail") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	sink, err := NewWebhookSink(srv.URL+"/ok", time.Second, nil)
	require.NoError(t, err)
	require.NoError(t, sink.Send(context.Background(), Message{ID: "m1", Kind: KindSighting, Text: "hola"}))
	assert.Equal(t, "m1", got.ID)
	assert.Equal(t, KindSighting, got.Kind)

	bad, err := NewWebhookSink(srv.URL+"/fail", time.Second, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, bad.Send(context.Background(), Message{}), ErrSinkDelivery)

	_, err = NewWebhookSink("", time.Second, nil)
	assert.ErrorIs(t, err, ErrNoSink)
}

func TestMultiSink(t *testing.T) {
	ok := &recordingSink{}
	ko := &recordingSink{fail: ErrSinkDelivery}
	m := MultiSink{ok, ko}

	err := m.Send(context.Background(), Message{ID: "x"})
	assert.ErrorIs(t, err, ErrSinkDelivery)
	assert.Len(t, ok.messages(), 1)
	assert.Equal(t, "recording+recording", m.Name())
}

func testPet() pets.Pet {
	return pets.Pet{ID: "frida", Profile: pets.Profile{Name: "Frida"}, Status: pets.StatusLost}
}

func TestBuildAlert_CombinesReasons(t *testing.T) {
	b := NewBuilder("https://tag.example.org/")
	acc := 20.0
	ev := scans.ScanEvent{
		ID:       42,
		PetID:    "frida",
		IP:       "203.0.113.7",
		Location: &geo.Location{Point: geo.Point{Lat: -34.6, Lon: -58.4}, Accuracy: &acc},
	}
	reasons := []alerts.Reason{
		{Kind: alerts.KindBurst, Count: 5, Window: 10 * time.Minute, Threshold: 4},
		{Kind: alerts.KindDistance, DistanceKm: 3.456, ThresholdKm: 2},
	}
	cs := []contacts.Contact{{Label: "Dueño", Name: "Ana", Phone: "+54 11 5555"}}

	m := b.BuildAlert(testPet(), cs, reasons, ev)

	assert.Equal(t, KindAlert, m.Kind)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, int64(42), m.EventID)
	require.Len(t, m.Reasons, 2)
	assert.Contains(t, m.Text, "Muchos escaneos seguidos: 5")
	assert.Contains(t, m.Text, "Lejos de casa: 3.46 km")
	assert.Contains(t, m.Text, "https://maps.google.com/?q=-34.600000,-58.400000")
	assert.Contains(t, m.Text, "203.0.113.7")
	assert.Contains(t, m.Text, "Dueño: Ana")
	assert.Equal(t, "https://tag.example.org/p/frida", m.PageURL)
}

func TestBuildInfo(t *testing.T) {
	b := NewBuilder("")

	m := b.BuildInfo(KindSighting, testPet(), nil, scans.ScanEvent{Note: "la vi en la plaza"})
	assert.Equal(t, KindSighting, m.Kind)
	assert.Contains(t, m.Text, "la vi en la plaza")
	assert.Empty(t, m.PageURL)

	m = b.BuildInfo(KindLocation, testPet(), nil, scans.ScanEvent{})
	assert.Contains(t, m.Text, "no llegaron coordenadas")
	assert.Empty(t, m.MapURL)

	m = b.BuildInfo("", testPet(), nil, scans.ScanEvent{})
	assert.Equal(t, KindScan, m.Kind)
	assert.Contains(t, m.Title, "Frida")
}
