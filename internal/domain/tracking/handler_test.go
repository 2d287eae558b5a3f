package tracking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-qr-tracker/internal/domain/scans"
)

func newTestRouter(f fixture) http.Handler {
	r := chi.NewRouter()
	RegisterPublicRoutes(r, f.svc, PublicOptions{
		DefaultPetID: "frida",
		Aliases:      map[string]string{"rocky": "frida"},
	})
	r.Route("/admin", func(ar chi.Router) {
		RegisterAdminRoutes(ar, f.svc)
	})
	return r
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes_Redirects(t *testing.T) {
	h := newTestRouter(newFixture(t))

	cases := []struct {
		path   string
		status int
		loc    string
	}{
		{"/", http.StatusFound, "/p/frida"},
		{"/p/rocky", http.StatusMovedPermanently, "/p/frida"},
		{"/p/Frida", http.StatusMovedPermanently, "/p/frida"},
	}
	for _, tc := range cases {
		rec := serve(h, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, rec.Code, tc.path)
		assert.Equal(t, tc.loc, rec.Header().Get("Location"), tc.path)
	}
}

func TestPetPage(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/p/nadie", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"pet_not_found"}`, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/p/frida", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body PetPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "Frida", body.Pet.Name)
	require.Len(t, body.Contacts, 1)
	assert.Equal(t, "Tincho", body.Contacts[0].Name)
	assert.Nil(t, body.LastLocation)
	assert.NotContains(t, rec.Body.String(), "home")

	st, err := f.svc.Stats(t.Context(), "frida")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Total)
}

func TestShareLocation_FormAndJSON(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f)

	form := url.Values{"lat": {"-34.6040"}, "lon": {"-58.3820"}, "accuracy": {"12.5"}}
	req := httptest.NewRequest(http.MethodPost, "/api/location/frida", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	f.clock.Advance(time.Minute)
	req = httptest.NewRequest(http.MethodPost, "/api/location/frida", strings.NewReader(`{"lat":-34.61,"lon":-58.39}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/locations/frida", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body LocationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Points, 2)
	assert.InDelta(t, -34.61, body.Points[0].Lat, 1e-9)
	assert.Nil(t, body.Points[0].Accuracy)
	require.NotNil(t, body.Points[1].Accuracy)
	assert.Equal(t, 12.5, *body.Points[1].Accuracy)
	assert.Equal(t, "2025-03-10 12:00:00 UTC", body.Points[1].TsUTC)

	st, err := f.svc.Stats(t.Context(), "frida")
	require.NoError(t, err)
	require.NotNil(t, st.Last)
	assert.Equal(t, 2, st.Located)

	hist, err := f.svc.QueryHistory(t.Context(), scans.ListFilter{PetID: "frida"})
	require.NoError(t, err)
	require.Len(t, hist.Rows, 2)
	assert.Equal(t, "203.0.113.7", hist.Rows[1].IP)
}

func TestShareLocation_UnknownPet(t *testing.T) {
	h := newTestRouter(newFixture(t))

	req := httptest.NewRequest(http.MethodPost, "/api/location/nadie", strings.NewReader("lat=1&lon=2"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(h, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"pet_not_found"}`, rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/locations/nadie", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocations_LimitIsClamped(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f)

	for i := 0; i < 3; i++ {
		_, err := f.svc.RecordLocation(t.Context(), "frida", RequestMeta{}, nearHome())
		require.NoError(t, err)
	}

	cases := map[string]int{
		"/api/locations/frida?limit=0":    1,
		"/api/locations/frida?limit=-5":   1,
		"/api/locations/frida?limit=2":    2,
		"/api/locations/frida?limit=5000": 3,
		"/api/locations/frida":            3,
	}
	for path, want := range cases {
		rec := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body LocationsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Points, want, path)
	}

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/locations/frida?limit=muchos", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSighting(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/api/sighting/frida", strings.NewReader(`{"note":"la vi en la plaza","lat":"-34.60","lon":"-58.38"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/admin/history?pet=frida", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "la vi en la plaza", body.Rows[0].Note)
	require.NotNil(t, body.Rows[0].Location)
}

func TestHistory_PaginationAndFilters(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f)

	for i := 0; i < 47; i++ {
		_, err := f.svc.RecordScan(t.Context(), "frida", RequestMeta{})
		require.NoError(t, err)
		f.clock.Advance(time.Hour)
	}

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/admin/history?page=5&page_size=20", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 47, body.Total)
	assert.Equal(t, 3, body.Pages)
	assert.Equal(t, 3, body.Page)
	assert.Len(t, body.Rows, 7)
	// el más viejo queda último
	assert.Equal(t, int64(1), body.Rows[len(body.Rows)-1].ID)

	// 12:00 del 10/3 + 47h -> el 10/3 tiene 12 eventos (12..23 hs)
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/admin/history?date_from=2025-03-10&date_to=2025-03-10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Total)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/admin/history?date_from=10/03/2025", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/admin/history?page=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	h := newTestRouter(f)

	_, err := f.svc.RecordLocation(t.Context(), "frida", RequestMeta{IP: "1.1.1.1"}, nearHome())
	require.NoError(t, err)
	_, err = f.svc.RecordScan(t.Context(), "frida", RequestMeta{IP: "2.2.2.2"})
	require.NoError(t, err)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/admin/pets/frida/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Located)
	require.NotNil(t, body.Last)
	assert.Equal(t, "2.2.2.2", body.Last.IP)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/admin/pets/nadie/stats", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
