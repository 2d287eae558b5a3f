package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pet-qr-tracker/internal/adapters/auth/statictoken"
	"pet-qr-tracker/internal/router"
)

func TestHTTP_EndToEnd_LostPetFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil, DefaultPetID: "luna"}))
	defer ts.Close()

	adminID := "admin-1"

	// 1) Health
	{
		st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health, got %d body=%s", st, string(body))
		}
		var resp struct {
			OK         bool   `json:"ok"`
			DB         string `json:"db"`
			DefaultPet string `json:"default_pet"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.OK || resp.DB != "memory" || resp.DefaultPet != "luna" {
			t.Fatalf("unexpected health body=%s", string(body))
		}
	}

	// 2) Admin sin credenciales => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/admin/pets", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without admin, got %d", st)
		}
	}

	// 3) Admin crea mascota, hogar y contacto
	petID := createPet(t, ts.URL, adminID, map[string]any{"id": "Luna", "name": "Luna"})
	if petID != "luna" {
		t.Fatalf("expected normalized id luna, got %q", petID)
	}
	{
		st, body := doReq(t, ts.URL, "PUT", "/admin/pets/luna/home", adminID, map[string]any{"lat": -34.6037, "lon": -58.3816})
		if st != http.StatusOK {
			t.Fatalf("expected 200 set home, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/admin/pets/luna/contacts", adminID, map[string]any{
			"label": "Dueño", "name": "Tincho", "phone": "+5491100000000",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add contact, got %d body=%s", st, string(body))
		}
	}

	// 4) Alguien escanea la chapita (con mayúsculas: redirect y después 200)
	{
		st, body := doReq(t, ts.URL, "GET", "/p/LUNA", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pet page after redirect, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "Tincho") {
			t.Fatalf("expected contact in pet page, body=%s", string(body))
		}
	}

	// 5) Comparte ubicación lejos de casa
	{
		st, body := doForm(t, ts.URL, "/api/location/luna", url.Values{"lat": {"-34.50"}, "lon": {"-58.38"}, "accuracy": {"20"}})
		if st != http.StatusOK {
			t.Fatalf("expected 200 share location, got %d body=%s", st, string(body))
		}
	}

	// 6) La ubicación aparece en la API pública
	{
		st, body := doReq(t, ts.URL, "GET", "/api/locations/luna?limit=10", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 locations, got %d body=%s", st, string(body))
		}
		var resp struct {
			OK     bool `json:"ok"`
			Points []struct {
				Lat float64 `json:"lat"`
			} `json:"points"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.OK || len(resp.Points) != 1 || resp.Points[0].Lat != -34.5 {
			t.Fatalf("unexpected locations body=%s", string(body))
		}
	}

	// 7) Historial admin: visita + ubicación
	{
		st, body := doReq(t, ts.URL, "GET", "/admin/history?pet=luna", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var resp struct {
			Total int `json:"total"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Total != 2 {
			t.Fatalf("expected 2 events in history, body=%s", string(body))
		}
	}

	// 8) Mascota inexistente: 404 sin efectos
	{
		st, _ := doForm(t, ts.URL, "/api/location/rocky", url.Values{"lat": {"1"}, "lon": {"2"}})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown pet, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/admin/pets/luna/stats", adminID, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"total":2`) {
			t.Fatalf("expected stats unchanged, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_CreatePet_Duplicate(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	createPet(t, ts.URL, "admin-1", map[string]any{"id": "frida", "name": "Frida"})

	st, _ := doReq(t, ts.URL, "POST", "/admin/pets", "admin-1", map[string]any{"id": "frida", "name": "Otra"})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate pet, got %d", st)
	}
}

func TestHTTP_DeletePet(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil, DefaultPetID: "luna"}))
	defer ts.Close()

	createPet(t, ts.URL, "admin-1", map[string]any{"id": "luna", "name": "Luna"})
	createPet(t, ts.URL, "admin-1", map[string]any{"id": "rocky", "name": "Rocky"})

	if st, body := doReq(t, ts.URL, "GET", "/p/rocky", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 pet page, got %d body=%s", st, string(body))
	}
	if st, body := doReq(t, ts.URL, "POST", "/admin/pets/rocky/contacts", "admin-1", map[string]any{"name": "Tincho"}); st != http.StatusCreated {
		t.Fatalf("expected 201 add contact, got %d body=%s", st, string(body))
	}

	// la default no se borra
	if st, _ := doReq(t, ts.URL, "DELETE", "/admin/pets/luna", "admin-1", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 deleting default pet, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/admin/pets/rocky", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin, got %d", st)
	}

	if st, body := doReq(t, ts.URL, "DELETE", "/admin/pets/Rocky", "admin-1", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
	}

	if st, _ := doReq(t, ts.URL, "GET", "/admin/pets/rocky", "admin-1", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/p/rocky", "", nil); st != http.StatusNotFound {
		t.Fatalf("expected public page 404 after delete, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/admin/history?pet=rocky", "admin-1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
	}
	var hist struct {
		Total int `json:"total"`
	}
	_ = json.Unmarshal(body, &hist)
	if hist.Total != 0 {
		t.Fatalf("expected rocky's events gone, body=%s", string(body))
	}

	if st, _ := doReq(t, ts.URL, "DELETE", "/admin/pets/rocky", "admin-1", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", st)
	}
}

func TestHTTP_PublicWritesAreRateLimited(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil, RatePerMinute: 2}))
	defer ts.Close()

	createPet(t, ts.URL, "admin-1", map[string]any{"id": "frida", "name": "Frida"})

	for i := 0; i < 2; i++ {
		st, body := doForm(t, ts.URL, "/api/location/frida", url.Values{"lat": {"-34.6"}, "lon": {"-58.4"}})
		if st != http.StatusOK {
			t.Fatalf("expected 200 within limit, got %d body=%s", st, string(body))
		}
	}

	st, body := doForm(t, ts.URL, "/api/location/frida", url.Values{"lat": {"-34.6"}, "lon": {"-58.4"}})
	if st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over limit, got %d body=%s", st, string(body))
	}

	// las lecturas no cuentan
	st, _ = doReq(t, ts.URL, "GET", "/api/locations/frida", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 read while limited, got %d", st)
	}
}

func TestHTTP_AdminWithStaticToken(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: statictoken.NewVerifier("s3cret")}))
	defer ts.Close()

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer s3cret", http.StatusOK},
	}
	for _, tc := range cases {
		req, err := http.NewRequest("GET", ts.URL+"/admin/pets", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		// el header de debug no sirve con verifier configurado
		req.Header.Set("X-Debug-User-ID", "intruder")

		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, res.StatusCode)
		}
	}
}

func TestHTTP_MetricsAndSwagger(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// una request para que haya series
	_, _ = doReq(t, ts.URL, "GET", "/health", "", nil)

	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), "petqr_http_requests_total") {
		t.Fatalf("expected http metrics to be exported")
	}

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 swagger doc, got %d", st)
	}
	for _, route := range []string{
		"/api/location/{petID}",
		"/api/sighting/{petID}",
		"/admin/pets/{petID}/stats",
		"/admin/pets/{petID}/home",
		"/admin/pets/{petID}/contacts",
	} {
		if !strings.Contains(string(body), route) {
			t.Fatalf("expected swagger doc to describe %s", route)
		}
	}
}

func createPet(t *testing.T, baseURL, adminID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/admin/pets", adminID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func doForm(t *testing.T, baseURL, path string, form url.Values) (int, []byte) {
	t.Helper()

	res, err := http.PostForm(baseURL+path, form)
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
