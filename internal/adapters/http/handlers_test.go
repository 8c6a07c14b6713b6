package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/samirrijal/wayfarer/internal/adapters/http"
	"github.com/samirrijal/wayfarer/internal/adapters/memory"
	"github.com/samirrijal/wayfarer/internal/core/domain"
	"github.com/samirrijal/wayfarer/internal/core/ports"
	"github.com/samirrijal/wayfarer/internal/core/usecases"
	"github.com/samirrijal/wayfarer/internal/pkg/auth"
	"github.com/samirrijal/wayfarer/internal/pkg/logging"
)

// ---- Fake peers ----

type fakePeers struct {
	mu     sync.Mutex
	places map[string]bool
	routes map[string]bool
	calls  []string
	tokens []string
}

func newFakePeers() *fakePeers {
	return &fakePeers{places: map[string]bool{}, routes: map[string]bool{}}
}

func (f *fakePeers) record(call, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.tokens = append(f.tokens, token)
}

func (f *fakePeers) DeleteForPlace(ctx context.Context, placeID, token string) ports.RemoteOutcome {
	f.record("deleteForPlace:"+placeID, token)
	return ports.RemoteOutcome{Capability: "dependents.deleteForPlace"}
}

func (f *fakePeers) DeleteForRoute(ctx context.Context, routeID, token string) ports.RemoteOutcome {
	f.record("deleteForRoute:"+routeID, token)
	return ports.RemoteOutcome{Capability: "feedback.deleteForRoute"}
}

func (f *fakePeers) PlaceExists(ctx context.Context, placeID, token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.places[placeID]
}

func (f *fakePeers) RouteExists(ctx context.Context, routeID, token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.routes[routeID]
}

// ---- Test helpers ----

type testEnv struct {
	app    *fiber.App
	tokens *auth.TokenManager
	peers  *fakePeers
	owner  string
	other  string
	user   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logging.Setup("test", "error", "text")

	tm, err := auth.NewTokenManager("test-secret-test-secret-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	peers := newFakePeers()

	places := usecases.NewPlaceService(memory.NewPlaceRepo(), peers, peers, nil, nil)
	deps := &handler.Dependencies{
		Places:    places,
		Deleter:   places,
		Routes:    usecases.NewRouteService(memory.NewRouteRepo(), peers, peers),
		Feedback:  usecases.NewFeedbackService(memory.NewFeedbackRepo(), peers, peers),
		Favorites: usecases.NewFavoritesService(memory.NewFavoritesRepo(), peers),
		Auth:      usecases.NewAuthService(memory.NewUserRepo(), tm, 4),
		Identity:  tm,
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)

	issue := func(id string, role domain.Role) string {
		tok, err := tm.Issue(&domain.User{ID: id, Login: id, Role: role})
		if err != nil {
			t.Fatal(err)
		}
		return "Bearer " + tok
	}

	return &testEnv{
		app:    app,
		tokens: tm,
		peers:  peers,
		owner:  issue("owner-1", domain.RoleOwner),
		other:  issue("owner-2", domain.RoleOwner),
		user:   issue("user-1", domain.RoleUser),
	}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func (e *testEnv) createPlace(t *testing.T, name string, lat, lon float64, tags ...string) domain.Place {
	t.Helper()
	tagJSON, _ := json.Marshal(tags)
	body := fmt.Sprintf(`{"name":%q,"coordinates":{"latitude":%v,"longitude":%v},"tags":%s}`, name, lat, lon, tagJSON)
	resp := e.do(t, "POST", "/api/v1/place", e.owner, body)
	if resp.StatusCode != 201 {
		t.Fatalf("create place: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
	var p domain.Place
	decode(t, resp, &p)
	e.peers.mu.Lock()
	e.peers.places[p.ID] = true
	e.peers.mu.Unlock()
	return p
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func expectError(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected %d, got %d: %s", status, resp.StatusCode, readBody(t, resp.Body))
	}
	var apiErr handler.APIError
	decode(t, resp, &apiErr)
	if apiErr.Code != code {
		t.Errorf("expected code %s, got %s", code, apiErr.Code)
	}
	if apiErr.RequestID == "" {
		t.Error("expected request_id in error body")
	}
}

// ---- Health ----

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	resp := e.do(t, "GET", "/health", "", "")
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestReady_MemoryModeIsReady(t *testing.T) {
	e := newTestEnv(t)
	resp := e.do(t, "GET", "/ready", "", "")
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
}

// ---- Authentication & roles ----

func TestPlaces_RequireToken(t *testing.T) {
	e := newTestEnv(t)
	expectError(t, e.do(t, "GET", "/api/v1/place", "", ""), 401, "unauthorized")
	expectError(t, e.do(t, "GET", "/api/v1/place", "Bearer garbage", ""), 401, "unauthorized")
}

func TestCreatePlace_UserRoleForbidden(t *testing.T) {
	e := newTestEnv(t)
	body := `{"name":"Cafe","coordinates":{"latitude":1,"longitude":1}}`
	expectError(t, e.do(t, "POST", "/api/v1/place", e.user, body), 403, "forbidden")
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, "POST", "/api/v1/auth/register", "", `{"login":"ana","password":"s3cret-pass","role":"OWNER"}`)
	if resp.StatusCode != 201 {
		t.Fatalf("register: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
	var user map[string]any
	decode(t, resp, &user)
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash must not be serialized")
	}

	expectError(t, e.do(t, "POST", "/api/v1/auth/register", "", `{"login":"ana","password":"another-pass","role":"USER"}`), 409, "conflict")
	expectError(t, e.do(t, "POST", "/api/v1/auth/login", "", `{"login":"ana","password":"wrong-pass"}`), 401, "unauthorized")

	resp = e.do(t, "POST", "/api/v1/auth/login", "", `{"login":"ana","password":"s3cret-pass"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}
	var tok struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	decode(t, resp, &tok)
	if tok.Role != "OWNER" || tok.AccessToken == "" {
		t.Fatalf("unexpected login response %+v", tok)
	}

	resp = e.do(t, "POST", "/api/v1/place", "Bearer "+tok.AccessToken, `{"name":"Pier","coordinates":{"latitude":2,"longitude":2}}`)
	if resp.StatusCode != 201 {
		t.Fatalf("token from login should authorize, got %d", resp.StatusCode)
	}
}

func TestRegister_Validation(t *testing.T) {
	e := newTestEnv(t)
	expectError(t, e.do(t, "POST", "/api/v1/auth/register", "", `{"login":"ana","password":"short","role":"OWNER"}`), 400, "bad_request")
	expectError(t, e.do(t, "POST", "/api/v1/auth/register", "", `{"login":"ana","password":"long-enough","role":"ADMIN"}`), 400, "bad_request")
}

// ---- Places ----

func TestCreatePlace_DuplicateLocation(t *testing.T) {
	e := newTestEnv(t)
	e.createPlace(t, "First", 1.0, 1.0)

	body := `{"name":"Second","coordinates":{"latitude":1.0,"longitude":1.0}}`
	expectError(t, e.do(t, "POST", "/api/v1/place", e.owner, body), 409, "conflict")
}

func TestCreatePlace_Validation(t *testing.T) {
	e := newTestEnv(t)
	cases := map[string]string{
		"latitude out of range": `{"name":"X","coordinates":{"latitude":100,"longitude":1}}`,
		"missing coordinates":   `{"name":"X"}`,
		"empty name":            `{"name":"","coordinates":{"latitude":1,"longitude":1}}`,
		"too many tags":         `{"name":"X","coordinates":{"latitude":1,"longitude":1},"tags":["a","b","c","d","e","f","g","h","i","j","k"]}`,
		"malformed":             `{"name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			expectError(t, e.do(t, "POST", "/api/v1/place", e.owner, body), 400, "bad_request")
		})
	}
}

func TestGetPlace(t *testing.T) {
	e := newTestEnv(t)
	p := e.createPlace(t, "Bridge", 43.26, -2.93, "landmark")

	resp := e.do(t, "GET", "/api/v1/place/"+p.ID, e.user, "")
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got domain.Place
	decode(t, resp, &got)
	if got.Name != "Bridge" || len(got.Owners) != 1 || got.Owners[0] != "owner-1" {
		t.Errorf("unexpected place %+v", got)
	}

	expectError(t, e.do(t, "GET", "/api/v1/place/missing", e.user, ""), 404, "not_found")
}

func TestListPlaces_Pagination(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 5; i++ {
		e.createPlace(t, fmt.Sprintf("P%d", i), float64(i), float64(i))
	}

	resp := e.do(t, "GET", "/api/v1/place?offset=2&limit=2", e.user, "")
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Link"), `rel="next"`) {
		t.Errorf("expected next link, got %q", resp.Header.Get("Link"))
	}

	var result struct {
		Data       []domain.Place `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	decode(t, resp, &result)
	if result.Pagination.Total != 5 || len(result.Data) != 2 || result.Pagination.Offset != 2 {
		t.Errorf("unexpected page %+v", result.Pagination)
	}
}

func TestUpdatePlace_OnlyOwner(t *testing.T) {
	e := newTestEnv(t)
	p := e.createPlace(t, "Old name", 5, 5)

	expectError(t, e.do(t, "PATCH", "/api/v1/place/"+p.ID+"/name", e.other, `{"name":"Hijacked"}`), 404, "not_found")

	resp := e.do(t, "PATCH", "/api/v1/place/"+p.ID+"/name", e.owner, `{"name":"New name"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp = e.do(t, "PATCH", "/api/v1/place/"+p.ID+"/description", e.owner, `{"description":"by the river"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got domain.Place
	decode(t, resp, &got)
	if got.Name != "New name" || got.Description != "by the river" {
		t.Errorf("unexpected place %+v", got)
	}
}

func TestNearPlaces_OrderedAndFiltered(t *testing.T) {
	e := newTestEnv(t)
	far := e.createPlace(t, "Far Park", 10.03, 10.0, "park")
	near := e.createPlace(t, "Near Park", 10.01, 10.0, "park")
	e.createPlace(t, "Museum", 10.0, 10.0, "museum")
	e.createPlace(t, "Elsewhere", 20.0, 20.0, "park")

	resp := e.do(t, "GET", "/api/v1/place/near?latitude=10&longitude=10&distance_km=5&tag=park", e.user, "")
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
	var places []domain.Place
	decode(t, resp, &places)
	if len(places) != 2 || places[0].ID != near.ID || places[1].ID != far.ID {
		t.Fatalf("expected [near, far], got %+v", places)
	}
	if places[0].DistanceKm == nil || *places[0].DistanceKm > *places[1].DistanceKm {
		t.Error("expected ascending distance_km")
	}

	resp = e.do(t, "GET", "/api/v1/place/name?latitude=10&longitude=10&name=Muse", e.user, "")
	places = nil
	decode(t, resp, &places)
	if len(places) != 1 || places[0].Name != "Museum" {
		t.Errorf("expected only Museum, got %+v", places)
	}
	if resp.Header.Get("Deprecation") != "true" {
		t.Error("expected Deprecation header on /place/name")
	}

	resp = e.do(t, "GET", "/api/v1/place/tag?latitude=10&longitude=10&distance_km=5&tag=cinema", e.user, "")
	body := strings.TrimSpace(string(readBody(t, resp.Body)))
	if body != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func TestNearPlaces_BadQuery(t *testing.T) {
	e := newTestEnv(t)
	expectError(t, e.do(t, "GET", "/api/v1/place/near?longitude=10", e.user, ""), 400, "bad_request")
	expectError(t, e.do(t, "GET", "/api/v1/place/near?latitude=abc&longitude=10", e.user, ""), 400, "bad_request")
	expectError(t, e.do(t, "GET", "/api/v1/place/near?latitude=10&longitude=10&distance_km=-1", e.user, ""), 400, "bad_request")
	expectError(t, e.do(t, "GET", "/api/v1/place/tag?latitude=10&longitude=10", e.user, ""), 400, "bad_request")
}

func TestDeletePlace_Cascade(t *testing.T) {
	e := newTestEnv(t)
	p := e.createPlace(t, "Doomed", 7, 7)

	expectError(t, e.do(t, "DELETE", "/api/v1/place/"+p.ID, e.other, ""), 404, "not_found")
	if len(e.peers.calls) != 0 {
		t.Fatalf("expected no remote calls for a foreign place, got %v", e.peers.calls)
	}

	resp := e.do(t, "DELETE", "/api/v1/place/"+p.ID, e.owner, "")
	if resp.StatusCode != 204 {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if len(e.peers.calls) != 2 {
		t.Fatalf("expected feedback and favorites deletions, got %v", e.peers.calls)
	}
	for _, tok := range e.peers.tokens {
		if tok != e.owner {
			t.Errorf("expected caller token forwarded, got %q", tok)
		}
	}

	expectError(t, e.do(t, "DELETE", "/api/v1/place/"+p.ID, e.owner, ""), 404, "not_found")
	expectError(t, e.do(t, "GET", "/api/v1/place/"+p.ID, e.owner, ""), 404, "not_found")
}

func TestETag_NotModified(t *testing.T) {
	e := newTestEnv(t)
	p := e.createPlace(t, "Tagged", 3, 3)

	resp := e.do(t, "GET", "/api/v1/place/"+p.ID, e.user, "")
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	req := httptest.NewRequest("GET", "/api/v1/place/"+p.ID, nil)
	req.Header.Set("Authorization", e.user)
	req.Header.Set("If-None-Match", etag)
	resp, _ = e.app.Test(req, -1)
	if resp.StatusCode != 304 {
		t.Errorf("expected 304, got %d", resp.StatusCode)
	}
}

func TestGraphQL_PlacesNear(t *testing.T) {
	e := newTestEnv(t)
	e.createPlace(t, "Graph Park", 10.0, 10.0, "park")

	q := `{"query":"{ placesNear(latitude: 10, longitude: 10, distance_km: 5, tag: \"park\") { name tags distance_km } }"}`
	resp := e.do(t, "POST", "/graphql", e.user, q)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result struct {
		Data struct {
			PlacesNear []struct {
				Name string `json:"name"`
			} `json:"placesNear"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	decode(t, resp, &result)
	if len(result.Errors) > 0 {
		t.Fatalf("graphql errors: %v", result.Errors)
	}
	if len(result.Data.PlacesNear) != 1 || result.Data.PlacesNear[0].Name != "Graph Park" {
		t.Errorf("unexpected result %+v", result.Data)
	}
}

// ---- Routes ----

func TestRoutes_CreateAndDelete(t *testing.T) {
	e := newTestEnv(t)
	p := e.createPlace(t, "Start", 8, 8)

	expectError(t, e.do(t, "POST", "/api/v1/route", e.user, `{"name":"Loop","places":["ghost"]}`), 404, "not_found")
	expectError(t, e.do(t, "POST", "/api/v1/route", e.user, `{"name":"Loop","places":[]}`), 400, "bad_request")

	resp := e.do(t, "POST", "/api/v1/route", e.user, fmt.Sprintf(`{"name":"Loop","places":[%q]}`, p.ID))
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
	var r domain.Route
	decode(t, resp, &r)
	if r.CreatedBy != "user-1" {
		t.Errorf("expected created_by user-1, got %q", r.CreatedBy)
	}

	resp = e.do(t, "GET", "/api/v1/route/by-place/"+p.ID, e.user, "")
	var routes []domain.Route
	decode(t, resp, &routes)
	if len(routes) != 1 {
		t.Errorf("expected 1 route through place, got %d", len(routes))
	}

	resp = e.do(t, "DELETE", "/api/v1/route/"+r.ID, e.user, "")
	if resp.StatusCode != 204 {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	expectError(t, e.do(t, "GET", "/api/v1/route/"+r.ID, e.user, ""), 404, "not_found")
}

// ---- Feedback ----

func TestFeedback_Lifecycle(t *testing.T) {
	e := newTestEnv(t)
	p := e.createPlace(t, "Rated", 9, 9)

	expectError(t, e.do(t, "POST", "/api/v1/feedback/place", e.user, fmt.Sprintf(`{"place_id":%q,"grade":6}`, p.ID)), 400, "bad_request")
	expectError(t, e.do(t, "POST", "/api/v1/feedback/place", e.user, `{"place_id":"ghost","grade":3}`), 404, "not_found")
	expectError(t, e.do(t, "POST", "/api/v1/feedback/place", e.user, `{"grade":3}`), 400, "bad_request")

	resp := e.do(t, "POST", "/api/v1/feedback/place", e.user, fmt.Sprintf(`{"place_id":%q,"grade":4}`, p.ID))
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
	var fb domain.Feedback
	decode(t, resp, &fb)

	resp = e.do(t, "GET", "/api/v1/feedback/place/"+p.ID, e.user, "")
	var list []domain.Feedback
	decode(t, resp, &list)
	if len(list) != 1 || list[0].Grade != 4 {
		t.Fatalf("unexpected feedback list %+v", list)
	}

	expectError(t, e.do(t, "DELETE", "/api/v1/feedback/place/batch/"+p.ID, e.user, ""), 403, "forbidden")

	resp = e.do(t, "DELETE", "/api/v1/feedback/place/batch/"+p.ID, e.owner, "")
	if resp.StatusCode != 204 {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp = e.do(t, "DELETE", "/api/v1/feedback/place/batch/"+p.ID, e.owner, "")
	if resp.StatusCode != 204 {
		t.Fatalf("batch delete of nothing should still be 204, got %d", resp.StatusCode)
	}
}

// ---- Favorites ----

func TestFavorites_Lifecycle(t *testing.T) {
	e := newTestEnv(t)
	p := e.createPlace(t, "Home", 11, 11)

	expectError(t, e.do(t, "POST", "/api/v1/favorites", e.user, fmt.Sprintf(`{"place_id":%q,"favorite_type":"GYM"}`, p.ID)), 400, "bad_request")

	body := fmt.Sprintf(`{"place_id":%q,"favorite_type":"HOME"}`, p.ID)
	resp := e.do(t, "POST", "/api/v1/favorites", e.user, body)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}
	var fav domain.Favorite
	decode(t, resp, &fav)

	expectError(t, e.do(t, "POST", "/api/v1/favorites", e.user, body), 409, "conflict")

	resp = e.do(t, "GET", "/api/v1/favorites/user", e.user, "")
	var favs []domain.Favorite
	decode(t, resp, &favs)
	if len(favs) != 1 || favs[0].Kind != domain.FavoriteHome {
		t.Fatalf("unexpected favorites %+v", favs)
	}

	expectError(t, e.do(t, "DELETE", "/api/v1/favorites/"+fav.ID, e.owner, ""), 404, "not_found")
	resp = e.do(t, "DELETE", "/api/v1/favorites/"+fav.ID, e.user, "")
	if resp.StatusCode != 204 {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestBatchDeletes_LogOncePerRequest(t *testing.T) {
	e := newTestEnv(t)
	p := e.createPlace(t, "Logged", 12, 12)
	resp := e.do(t, "POST", "/api/v1/favorites", e.owner, fmt.Sprintf(`{"place_id":%q,"favorite_type":"WORK"}`, p.ID))
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	for _, path := range []string{"/api/v1/favorites/place/" + p.ID, "/api/v1/feedback/place/batch/" + p.ID} {
		if resp := e.do(t, "DELETE", path, e.owner, ""); resp.StatusCode != 204 {
			t.Fatalf("DELETE %s: expected 204, got %d", path, resp.StatusCode)
		}
	}

	counts := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		if strings.HasSuffix(rec.Msg, "deleted") {
			counts[rec.Msg]++
		}
	}
	if counts["favorites bulk deleted"] != 1 || counts["feedback bulk deleted"] != 1 || len(counts) != 2 {
		t.Errorf("bulk delete log records = %v, want one per request", counts)
	}
}
