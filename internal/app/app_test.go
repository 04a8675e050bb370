package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	"github.com/janakan-45/banana-brain-blitz/internal/logging"
	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/store"
)

// newTestModel builds a signed-in model against a fake backend and an
// in-memory store.
func newTestModel(t *testing.T, handler http.HandlerFunc) AppModel {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	creds := store.Credentials{
		Username:     "nina",
		AccessToken:  "old-access",
		RefreshToken: "r1",
		DeviceID:     "device-1",
	}
	if err := st.SaveCredentials(context.Background(), creds); err != nil {
		t.Fatalf("save credentials: %v", err)
	}

	client := api.New(srv.URL, 5*time.Second, logging.Nop())
	client.SetToken(creds.AccessToken)
	return newAppModel(Options{API: client, Store: st, Log: logging.Nop(), Credentials: creds})
}

func TestExpiredSessionRefreshesAndResumes(t *testing.T) {
	var gotRefresh string
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/refresh" {
			t.Errorf("path = %s, want /api/auth/refresh", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotRefresh = body["refreshToken"]
		json.NewEncoder(w).Encode(api.TokenPair{AccessToken: "new-access", RefreshToken: "r2"})
	})

	model, cmd := m.Update(router.SessionExpiredMsg{})
	if cmd == nil {
		t.Fatal("no refresh attempt started")
	}
	model, _ = model.Update(cmd())
	m = model.(AppModel)

	if gotRefresh != "r1" {
		t.Errorf("refresh token sent = %q, want %q", gotRefresh, "r1")
	}
	if got := m.router.Active().Title(); got != "Round Set" {
		t.Errorf("active screen = %q, want the game screen", got)
	}

	saved, err := m.opts.Store.Credentials(context.Background())
	if err != nil {
		t.Fatalf("read credentials: %v", err)
	}
	if saved.AccessToken != "new-access" || saved.RefreshToken != "r2" {
		t.Errorf("saved tokens = %q/%q, want new pair persisted", saved.AccessToken, saved.RefreshToken)
	}
}

func TestFailedRefreshEndsSession(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	model, cmd := m.Update(router.SessionExpiredMsg{})
	if cmd == nil {
		t.Fatal("no refresh attempt started")
	}
	model, _ = model.Update(cmd())
	m = model.(AppModel)

	if got := m.router.Active().Title(); got != "Welcome" {
		t.Errorf("active screen = %q, want the landing screen", got)
	}

	saved, err := m.opts.Store.Credentials(context.Background())
	if err != nil {
		t.Fatalf("read credentials: %v", err)
	}
	if saved.AccessToken != "" || saved.RefreshToken != "" {
		t.Error("tokens survived a failed refresh")
	}
	if saved.Username != "nina" {
		t.Errorf("Username = %q, want the remembered name kept", saved.Username)
	}
}

func TestExpiredSessionWithoutRefreshTokenSignsOut(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	m.opts.Credentials.RefreshToken = ""

	model, _ := m.Update(router.SessionExpiredMsg{})
	m = model.(AppModel)

	if got := m.router.Active().Title(); got != "Welcome" {
		t.Errorf("active screen = %q, want the landing screen", got)
	}
}
