// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moim/internal/auth"
	"github.com/tomtom215/moim/internal/discovery"
	"github.com/tomtom215/moim/internal/models"
	"github.com/tomtom215/moim/internal/store"
)

// fakePlaces records the last call and returns a canned result.
type fakePlaces struct {
	mu       sync.Mutex
	result   discovery.Result
	err      error
	calls    int
	allCalls int
	lastTag  models.Category
	lastOpts discovery.Options
	resolver *discovery.Resolver
}

func newFakePlaces() *fakePlaces {
	return &fakePlaces{
		result:   discovery.Result{Status: discovery.StatusComplete},
		resolver: discovery.NewResolver(),
	}
}

func (f *fakePlaces) ByCategory(_ context.Context, tag models.Category, opts discovery.Options) (discovery.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastTag = tag
	f.lastOpts = opts
	return f.result, f.err
}

func (f *fakePlaces) AllCategories(_ context.Context, opts discovery.Options) (discovery.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allCalls++
	f.lastOpts = opts
	return f.result, f.err
}

func (f *fakePlaces) DefaultOptions() discovery.Options {
	return discovery.Options{
		Center: discovery.Center{X: 127.0, Y: 37.5},
		Radius: 2000,
	}
}

func (f *fakePlaces) Resolver() *discovery.Resolver { return f.resolver }

type fakeRegions struct{ label string }

func (f fakeRegions) Label(context.Context, float64, float64) string { return f.label }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("Failed to open in-memory BadgerDB: %v", err)
	}
	s := store.NewFromDB(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// testServer is a fully routed API backed by fakes and an in-memory store.
type testServer struct {
	places  *fakePlaces
	store   *store.Store
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	places := newFakePlaces()
	st := newTestStore(t)
	h := NewHandler(HandlerDeps{
		Places:   places,
		Regions:  fakeRegions{label: "역삼동"},
		Store:    st,
		Provider: fakePinger{},
	})
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	router := NewRouter(h, auth.NewMiddlewareWithAuthenticator(auth.HeaderAuthenticator{}), NewChiMiddleware(mwCfg))
	return &testServer{places: places, store: st, handler: router.Setup()}
}

// do sends a request as user (empty = no identity headers) with an optional
// JSON body.
func (s *testServer) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(auth.HeaderUserID, user)
		req.Header.Set(auth.HeaderUserNickname, user+"-nick")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

// decodeData unmarshals the envelope's data into out and returns the envelope.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success, got error %+v (status %d)", env.Error, rec.Code)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
	return env
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
}
