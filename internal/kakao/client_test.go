// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package kakao

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/moim/internal/config"
)

const keywordBody = `{
  "meta": {"total_count": 2, "pageable_count": 2, "is_end": true},
  "documents": [
    {"id": "1001", "place_name": "럭키코인노래방", "category_name": "가정,생활 > 노래방 > 코인노래방",
     "address_name": "서울 강남구 역삼동 123-4", "road_address_name": "서울 강남구 테헤란로 1",
     "x": "127.0276", "y": "37.4979", "place_url": "http://place.map.kakao.com/1001", "distance": "1346"},
    {"id": "1002", "place_name": "별빛노래연습장"}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.KakaoConfig{
		APIKey:         "test-rest-key",
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		MaxRetries:     maxRetries,
		RetryBaseDelay: time.Millisecond,
	})
}

func TestSearchKeyword_Request(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != keywordSearchPath {
			t.Errorf("path = %s, want %s", r.URL.Path, keywordSearchPath)
		}
		if got := r.Header.Get("Authorization"); got != "KakaoAK test-rest-key" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		checks := map[string]string{
			"query":  "코인노래방",
			"x":      "126.9784147",
			"y":      "37.5666805",
			"radius": "2000",
			"size":   "15",
		}
		for k, want := range checks {
			if got := q.Get(k); got != want {
				t.Errorf("param %s = %q, want %q", k, got, want)
			}
		}
		if q.Has("page") {
			t.Error("page should be omitted for the first page")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(keywordBody))
	}, 0)

	places, err := client.SearchKeyword(context.Background(), KeywordQuery{
		Query: "코인노래방", X: 126.9784147, Y: 37.5666805, Radius: 2000, Size: 40,
	})
	if err != nil {
		t.Fatalf("SearchKeyword() error = %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("len(places) = %d, want 2", len(places))
	}
	if places[0].PlaceName != "럭키코인노래방" || places[0].Distance != "1346" {
		t.Errorf("places[0] = %+v", places[0])
	}
	if places[1].Phone != "" || places[1].RoadAddressName != "" {
		t.Errorf("missing fields should be empty: %+v", places[1])
	}
}

func TestSearchKeyword_PageAndSizeFloor(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("size") != "1" {
			t.Errorf("page/size = %s/%s, want 2/1", q.Get("page"), q.Get("size"))
		}
		if q.Has("radius") {
			t.Error("zero radius should be omitted")
		}
		_, _ = w.Write([]byte(`{"documents":[]}`))
	}, 0)

	if _, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "영화관", Page: 2}); err != nil {
		t.Fatalf("SearchKeyword() error = %v", err)
	}
}

func TestSearchKeyword_NonSuccess(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorType":"AccessDeniedError","message":"wrong appKey"}`))
	}, 3)

	_, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "방탈출카페", Size: 15})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Endpoint != EndpointKeyword {
		t.Errorf("APIError = %+v", apiErr)
	}
	if !strings.Contains(apiErr.Body, "wrong appKey") {
		t.Errorf("Body = %q", apiErr.Body)
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Error("IsStatus(401) = false")
	}
}

func TestSearchKeyword_MalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"documents": [`))
	}, 0)

	if _, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "북카페"}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSearchKeyword_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(&config.KakaoConfig{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second})

	if _, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "영화관"}); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestRateLimitRetry(t *testing.T) {
	t.Parallel()

	t.Run("retries then succeeds", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(keywordBody))
		}, 3)

		places, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "q"})
		if err != nil {
			t.Fatalf("SearchKeyword() error = %v", err)
		}
		if len(places) != 2 || calls.Load() != 2 {
			t.Errorf("places=%d calls=%d, want 2 and 2", len(places), calls.Load())
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}, 2)

		_, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "q"})
		if !IsStatus(err, http.StatusTooManyRequests) {
			t.Fatalf("error = %v, want 429 APIError", err)
		}
		if calls.Load() != 3 {
			t.Errorf("calls = %d, want 3 (1 + 2 retries)", calls.Load())
		}
	})

	t.Run("cancelled during backoff", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "20")
			w.WriteHeader(http.StatusTooManyRequests)
		}, 3)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := client.SearchKeyword(ctx, KeywordQuery{Query: "q"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want deadline exceeded", err)
		}
	})
}

func TestRetryDelay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		retryAfter string
		attempt    int
		want       time.Duration
	}{
		{"first backoff", "", 0, time.Second},
		{"third backoff", "", 2, 4 * time.Second},
		{"retry-after seconds", "3", 0, 3 * time.Second},
		{"retry-after wins over backoff", "1", 3, time.Second},
		{"capped", "600", 0, maxRetryDelay},
		{"garbage ignored", "soon", 1, 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := retryDelay(tt.retryAfter, time.Second, tt.attempt); got != tt.want {
				t.Errorf("retryDelay(%q, %d) = %v, want %v", tt.retryAfter, tt.attempt, got, tt.want)
			}
		})
	}
}

func TestSearchImage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != imageSearchPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "메가박스 코엑스" || r.URL.Query().Get("size") != "1" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"meta":{"total_count":1},"documents":[{"thumbnail_url":"https://search2.kakaocdn.net/argon/130x130_85_c/abc","image_url":"https://img/abc.jpg","width":640,"height":480}]}`))
	}, 0)

	docs, err := client.SearchImage(context.Background(), "메가박스 코엑스", 1)
	if err != nil {
		t.Fatalf("SearchImage() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ThumbnailURL != "https://search2.kakaocdn.net/argon/130x130_85_c/abc" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestRegionCode(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != regionCodePath {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("x") != "127.0276" || r.URL.Query().Get("y") != "37.4979" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"meta":{"total_count":2},"documents":[
			{"region_type":"B","region_2depth_name":"강남구","region_3depth_name":"역삼동","x":127.03,"y":37.49},
			{"region_type":"H","region_2depth_name":"강남구","region_3depth_name":"역삼1동","x":127.03,"y":37.49}]}`))
	}, 0)

	regions, err := client.RegionCode(context.Background(), 127.0276, 37.4979)
	if err != nil {
		t.Fatalf("RegionCode() error = %v", err)
	}
	if len(regions) != 2 || regions[1].RegionType != "H" || regions[1].Region3DepthName != "역삼1동" {
		t.Errorf("regions = %+v", regions)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("size") != "1" {
			t.Errorf("ping size = %s, want 1", r.URL.Query().Get("size"))
		}
		_, _ = w.Write([]byte(`{"documents":[]}`))
	}, 0)

	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestReadBodyForError(t *testing.T) {
	t.Parallel()

	short := readBodyForError(strings.NewReader("bad request"))
	if short != "bad request" {
		t.Errorf("short body = %q", short)
	}

	long := readBodyForError(strings.NewReader(strings.Repeat("x", maxErrorBodySize*2)))
	if !strings.HasSuffix(long, "... (truncated)") {
		t.Error("long body should be marked truncated")
	}
	if len(long) != maxErrorBodySize+len("... (truncated)") {
		t.Errorf("len = %d", len(long))
	}
}

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	if l := newLimiter(0); !l.Allow() || !l.Allow() {
		t.Error("zero rps should not throttle")
	}
	l := newLimiter(0.5)
	if l.Burst() != 1 {
		t.Errorf("burst = %d, want 1", l.Burst())
	}
}
