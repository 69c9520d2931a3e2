package meteostat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.Client(), Options{
		APIKey:    "secret",
		BaseURL:   srv.URL,
		StationID: 72502,
		Backoff: BackoffConfig{
			MaxRetries:      maxRetries,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
		},
	})
}

func TestDailyRecordsRequestAndDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("station") != "72502" || q.Get("start") != "2000-01-01" || q.Get("end") != "2000-12-31" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("x-api-key") != "secret" {
			t.Errorf("expected x-api-key header, got %q", r.Header.Get("x-api-key"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta":{},"data":[
			{"date":"2000-01-01","tavg":10,"tmin":5,"tmax":15,"prcp":0},
			{"date":"2000-01-02","tmin":null,"tmax":20},
			{"date":"2000-01-03","tmin":3}
		]}`))
	}, 0)

	records, err := c.DailyRecords(context.Background(), 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].TMin == nil || *records[0].TMin != 5 || records[0].Date != "2000-01-01" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].TMin != nil {
		t.Fatalf("expected null tmin to decode as absent, got %v", *records[1].TMin)
	}
	if records[2].TMax != nil {
		t.Fatalf("expected missing tmax to decode as absent, got %v", *records[2].TMax)
	}
}

func TestDailyRecordsRetriesAfterRateLimit(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"data":[{"date":"2000-01-01","tmin":1,"tmax":2}]}`))
	}, 5)

	records, err := c.DailyRecords(context.Background(), 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}

func TestDailyRecordsRateLimitExceeded(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, 3)

	_, err := c.DailyRecords(context.Background(), 2000)
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("expected ErrRateLimitExceeded, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Fatalf("expected 4 attempts, got %d", got)
	}

	// Rate limiting must not open the circuit.
	_, err = c.DailyRecords(context.Background(), 2001)
	if !errors.Is(err, ErrRateLimitExceeded) {
		t.Fatalf("expected ErrRateLimitExceeded on second call, got %v", err)
	}
}

func TestDailyRecordsRateLimitHonoursContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, 1000)
	c.httpCfg.Backoff.InitialInterval = 50 * time.Millisecond
	c.httpCfg.Backoff.MaxInterval = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := c.DailyRecords(ctx, 2000)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDailyRecordsServerErrorRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}, 2)

	records, err := c.DailyRecords(context.Background(), 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestDailyRecordsMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "string temperature", body: `{"data":[{"date":"2000-01-01","tmin":"cold"}]}`},
		{name: "data not a list", body: `{"data":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}, 0)

			_, err := c.DailyRecords(context.Background(), 2000)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestDailyRecordsUnexpectedStatus(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}, 3)

	_, err := c.DailyRecords(context.Background(), 2000)
	if !errors.Is(err, errUnexpected) {
		t.Fatalf("expected unexpected status error, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected no retry on 403, got %d calls", got)
	}
}

func TestDailyRecordsRequiresAPIKey(t *testing.T) {
	c := NewClient(http.DefaultClient, Options{StationID: 72502, Backoff: BackoffConfig{InitialInterval: time.Millisecond}})
	if _, err := c.DailyRecords(context.Background(), 2000); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestBackoffDelay(t *testing.T) {
	b := BackoffConfig{InitialInterval: time.Second, MaxInterval: 5 * time.Second}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}
	for attempt, w := range want {
		if got := backoffDelay(b, attempt); got != w {
			t.Errorf("attempt %d: expected %v, got %v", attempt, w, got)
		}
	}
}
