package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// sampleResponse returns a valid Al Adhan API response for testing.
func sampleResponse() Response {
	return Response{
		Code:   200,
		Status: "OK",
		Data: Data{
			Timings: Timings{
				Fajr:    "04:31 (+04)",
				Sunrise: "05:49 (+04)",
				Dhuhr:   "12:09 (+04)",
				Asr:     "15:33 (+04)",
				Sunset:  "18:28 (+04)",
				Maghrib: "18:28 (+04)",
				Isha:    "19:42 (+04)",
				Imsak:   "04:21 (+04)",
			},
			Date: DateInfo{
				Readable:  "28 Feb 2026",
				Timestamp: "1772262000",
				Hijri: HijriDate{
					Date:  "10-09-1447",
					Day:   "10",
					Month: HijriMonth{Number: 9, En: "Ramaḍān", Ar: "رَمَضان"},
					Year:  "1447",
				},
			},
			Meta: Meta{
				Latitude:  23.61,
				Longitude: 58.59,
				Timezone:  "Asia/Muscat",
				Method:    MethodInfo{ID: 8, Name: "Gulf Region"},
				School:    "STANDARD",
			},
		},
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient()
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, defaultBaseURL)
	}
	if c.httpClient.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, defaultTimeout)
	}
}

func TestSetTimeout(t *testing.T) {
	c := NewClient()
	c.SetTimeout(2 * time.Second)
	if c.httpClient.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", c.httpClient.Timeout)
	}
	c.SetTimeout(0)
	if c.httpClient.Timeout != 2*time.Second {
		t.Errorf("zero timeout should be ignored, got %v", c.httpClient.Timeout)
	}
}

func TestFetchTimings_Success(t *testing.T) {
	resp := sampleResponse()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify the request path contains /timings/ and date format DD-MM-YYYY.
		if !strings.Contains(r.URL.Path, "/timings/28-02-2026") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("latitude") == "" {
			t.Error("missing latitude param")
		}
		if q.Get("longitude") == "" {
			t.Error("missing longitude param")
		}
		if q.Get("method") != "8" {
			t.Errorf("method = %q, want %q", q.Get("method"), "8")
		}
		if q.Get("school") != "1" {
			t.Errorf("school = %q, want %q", q.Get("school"), "1")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	got, err := c.FetchTimings(context.Background(), date, 23.61, 58.59, 8, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Timings.Fajr != "04:31 (+04)" {
		t.Errorf("Fajr = %q, want %q", got.Data.Timings.Fajr, "04:31 (+04)")
	}
	if got.Data.Meta.Method.Name != "Gulf Region" {
		t.Errorf("Method = %q, want %q", got.Data.Meta.Method.Name, "Gulf Region")
	}
}

func TestFetchTimings_NoMethodOrSchool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		// method=-1 and school=-1 should not be sent.
		if q.Get("method") != "" {
			t.Errorf("method should not be set, got %q", q.Get("method"))
		}
		if q.Get("school") != "" {
			t.Errorf("school should not be set, got %q", q.Get("school"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if _, err := c.FetchTimings(context.Background(), date, 23.61, 58.59, -1, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchTimings_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := c.FetchTimings(context.Background(), date, 51.5, -0.1, -1, -1)
	if err == nil {
		t.Fatal("expected error for HTTP 503, got nil")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should mention 503, got: %v", err)
	}
}

func TestFetchTimings_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := c.FetchTimings(context.Background(), date, 51.5, -0.1, -1, -1)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decode, got: %v", err)
	}
}

func TestFetchTimings_APIErrorCode(t *testing.T) {
	resp := Response{Code: 400, Status: "Bad Request"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := c.FetchTimings(context.Background(), date, 51.5, -0.1, -1, -1)
	if err == nil {
		t.Fatal("expected error for API code 400, got nil")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error should mention 400, got: %v", err)
	}
}

func TestFetchTimings_ConnectionRefused(t *testing.T) {
	c := NewClient()
	c.BaseURL = "http://127.0.0.1:1" // nothing listening

	date := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if _, err := c.FetchTimings(context.Background(), date, 51.5, -0.1, -1, -1); err == nil {
		t.Fatal("expected error for connection refused, got nil")
	}
}

func TestFetchTimings_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.FetchTimings(ctx, time.Now(), 0, 0, -1, -1)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap context.DeadlineExceeded, got: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("request was not bounded by the context deadline")
	}
}

func TestFetchTimings_DateFormat(t *testing.T) {
	var capturedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	// Test that the date is formatted as DD-MM-YYYY.
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	if _, err := c.FetchTimings(context.Background(), date, 0, 0, -1, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(capturedPath, "/timings/05-03-2026") {
		t.Errorf("date format wrong in path: %s (expected DD-MM-YYYY)", capturedPath)
	}
}

// ---------------------------------------------------------------------------
// Hijri month calendar
// ---------------------------------------------------------------------------

// sampleHijriMonth returns a calendar response with one entry per day of a
// 30-day month starting on 19-02-2026.
func sampleHijriMonth(days int) CalendarResponse {
	start := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)
	data := make([]CalendarDay, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		data[i] = CalendarDay{
			Gregorian: GregorianDate{Date: d.Format("02-01-2006"), Day: fmt.Sprintf("%02d", d.Day()), Year: "2026"},
			Hijri: HijriDate{
				Day:   fmt.Sprintf("%d", i+1),
				Month: HijriMonth{Number: 9, En: "Ramaḍān"},
				Year:  "1447",
			},
		}
	}
	return CalendarResponse{Code: 200, Status: "OK", Data: data}
}

func TestFetchHijriMonth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hToGCalendar/9/1447" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleHijriMonth(30))
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	got, err := c.FetchHijriMonth(context.Background(), 9, 1447)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Data) != 30 {
		t.Errorf("got %d days, want 30", len(got.Data))
	}
	if got.Data[0].Gregorian.Date != "19-02-2026" {
		t.Errorf("first day = %q, want %q", got.Data[0].Gregorian.Date, "19-02-2026")
	}
}

func TestFetchHijriMonth_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CalendarResponse{Code: 200, Status: "OK"})
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	if _, err := c.FetchHijriMonth(context.Background(), 9, 1447); err == nil {
		t.Fatal("expected error for empty calendar, got nil")
	}
}

func TestFetchHijriMonth_APIErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CalendarResponse{Code: 400, Status: "Bad Request"})
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	_, err := c.FetchHijriMonth(context.Background(), 9, 1447)
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("expected API code 400 error, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Circuit breaker
// ---------------------------------------------------------------------------

func TestGuardedClient_TripsAfterThreshold(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL

	cfg := DefaultBreakerConfig()
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Minute
	g := NewGuardedClient(c, cfg, zerolog.Nop())

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := g.FetchTimings(ctx, time.Now(), 0, 0, -1, -1); err == nil {
			t.Fatal("expected error from failing server")
		}
	}

	_, err := g.FetchTimings(ctx, time.Now(), 0, 0, -1, -1)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected open breaker, got: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times, want 2", hits.Load())
	}

	// The calendar breaker is independent.
	if _, err := g.FetchHijriMonth(ctx, 9, 1447); errors.Is(err, gobreaker.ErrOpenState) {
		t.Error("calendar breaker should still be closed")
	}
}

func TestGuardedClient_PassesThroughSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := NewClient()
	c.BaseURL = server.URL
	g := NewGuardedClient(c, DefaultBreakerConfig(), zerolog.Nop())

	got, err := g.FetchTimings(context.Background(), time.Now(), 23.61, 58.59, 8, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Meta.Timezone != "Asia/Muscat" {
		t.Errorf("Timezone = %q, want Asia/Muscat", got.Data.Meta.Timezone)
	}
}
