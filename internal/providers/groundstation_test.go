package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWAQIStationFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("token"); got != "secret" {
			t.Errorf("token = %q", got)
		}
		w.Write([]byte(`{"status":"ok","data":{"aqi":62,"dominentpol":"pm25","city":{"name":"Central Park Monitor"}}}`))
	}))
	defer srv.Close()

	p := NewWAQIStation(srv.Client(), "secret")
	p.baseURL = srv.URL

	snap, err := p.Fetch(context.Background(), testLocation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.AQI == nil || *snap.AQI != 62 {
		t.Fatalf("aqi = %v, want 62", snap.AQI)
	}
	if snap.DominantPollutant != "pm25" || snap.StationName != "Central Park Monitor" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestWAQIStationNoCurrentValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// WAQI reports "-" when the station has no current AQI.
		w.Write([]byte(`{"status":"ok","data":{"aqi":"-","dominentpol":"","city":{"name":"Quiet Station"}}}`))
	}))
	defer srv.Close()

	p := NewWAQIStation(srv.Client(), "secret")
	p.baseURL = srv.URL

	snap, err := p.Fetch(context.Background(), testLocation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.AQI != nil {
		t.Fatalf("aqi should be nil for a dash value, got %v", *snap.AQI)
	}
}

func TestWAQIStationErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","data":"Invalid key"}`))
	}))
	defer srv.Close()

	p := NewWAQIStation(srv.Client(), "bad")
	p.baseURL = srv.URL

	if _, err := p.Fetch(context.Background(), testLocation()); err == nil {
		t.Fatal("expected error for non-ok status")
	}
}
