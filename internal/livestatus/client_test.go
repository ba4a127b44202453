package livestatus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-booking/internal/model"
)

var newYear = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func TestDepartureDate(t *testing.T) {
	assert.Equal(t, "20240101", DepartureDate(newYear, 0))
	assert.Equal(t, "20240103", DepartureDate(newYear, 2))
	assert.Equal(t, "20240301", DepartureDate(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), 2))
}

func TestParseStartDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{" 2 ", 2, false},
		{"3", 0, true},
		{"-1", 0, true},
		{"tomorrow", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseStartDay(tc.in)
		if tc.wantErr {
			assert.True(t, errors.Is(err, model.ErrValidation), tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestStatusForwardsPayload(t *testing.T) {
	var gotQuery map[string]string
	var gotKey, gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, statusPath, r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"body":{"current_station":"KOTA"}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k-123"}, WithClock(func() time.Time { return newYear }))
	data, err := c.Status(context.Background(), "12951", "2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":true,"body":{"current_station":"KOTA"}}`, string(data))

	assert.Equal(t, map[string]string{
		"departure_date": "20240103",
		"isH5":           "true",
		"client":         "web",
		"train_number":   "12951",
	}, gotQuery)
	assert.Equal(t, "k-123", gotKey)
	assert.Equal(t, DefaultHost, gotHost)
}

func TestStatusUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("train_number") {
		case "00000":
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Train not found"})
		case "11111":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>oops</html>"))
		default:
			_, _ = w.Write([]byte("not json"))
		}
	}))
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL}, WithClock(func() time.Time { return newYear }))

	_, err := c.Status(context.Background(), "00000", "0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUpstream))
	assert.Contains(t, err.Error(), "Train not found")

	_, err = c.Status(context.Background(), "11111", "0")
	assert.True(t, errors.Is(err, model.ErrUpstream))
	assert.Contains(t, err.Error(), "failed to fetch train status")

	_, err = c.Status(context.Background(), "22222", "0")
	assert.True(t, errors.Is(err, model.ErrUpstream))
}

func TestStatusTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url, Timeout: time.Second})
	_, err := c.Status(context.Background(), "12951", "0")
	assert.True(t, errors.Is(err, model.ErrUpstream))
}

func TestStatusValidatesBeforeCalling(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls.Add(1) }))
	defer srv.Close()
	c := New(Config{BaseURL: srv.URL})

	_, err := c.Status(context.Background(), " ", "0")
	assert.True(t, errors.Is(err, model.ErrValidation))
	_, err = c.Status(context.Background(), "12951", "x")
	assert.True(t, errors.Is(err, model.ErrValidation))
	assert.Zero(t, calls.Load())
}
