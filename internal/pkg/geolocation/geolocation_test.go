package geolocation

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestResolver(baseURL string) *Resolver {
	return &Resolver{
		BaseURL:  baseURL,
		Client:   &http.Client{Timeout: time.Second},
		CacheTTL: 0, // no Redis in unit tests
	}
}

func TestCityByIPSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/93.158.134.3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"city":"Moscow","country":"Russia"}`))
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)
	assert.Equal(t, "Moscow", r.CityByIP("93.158.134.3"))
}

func TestCityByIPServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	r := newTestResolver(srv.URL)
	assert.Equal(t, UnknownCity, r.CityByIP("93.158.134.3"))
}

func TestCityByIPBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)
	assert.Equal(t, UnknownCity, r.CityByIP("10.0.0.1"))
}

func TestCityByIPEmptyIP(t *testing.T) {
	r := newTestResolver("http://example.invalid")
	assert.Equal(t, UnknownCity, r.CityByIP(""))
}

func TestCityByIPNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL)
	assert.Equal(t, UnknownCity, r.CityByIP("10.0.0.1"))
}
