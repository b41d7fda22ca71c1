package geolocation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avtonomer/platemarket/internal/pkg/cache"
	"github.com/avtonomer/platemarket/internal/pkg/env"
)

// UnknownCity is returned whenever the lookup cannot be completed. Callers
// must treat it as display-only data and never fail a request over it.
const UnknownCity = "unknown"

const cacheKeyFormat = "geo:city:%s"

// CityResolver resolves a client IP to a city name, best-effort.
type CityResolver interface {
	CityByIP(ip string) string
}

// Resolver queries an ip-api.com compatible endpoint and caches results in
// Redis. CacheTTL zero disables caching.
type Resolver struct {
	BaseURL  string
	Client   *http.Client
	CacheTTL time.Duration
}

// NewResolver creates a resolver configured from the environment.
func NewResolver() *Resolver {
	return &Resolver{
		BaseURL:  env.GetEnv("GEO_API_URL", "http://ip-api.com/json"),
		Client:   &http.Client{Timeout: 2 * time.Second},
		CacheTTL: 24 * time.Hour,
	}
}

// CityByIP resolves the city for the given IP. Any failure (timeout, bad
// payload, empty IP) degrades to UnknownCity.
func (r *Resolver) CityByIP(ip string) string {
	if ip == "" {
		return UnknownCity
	}

	cacheKey := fmt.Sprintf(cacheKeyFormat, ip)
	if r.CacheTTL > 0 {
		if city, err := cache.Get(cacheKey); err == nil && city != "" {
			return city
		}
	}

	resp, err := r.Client.Get(fmt.Sprintf("%s/%s", r.BaseURL, ip))
	if err != nil {
		return UnknownCity
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnknownCity
	}

	var payload struct {
		City string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.City == "" {
		return UnknownCity
	}

	if r.CacheTTL > 0 {
		// Cache failures are ignored, the lookup already succeeded.
		_ = cache.Set(cacheKey, payload.City, r.CacheTTL)
	}

	return payload.City
}
