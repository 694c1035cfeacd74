// Package geo implements the external geolocation gateways: forward
// geocoding through a Nominatim-compatible API and road distances through an
// OSRM-compatible table API.
package geo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"agrimap/config"
	domainerrors "agrimap/internal/domain/errors"
	"agrimap/internal/domain/service"
	"agrimap/internal/errors"

	"github.com/paulmach/orb"
	"go.uber.org/fx"
)

const (
	defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"
	defaultGatewayTimeout   = 10 * time.Second

	// Nominatim's usage policy requires an identifying User-Agent.
	userAgent = "agrimap/1.0"
)

// NominatimParams holds dependencies for the geocoder, injected by Fx.
type NominatimParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type nominatimGeocoder struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewNominatimGeocoder creates the forward geocoding gateway.
func NewNominatimGeocoder(params NominatimParams) service.Geocoder {
	baseURL := defaultNominatimBaseURL
	timeout := defaultGatewayTimeout
	if params.Config != nil && params.Config.Geocoder != nil {
		if params.Config.Geocoder.BaseURL != "" {
			baseURL = params.Config.Geocoder.BaseURL
		}
		if params.Config.Geocoder.Timeout > 0 {
			timeout = params.Config.Geocoder.Timeout
		}
	}

	return &nominatimGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  params.Logger,
	}
}

// nominatimResult is the subset of the search response we consume. Nominatim
// serializes coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a free-text address to a coordinate pair. An address that
// yields no results maps to the unprocessable-address domain error; transport
// and decode failures stay plain errors.
func (g *nominatimGeocoder) Geocode(ctx context.Context, address string) (orb.Point, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	endpoint := g.baseURL + "/search?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "failed to build geocoding request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return orb.Point{}, errors.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return orb.Point{}, errors.Wrap(err, "failed to decode geocoding response")
	}

	if len(results) == 0 {
		g.logger.Debug("Address resolved to no location", slog.String("address", address))

		return orb.Point{}, domainerrors.ErrGeocodeNotFound.WrapMessage("empty geocoding result")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "failed to parse latitude")
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "failed to parse longitude")
	}

	return orb.Point{lon, lat}, nil
}
