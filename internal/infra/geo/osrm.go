package geo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agrimap/config"
	"agrimap/internal/domain/service"
	"agrimap/internal/errors"

	"github.com/paulmach/orb"
	"go.uber.org/fx"
)

const defaultOSRMBaseURL = "https://router.project-osrm.org"

// OSRMParams holds dependencies for the distance gateway, injected by Fx.
type OSRMParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type osrmClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewOSRMClient creates the driving distance gateway against an
// OSRM-compatible table API.
func NewOSRMClient(params OSRMParams) service.DistanceGateway {
	baseURL := defaultOSRMBaseURL
	timeout := defaultGatewayTimeout
	if params.Config != nil && params.Config.Distance != nil {
		if params.Config.Distance.BaseURL != "" {
			baseURL = params.Config.Distance.BaseURL
		}
		if params.Config.Distance.Timeout > 0 {
			timeout = params.Config.Distance.Timeout
		}
	}

	return &osrmClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  params.Logger,
	}
}

// tableResponse is the subset of the OSRM table response we consume.
type tableResponse struct {
	Code      string      `json:"code"`
	Distances [][]float64 `json:"distances"`
}

// DrivingDistances issues one table request with the first point as the only
// source and every point as a destination, returning the single distance row
// in meters, aligned to input order.
func (c *osrmClient) DrivingDistances(ctx context.Context, points []orb.Point) ([]float64, error) {
	if len(points) == 0 {
		return nil, errors.New("no coordinates given")
	}

	var coords strings.Builder
	for i, point := range points {
		if i > 0 {
			coords.WriteByte(';')
		}
		// OSRM expects longitude,latitude pairs.
		coords.WriteString(strconv.FormatFloat(point.Lon(), 'f', -1, 64))
		coords.WriteByte(',')
		coords.WriteString(strconv.FormatFloat(point.Lat(), 'f', -1, 64))
	}

	endpoint := c.baseURL + "/table/v1/driving/" + coords.String() + "?sources=0&annotations=distance"

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build distance request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "distance request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("distance service returned status %d", resp.StatusCode)
	}

	var table tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return nil, errors.Wrap(err, "failed to decode distance response")
	}

	if table.Code != "Ok" {
		return nil, errors.Errorf("distance service returned code %q", table.Code)
	}
	if len(table.Distances) == 0 {
		return nil, errors.New("distance response contains no rows")
	}

	c.logger.Debug("Fetched driving distance row",
		slog.Int("destinations", len(points)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return table.Distances[0], nil
}
