// Package places implements the client for the external
// geocoding/places/distance provider. Every operation goes through the
// resilience chain: memoized cache (geocode only) -> retry -> rate
// limit -> circuit breaker -> HTTP call.
package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/nvaler/tripscout/internal/config"
	"github.com/nvaler/tripscout/internal/engine/geo"
	"github.com/nvaler/tripscout/internal/engine/resilience"
	"github.com/nvaler/tripscout/internal/model"
)

const (
	photoMaxWidth  = 400
	searchPhotoCap = 3
	detailPhotoCap = 5
	reviewCap      = 5
)

// Client talks to the provider. All limiter, cache and breaker state is
// owned by the instance, so independent clients never share quota.
type Client struct {
	http   *http.Client
	apiKey string
	cfg    config.ProviderConfig
	log    zerolog.Logger

	breaker *gobreaker.CircuitBreaker[[]byte]

	geocodeLimit  *rate.Limiter
	searchLimit   *rate.Limiter
	detailsLimit  *rate.Limiter
	distanceLimit *rate.Limiter

	// nil value means the query resolved to no location; that outcome
	// is cached like a hit.
	geocodeMemo *resilience.Memo[*model.Location]
}

// NewClient builds a provider client from the given configuration.
func NewClient(cfg config.ProviderConfig, apiKey string, log zerolog.Logger) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:        apiKey,
		cfg:           cfg,
		log:           log.With().Str("component", "places").Logger(),
		geocodeLimit:  resilience.NewLimiter(cfg.GeocodeRate),
		searchLimit:   resilience.NewLimiter(cfg.SearchRate),
		detailsLimit:  resilience.NewLimiter(cfg.DetailsRate),
		distanceLimit: resilience.NewLimiter(cfg.DistanceRate),
		geocodeMemo:   resilience.NewMemo[*model.Location](cfg.GeocodeCacheSize),
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "places-provider",
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Only transport-level trouble counts against the breaker;
		// quota and auth failures arrive as HTTP 200 payloads anyway.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return c
}

// PhotoURL builds the provider photo URL for a reference. Pure string
// construction, no network call.
func (c *Client) PhotoURL(photoReference string, maxWidth int) string {
	return fmt.Sprintf("%s/photo?maxwidth=%d&photoreference=%s&key=%s",
		c.cfg.PlacesBaseURL, maxWidth, photoReference, c.apiKey)
}

// do performs one GET through the circuit breaker and returns the raw
// body. Transport failures and 5xx-equivalent statuses come back as
// TransientError so the retry layer can act on them.
func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, &TransientError{Err: fmt.Errorf("executing request: %w", err)}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= http.StatusInternalServerError,
			resp.StatusCode == http.StatusTooManyRequests:
			io.Copy(io.Discard, resp.Body)
			return nil, &TransientError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
		case resp.StatusCode != http.StatusOK:
			io.Copy(io.Discard, resp.Body)
			return nil, &ProviderError{Status: fmt.Sprintf("http %d", resp.StatusCode)}
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &TransientError{Err: fmt.Errorf("reading body: %w", err)}
		}
		return b, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &TransientError{Err: err}
		}
		return nil, err
	}
	return body, nil
}

// activityFromResult converts one provider row into a model.Activity.
// Rows without an identifier or usable geometry are rejected, not
// substituted.
func (c *Client) activityFromResult(r *placeResult, photoCap int) (model.Activity, error) {
	if r.PlaceID == "" {
		return model.Activity{}, errors.New("missing place_id")
	}
	if r.Geometry == nil {
		return model.Activity{}, errors.New("missing geometry")
	}

	loc := model.Location{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
	if !geo.ValidLocation(&loc) {
		return model.Activity{}, fmt.Errorf("coordinates out of range: lat=%f lng=%f", loc.Lat, loc.Lng)
	}

	name := r.Name
	if name == "" {
		name = "Unknown"
	}
	address := r.Vicinity
	if address == "" {
		address = r.FormattedAddress
	}

	a := model.Activity{
		PlaceID:          r.PlaceID,
		Name:             name,
		Address:          address,
		Location:         loc,
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
		Types:            r.Types,
		PriceLevel:       r.PriceLevel,
		Photos:           []string{},
		Reviews:          []model.Review{},
	}
	if a.Types == nil {
		a.Types = []string{}
	}
	if r.OpeningHours != nil {
		a.OpeningHours = &model.OpeningHours{OpenNow: r.OpeningHours.OpenNow}
	}

	for i, p := range r.Photos {
		if i == photoCap {
			break
		}
		a.Photos = append(a.Photos, c.PhotoURL(p.PhotoReference, photoMaxWidth))
	}

	return a, nil
}
