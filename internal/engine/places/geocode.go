package places

import (
	"context"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/nvaler/tripscout/internal/engine/resilience"
	"github.com/nvaler/tripscout/internal/model"
)

// Geocode resolves a free-text location query to coordinates. A nil
// location with a nil error means the provider knows no such place;
// that outcome is cached alongside successful resolutions. Quota, auth
// and exhausted-transient failures return an error and are not cached.
func (c *Client) Geocode(ctx context.Context, query string) (*model.Location, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	return c.geocodeMemo.Do(key, func() (*model.Location, error) {
		var loc *model.Location
		err := resilience.Retry(ctx, c.cfg.GeocodeRetries, c.cfg.RetryBaseDelay, c.log, IsTransient, func(ctx context.Context) error {
			if err := c.geocodeLimit.Wait(ctx); err != nil {
				return err
			}
			var err error
			loc, err = c.geocodeOnce(ctx, query)
			return err
		})
		if err != nil {
			return nil, err
		}
		if loc != nil {
			c.log.Info().
				Str("query", query).
				Float64("lat", loc.Lat).
				Float64("lng", loc.Lng).
				Msg("geocoded location")
		}
		return loc, nil
	})
}

func (c *Client) geocodeOnce(ctx context.Context, query string) (*model.Location, error) {
	u := c.cfg.GeocodeBaseURL + "?" + url.Values{
		"address": {query},
		"key":     {c.apiKey},
	}.Encode()

	body, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransientError{Err: err}
	}

	switch ParseStatus(resp.Status) {
	case StatusOK:
	case StatusZeroResults:
		c.log.Warn().Str("query", query).Msg("location not found")
		return nil, nil
	case StatusOverQueryLimit:
		c.log.Error().Msg("geocoding quota exceeded")
		return nil, ErrQuotaExceeded
	case StatusRequestDenied:
		c.log.Error().Msg("geocoding request denied, check the API key")
		return nil, ErrRequestDenied
	default:
		c.log.Error().Str("status", resp.Status).Msg("geocoding failed")
		return nil, &ProviderError{Status: resp.Status}
	}

	if len(resp.Results) == 0 {
		c.log.Warn().Str("query", query).Msg("geocoding returned no results")
		return nil, nil
	}

	wl := resp.Results[0].Geometry.Location
	return &model.Location{Lat: wl.Lat, Lng: wl.Lng}, nil
}
