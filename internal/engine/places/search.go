package places

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/nvaler/tripscout/internal/engine/geo"
	"github.com/nvaler/tripscout/internal/engine/resilience"
	"github.com/nvaler/tripscout/internal/model"
)

// SearchNearby returns up to maxResults places of the given type within
// radiusMeters of location. An invalid location short-circuits to an
// empty list without touching the network. Rows that fail to parse are
// skipped; a non-OK provider status yields an empty list, not an error.
func (c *Client) SearchNearby(ctx context.Context, location model.Location, activityType string, radiusMeters, maxResults int) ([]model.Activity, error) {
	if !geo.ValidLocation(&location) {
		c.log.Error().
			Float64("lat", location.Lat).
			Float64("lng", location.Lng).
			Msg("invalid search location")
		return []model.Activity{}, nil
	}

	var activities []model.Activity
	err := resilience.Retry(ctx, c.cfg.SearchRetries, c.cfg.RetryBaseDelay, c.log, IsTransient, func(ctx context.Context) error {
		if err := c.searchLimit.Wait(ctx); err != nil {
			return err
		}
		var err error
		activities, err = c.searchOnce(ctx, location, activityType, radiusMeters, maxResults)
		return err
	})
	if err != nil {
		return []model.Activity{}, err
	}
	return activities, nil
}

func (c *Client) searchOnce(ctx context.Context, location model.Location, activityType string, radiusMeters, maxResults int) ([]model.Activity, error) {
	u := c.cfg.PlacesBaseURL + "/nearbysearch/json?" + url.Values{
		"location": {fmt.Sprintf("%f,%f", location.Lat, location.Lng)},
		"radius":   {strconv.Itoa(radiusMeters)},
		"type":     {activityType},
		"key":      {c.apiKey},
	}.Encode()

	body, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp nearbyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransientError{Err: err}
	}

	if status := ParseStatus(resp.Status); status != StatusOK {
		evt := c.log.Warn()
		if status == StatusOverQueryLimit || status == StatusRequestDenied {
			evt = c.log.Error()
		}
		evt.Str("status", resp.Status).Str("type", activityType).Msg("nearby search returned non-OK status")
		return []model.Activity{}, nil
	}

	results := resp.Results
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	activities := make([]model.Activity, 0, len(results))
	for i := range results {
		a, err := c.activityFromResult(&results[i], searchPhotoCap)
		if err != nil {
			c.log.Warn().Err(err).Msg("skipping unparsable search result")
			continue
		}
		activities = append(activities, a)
	}

	c.log.Info().
		Str("type", activityType).
		Int("count", len(activities)).
		Msg("nearby search complete")
	return activities, nil
}
