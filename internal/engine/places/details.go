package places

import (
	"context"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/nvaler/tripscout/internal/engine/resilience"
	"github.com/nvaler/tripscout/internal/model"
)

const detailsFields = "name,rating,formatted_address,geometry,opening_hours,price_level,reviews,photos,types,user_ratings_total"

// GetDetails fetches the extended record for a known place identifier:
// up to 5 photos and 5 reviews. Any non-OK outcome returns nil — a
// details record is never partially populated.
func (c *Client) GetDetails(ctx context.Context, placeID string) (*model.Activity, error) {
	var activity *model.Activity
	err := resilience.Retry(ctx, c.cfg.SearchRetries, c.cfg.RetryBaseDelay, c.log, IsTransient, func(ctx context.Context) error {
		if err := c.detailsLimit.Wait(ctx); err != nil {
			return err
		}
		var err error
		activity, err = c.detailsOnce(ctx, placeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return activity, nil
}

func (c *Client) detailsOnce(ctx context.Context, placeID string) (*model.Activity, error) {
	u := c.cfg.PlacesBaseURL + "/details/json?" + url.Values{
		"place_id": {placeID},
		"fields":   {detailsFields},
		"key":      {c.apiKey},
	}.Encode()

	body, err := c.do(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp detailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransientError{Err: err}
	}

	if ParseStatus(resp.Status) != StatusOK || resp.Result == nil {
		c.log.Warn().Str("status", resp.Status).Str("place_id", placeID).Msg("details lookup returned nothing")
		return nil, nil
	}

	result := resp.Result
	if result.PlaceID == "" {
		result.PlaceID = placeID
	}
	// Details responses carry formatted_address instead of vicinity.
	if result.Vicinity == "" {
		result.Vicinity = result.FormattedAddress
	}

	a, err := c.activityFromResult(result, detailPhotoCap)
	if err != nil {
		c.log.Warn().Err(err).Str("place_id", placeID).Msg("unparsable details result")
		return nil, nil
	}

	for i, r := range result.Reviews {
		if i == reviewCap {
			break
		}
		author := r.AuthorName
		if author == "" {
			author = "Anonymous"
		}
		a.Reviews = append(a.Reviews, model.Review{
			Author: author,
			Rating: r.Rating,
			Text:   r.Text,
			Time:   r.Time,
		})
	}

	c.log.Info().Str("name", a.Name).Msg("retrieved place details")
	return &a, nil
}
