package places

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/nvaler/tripscout/internal/engine/geo"
	"github.com/nvaler/tripscout/internal/engine/resilience"
	"github.com/nvaler/tripscout/internal/model"
)

// ComputeDistances fills each activity's Distance with the provider's
// distance from origin, issuing one distance-matrix call per batch of
// cfg.BatchSize destinations. Batches run concurrently and fail
// independently: a failed batch leaves its activities' distances unset
// while the others proceed.
func (c *Client) ComputeDistances(ctx context.Context, origin model.Location, activities []model.Activity) []model.Activity {
	if len(activities) == 0 || !geo.ValidLocation(&origin) {
		return activities
	}

	batchSize := c.cfg.BatchSize
	var wg sync.WaitGroup
	for start := 0; start < len(activities); start += batchSize {
		end := min(start+batchSize, len(activities))
		wg.Add(1)
		go func(batch []model.Activity, index int) {
			defer wg.Done()
			if err := c.distanceBatch(ctx, origin, batch); err != nil {
				c.log.Error().Err(err).Int("batch", index).Msg("distance batch failed")
			}
		}(activities[start:end], start/batchSize)
	}
	wg.Wait()

	return activities
}

// distanceBatch resolves one batch in place. Element-level status OK is
// required to accept a value; other elements stay unset.
func (c *Client) distanceBatch(ctx context.Context, origin model.Location, batch []model.Activity) error {
	destinations := make([]string, len(batch))
	for i := range batch {
		destinations[i] = fmt.Sprintf("%f,%f", batch[i].Location.Lat, batch[i].Location.Lng)
	}

	u := c.cfg.DistanceBaseURL + "?" + url.Values{
		"origins":      {fmt.Sprintf("%f,%f", origin.Lat, origin.Lng)},
		"destinations": {strings.Join(destinations, "|")},
		"key":          {c.apiKey},
	}.Encode()

	var resp matrixResponse
	err := resilience.Retry(ctx, c.cfg.SearchRetries, c.cfg.RetryBaseDelay, c.log, IsTransient, func(ctx context.Context) error {
		if err := c.distanceLimit.Wait(ctx); err != nil {
			return err
		}
		body, err := c.do(ctx, u)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return &TransientError{Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ParseStatus(resp.Status) != StatusOK {
		return &ProviderError{Status: resp.Status}
	}
	if len(resp.Rows) == 0 {
		return &ProviderError{Status: "EMPTY_ROWS"}
	}

	for i, el := range resp.Rows[0].Elements {
		if i >= len(batch) {
			break
		}
		if ParseStatus(el.Status) == StatusOK && el.Distance != nil {
			v := el.Distance.Value
			batch[i].Distance = &v
		}
	}
	return nil
}
