package api

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/wytfitness/Fitness-App-04112025/internal/gateway"
	"github.com/wytfitness/Fitness-App-04112025/internal/model"
)

// weightListKeys covers the envelope drift across backend versions.
var weightListKeys = []string{"weights", "items"}

// AddWeight appends a body weight record.
func (c *Client) AddWeight(ctx context.Context, weightKg float64, recordedAt time.Time) error {
	if weightKg <= 0 {
		return &ValidationError{Field: "weight_kg", Reason: "must be positive"}
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	_, err := c.gw.Call(ctx, action("add-weight", nil), gateway.WithBody(map[string]any{
		"weight_kg":   weightKg,
		"recorded_at": recordedAt.Format(time.RFC3339),
	}))
	return err
}

// Weights lists the most recent weight entries, newest first.
func (c *Client) Weights(ctx context.Context, limit int) ([]model.WeightEntry, error) {
	if limit <= 0 {
		limit = 30
	}
	raw, err := c.gw.Call(ctx, action("weights", url.Values{"limit": {strconv.Itoa(limit)}}))
	if err != nil {
		return nil, err
	}
	return gateway.DecodeList[model.WeightEntry](raw, weightListKeys...), nil
}

// WeightsBefore lists entries recorded at or before the given instant.
func (c *Client) WeightsBefore(ctx context.Context, limit int, before time.Time) ([]model.WeightEntry, error) {
	if limit <= 0 {
		limit = 1
	}
	raw, err := c.gw.Call(ctx, action("weights", url.Values{
		"limit":  {strconv.Itoa(limit)},
		"before": {before.Format(time.RFC3339)},
	}))
	if err != nil {
		return nil, err
	}
	return gateway.DecodeList[model.WeightEntry](raw, weightListKeys...), nil
}

// LatestWeight returns the newest entry, nil when none exist.
func (c *Client) LatestWeight(ctx context.Context) (*model.WeightEntry, error) {
	entries, err := c.Weights(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// WeightOnDate returns the last entry recorded on or before the end of the
// given local day. The server-side before filter is tried first; if that
// call fails the fallback pulls a window and filters client-side, matching
// how older backends without the filter were handled.
func (c *Client) WeightOnDate(ctx context.Context, date time.Time) (*model.WeightEntry, error) {
	endOfDay := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(999*time.Millisecond), date.Location())

	entries, err := c.WeightsBefore(ctx, 1, endOfDay)
	if err == nil && len(entries) > 0 {
		return &entries[0], nil
	}

	entries, err = c.Weights(ctx, 50)
	if err != nil {
		return nil, err
	}
	var onOrBefore []model.WeightEntry
	for _, e := range entries {
		if !e.RecordedAt.After(endOfDay) {
			onOrBefore = append(onOrBefore, e)
		}
	}
	if len(onOrBefore) == 0 {
		return nil, nil
	}
	sort.Slice(onOrBefore, func(i, j int) bool {
		return onOrBefore[i].RecordedAt.After(onOrBefore[j].RecordedAt)
	})
	return &onOrBefore[0], nil
}
