package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"mrcog-admin/internal/dto"
)

// ListBuckets fetches a page of question buckets, filterable by topic, day
// and active flag.
func (c *Client) ListBuckets(ctx context.Context, params dto.ListParams) (*dto.BucketListResponse, error) {
	var resp dto.BucketListResponse
	if err := c.do(ctx, http.MethodGet, "/scheduling/buckets", params.Values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBucket fetches a single bucket with its member questions embedded.
func (c *Client) GetBucket(ctx context.Context, id string) (*dto.BucketResponse, error) {
	var resp dto.BucketResponse
	if err := c.do(ctx, http.MethodGet, "/scheduling/buckets/"+id, nil, nil, &resp); err != nil {
		return nil, err
	}
	resp.Normalize()
	return &resp, nil
}

// CreateBucket creates a bucket. The server computes the derived fields of
// the returned bucket; callers must treat that response (or a reload) as
// authoritative rather than any local optimistic copy.
func (c *Client) CreateBucket(ctx context.Context, req dto.CreateBucketRequest) (*dto.BucketResponse, error) {
	var resp dto.BucketResponse
	if err := c.do(ctx, http.MethodPost, "/scheduling/buckets", nil, req, &resp); err != nil {
		return nil, err
	}
	resp.Normalize()
	return &resp, nil
}

// UpdateBucket replaces a bucket's full field set.
func (c *Client) UpdateBucket(ctx context.Context, id string, req dto.UpdateBucketRequest) (*dto.BucketResponse, error) {
	var resp dto.BucketResponse
	if err := c.do(ctx, http.MethodPut, "/scheduling/buckets/"+id, nil, req, &resp); err != nil {
		return nil, err
	}
	resp.Normalize()
	return &resp, nil
}

// DeleteBucket removes a bucket permanently. Destructive; callers gate it
// behind explicit confirmation.
func (c *Client) DeleteBucket(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/scheduling/buckets/"+id, nil, nil, nil)
}

// ToggleBucket flips a bucket's active flag.
func (c *Client) ToggleBucket(ctx context.Context, id string, isActive bool) error {
	return c.do(ctx, http.MethodPatch, "/scheduling/buckets/"+id+"/toggle", nil, dto.ToggleRequest{IsActive: isActive}, nil)
}

// AddBucketQuestion adds a single question to an existing bucket.
func (c *Client) AddBucketQuestion(ctx context.Context, bucketID, questionID string) (*dto.BucketResponse, error) {
	var resp dto.BucketResponse
	if err := c.do(ctx, http.MethodPost, "/scheduling/buckets/"+bucketID+"/questions/"+questionID, nil, nil, &resp); err != nil {
		return nil, err
	}
	resp.Normalize()
	return &resp, nil
}

// RemoveBucketQuestion removes a single question from an existing bucket.
func (c *Client) RemoveBucketQuestion(ctx context.Context, bucketID, questionID string) (*dto.BucketResponse, error) {
	var resp dto.BucketResponse
	if err := c.do(ctx, http.MethodDelete, "/scheduling/buckets/"+bucketID+"/questions/"+questionID, nil, nil, &resp); err != nil {
		return nil, err
	}
	resp.Normalize()
	return &resp, nil
}

// SendBucket dispatches a bucket immediately to the target group, bypassing
// its day assignment and active flag.
func (c *Client) SendBucket(ctx context.Context, id string, req dto.SendBucketRequest) error {
	return c.do(ctx, http.MethodPost, "/scheduling/buckets/"+id+"/send", nil, req, nil)
}

// DaySchedule fetches the buckets scheduled for one day.
func (c *Client) DaySchedule(ctx context.Context, day string, activeOnly bool) (*dto.DayScheduleResponse, error) {
	var resp dto.DayScheduleResponse
	if err := c.do(ctx, http.MethodGet, "/scheduling/days/"+day, activeOnlyQuery(activeOnly), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WeeklySchedule fetches the server's week overview.
func (c *Client) WeeklySchedule(ctx context.Context, activeOnly bool) (*dto.WeeklyScheduleResponse, error) {
	var resp dto.WeeklyScheduleResponse
	if err := c.do(ctx, http.MethodGet, "/scheduling/weekly", activeOnlyQuery(activeOnly), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TopicSchedule fetches the schedule summary for one topic.
func (c *Client) TopicSchedule(ctx context.Context, topic string, activeOnly bool) (*dto.TopicScheduleResponse, error) {
	var resp dto.TopicScheduleResponse
	if err := c.do(ctx, http.MethodGet, "/scheduling/topics/"+url.PathEscape(topic), activeOnlyQuery(activeOnly), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BulkUpdateSchedules applies day/active changes to several buckets at once.
func (c *Client) BulkUpdateSchedules(ctx context.Context, req dto.BulkUpdateRequest) error {
	return c.do(ctx, http.MethodPut, "/scheduling/bulk-update", nil, req, nil)
}

func activeOnlyQuery(activeOnly bool) url.Values {
	if !activeOnly {
		return nil
	}
	v := url.Values{}
	v.Set("activeOnly", strconv.FormatBool(true))
	return v
}
