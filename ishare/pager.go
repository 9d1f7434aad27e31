package ishare

import (
	"context"
	"errors"
)

type PageHandler func(*LocationSearchResponse) error

var ErrStopPaging = errors.New("ishare: stop paging")

// LocationSearchPages walks every search page for a location, advancing
// startnum until a short or empty page. The handler may return ErrStopPaging
// to end the walk early.
func (c *Client) LocationSearchPages(ctx context.Context, params LocationSearchParams, handler PageHandler) error {
	if handler == nil {
		return nil
	}
	if params.PageSize <= 0 {
		params.PageSize = DefaultPageSize
	}
	if params.Start <= 0 {
		params.Start = 1
	}

	start := params.Start
	for {
		params.Start = start
		resp, err := c.LocationSearch(ctx, params)
		if err != nil {
			return err
		}
		if err := handler(resp); err != nil {
			if errors.Is(err, ErrStopPaging) {
				return nil
			}
			return err
		}

		pageCount := len(resp.Data)
		if pageCount < params.PageSize {
			return nil
		}
		start += params.PageSize
	}
}
