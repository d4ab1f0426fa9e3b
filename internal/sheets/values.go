package sheets

import (
	"context"
	"errors"

	"google.golang.org/api/googleapi"

	"sheets-proxy/internal/models"
)

// UpstreamError is any failure of the remote read. Message is what callers get to see.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(err error) *UpstreamError {
	msg := err.Error()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		msg = gerr.Message
	}
	return &UpstreamError{Message: msg, Err: err}
}

// GetValues reads q.Range from spreadsheet q.SheetID. The returned Values is never nil on success.
func (c *Client) GetValues(ctx context.Context, q models.SheetQuery) (models.Values, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(q.SheetID, q.Range).Context(ctx).Do()
	if err != nil {
		return nil, upstream(err)
	}
	if len(resp.Values) == 0 {
		return models.Values{}, nil
	}
	return models.Values(resp.Values), nil
}
