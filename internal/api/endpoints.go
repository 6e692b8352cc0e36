package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateSubmission creates a new submission against an intake.
func (c *Client) CreateSubmission(ctx context.Context, intakeID string, req CreateSubmissionRequest) (map[string]any, error) {
	path := fmt.Sprintf("/intake/%s/submissions", url.PathEscape(intakeID))
	return c.Do(ctx, http.MethodPost, path, req)
}

// SetFields updates field values on an existing submission.
func (c *Client) SetFields(ctx context.Context, intakeID, submissionID string, req SetFieldsRequest) (map[string]any, error) {
	path := fmt.Sprintf("/intake/%s/submissions/%s",
		url.PathEscape(intakeID), url.PathEscape(submissionID))
	return c.Do(ctx, http.MethodPatch, path, req)
}

// Submit finalizes a submission for processing.
func (c *Client) Submit(ctx context.Context, intakeID, submissionID string, req SubmitRequest) (map[string]any, error) {
	path := fmt.Sprintf("/intake/%s/submissions/%s/submit",
		url.PathEscape(intakeID), url.PathEscape(submissionID))
	return c.Do(ctx, http.MethodPost, path, req)
}

// GetSubmission retrieves a submission by ID.
func (c *Client) GetSubmission(ctx context.Context, intakeID, submissionID string) (map[string]any, error) {
	path := fmt.Sprintf("/intake/%s/submissions/%s",
		url.PathEscape(intakeID), url.PathEscape(submissionID))
	return c.Do(ctx, http.MethodGet, path, nil)
}
