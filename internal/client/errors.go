package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"restaurant-ordering/internal/contract"
)

const maxErrorBodyPreview = 256

// ErrUpstream indicates the ordering API could not be reached or answered with an error.
var ErrUpstream = errors.New("ordering api request failed")

// UpstreamRequestError describes a failed API call. Detail holds the decoded
// error body when the API sent one.
type UpstreamRequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Detail     *contract.Error
	Cause      error
}

func (e *UpstreamRequestError) Error() string {
	parts := []string{ErrUpstream.Error()}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if target := strings.TrimSpace(e.Method + " " + e.URL); target != "" {
		parts = append(parts, target)
	}
	switch {
	case e.Detail != nil && e.Detail.Error != "":
		parts = append(parts, "error="+e.Detail.Error)
		if len(e.Detail.MissingRequired) > 0 {
			parts = append(parts, "missing="+strings.Join(e.Detail.MissingRequired, ","))
		}
	case compactBodyPreview(e.Body) != "":
		parts = append(parts, fmt.Sprintf("body=%q", compactBodyPreview(e.Body)))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}
	return strings.Join(parts, "; ")
}

func (e *UpstreamRequestError) Unwrap() error {
	return ErrUpstream
}

// NotFound reports a 404 from the API.
func (e *UpstreamRequestError) NotFound() bool {
	return e.StatusCode == 404
}

func decodeErrorBody(body []byte) *contract.Error {
	var detail contract.Error
	if err := json.Unmarshal(body, &detail); err != nil || detail.Error == "" {
		return nil
	}
	return &detail
}

func compactBodyPreview(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	if len(body) > maxErrorBodyPreview {
		return body[:maxErrorBodyPreview] + "..."
	}
	return body
}
