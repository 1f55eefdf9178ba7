package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/pkg/apperror"
	"client-wallet-service/pkg/logger"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	// maxRelayBodyPreview bounds the admin response text echoed in errors.
	maxRelayBodyPreview = 140
	maxRelayResponse    = 1 << 20
	maxRelayErrorLen    = 255
)

// SitePlaceholder is replaced by the wallet's site name in the relay URL template.
const SitePlaceholder = "{site_name}"

const siteMarker = "site-name.invalid"

// AdminRelay posts settlement summaries to a site's admin endpoint.
type AdminRelay struct {
	client      HTTPClient
	urlTemplate string
	// hostTemplate is the template's host with the placeholder kept, "" if the
	// template does not parse.
	hostTemplate string
	timeout      time.Duration
}

// NewAdminRelay creates a relay. A zero timeout leaves the caller's context in charge.
func NewAdminRelay(client HTTPClient, urlTemplate string, timeout time.Duration) *AdminRelay {
	r := &AdminRelay{client: client, urlTemplate: urlTemplate, timeout: timeout}
	if u, err := url.Parse(strings.ReplaceAll(urlTemplate, SitePlaceholder, siteMarker)); err == nil {
		r.hostTemplate = strings.ReplaceAll(u.Host, siteMarker, SitePlaceholder)
	}
	return r
}

// URLFor returns the admin endpoint for a site. The site name must be a host
// name and the resulting URL must keep the template's host.
func (r *AdminRelay) URLFor(siteName string) (string, error) {
	if !domain.ValidSiteName(siteName) {
		return "", apperror.ErrInvalidSiteName(siteName)
	}

	raw := strings.ReplaceAll(r.urlTemplate, SitePlaceholder, siteName)
	u, err := parseRelayURL(raw)
	if err != nil {
		return "", err
	}
	if want := strings.ReplaceAll(r.hostTemplate, SitePlaceholder, siteName); u.Host != want {
		return "", apperror.ErrAdminRelayFailed(
			fmt.Sprintf("Admin API URL host %q does not match site %q", u.Host, siteName), nil)
	}
	return raw, nil
}

// parseRelayURL accepts absolute http(s) URLs only.
func parseRelayURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, apperror.ErrAdminRelayFailed("Invalid Admin API URL", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperror.ErrAdminRelayFailed(fmt.Sprintf("Invalid Admin API URL %q", raw), nil)
	}
	return u, nil
}

// Post sends body and interprets the admin's reply.
// 200 and 201 are accepted only when the reply's message object reports success.
// It returns the message object, the HTTP status (0 on transport failure) and
// an AdminRelayRejected or AdminRelayFailed error.
func (r *AdminRelay) Post(ctx context.Context, target string, body []byte) (map[string]any, int, error) {
	if _, err := parseRelayURL(target); err != nil {
		return nil, 0, err
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, 0, apperror.ErrAdminRelayFailed(fmt.Sprintf("Failed to POST data to Admin API: %v", err), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, 0, apperror.ErrAdminRelayFailed(
			logger.Truncate(fmt.Sprintf("Failed to POST data to Admin API: %v", err), maxRelayErrorLen), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRelayResponse))
	if err != nil {
		return nil, resp.StatusCode, apperror.ErrAdminRelayFailed("Failed to read Admin API response", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := fmt.Sprintf("Failed to POST data to Admin API. Status Code: %d, Response: %s",
			resp.StatusCode, logger.Truncate(string(raw), maxRelayBodyPreview))
		return nil, resp.StatusCode, apperror.ErrAdminRelayFailed(msg, nil)
	}

	var reply struct {
		Message map[string]any `json:"message"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil || !truthy(reply.Message["success"]) {
		return reply.Message, resp.StatusCode, apperror.ErrAdminRelayRejected()
	}
	return reply.Message, resp.StatusCode, nil
}

// truthy follows the loose truthiness admin endpoints use for their success flag.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return t != ""
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// applyRelayOutcome records the result of one delivery on the attempt.
// Rejections are final; other failures are rescheduled along intervals until
// they run out.
func applyRelayOutcome(a *domain.RelayAttempt, status int, err error, intervals []time.Duration, now time.Time) {
	a.UpdatedAt = now
	if a.Attempt < 1 {
		a.Attempt = 1
	}
	if status != 0 {
		s := status
		a.HTTPStatus = &s
	}
	if err == nil {
		a.Status = domain.RelayStatusDelivered
		a.NextRetryAt = nil
		a.LastError = nil
		return
	}

	msg := logger.Truncate(err.Error(), maxRelayErrorLen)
	a.LastError = &msg
	if apperror.HasCode(err, apperror.CodeAdminRelayRejected) || a.Attempt > len(intervals) {
		a.Status = domain.RelayStatusFailed
		a.NextRetryAt = nil
		return
	}
	next := now.Add(intervals[a.Attempt-1])
	a.Status = domain.RelayStatusPending
	a.NextRetryAt = &next
}
