package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// UsageReporter issues periodic storage-usage reports to a cloud endpoint
// (spec.md 4.5). Its HTTP client is configured for HTTP/2 with a 5-minute
// keep-alive ping, the same transport tuning the rest of the pack reaches
// for (golang.org/x/net/http2) when an endpoint is expected to stay open
// across many short requests.
type UsageReporter struct {
	httpClient  *http.Client
	apiURL      string
	authHeader  string
	systemToken string
}

// NewUsageReporter builds a reporter for apiURL, authenticating every
// request with authHeader (sent verbatim as the Authorization header) and
// systemToken (sent as X-System-Token). timeout bounds each individual
// report_usage call (spec.md 5: "a configurable total timeout").
func NewUsageReporter(apiURL, authHeader, systemToken string, timeout time.Duration) *UsageReporter {
	transport := &http2.Transport{
		ReadIdleTimeout: 5 * time.Minute,
	}
	return newUsageReporter(apiURL, authHeader, systemToken, &http.Client{Transport: transport, Timeout: timeout})
}

func newUsageReporter(apiURL, authHeader, systemToken string, httpClient *http.Client) *UsageReporter {
	return &UsageReporter{
		httpClient:  httpClient,
		apiURL:      apiURL,
		authHeader:  authHeader,
		systemToken: systemToken,
	}
}

type reportUsageRequest struct {
	UsageBytes uint64 `json:"usage_bytes"`
}

// ReportUsage issues PUT {api_url}/api/internal/databases/usage with
// {usage_bytes: bytes}. HTTP 204 and 404 are both treated as success (the
// database may have already been deleted; spec.md 4.5). Any other status
// is UnexpectedResponseError. No internal retries (spec.md 5/7): the
// caller owns retry cadence.
func (r *UsageReporter) ReportUsage(ctx context.Context, bytesUsed uint64) error {
	body, err := json.Marshal(reportUsageRequest{UsageBytes: bytesUsed})
	if err != nil {
		return fmt.Errorf("encode usage report: %w", err)
	}

	url := r.apiURL + "/api/internal/databases/usage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build usage report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", r.authHeader)
	req.Header.Set("X-System-Token", r.systemToken)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("report usage: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return &UnexpectedResponseError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
}
