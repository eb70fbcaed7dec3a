// Package cloud implements UsageReporter (spec.md 4.5): a periodic PUT of
// storage usage to a cloud endpoint, tolerant of 404 (eventual
// consistency) and using an HTTP/2 keep-alive client.
package cloud

import "fmt"

// UnexpectedResponseError is spec.md 7's UnexpectedResponse(body): the
// usage-reporter endpoint answered with neither 204 nor 404.
type UnexpectedResponseError struct {
	StatusCode int
	Body       string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("usage reporter: unexpected response (status %d): %s", e.StatusCode, e.Body)
}
