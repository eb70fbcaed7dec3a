package cloud

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReporter(t *testing.T, handler http.HandlerFunc) (*UsageReporter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	r := newUsageReporter(srv.URL, "Bearer token", "system-token", srv.Client())
	return r, srv
}

func TestReportUsageSuccess(t *testing.T) {
	var gotAuth, gotToken string
	r, _ := newTestReporter(t, func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotToken = req.Header.Get("X-System-Token")
		assert.Equal(t, "/api/internal/databases/usage", req.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := r.ReportUsage(context.Background(), 1024)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "system-token", gotToken)
}

func TestReportUsageNotFoundIsTolerated(t *testing.T) {
	r, _ := newTestReporter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := r.ReportUsage(context.Background(), 1024)
	require.NoError(t, err)
}

func TestReportUsageUnexpectedStatus(t *testing.T) {
	r, _ := newTestReporter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	err := r.ReportUsage(context.Background(), 1024)
	require.Error(t, err)
	var uErr *UnexpectedResponseError
	require.ErrorAs(t, err, &uErr)
	assert.Equal(t, http.StatusInternalServerError, uErr.StatusCode)
	assert.Equal(t, "boom", uErr.Body)
}
