// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stamtavla/internal/platform/metrics"
)

/*
TestRecorder_Handler exposes recorded values in the text format.
*/
func TestRecorder_Handler(t *testing.T) {
	recorder := metrics.New(prometheus.NewRegistry())
	recorder.ObserveRequest(http.MethodGet, http.StatusOK, 5*time.Millisecond)
	recorder.ImportSucceeded("append", 3, 1)
	recorder.ImportFailed("replace")
	recorder.Exported(true)

	response := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, response.Code)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `stamtavla_http_requests_total{method="GET",status="200"} 1`)
	assert.Contains(t, text, `stamtavla_gedcom_imports_total{mode="append",outcome="success"} 1`)
	assert.Contains(t, text, `stamtavla_gedcom_imports_total{mode="replace",outcome="failure"} 1`)
	assert.Contains(t, text, "stamtavla_gedcom_imported_individuals_total 3")
	assert.Contains(t, text, "stamtavla_gedcom_skipped_relationships_total 1")
	assert.Contains(t, text, `stamtavla_gedcom_exports_total{cache="hit"} 1`)
}

/*
TestRecorder_Nil ignores calls on a nil recorder.
*/
func TestRecorder_Nil(t *testing.T) {
	var recorder *metrics.Recorder
	assert.NotPanics(t, func() {
		recorder.ObserveRequest(http.MethodGet, http.StatusOK, time.Millisecond)
		recorder.ImportSucceeded("replace", 1, 0)
		recorder.ImportFailed("replace")
		recorder.Exported(false)
	})
}
