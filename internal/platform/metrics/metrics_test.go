// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/civicdesk/internal/platform/metrics"
)

/*
TestRecorder_Mutations verifies counters per operation and outcome.
*/
func TestRecorder_Mutations(t *testing.T) {
	recorder := metrics.NewRecorder(false)

	recorder.ObserveMutation("event.create_faq", nil, 20*time.Millisecond)
	recorder.ObserveMutation("event.create_faq", errors.New("Update failed"), time.Millisecond)
	recorder.ObserveMutation("event.create_faq", nil, time.Millisecond)

	expected := `
# HELP civicdesk_mutations_total Mutations that passed their guard, by operation and outcome.
# TYPE civicdesk_mutations_total counter
civicdesk_mutations_total{operation="event.create_faq",outcome="failure"} 1
civicdesk_mutations_total{operation="event.create_faq",outcome="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(recorder.Registry(), strings.NewReader(expected), "civicdesk_mutations_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.Registry(), "civicdesk_mutation_duration_seconds"))
}

/*
TestRecorder_RefreshFamilies verifies that entity ids never become label values.
*/
func TestRecorder_RefreshFamilies(t *testing.T) {
	recorder := metrics.NewRecorder(false)

	recorder.ObserveRefresh("group:images:g-1", nil)
	recorder.ObserveRefresh("group:images:g-2", nil)
	recorder.ObserveRefresh("organization:list", errors.New("down"))

	expected := `
# HELP civicdesk_cache_refreshes_total Local query cache refreshes, by key family and outcome.
# TYPE civicdesk_cache_refreshes_total counter
civicdesk_cache_refreshes_total{family="group:images",outcome="success"} 2
civicdesk_cache_refreshes_total{family="organization:list",outcome="failure"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(recorder.Registry(), strings.NewReader(expected), "civicdesk_cache_refreshes_total"))
}

/*
TestRecorder_Handler verifies the exposition endpoint.
*/
func TestRecorder_Handler(t *testing.T) {
	recorder := metrics.NewRecorder(true)
	recorder.ObserveRequest(http.MethodPost, http.StatusCreated)

	response := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `civicdesk_devapi_requests_total{method="POST",status="201"} 1`)
	assert.Contains(t, response.Body.String(), "go_goroutines")
}
