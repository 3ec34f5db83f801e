package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWrite(t *testing.T) {
	before := testutil.ToFloat64(Writes.WithLabelValues("test_op", "rejected"))
	RecordWrite("test_op", true, errors.New("stale"))
	assert.Equal(t, before+1, testutil.ToFloat64(Writes.WithLabelValues("test_op", "rejected")))

	before = testutil.ToFloat64(Writes.WithLabelValues("test_op", "success"))
	RecordWrite("test_op", false, nil)
	assert.Equal(t, before+1, testutil.ToFloat64(Writes.WithLabelValues("test_op", "success")))
}

func TestRecordValuationSkipsZero(t *testing.T) {
	before := testutil.ToFloat64(ValuationRecords.WithLabelValues("test_outcome"))
	RecordValuation("test_outcome", 0)
	RecordValuation("test_outcome", 3)
	assert.Equal(t, before+3, testutil.ToFloat64(ValuationRecords.WithLabelValues("test_outcome")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Init()
	Init()
	RecordHTTPRequest(http.MethodGet, "/api/names", "200", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bigmac_http_requests_total")
}
