package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCheckout(t *testing.T) {
	beforeCount := testutil.ToFloat64(checkouts.WithLabelValues("Balance"))
	beforeCents := testutil.ToFloat64(checkoutCents)

	RecordCheckout("Balance", 1900)
	RecordCheckout("Balance", 100)

	assert.Equal(t, beforeCount+2, testutil.ToFloat64(checkouts.WithLabelValues("Balance")))
	assert.Equal(t, beforeCents+2000, testutil.ToFloat64(checkoutCents))
}

func TestRecordCheckIns(t *testing.T) {
	before := testutil.ToFloat64(checkIns)
	beforeReversals := testutil.ToFloat64(checkInReversals)

	RecordCheckIn()
	RecordCheckInReversal()

	assert.Equal(t, before+1, testutil.ToFloat64(checkIns))
	assert.Equal(t, beforeReversals+1, testutil.ToFloat64(checkInReversals))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveRPC("/pos.v1.BucketService/ListBuckets", "ok", 0.002)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	assert.True(t, strings.Contains(out, "bucketpos_rpc_requests_total"))
	assert.True(t, strings.Contains(out, `procedure="/pos.v1.BucketService/ListBuckets"`))
	assert.True(t, strings.Contains(out, "bucketpos_members_checkins_total"))
}
