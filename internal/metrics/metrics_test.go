package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(InvitationsTotal.WithLabelValues("accepted"))
	RecordInvitation("accepted")
	assert.Equal(t, before+1, testutil.ToFloat64(InvitationsTotal.WithLabelValues("accepted")))

	before = testutil.ToFloat64(DraftTransitionsTotal.WithLabelValues("submit"))
	RecordDraftTransition("submit")
	assert.Equal(t, before+1, testutil.ToFloat64(DraftTransitionsTotal.WithLabelValues("submit")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordInvitation("pending")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `invitations_total{status="pending"}`)
}
