// AngelaMos | 2026
// metrics_test.go

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePurchase(t *testing.T) {
	success := testutil.ToFloat64(purchasesTotal.WithLabelValues(OutcomeSuccess))
	bonus := testutil.ToFloat64(pointsAwardedTotal.WithLabelValues("bonus"))
	gold := testutil.ToFloat64(statusChangesTotal.WithLabelValues("GOLD"))

	ObservePurchase(200, 20, "SILVER", false)
	ObservePurchase(100, 0, "GOLD", true)

	assert.Equal(t, success+2, testutil.ToFloat64(purchasesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, bonus+20, testutil.ToFloat64(pointsAwardedTotal.WithLabelValues("bonus")))
	assert.Equal(t, gold+1, testutil.ToFloat64(statusChangesTotal.WithLabelValues("GOLD")))
}

func TestObserveRejections(t *testing.T) {
	rejected := testutil.ToFloat64(purchasesTotal.WithLabelValues(OutcomeRejected))
	backfill := testutil.ToFloat64(emailUpdatesTotal.WithLabelValues("backfill", OutcomeRejected))

	ObservePurchaseRejected()
	ObserveEmailUpdate("backfill", OutcomeRejected)

	assert.Equal(t, rejected+1, testutil.ToFloat64(purchasesTotal.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, backfill+1, testutil.ToFloat64(emailUpdatesTotal.WithLabelValues("backfill", OutcomeRejected)))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/customers/{customerID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/customers/{customerID}", "404")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/customers/17", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/customers/18", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestHandler_Exposes(t *testing.T) {
	ObservePurchaseRejected()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "loyalty_purchases_total")
}
