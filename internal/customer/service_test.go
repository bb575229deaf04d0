// AngelaMos | 2026
// service_test.go

package customer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/carterperez-dev/templates/loyalty-backend/internal/core"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(
		newSeededRepository(t),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestService_RecordPurchase(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.RecordPurchase(ctx, 2, PurchaseRequest{
		Amount:        floatPtr(2000),
		StoreLocation: strPtr("Airport"),
	})
	require.NoError(t, err)

	assert.Equal(t, 670, res.Customer.Points)
	assert.Equal(t, StatusSilver, res.Customer.Status)
	assert.Equal(t, 20, res.BonusApplied)
	assert.Equal(t, "Airport", res.StoreLocation)
	require.NotNil(t, res.Customer.LastStatusChange)
	assert.Equal(t, "2024-03-01T12:00:00.123Z", FormatTimestamp(*res.Customer.LastPurchaseDate))

	res, err = svc.RecordPurchase(ctx, 2, PurchaseRequest{Amount: floatPtr(1000)})
	require.NoError(t, err)
	assert.Equal(t, 770, res.Customer.Points)
	assert.Equal(t, StatusGold, res.Customer.Status)

	stored, err := svc.GetCustomer(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 770, stored.Points)
	assert.Equal(t, StatusGold, stored.Status)
}

func TestService_RecordPurchase_InvalidAmountDoesNotMutate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, req := range []PurchaseRequest{
		{},
		{Amount: floatPtr(0)},
		{Amount: floatPtr(-25)},
		{Amount: floatPtr(1e300)},
	} {
		_, err := svc.RecordPurchase(ctx, 2, req)
		require.ErrorIs(t, err, ErrInvalidPurchaseAmount)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	}

	stored, err := svc.GetCustomer(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 450, stored.Points)
	assert.Nil(t, stored.LastStatusChange)
}

func TestService_RecordPurchase_NotFoundBeforeValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RecordPurchase(context.Background(), 404, PurchaseRequest{})

	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_RecordPurchase_Concurrent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			_, err := svc.RecordPurchase(ctx, 3, PurchaseRequest{Amount: floatPtr(100)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := svc.GetCustomer(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 120+workers*10, stored.Points)
	assert.Equal(t, StatusSilver, stored.Status)
}

func TestService_UpdatePreferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.UpdatePreferences(ctx, 1, PreferencesPatch{
		Notifications:  boolPtr(false),
		PreferredStore: strPtr("Airport"),
		Email:          strPtr("not-an-email"),
	})
	require.NoError(t, err)

	assert.False(t, c.Notifications)
	assert.Equal(t, "Airport", c.PreferredStore)
	assert.Equal(t, "not-an-email", c.Email)
	assert.Equal(t, StatusGold, c.Status)

	_, err = svc.UpdatePreferences(ctx, 77, PreferencesPatch{})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_BackfillEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.BackfillEmail(ctx, 3, EmailBackfillRequest{Email: strPtr("not-an-email")})
	require.ErrorIs(t, err, ErrInvalidEmail)

	c, err := svc.BackfillEmail(ctx, 3, EmailBackfillRequest{Email: strPtr("carol@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", c.Email)

	_, err = svc.BackfillEmail(ctx, 3, EmailBackfillRequest{Email: strPtr("carol2@example.com")})
	require.ErrorIs(t, err, ErrEmailAlreadyPresent)
	require.ErrorIs(t, err, core.ErrPreconditionFailed)

	_, err = svc.BackfillEmail(ctx, 3, EmailBackfillRequest{})
	require.ErrorIs(t, err, ErrEmailAlreadyPresent)

	stored, err := svc.GetCustomer(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", stored.Email)
}

func TestService_PreferencesCanChangeBackfilledEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.BackfillEmail(ctx, 3, EmailBackfillRequest{Email: strPtr("a@b.com")})
	require.NoError(t, err)

	c, err := svc.UpdatePreferences(ctx, 3, PreferencesPatch{Email: strPtr("new@b.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", c.Email)
}

func TestService_Summary(t *testing.T) {
	svc := newTestService(t)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Customers)
	assert.Equal(t, 820+450+120, sum.TotalPoints)
	assert.Equal(t, 1, sum.ByStatus[StatusGold])
	assert.Equal(t, 1, sum.ByStatus[StatusSilver])
	assert.Equal(t, 1, sum.ByStatus[StatusBronze])
}

func TestService_SeedReportsStored(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	total, err := svc.Seed(context.Background(), DefaultCustomers())
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	_, err = svc.Seed(context.Background(), DefaultCustomers()[:1])
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func recordServiceSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func TestService_RecordPurchase_Spans(t *testing.T) {
	sr := recordServiceSpans(t)
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordPurchase(ctx, 2, PurchaseRequest{Amount: floatPtr(3000)})
	require.NoError(t, err)
	_, err = svc.RecordPurchase(ctx, 2, PurchaseRequest{Amount: floatPtr(-1)})
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "customer.RecordPurchase", ok.Name())
	assert.Contains(t, ok.Attributes(), attribute.Int("purchase.points_earned", 330))
	assert.Contains(t, ok.Attributes(), attribute.String("customer.status", string(StatusGold)))
	require.Len(t, ok.Events(), 1)
	assert.Equal(t, "customer.status_changed", ok.Events()[0].Name)

	rejected := spans[1]
	assert.Equal(t, codes.Error, rejected.Status().Code)
	assert.Contains(t, rejected.Attributes(), attribute.Int("customer.id", 2))
}
