// AngelaMos | 2026
// service.go

package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/templates/loyalty-backend/internal/core"
	"github.com/carterperez-dev/templates/loyalty-backend/internal/metrics"
)

type Service struct {
	repo      Repository
	validator *validator.Validate
	now       func() time.Time
	logger    *slog.Logger
}

type ServiceOption func(*Service)

// WithClock replaces time.Now as the source of purchase timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:      repo,
		validator: NewValidator(),
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetCustomer(ctx context.Context, id int) (*Customer, error) {
	ctx, span := core.StartSpan(ctx, "customer.Get", attribute.Int("customer.id", id))
	defer span.End()

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		core.RecordSpanError(span, err)
		return nil, err
	}

	return c, nil
}

// RecordPurchase credits a purchase to customer id. An unknown id is
// reported before the amount is validated.
func (s *Service) RecordPurchase(
	ctx context.Context,
	id int,
	req PurchaseRequest,
) (PurchaseResult, error) {
	ctx, span := core.StartSpan(ctx, "customer.RecordPurchase", attribute.Int("customer.id", id))
	defer span.End()

	storeLocation := ""
	if req.StoreLocation != nil {
		storeLocation = *req.StoreLocation
	}

	var result PurchaseResult
	updated, err := s.repo.Update(ctx, id, func(c *Customer) error {
		if err := s.validator.Struct(req); err != nil {
			return ErrInvalidPurchaseAmount
		}

		res, err := ApplyPurchase(c, *req.Amount, storeLocation, s.now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPurchaseAmount) {
			metrics.ObservePurchaseRejected()
		}
		core.RecordSpanError(span, err)
		return PurchaseResult{}, fmt.Errorf("record purchase: %w", err)
	}

	result.Customer = updated
	base := result.PointsEarned - result.BonusApplied
	metrics.ObservePurchase(base, result.BonusApplied, string(updated.Status), result.StatusChanged)

	span.SetAttributes(
		attribute.Int("purchase.points_earned", result.PointsEarned),
		attribute.Int("purchase.bonus_applied", result.BonusApplied),
		attribute.String("customer.status", string(updated.Status)),
	)

	if result.StatusChanged {
		span.AddEvent("customer.status_changed", trace.WithAttributes(
			attribute.String("customer.status", string(updated.Status)),
			attribute.Int("customer.points", updated.Points),
		))
		s.logger.InfoContext(ctx, "customer status changed",
			"customer_id", id,
			"status", updated.Status,
			"points", updated.Points,
		)
	}

	return result, nil
}

func (s *Service) UpdatePreferences(
	ctx context.Context,
	id int,
	patch PreferencesPatch,
) (*Customer, error) {
	ctx, span := core.StartSpan(ctx, "customer.UpdatePreferences", attribute.Int("customer.id", id))
	defer span.End()

	updated, err := s.repo.Update(ctx, id, func(c *Customer) error {
		UpdatePreferences(c, patch)
		return nil
	})
	if err != nil {
		core.RecordSpanError(span, err)
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	if patch.Email != nil {
		metrics.ObserveEmailUpdate("preferences", metrics.OutcomeSuccess)
	}

	return updated, nil
}

// BackfillEmail sets the email of a legacy customer. The request is only
// validated once the customer is known to have no email.
func (s *Service) BackfillEmail(
	ctx context.Context,
	id int,
	req EmailBackfillRequest,
) (*Customer, error) {
	ctx, span := core.StartSpan(ctx, "customer.BackfillEmail", attribute.Int("customer.id", id))
	defer span.End()

	updated, err := s.repo.Update(ctx, id, func(c *Customer) error {
		if c.HasEmail() {
			return ErrEmailAlreadyPresent
		}
		if err := s.validator.Struct(req); err != nil {
			return ErrInvalidEmail
		}
		_, err := BackfillEmail(c, req.Email)
		return err
	})
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			metrics.ObserveEmailUpdate("backfill", metrics.OutcomeRejected)
		}
		core.RecordSpanError(span, err)
		return nil, fmt.Errorf("backfill email: %w", err)
	}

	metrics.ObserveEmailUpdate("backfill", metrics.OutcomeSuccess)
	return updated, nil
}

// Summary aggregates the store for the stats endpoint.
type Summary struct {
	Customers   int            `json:"customers"`
	ByStatus    map[Status]int `json:"by_status"`
	TotalPoints int            `json:"total_points"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize customers: %w", err)
	}

	sum := &Summary{
		Customers: len(customers),
		ByStatus: map[Status]int{
			StatusGold:   0,
			StatusSilver: 0,
			StatusBronze: 0,
		},
	}
	for _, c := range customers {
		sum.ByStatus[c.Status]++
		sum.TotalPoints += c.Points
	}

	return sum, nil
}

// Seed loads fixtures into the store and returns how many customers it
// holds afterwards.
func (s *Service) Seed(ctx context.Context, customers []Customer) (int, error) {
	if err := s.repo.Seed(ctx, customers); err != nil {
		return 0, fmt.Errorf("seed customers: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed customers: %w", err)
	}
	return total, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
