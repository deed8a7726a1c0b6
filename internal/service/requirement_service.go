package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/internal/observability"
	"github.com/workers-united/verify-api/internal/repository"
)

// StatusAggregator folds one verification result into the candidate's
// requirement aggregate and cascades to the overall application status.
type StatusAggregator interface {
	Apply(ctx context.Context, candidate models.Candidate, docType models.DocumentType, verified bool) error
}

type statusAggregator struct {
	requirements repository.RequirementRepository
	candidates   repository.CandidateRepository
	notifier     ApprovalNotifier
	publisher    *ApprovalPublisher
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// NewStatusAggregator constructs the aggregator.
func NewStatusAggregator(
	requirements repository.RequirementRepository,
	candidates repository.CandidateRepository,
	notifier ApprovalNotifier,
	publisher *ApprovalPublisher,
	logger zerolog.Logger,
) StatusAggregator {
	return &statusAggregator{
		requirements: requirements,
		candidates:   candidates,
		notifier:     notifier,
		publisher:    publisher,
		logger:       logger.With().Str("component", "status_aggregator").Logger(),
		tracer:       otel.Tracer("github.com/workers-united/verify-api/internal/service/aggregator"),
	}
}

// Apply updates exactly one per-type flag, then attempts the approval
// transition through a conditional update. CompleteIfSatisfied returns true
// for at most one caller per candidate, so the status change, the email, and
// the approval event fire exactly once even under concurrent uploads.
func (s *statusAggregator) Apply(ctx context.Context, candidate models.Candidate, docType models.DocumentType, verified bool) error {
	ctx, span := s.tracer.Start(ctx, "aggregator.apply", trace.WithAttributes(
		attribute.Int("candidate.id", int(candidate.ID)),
		attribute.String("document.type", string(docType)),
		attribute.Bool("document.verified", verified),
	))
	defer span.End()

	if err := s.requirements.SetFlag(ctx, candidate.ID, docType, verified); err != nil {
		span.RecordError(err)
		return err
	}

	if !verified {
		// A failed re-verification can lower a previously satisfied aggregate.
		// Candidate status is deliberately not demoted here; see DESIGN.md.
		if err := s.requirements.ResetCompleted(ctx, candidate.ID); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	won, err := s.requirements.CompleteIfSatisfied(ctx, candidate.ID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !won {
		return nil
	}

	if err := s.candidates.UpdateStatus(ctx, candidate.ID, models.CandidateStatusApproved); err != nil {
		span.RecordError(err)
		return err
	}

	observability.Approvals().Inc()
	s.logger.Info().
		Uint("candidate_id", candidate.ID).
		Str("email", candidate.Email).
		Msg("all documents verified, candidate auto-approved")

	if s.notifier != nil {
		if err := s.notifier.NotifyApproved(ctx, candidate); err != nil {
			s.logger.Warn().Err(err).Uint("candidate_id", candidate.ID).Msg("approval notification failed")
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, ApprovalEvent{
			CandidateID: candidate.ID,
			Email:       candidate.Email,
			Name:        candidate.Name,
			ApprovedAt:  time.Now().UTC(),
		})
	}

	return nil
}
