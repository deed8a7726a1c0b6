package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/internal/repository"
)

func TestStatusAggregatorApprovesWhenAllFlagsSet(t *testing.T) {
	db := setupTestDB(t)
	candidates := repository.NewCandidateRepository(db)
	requirements := repository.NewRequirementRepository(db)
	notifier := &notifierStub{}

	candidate := models.Candidate{Name: "Amina Yusuf", Email: "amina@example.com", Status: models.CandidateStatusNew}
	require.NoError(t, candidates.Create(context.Background(), &candidate))

	aggregator := NewStatusAggregator(requirements, candidates, notifier, nil, testLogger())

	require.NoError(t, aggregator.Apply(context.Background(), candidate, models.DocumentTypePassport, true))
	require.NoError(t, aggregator.Apply(context.Background(), candidate, models.DocumentTypePhoto, true))
	require.Empty(t, notifier.notified, "two of three flags must not approve")

	require.NoError(t, aggregator.Apply(context.Background(), candidate, models.DocumentTypeDiploma, true))

	updated, err := candidates.GetByID(context.Background(), candidate.ID)
	require.NoError(t, err)
	require.Equal(t, models.CandidateStatusApproved, updated.Status)
	require.Len(t, notifier.notified, 1)
	require.Equal(t, "amina@example.com", notifier.notified[0].Email)
}

func TestStatusAggregatorNotifiesExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	candidates := repository.NewCandidateRepository(db)
	requirements := repository.NewRequirementRepository(db)
	notifier := &notifierStub{}

	candidate := models.Candidate{Name: "Amina Yusuf", Email: "amina@example.com", Status: models.CandidateStatusNew}
	require.NoError(t, candidates.Create(context.Background(), &candidate))

	aggregator := NewStatusAggregator(requirements, candidates, notifier, nil, testLogger())
	for _, docType := range models.RequiredDocumentTypes {
		require.NoError(t, aggregator.Apply(context.Background(), candidate, docType, true))
	}
	require.Len(t, notifier.notified, 1)

	// A redundant successful re-verification must not re-approve.
	require.NoError(t, aggregator.Apply(context.Background(), candidate, models.DocumentTypePhoto, true))
	require.Len(t, notifier.notified, 1)
}

func TestStatusAggregatorFailedReverificationLowersAggregateOnly(t *testing.T) {
	db := setupTestDB(t)
	candidates := repository.NewCandidateRepository(db)
	requirements := repository.NewRequirementRepository(db)
	notifier := &notifierStub{}

	candidate := models.Candidate{Name: "Amina Yusuf", Email: "amina@example.com", Status: models.CandidateStatusNew}
	require.NoError(t, candidates.Create(context.Background(), &candidate))

	aggregator := NewStatusAggregator(requirements, candidates, notifier, nil, testLogger())
	for _, docType := range models.RequiredDocumentTypes {
		require.NoError(t, aggregator.Apply(context.Background(), candidate, docType, true))
	}

	require.NoError(t, aggregator.Apply(context.Background(), candidate, models.DocumentTypePhoto, false))

	requirement, err := requirements.GetByCandidate(context.Background(), candidate.ID)
	require.NoError(t, err)
	require.False(t, requirement.PhotoVerified)
	require.False(t, requirement.AllCompleted)

	updated, err := candidates.GetByID(context.Background(), candidate.ID)
	require.NoError(t, err)
	require.Equal(t, models.CandidateStatusApproved, updated.Status, "approval is not demoted by a later failure")
	require.Len(t, notifier.notified, 1)
}
