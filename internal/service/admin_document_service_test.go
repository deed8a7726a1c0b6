package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/internal/repository"
	"github.com/workers-united/verify-api/pkg/ai"
)

type adminFixture struct {
	candidates   repository.CandidateRepository
	documents    repository.DocumentRepository
	requirements repository.RequirementRepository
	notifier     *notifierStub
	candidate    models.Candidate
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	db := setupTestDB(t)

	f := &adminFixture{
		candidates:   repository.NewCandidateRepository(db),
		documents:    repository.NewDocumentRepository(db),
		requirements: repository.NewRequirementRepository(db),
		notifier:     &notifierStub{},
	}

	f.candidate = models.Candidate{Name: "Amina Yusuf", Email: "amina@example.com", Status: models.CandidateStatusNew}
	require.NoError(t, f.candidates.Create(context.Background(), &f.candidate))
	return f
}

func (f *adminFixture) service(verifier ai.DocumentVerifier, redisClient *redis.Client) AdminDocumentService {
	aggregator := NewStatusAggregator(f.requirements, f.candidates, f.notifier, nil, testLogger())
	return NewAdminDocumentService(f.candidates, f.documents, f.requirements, aggregator, verifier, redisClient, time.Minute, testLogger())
}

func TestAdminDocumentServiceListStatusComposesRows(t *testing.T) {
	f := newAdminFixture(t)

	passport := models.Document{CandidateID: f.candidate.ID, DocType: models.DocumentTypePassport, URL: "https://cdn.example.com/p.jpg", Verified: true}
	photo := models.Document{CandidateID: f.candidate.ID, DocType: models.DocumentTypePhoto, URL: "https://cdn.example.com/f.jpg", Verified: false}
	require.NoError(t, f.documents.Upsert(context.Background(), &passport))
	require.NoError(t, f.documents.Upsert(context.Background(), &photo))
	require.NoError(t, f.requirements.SetFlag(context.Background(), f.candidate.ID, models.DocumentTypePassport, true))

	svc := f.service(nil, nil)

	statuses, err := svc.ListStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	row := statuses[0]
	require.Equal(t, f.candidate.ID, row.CandidateID)
	require.Equal(t, "amina@example.com", row.Email)
	require.True(t, row.PassportVerified)
	require.False(t, row.PhotoVerified)
	require.False(t, row.AllCompleted)
	require.Equal(t, 2, row.UploadedTotal)
	require.Equal(t, 1, row.UploadedVerified)
}

func TestAdminDocumentServiceListStatusUsesCache(t *testing.T) {
	f := newAdminFixture(t)

	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	svc := f.service(nil, redisClient)

	statuses, err := svc.ListStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	// mutate db to ensure the second read is served from cache
	another := models.Candidate{Name: "Bram de Vries", Email: "bram@example.com", Status: models.CandidateStatusNew}
	require.NoError(t, f.candidates.Create(context.Background(), &another))

	cached, err := svc.ListStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
}

func TestAdminDocumentServiceReverifyRequiresVerifier(t *testing.T) {
	f := newAdminFixture(t)
	svc := f.service(nil, nil)

	_, err := svc.Reverify(context.Background(), 1)
	require.ErrorIs(t, err, ErrVerifierUnavailable)
}

func TestAdminDocumentServiceReverifyUnknownDocument(t *testing.T) {
	f := newAdminFixture(t)
	svc := f.service(&verifierStub{}, nil)

	_, err := svc.Reverify(context.Background(), 9999)
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestAdminDocumentServiceReverifyUpdatesVerdictAndCache(t *testing.T) {
	f := newAdminFixture(t)

	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	document := models.Document{CandidateID: f.candidate.ID, DocType: models.DocumentTypePassport, URL: "https://cdn.example.com/p.jpg", Verified: false}
	require.NoError(t, f.documents.Upsert(context.Background(), &document))

	verifier := &verifierStub{verdict: ai.Verdict{
		Verified:      true,
		Message:       "Passport verified! Name: Amina Yusuf, Expires: 2031-04-02",
		ExtractedData: map[string]interface{}{"isValid": true, "nameMatches": true},
	}}
	svc := f.service(verifier, redisClient)

	// warm the cache, then expect re-verification to drop it
	_, err = svc.ListStatus(context.Background())
	require.NoError(t, err)
	require.True(t, server.Exists("wu:admin:document-status"))

	resp, err := svc.Reverify(context.Background(), document.ID)
	require.NoError(t, err)
	require.True(t, resp.Verified)
	require.Equal(t, "https://cdn.example.com/p.jpg", resp.URL)

	require.Len(t, verifier.inputs, 1)
	require.Equal(t, "Amina Yusuf", verifier.inputs[0].ClaimedName)
	require.Equal(t, "passport", verifier.inputs[0].DocumentType)

	stored, err := f.documents.GetByID(context.Background(), document.ID)
	require.NoError(t, err)
	require.True(t, stored.Verified)

	requirement, err := f.requirements.GetByCandidate(context.Background(), f.candidate.ID)
	require.NoError(t, err)
	require.True(t, requirement.PassportVerified)

	require.False(t, server.Exists("wu:admin:document-status"))
}
