package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/workers-united/verify-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Candidate{}, &models.Document{}, &models.DocumentRequirement{}))
	return db
}

func TestCandidateRepositoryCreateLowercasesEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	candidate := models.Candidate{Name: "Amina Yusuf", Email: "  Amina.Yusuf@Example.COM "}
	require.NoError(t, repo.Create(context.Background(), &candidate))
	require.Equal(t, "amina.yusuf@example.com", candidate.Email)
}

func TestCandidateRepositoryGetByEmailIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	candidate := models.Candidate{Name: "Amina Yusuf", Email: "amina@example.com", Status: models.CandidateStatusNew}
	require.NoError(t, repo.Create(context.Background(), &candidate))

	found, err := repo.GetByEmail(context.Background(), "AMINA@Example.com")
	require.NoError(t, err)
	require.Equal(t, candidate.ID, found.ID)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCandidateRepositoryUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCandidateRepository(db)

	candidate := models.Candidate{Name: "Amina Yusuf", Email: "amina@example.com", Status: models.CandidateStatusNew}
	require.NoError(t, repo.Create(context.Background(), &candidate))

	require.NoError(t, repo.UpdateStatus(context.Background(), candidate.ID, models.CandidateStatusApproved))

	found, err := repo.GetByID(context.Background(), candidate.ID)
	require.NoError(t, err)
	require.Equal(t, models.CandidateStatusApproved, found.Status)

	err = repo.UpdateStatus(context.Background(), 9999, models.CandidateStatusApproved)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
