package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/apierr"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/types"
)

func TestPublicationServiceRejectsSecondForSameResearch(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	pubRepo := repos.NewPublicationRepo(db, log)
	researchRepo := repos.NewResearchRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	svc := NewPublicationService(db, log, pubRepo, researchRepo)
	ctx := context.Background()

	users, err := userRepo.Create(ctx, db, []*types.User{{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin-conflict@example.org",
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	research, err := researchRepo.Create(ctx, db, &types.Research{
		ID:     uuid.New(),
		UserID: users[0].ID,
		Title:  types.LocalizedText{ID: "Mangrove Pesisir", EN: "Coastal Mangroves"},
	})
	if err != nil {
		t.Fatalf("create research: %v", err)
	}

	first, err := svc.Create(ctx, PublicationInput{
		ResearchID: &research.ID,
		Title:      "Mangrove Findings",
		Authors:    "Budi",
		Year:       2024,
	})
	if err != nil {
		t.Fatalf("create first publication: %v", err)
	}

	_, err = svc.Create(ctx, PublicationInput{
		ResearchID: &research.ID,
		Title:      "Duplicate Findings",
		Authors:    "Siti",
		Year:       2025,
	})
	if err == nil {
		t.Fatal("expected second publication for the same research to be rejected")
	}
	apiErr := apierr.From(err)
	if apiErr.Status != http.StatusConflict || apiErr.Code != "conflict" {
		t.Fatalf("expected 409 conflict, got status=%d code=%q", apiErr.Status, apiErr.Code)
	}

	// The rejection must not touch the original row.
	got, err := pubRepo.GetByResearchID(ctx, db, research.ID)
	if err != nil {
		t.Fatalf("GetByResearchID: %v", err)
	}
	if got == nil || got.ID != first.ID || got.Title != "Mangrove Findings" {
		t.Fatalf("expected original publication untouched, got %+v", got)
	}
}
