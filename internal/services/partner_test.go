package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/types"
)

func TestPartnerServiceDeleteRemovesResearchPivots(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	partnerRepo := repos.NewPartnerRepo(db, log)
	researchRepo := repos.NewResearchRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	svc := NewPartnerService(db, log, partnerRepo)
	ctx := context.Background()

	users, err := userRepo.Create(ctx, db, []*types.User{{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin-partner@example.org",
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	research, err := researchRepo.Create(ctx, db, &types.Research{
		ID:     uuid.New(),
		UserID: users[0].ID,
		Title:  types.LocalizedText{ID: "Padang Lamun", EN: "Seagrass Meadows"},
	})
	if err != nil {
		t.Fatalf("create research: %v", err)
	}
	partner, err := partnerRepo.Create(ctx, db, &types.Partner{
		ID:   uuid.New(),
		Name: "Ocean Institute",
	})
	if err != nil {
		t.Fatalf("create partner: %v", err)
	}
	if err := researchRepo.ReplacePartners(ctx, db, research.ID, []uuid.UUID{partner.ID}); err != nil {
		t.Fatalf("attach partner: %v", err)
	}
	if _, err := partnerRepo.CreateMember(ctx, db, &types.PartnerMember{
		ID:        uuid.New(),
		PartnerID: partner.ID,
		Name:      "Dewi",
		Role:      "Liaison",
	}); err != nil {
		t.Fatalf("create partner member: %v", err)
	}

	if err := svc.Delete(ctx, partner.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	gone, err := partnerRepo.GetByID(ctx, db, partner.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected partner gone, got %+v", gone)
	}

	reloaded, err := researchRepo.GetByID(ctx, db, research.ID)
	if err != nil {
		t.Fatalf("reload research: %v", err)
	}
	if len(reloaded.Partners) != 0 {
		t.Fatalf("expected research partner pivots removed, got %d", len(reloaded.Partners))
	}
}
