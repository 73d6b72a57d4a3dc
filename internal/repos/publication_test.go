package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/types"
)

func TestPublicationRepoGetByResearchID(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	pubRepo := NewPublicationRepo(db, log)
	researchRepo := NewResearchRepo(db, log)
	userRepo := NewUserRepo(db, log)
	ctx := context.Background()

	users, err := userRepo.Create(ctx, db, []*types.User{{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin-pub@example.org",
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	research, err := researchRepo.Create(ctx, db, &types.Research{
		ID:     uuid.New(),
		UserID: users[0].ID,
		Title:  types.LocalizedText{ID: "Karang Purba", EN: "Ancient Coral"},
	})
	if err != nil {
		t.Fatalf("create research: %v", err)
	}

	got, err := pubRepo.GetByResearchID(ctx, db, research.ID)
	if err != nil {
		t.Fatalf("GetByResearchID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil before publication exists, got %+v", got)
	}

	if _, err := pubRepo.Create(ctx, db, &types.Publication{
		ID:         uuid.New(),
		ResearchID: &research.ID,
		Title:      "Coral Findings",
		Authors:    "Budi, Siti",
		Year:       2024,
	}); err != nil {
		t.Fatalf("create publication: %v", err)
	}

	got, err = pubRepo.GetByResearchID(ctx, db, research.ID)
	if err != nil {
		t.Fatalf("GetByResearchID: %v", err)
	}
	if got == nil || got.Title != "Coral Findings" {
		t.Fatalf("publication not found by research: %+v", got)
	}
}

func TestResearchRepoListByYear(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	researchRepo := NewResearchRepo(db, log)
	userRepo := NewUserRepo(db, log)
	ctx := context.Background()

	users, err := userRepo.Create(ctx, db, []*types.User{{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin-year@example.org",
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	for year, title := range map[int]string{2022: "Lama", 2024: "Baru"} {
		start := time.Date(year, 3, 1, 0, 0, 0, 0, time.UTC)
		if _, err := researchRepo.Create(ctx, db, &types.Research{
			ID:        uuid.New(),
			UserID:    users[0].ID,
			Title:     types.LocalizedText{ID: title, EN: title},
			StartDate: &start,
		}); err != nil {
			t.Fatalf("create research %d: %v", year, err)
		}
	}

	got, err := researchRepo.ListByYear(ctx, db, 2024)
	if err != nil {
		t.Fatalf("ListByYear: %v", err)
	}
	if len(got) != 1 || got[0].Title.ID != "Baru" {
		t.Fatalf("year filter wrong: %+v", got)
	}
}

func TestResearchRepoReplaceMembers(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	researchRepo := NewResearchRepo(db, log)
	memberRepo := NewMemberRepo(db, log)
	userRepo := NewUserRepo(db, log)
	ctx := context.Background()

	users, err := userRepo.Create(ctx, db, []*types.User{{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin-team@example.org",
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	research, err := researchRepo.Create(ctx, db, &types.Research{
		ID:     uuid.New(),
		UserID: users[0].ID,
		Title:  types.LocalizedText{ID: "Terumbu", EN: "Reef"},
	})
	if err != nil {
		t.Fatalf("create research: %v", err)
	}

	var memberIDs []uuid.UUID
	for _, name := range []string{"Budi", "Siti"} {
		m, err := memberRepo.Create(ctx, db, &types.Member{ID: uuid.New(), Name: name})
		if err != nil {
			t.Fatalf("create member %s: %v", name, err)
		}
		memberIDs = append(memberIDs, m.ID)
	}

	if err := researchRepo.ReplaceMembers(ctx, db, research.ID, []*types.ResearchMember{
		{ResearchID: research.ID, MemberID: memberIDs[0], IsCoordinator: true},
		{ResearchID: research.ID, MemberID: memberIDs[1]},
	}); err != nil {
		t.Fatalf("replace members: %v", err)
	}
	count, err := researchRepo.CountMembersByResearchID(ctx, db, research.ID)
	if err != nil {
		t.Fatalf("count members: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 member rows, got %d", count)
	}

	// Replace overwrites the whole team, it never appends.
	if err := researchRepo.ReplaceMembers(ctx, db, research.ID, []*types.ResearchMember{
		{ResearchID: research.ID, MemberID: memberIDs[1], IsCoordinator: true},
	}); err != nil {
		t.Fatalf("replace members again: %v", err)
	}
	count, err = researchRepo.CountMembersByResearchID(ctx, db, research.ID)
	if err != nil {
		t.Fatalf("count members: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 member row after replace, got %d", count)
	}
}

func TestPublicationRepoRecreateAfterDelete(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	pubRepo := NewPublicationRepo(db, log)
	researchRepo := NewResearchRepo(db, log)
	userRepo := NewUserRepo(db, log)
	ctx := context.Background()

	users, err := userRepo.Create(ctx, db, []*types.User{{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin-recreate@example.org",
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	research, err := researchRepo.Create(ctx, db, &types.Research{
		ID:     uuid.New(),
		UserID: users[0].ID,
		Title:  types.LocalizedText{ID: "Restorasi Terumbu", EN: "Reef Restoration"},
	})
	if err != nil {
		t.Fatalf("create research: %v", err)
	}

	first, err := pubRepo.Create(ctx, db, &types.Publication{
		ID:         uuid.New(),
		ResearchID: &research.ID,
		Title:      "First Edition",
		Authors:    "Budi",
		Year:       2023,
	})
	if err != nil {
		t.Fatalf("create first publication: %v", err)
	}
	if err := pubRepo.Delete(ctx, db, first.ID); err != nil {
		t.Fatalf("delete first publication: %v", err)
	}

	// The retired row keeps its research_id; the live-row index must not
	// block the replacement.
	second, err := pubRepo.Create(ctx, db, &types.Publication{
		ID:         uuid.New(),
		ResearchID: &research.ID,
		Title:      "Second Edition",
		Authors:    "Budi, Siti",
		Year:       2024,
	})
	if err != nil {
		t.Fatalf("create replacement publication: %v", err)
	}

	got, err := pubRepo.GetByResearchID(ctx, db, research.ID)
	if err != nil {
		t.Fatalf("GetByResearchID: %v", err)
	}
	if got == nil || got.ID != second.ID {
		t.Fatalf("expected replacement publication, got %+v", got)
	}
}
