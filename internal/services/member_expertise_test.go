package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/types"
)

func TestMemberExpertiseServiceDeleteDetachesMembers(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	expertiseRepo := repos.NewMemberExpertiseRepo(db, log)
	memberRepo := repos.NewMemberRepo(db, log)
	svc := NewMemberExpertiseService(db, log, expertiseRepo)
	ctx := context.Background()

	expertise, err := expertiseRepo.Create(ctx, db, &types.MemberExpertise{
		ID:   uuid.New(),
		Name: types.LocalizedText{ID: "Ekologi Laut", EN: "Marine Ecology"},
	})
	if err != nil {
		t.Fatalf("create expertise: %v", err)
	}
	member, err := memberRepo.Create(ctx, db, &types.Member{
		ID:   uuid.New(),
		Name: "Siti",
		Role: "Researcher",
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := memberRepo.AttachExpertise(ctx, db, member.ID, []uuid.UUID{expertise.ID}); err != nil {
		t.Fatalf("attach expertise: %v", err)
	}

	if err := svc.Delete(ctx, expertise.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	count, err := memberRepo.CountExpertiseLinksByMemberID(ctx, db, member.ID)
	if err != nil {
		t.Fatalf("count links: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected member links removed with the expertise, got %d", count)
	}

	remaining, err := expertiseRepo.GetByIDs(ctx, db, []uuid.UUID{expertise.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected expertise gone, got %+v", remaining)
	}
}
