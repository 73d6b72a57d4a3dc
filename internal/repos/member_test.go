package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/types"
)

func TestMemberRepoExpertiseLifecycle(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	memberRepo := NewMemberRepo(db, log)
	expertiseRepo := NewMemberExpertiseRepo(db, log)
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
		Name: "Budi Santoso",
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	if err := memberRepo.AttachExpertise(ctx, db, member.ID, []uuid.UUID{expertise.ID}); err != nil {
		t.Fatalf("attach expertise: %v", err)
	}
	if err := memberRepo.CreateEducations(ctx, db, []*types.MemberEducation{
		{ID: uuid.New(), MemberID: member.ID, Degree: "S2 Biologi", Institution: "UI", Year: 2015},
		{ID: uuid.New(), MemberID: member.ID, Degree: "S1 Biologi", Institution: "ITB", Year: 2012},
	}); err != nil {
		t.Fatalf("create educations: %v", err)
	}

	got, err := memberRepo.GetByID(ctx, db, member.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("member not found")
	}
	if len(got.Expertises) != 1 || got.Expertises[0].Expertise == nil {
		t.Fatalf("expertise link not preloaded: %+v", got.Expertises)
	}
	if got.Expertises[0].Expertise.Name.EN != "Marine Ecology" {
		t.Errorf("wrong expertise: %q", got.Expertises[0].Expertise.Name.EN)
	}
	if len(got.Educations) != 2 {
		t.Fatalf("expected 2 education rows, got %d", len(got.Educations))
	}
	// Preload orders education rows by year ascending.
	if got.Educations[0].Year > got.Educations[1].Year {
		t.Errorf("educations out of order: %d before %d", got.Educations[0].Year, got.Educations[1].Year)
	}

	educations, err := memberRepo.ListEducationsByMemberID(ctx, db, member.ID)
	if err != nil {
		t.Fatalf("list educations: %v", err)
	}
	if len(educations) != 2 {
		t.Errorf("expected 2 education rows from list, got %d", len(educations))
	}
	eduCount, err := memberRepo.CountEducationsByMemberID(ctx, db, member.ID)
	if err != nil {
		t.Fatalf("count educations: %v", err)
	}
	if eduCount != 2 {
		t.Errorf("expected education count 2, got %d", eduCount)
	}

	if err := memberRepo.DetachExpertiseByMemberID(ctx, db, member.ID); err != nil {
		t.Fatalf("detach expertise: %v", err)
	}
	count, err := memberRepo.CountExpertiseLinksByMemberID(ctx, db, member.ID)
	if err != nil {
		t.Fatalf("count links: %v", err)
	}
	if count != 0 {
		t.Errorf("links remaining after detach: %d", count)
	}
}

func TestMemberRepoDeleteIsSoft(t *testing.T) {
	db := testDB(t)
	memberRepo := NewMemberRepo(db, testLogger(t))
	ctx := context.Background()

	member, err := memberRepo.Create(ctx, db, &types.Member{ID: uuid.New(), Name: "Siti"})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := memberRepo.Delete(ctx, db, member.ID); err != nil {
		t.Fatalf("delete member: %v", err)
	}

	got, err := memberRepo.GetByID(ctx, db, member.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Error("soft-deleted member still visible")
	}
}
