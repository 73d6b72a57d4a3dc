package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/requestdata"
	"github.com/coralab/coralab-backend/internal/types"
)

func TestUserServiceDeleteCascades(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	tokenRepo := repos.NewUserTokenRepo(db, log)
	memberRepo := repos.NewMemberRepo(db, log)
	researchRepo := repos.NewResearchRepo(db, log)
	progressRepo := repos.NewResearchProgressRepo(db, log)
	pubRepo := repos.NewPublicationRepo(db, log)
	lecturerRepo := repos.NewLecturerRepo(db, log)
	expertiseRepo := repos.NewMemberExpertiseRepo(db, log)
	svc := NewUserService(db, log, userRepo, tokenRepo, memberRepo, researchRepo, progressRepo, pubRepo, lecturerRepo, testStorage(t))

	users, err := userRepo.Create(context.Background(), db, []*types.User{
		{
			ID:       uuid.New(),
			Name:     "Root",
			Email:    "root-cascade@example.org",
			Password: "hashed",
			Role:     types.RoleSuperadmin,
		},
		{
			ID:       uuid.New(),
			Name:     "Departing Admin",
			Email:    "departing@example.org",
			Password: "hashed",
			Role:     types.RoleAdmin,
		},
	})
	if err != nil {
		t.Fatalf("create users: %v", err)
	}
	actor, target := users[0], users[1]
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: actor.ID,
		Role:   actor.Role,
	})

	research, err := researchRepo.Create(ctx, db, &types.Research{
		ID:     uuid.New(),
		UserID: target.ID,
		Title:  types.LocalizedText{ID: "Pemetaan Karang", EN: "Coral Mapping"},
	})
	if err != nil {
		t.Fatalf("create research: %v", err)
	}
	progress, err := progressRepo.Create(ctx, db, &types.ResearchProgress{
		ID:         uuid.New(),
		ResearchID: research.ID,
		Title:      types.LocalizedText{ID: "Survei Awal", EN: "Initial Survey"},
	})
	if err != nil {
		t.Fatalf("create progress: %v", err)
	}
	if _, err := pubRepo.Create(ctx, db, &types.Publication{
		ID:         uuid.New(),
		ResearchID: &research.ID,
		Title:      "Mapping Results",
		Authors:    "Budi",
		Year:       2024,
	}); err != nil {
		t.Fatalf("create publication: %v", err)
	}

	expertise, err := expertiseRepo.Create(ctx, db, &types.MemberExpertise{
		ID:   uuid.New(),
		Name: types.LocalizedText{ID: "Oseanografi", EN: "Oceanography"},
	})
	if err != nil {
		t.Fatalf("create expertise: %v", err)
	}
	member, err := memberRepo.Create(ctx, db, &types.Member{
		ID:     uuid.New(),
		UserID: &target.ID,
		Name:   "Departing Admin",
		Role:   "Lead",
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := memberRepo.AttachExpertise(ctx, db, member.ID, []uuid.UUID{expertise.ID}); err != nil {
		t.Fatalf("attach expertise: %v", err)
	}
	if err := memberRepo.CreateEducations(ctx, db, []*types.MemberEducation{{
		ID:          uuid.New(),
		MemberID:    member.ID,
		Degree:      "MSc",
		Institution: "IPB",
		Year:        2015,
	}}); err != nil {
		t.Fatalf("create education: %v", err)
	}
	if err := researchRepo.ReplaceMembers(ctx, db, research.ID, []*types.ResearchMember{{
		ResearchID:    research.ID,
		MemberID:      member.ID,
		IsCoordinator: true,
	}}); err != nil {
		t.Fatalf("attach research member: %v", err)
	}

	if _, err := lecturerRepo.Create(ctx, db, &types.Lecturer{
		ID:     uuid.New(),
		UserID: target.ID,
		Title:  "Intro to Reef Ecology",
	}); err != nil {
		t.Fatalf("create lecturer material: %v", err)
	}
	if _, err := tokenRepo.Create(ctx, db, []*types.UserToken{{
		ID:           uuid.New(),
		UserID:       target.ID,
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}}); err != nil {
		t.Fatalf("create token: %v", err)
	}

	if err := svc.Delete(ctx, target.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if remaining, err := userRepo.GetByIDs(ctx, db, []uuid.UUID{target.ID}); err != nil || len(remaining) != 0 {
		t.Fatalf("expected user gone, got %+v (err %v)", remaining, err)
	}
	if researches, err := researchRepo.ListByUserID(ctx, db, target.ID); err != nil || len(researches) != 0 {
		t.Fatalf("expected research gone, got %d (err %v)", len(researches), err)
	}
	if progresses, err := progressRepo.ListByResearchID(ctx, db, research.ID); err != nil || len(progresses) != 0 {
		t.Fatalf("expected progress %s gone, got %d (err %v)", progress.ID, len(progresses), err)
	}
	if pub, err := pubRepo.GetByResearchID(ctx, db, research.ID); err != nil || pub != nil {
		t.Fatalf("expected publication gone, got %+v (err %v)", pub, err)
	}
	if count, err := researchRepo.CountMembersByResearchID(ctx, db, research.ID); err != nil || count != 0 {
		t.Fatalf("expected team pivots gone, got %d (err %v)", count, err)
	}
	if members, err := memberRepo.ListByUserID(ctx, db, target.ID); err != nil || len(members) != 0 {
		t.Fatalf("expected member profile gone, got %d (err %v)", len(members), err)
	}
	if count, err := memberRepo.CountExpertiseLinksByMemberID(ctx, db, member.ID); err != nil || count != 0 {
		t.Fatalf("expected expertise links gone, got %d (err %v)", count, err)
	}
	if count, err := memberRepo.CountEducationsByMemberID(ctx, db, member.ID); err != nil || count != 0 {
		t.Fatalf("expected educations gone, got %d (err %v)", count, err)
	}
	if lecturers, err := lecturerRepo.ListByUserID(ctx, db, target.ID); err != nil || len(lecturers) != 0 {
		t.Fatalf("expected lecturer materials gone, got %d (err %v)", len(lecturers), err)
	}
	if tokens, err := tokenRepo.GetByUserIDs(ctx, db, []uuid.UUID{target.ID}); err != nil || len(tokens) != 0 {
		t.Fatalf("expected sessions gone, got %d (err %v)", len(tokens), err)
	}

	// The shared expertise catalog entry survives its members.
	if catalog, err := expertiseRepo.GetByIDs(ctx, db, []uuid.UUID{expertise.ID}); err != nil || len(catalog) != 1 {
		t.Fatalf("expected expertise catalog entry kept, got %d (err %v)", len(catalog), err)
	}
}

func TestUserServiceDeleteRequiresSuperadmin(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	svc := NewUserService(db, log, userRepo,
		repos.NewUserTokenRepo(db, log),
		repos.NewMemberRepo(db, log),
		repos.NewResearchRepo(db, log),
		repos.NewResearchProgressRepo(db, log),
		repos.NewPublicationRepo(db, log),
		repos.NewLecturerRepo(db, log),
		testStorage(t))

	users, err := userRepo.Create(context.Background(), db, []*types.User{{
		ID:       uuid.New(),
		Name:     "Plain Admin",
		Email:    "plain-admin@example.org",
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: users[0].ID,
		Role:   types.RoleAdmin,
	})
	if err := svc.Delete(ctx, users[0].ID); err == nil {
		t.Fatal("expected non-superadmin delete to be rejected")
	}

	if remaining, err := userRepo.GetByIDs(context.Background(), db, []uuid.UUID{users[0].ID}); err != nil || len(remaining) != 1 {
		t.Fatalf("expected user kept, got %d (err %v)", len(remaining), err)
	}
}
