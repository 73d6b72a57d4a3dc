package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/types"
)

func TestUserRepoEmailReusableAfterDelete(t *testing.T) {
	db := testDB(t)
	log := testLogger(t)
	userRepo := NewUserRepo(db, log)
	ctx := context.Background()

	const email = "rotating-admin@example.org"
	users, err := userRepo.Create(ctx, db, []*types.User{{
		ID:       uuid.New(),
		Name:     "Old Admin",
		Email:    email,
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := userRepo.Delete(ctx, db, users[0].ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	exists, err := userRepo.EmailExists(ctx, db, email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if exists {
		t.Fatal("email still reported as taken after delete")
	}

	// The retired account keeps its email; only live rows are unique.
	replacement, err := userRepo.Create(ctx, db, []*types.User{{
		ID:       uuid.New(),
		Name:     "New Admin",
		Email:    email,
		Password: "hashed",
		Role:     types.RoleAdmin,
	}})
	if err != nil {
		t.Fatalf("create replacement user: %v", err)
	}

	got, err := userRepo.GetByIDs(ctx, db, []uuid.UUID{replacement[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Email != email {
		t.Fatalf("expected replacement user with reused email, got %+v", got)
	}
}
