package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/types"
)

func TestAboutRepoGetReturnsNilWhenUnseeded(t *testing.T) {
	db := testDB(t)
	repo := NewAboutRepo(db, testLogger(t))

	about, err := repo.Get(context.Background(), db)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if about != nil {
		t.Fatalf("expected nil for unseeded table, got %+v", about)
	}
}

func TestAboutRepoCreateAndUpdate(t *testing.T) {
	db := testDB(t)
	repo := NewAboutRepo(db, testLogger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, db, &types.About{
		ID: uuid.New(),
		Description: types.LocalizedText{
			ID: "Kelompok riset kelautan",
			EN: "Marine research group",
		},
		Email: "info@example.org",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Email = "kontak@example.org"
	if err := repo.Update(ctx, db, created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, db)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Email != "kontak@example.org" {
		t.Fatalf("update not visible: %+v", got)
	}
	if got.Description.ID != "Kelompok riset kelautan" {
		t.Errorf("untouched field changed: %q", got.Description.ID)
	}
}
