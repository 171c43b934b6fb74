package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Aakib-hotelwala/Job-Tracker/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "create@example.com")
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	byID, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "create@example.com" {
		t.Fatalf("expected email create@example.com, got %s", byID.Email)
	}

	byEmail, err := db.Users().GetByEmail(ctx, "create@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, byEmail.ID)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "dup@example.com")

	err := db.Users().Create(ctx, &domain.User{
		Name:         "Other",
		Email:        "dup@example.com",
		PasswordHash: "hash",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.Users().GetByID(ctx, 12345); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := db.Users().GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByEmail: expected ErrNotFound, got %v", err)
	}
}
