package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/techblitz/techblitz-backend/internal/repos"
	"github.com/techblitz/techblitz-backend/internal/repos/testutil"
)

func TestGetDailyStreak(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "streak@test.dev")
	testutil.SeedStreak(t, ctx, tx, user.ID, 4, 12)

	log := testutil.Logger(t)
	svc := NewUserService(tx, log, repos.NewUserRepo(tx, log))

	streak, err := svc.GetDailyStreak(ctx, user.ID)
	if err != nil {
		t.Fatalf("daily streak: %v", err)
	}
	if streak.CurrentStreak != 4 || streak.LongestStreak != 12 {
		t.Fatalf("expected streak 4/12, got %d/%d", streak.CurrentStreak, streak.LongestStreak)
	}
}

func TestGetDailyStreakWithoutStreakRow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "no-streak@test.dev")

	log := testutil.Logger(t)
	svc := NewUserService(tx, log, repos.NewUserRepo(tx, log))

	streak, err := svc.GetDailyStreak(ctx, user.ID)
	if err != nil {
		t.Fatalf("daily streak: %v", err)
	}
	if streak.CurrentStreak != 0 || streak.LongestStreak != 0 {
		t.Fatalf("expected zero streak, got %d/%d", streak.CurrentStreak, streak.LongestStreak)
	}
}

func TestGetDailyStreakUnknownUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	log := testutil.Logger(t)
	svc := NewUserService(tx, log, repos.NewUserRepo(tx, log))

	_, err := svc.GetDailyStreak(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
