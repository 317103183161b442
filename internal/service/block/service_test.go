package block

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
)

// fakeBlockRepo mimics the pair-uniqueness behavior of the real table
type fakeBlockRepo struct {
	edges map[[2]int64]bool
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{edges: map[[2]int64]bool{}}
}

func (f *fakeBlockRepo) Blocks(_ context.Context, blocker, blocked int64) (bool, error) {
	return f.edges[[2]int64{blocker, blocked}], nil
}

func (f *fakeBlockRepo) MutualBlock(_ context.Context, a, b int64) (bool, error) {
	return f.edges[[2]int64{a, b}] || f.edges[[2]int64{b, a}], nil
}

func (f *fakeBlockRepo) Create(_ context.Context, blocker, blocked int64) error {
	key := [2]int64{blocker, blocked}
	if f.edges[key] {
		return fmt.Errorf("block %d->%d: %w", blocker, blocked, domain.ErrConflict)
	}
	f.edges[key] = true
	return nil
}

func (f *fakeBlockRepo) Remove(_ context.Context, blocker, blocked int64) error {
	key := [2]int64{blocker, blocked}
	if !f.edges[key] {
		return fmt.Errorf("block %d->%d: %w", blocker, blocked, domain.ErrNotFound)
	}
	delete(f.edges, key)
	return nil
}

func (f *fakeBlockRepo) ListBlocking(_ context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for e := range f.edges {
		if e[0] == userID {
			ids = append(ids, e[1])
		}
	}
	return ids, nil
}

func (f *fakeBlockRepo) ListBlockedBy(_ context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for e := range f.edges {
		if e[1] == userID {
			ids = append(ids, e[0])
		}
	}
	return ids, nil
}

func (f *fakeBlockRepo) BlockedSet(_ context.Context, userID int64) (map[int64]struct{}, error) {
	set := map[int64]struct{}{}
	for e := range f.edges {
		if e[0] == userID {
			set[e[1]] = struct{}{}
		}
		if e[1] == userID {
			set[e[0]] = struct{}{}
		}
	}
	return set, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBlockSelf(t *testing.T) {
	svc := NewService(newFakeBlockRepo(), testLogger())

	err := svc.Block(context.Background(), &models.Actor{ID: 1}, 1)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("self block: got %v, want validation error", err)
	}
}

func TestBlockTwice(t *testing.T) {
	repo := newFakeBlockRepo()
	svc := NewService(repo, testLogger())
	a := &models.Actor{ID: 1}

	if err := svc.Block(context.Background(), a, 2); err != nil {
		t.Fatalf("first block: %v", err)
	}
	err := svc.Block(context.Background(), a, 2)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second block: got %v, want conflict", err)
	}

	// The edge survives the failed duplicate
	if !repo.edges[[2]int64{1, 2}] {
		t.Error("edge was corrupted by duplicate block")
	}
}

func TestUnblockAbsent(t *testing.T) {
	repo := newFakeBlockRepo()
	svc := NewService(repo, testLogger())
	a := &models.Actor{ID: 1}

	err := svc.Unblock(context.Background(), a, 2)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("unblock absent: got %v, want conflict", err)
	}
}

func TestBlockUnblockRoundTrip(t *testing.T) {
	repo := newFakeBlockRepo()
	svc := NewService(repo, testLogger())
	a := &models.Actor{ID: 1}
	ctx := context.Background()

	if err := svc.Block(ctx, a, 2); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := svc.Block(ctx, a, 3); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := svc.Unblock(ctx, a, 2); err != nil {
		t.Fatalf("unblock: %v", err)
	}

	// Removing one edge leaves the other intact
	ids, err := svc.ListBlocking(ctx, a)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 1 || ids[0] != 3 {
		t.Errorf("blocking ids = %v, want [3]", ids)
	}

	// Storage stays directed: blocking 1->3 implies nothing for 3->1
	if blocking, _ := svc.IsBlocking(ctx, &models.Actor{ID: 3}, 1); blocking {
		t.Error("reverse direction should not exist")
	}
}
