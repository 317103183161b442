package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/policy"
)

type fakeGalleryRepo struct {
	galleries map[int64]*models.Gallery
	nextID    int64
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{galleries: map[int64]*models.Gallery{}, nextID: 1}
}

func (f *fakeGalleryRepo) Create(_ context.Context, g *models.Gallery) error {
	g.ID = f.nextID
	f.nextID++
	cp := *g
	f.galleries[g.ID] = &cp
	return nil
}

func (f *fakeGalleryRepo) GetByID(_ context.Context, id int64) (*models.Gallery, error) {
	g, ok := f.galleries[id]
	if !ok {
		return nil, fmt.Errorf("gallery %d: %w", id, domain.ErrNotFound)
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGalleryRepo) ListByUser(_ context.Context, userID int64) ([]models.Gallery, error) {
	out := []models.Gallery{}
	for _, g := range f.galleries {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGalleryRepo) ListPublic(_ context.Context, limit, offset int) ([]models.Gallery, error) {
	out := []models.Gallery{}
	for _, g := range f.galleries {
		if g.Visibility {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []models.Gallery{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeGalleryRepo) Update(_ context.Context, g *models.Gallery) error {
	if _, ok := f.galleries[g.ID]; !ok {
		return fmt.Errorf("gallery %d: %w", g.ID, domain.ErrNotFound)
	}
	cp := *g
	f.galleries[g.ID] = &cp
	return nil
}

func (f *fakeGalleryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.galleries[id]; !ok {
		return fmt.Errorf("gallery %d: %w", id, domain.ErrNotFound)
	}
	delete(f.galleries, id)
	return nil
}

type fakeBlocks struct {
	edges map[[2]int64]bool
}

func (f *fakeBlocks) MutualBlock(_ context.Context, a, b int64) (bool, error) {
	return f.edges[[2]int64{a, b}] || f.edges[[2]int64{b, a}], nil
}

func (f *fakeBlocks) BlockedSet(_ context.Context, a int64) (map[int64]struct{}, error) {
	set := map[int64]struct{}{}
	for edge := range f.edges {
		if edge[0] == a {
			set[edge[1]] = struct{}{}
		}
		if edge[1] == a {
			set[edge[0]] = struct{}{}
		}
	}
	return set, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func client(id int64) *models.Actor { return &models.Actor{ID: id, Role: models.RoleClient} }

func seedGallery(t *testing.T, svc *Service, owner int64, visible bool) *models.Gallery {
	t.Helper()
	g, err := svc.Create(context.Background(), client(owner), &CreateRequest{
		Name:       fmt.Sprintf("gallery of %d", owner),
		ModelData:  "{}",
		Visibility: visible,
	})
	if err != nil {
		t.Fatalf("seed gallery: %v", err)
	}
	return g
}

func TestGetDenialsShareOneDescription(t *testing.T) {
	repo := newFakeGalleryRepo()
	blocks := &fakeBlocks{edges: map[[2]int64]bool{{1, 2}: true}}
	svc := NewService(repo, policy.NewEngine(blocks), testLogger())
	ctx := context.Background()

	private := seedGallery(t, svc, 3, false)
	byBlocked := seedGallery(t, svc, 2, true)

	// Private to a third party, and public but block-hidden, must be
	// indistinguishable to the requester.
	var descriptions []string
	for _, id := range []int64{private.ID, byBlocked.ID} {
		_, err := svc.Get(ctx, client(1), id)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("gallery %d: got %v, want forbidden", id, err)
		}
		var httpErr domain.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("gallery %d: error %v lacks a status", id, err)
		}
		descriptions = append(descriptions, httpErr.Error())
	}
	if descriptions[0] != descriptions[1] || descriptions[0] != domain.DeniedDescription {
		t.Errorf("denial texts differ: %q vs %q", descriptions[0], descriptions[1])
	}

	// Owner and admin bypass both rules
	if _, err := svc.Get(ctx, client(3), private.ID); err != nil {
		t.Errorf("owner read of private gallery: %v", err)
	}
	if _, err := svc.Get(ctx, &models.Actor{ID: 99, Role: models.RoleAdmin}, byBlocked.ID); err != nil {
		t.Errorf("admin read of block-hidden gallery: %v", err)
	}
}

func TestListForUser(t *testing.T) {
	repo := newFakeGalleryRepo()
	svc := NewService(repo, policy.NewEngine(&fakeBlocks{edges: map[[2]int64]bool{}}), testLogger())
	ctx := context.Background()

	pub := seedGallery(t, svc, 3, true)
	priv := seedGallery(t, svc, 3, false)

	asOwner, err := svc.ListForUser(ctx, client(3), 3)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(asOwner) != 2 {
		t.Errorf("owner sees %d galleries, want 2", len(asOwner))
	}

	asVisitor, err := svc.ListForUser(ctx, client(1), 3)
	if err != nil {
		t.Fatalf("visitor list: %v", err)
	}
	if len(asVisitor) != 1 || asVisitor[0].ID != pub.ID {
		t.Errorf("visitor sees %v, want only gallery %d", asVisitor, pub.ID)
	}
	for _, g := range asVisitor {
		if g.ID == priv.ID {
			t.Error("private gallery leaked to visitor")
		}
	}
}

func TestListPublicFiltersBlockedOwners(t *testing.T) {
	repo := newFakeGalleryRepo()
	blocks := &fakeBlocks{edges: map[[2]int64]bool{{2, 1}: true}}
	svc := NewService(repo, policy.NewEngine(blocks), testLogger())
	ctx := context.Background()

	mine := seedGallery(t, svc, 1, true)
	theirs := seedGallery(t, svc, 2, true)

	// User 2 blocks user 1; the feed hides user 2's gallery from user 1
	// even though user 1 did not create the edge.
	feed, err := svc.ListPublic(ctx, client(1), 50, 0)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != mine.ID {
		t.Errorf("feed = %v, want only gallery %d", feed, mine.ID)
	}

	// Admin feed is unfiltered
	adminFeed, err := svc.ListPublic(ctx, &models.Actor{ID: 99, Role: models.RoleAdmin}, 50, 0)
	if err != nil {
		t.Fatalf("admin list public: %v", err)
	}
	if len(adminFeed) != 2 || adminFeed[1].ID != theirs.ID {
		t.Errorf("admin feed = %v, want both galleries", adminFeed)
	}
}

func TestUpdateOwnership(t *testing.T) {
	repo := newFakeGalleryRepo()
	svc := NewService(repo, policy.NewEngine(&fakeBlocks{edges: map[[2]int64]bool{}}), testLogger())
	ctx := context.Background()

	g := seedGallery(t, svc, 3, true)
	name := "renamed"

	if _, err := svc.Update(ctx, client(1), g.ID, &UpdateRequest{Name: &name}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("third-party update: got %v, want forbidden", err)
	}

	updated, err := svc.Update(ctx, client(3), g.ID, &UpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("name = %q, want %q", updated.Name, "renamed")
	}
	if updated.ModelData != g.ModelData {
		t.Errorf("untouched field changed: %q", updated.ModelData)
	}

	if err := svc.Delete(ctx, client(1), g.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("third-party delete: got %v, want forbidden", err)
	}
	if err := svc.Delete(ctx, client(3), g.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
	if _, err := svc.Get(ctx, client(3), g.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get after delete: got %v, want not found", err)
	}
}
