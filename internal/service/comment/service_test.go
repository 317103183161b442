package comment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/policy"
)

type fakeGalleryRepo struct {
	galleries map[int64]*models.Gallery
}

func (f *fakeGalleryRepo) Create(_ context.Context, g *models.Gallery) error {
	f.galleries[g.ID] = g
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

func (f *fakeGalleryRepo) ListByUser(context.Context, int64) ([]models.Gallery, error) {
	return nil, nil
}

func (f *fakeGalleryRepo) ListPublic(context.Context, int, int) ([]models.Gallery, error) {
	return nil, nil
}

func (f *fakeGalleryRepo) Update(_ context.Context, g *models.Gallery) error {
	f.galleries[g.ID] = g
	return nil
}

func (f *fakeGalleryRepo) Delete(_ context.Context, id int64) error {
	delete(f.galleries, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func (f *fakeCommentRepo) Create(_ context.Context, c *models.Comment) error {
	c.ID = f.nextID
	f.nextID++
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ListByGallery(_ context.Context, galleryID int64) ([]models.Comment, error) {
	out := []models.Comment{}
	for id := int64(1); id < f.nextID; id++ {
		c, ok := f.comments[id]
		if !ok || c.GalleryID != galleryID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, c *models.Comment) error {
	if _, ok := f.comments[c.ID]; !ok {
		return fmt.Errorf("comment %d: %w", c.ID, domain.ErrNotFound)
	}
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
	}
	delete(f.comments, id)
	return nil
}

type fakeUserRepo struct {
	users map[int64]*models.User
	wall  map[int64]bool
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) WallDisplaySettings(_ context.Context, userIDs []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range userIDs {
		out[id] = f.wall[id]
	}
	return out, nil
}

// fakeBlocks stores directed edges and answers with the symmetric
// visibility semantics.
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

// feedFixture: gallery 10 owned by user 3 (public), one comment each
// from users 1, 2 and 3, and user 1 blocks user 2. User 3 has not
// opted into last name display.
func feedFixture(t *testing.T) *Service {
	t.Helper()

	galleries := &fakeGalleryRepo{galleries: map[int64]*models.Gallery{
		10: {ID: 10, UserID: 3, Name: "living room", Visibility: true},
	}}
	comments := &fakeCommentRepo{comments: map[int64]*models.Comment{}, nextID: 1}
	users := &fakeUserRepo{
		users: map[int64]*models.User{
			1: {ID: 1, Role: models.RoleClient},
			2: {ID: 2, Role: models.RoleClient},
			3: {ID: 3, Role: models.RoleClient},
		},
		wall: map[int64]bool{},
	}
	blocks := &fakeBlocks{edges: map[[2]int64]bool{
		{1, 2}: true,
	}}

	svc := NewService(comments, galleries, users, policy.NewEngine(blocks), testLogger())

	ctx := context.Background()
	for _, authorID := range []int64{1, 2, 3} {
		actor := &models.Actor{ID: authorID, Role: models.RoleClient}
		if _, err := svc.Create(ctx, actor, 10, &CreateRequest{Comment: fmt.Sprintf("comment by %d", authorID)}); err != nil {
			t.Fatalf("seed comment by %d: %v", authorID, err)
		}
	}
	for id, c := range comments.comments {
		c.AuthorFirstName = fmt.Sprintf("First%d", c.UserID)
		c.AuthorLastName = fmt.Sprintf("Last%d", c.UserID)
		comments.comments[id] = c
	}
	return svc
}

func authorSet(comments []models.Comment) map[int64]bool {
	set := map[int64]bool{}
	for _, c := range comments {
		set[c.UserID] = true
	}
	return set
}

func TestFeedExcludesBlockedPairSymmetrically(t *testing.T) {
	svc := feedFixture(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		actor       *models.Actor
		wantAuthors []int64
	}{
		{"blocker sees everything but the blocked user", &models.Actor{ID: 1, Role: models.RoleClient}, []int64{1, 3}},
		{"blocked user equally does not see the blocker", &models.Actor{ID: 2, Role: models.RoleClient}, []int64{2, 3}},
		{"uninvolved user sees all", &models.Actor{ID: 3, Role: models.RoleClient}, []int64{1, 2, 3}},
		{"admin sees all", &models.Actor{ID: 99, Role: models.RoleAdmin}, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, err := svc.ListForGallery(ctx, tt.actor, 10)
			if err != nil {
				t.Fatalf("list feed: %v", err)
			}
			got := authorSet(feed)
			if len(got) != len(tt.wantAuthors) {
				t.Fatalf("feed authors = %v, want %v", got, tt.wantAuthors)
			}
			for _, id := range tt.wantAuthors {
				if !got[id] {
					t.Errorf("feed missing comment by user %d", id)
				}
			}
		})
	}
}

func TestFeedMasksLastNames(t *testing.T) {
	svc := feedFixture(t)
	ctx := context.Background()

	t.Run("client viewer", func(t *testing.T) {
		feed, err := svc.ListForGallery(ctx, &models.Actor{ID: 1, Role: models.RoleClient}, 10)
		if err != nil {
			t.Fatalf("list feed: %v", err)
		}
		for _, c := range feed {
			switch {
			case c.UserID == 1 && c.AuthorLastName != "Last1":
				t.Errorf("viewer's own last name masked: %q", c.AuthorLastName)
			case c.UserID != 1 && c.AuthorLastName != "":
				t.Errorf("user %d last name not masked: %q", c.UserID, c.AuthorLastName)
			}
		}
	})

	t.Run("admin viewer", func(t *testing.T) {
		feed, err := svc.ListForGallery(ctx, &models.Actor{ID: 99, Role: models.RoleAdmin}, 10)
		if err != nil {
			t.Fatalf("list feed: %v", err)
		}
		for _, c := range feed {
			if c.AuthorLastName == "" {
				t.Errorf("last name masked for admin, comment by user %d", c.UserID)
			}
		}
	})
}

func TestFeedOnPrivateGallery(t *testing.T) {
	galleries := &fakeGalleryRepo{galleries: map[int64]*models.Gallery{
		10: {ID: 10, UserID: 3, Visibility: false},
	}}
	comments := &fakeCommentRepo{comments: map[int64]*models.Comment{}, nextID: 1}
	users := &fakeUserRepo{users: map[int64]*models.User{}, wall: map[int64]bool{}}
	svc := NewService(comments, galleries, users, policy.NewEngine(&fakeBlocks{edges: map[[2]int64]bool{}}), testLogger())
	ctx := context.Background()

	_, err := svc.ListForGallery(ctx, &models.Actor{ID: 1, Role: models.RoleClient}, 10)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("third party on private gallery: got %v, want forbidden", err)
	}
	var httpErr domain.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Error() != domain.DeniedDescription {
		t.Errorf("denial text = %v, want the shared denial description", err)
	}

	// Owner still reads their own feed
	if _, err := svc.ListForGallery(ctx, &models.Actor{ID: 3, Role: models.RoleClient}, 10); err != nil {
		t.Fatalf("owner on private gallery: %v", err)
	}
}

func TestCommentMutationOwnership(t *testing.T) {
	svc := feedFixture(t)
	ctx := context.Background()

	author := &models.Actor{ID: 1, Role: models.RoleClient}
	stranger := &models.Actor{ID: 3, Role: models.RoleClient}
	admin := &models.Actor{ID: 99, Role: models.RoleAdmin}

	if _, err := svc.Update(ctx, stranger, 1, &CreateRequest{Comment: "edited"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("third-party edit: got %v, want forbidden", err)
	}
	if _, err := svc.Update(ctx, author, 1, &CreateRequest{Comment: "edited"}); err != nil {
		t.Errorf("author edit: %v", err)
	}
	if err := svc.Delete(ctx, stranger, 1); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("third-party delete: got %v, want forbidden", err)
	}
	if err := svc.Delete(ctx, admin, 1); err != nil {
		t.Errorf("admin delete: %v", err)
	}
	if err := svc.Delete(ctx, author, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("delete of removed comment: got %v, want not found", err)
	}
}
