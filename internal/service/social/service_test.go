package social

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

// pair keys are {gallery or furniture id, user id}
type fakeLikeRepo struct {
	likes map[[2]int64]bool
}

func (f *fakeLikeRepo) Create(_ context.Context, galleryID, userID int64) error {
	key := [2]int64{galleryID, userID}
	if f.likes[key] {
		return fmt.Errorf("gallery %d already liked: %w", galleryID, domain.ErrConflict)
	}
	f.likes[key] = true
	return nil
}

func (f *fakeLikeRepo) Remove(_ context.Context, galleryID, userID int64) error {
	key := [2]int64{galleryID, userID}
	if !f.likes[key] {
		return fmt.Errorf("like on gallery %d: %w", galleryID, domain.ErrNotFound)
	}
	delete(f.likes, key)
	return nil
}

func (f *fakeLikeRepo) Count(_ context.Context, galleryID int64) (int, error) {
	count := 0
	for key := range f.likes {
		if key[0] == galleryID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikeRepo) Exists(_ context.Context, galleryID, userID int64) (bool, error) {
	return f.likes[[2]int64{galleryID, userID}], nil
}

type fakeFavoriteRepo struct {
	galleries    map[[2]int64]bool
	furniture    map[[2]int64]bool
	galleryStore *fakeGalleryRepo
	catalogStore *fakeCatalogRepo
}

func (f *fakeFavoriteRepo) AddGallery(_ context.Context, galleryID, userID int64) error {
	key := [2]int64{galleryID, userID}
	if f.galleries[key] {
		return fmt.Errorf("gallery %d already favorited: %w", galleryID, domain.ErrConflict)
	}
	f.galleries[key] = true
	return nil
}

func (f *fakeFavoriteRepo) RemoveGallery(_ context.Context, galleryID, userID int64) error {
	key := [2]int64{galleryID, userID}
	if !f.galleries[key] {
		return fmt.Errorf("favorite of gallery %d: %w", galleryID, domain.ErrNotFound)
	}
	delete(f.galleries, key)
	return nil
}

func (f *fakeFavoriteRepo) ListGalleries(_ context.Context, userID int64) ([]models.Gallery, error) {
	out := []models.Gallery{}
	for key := range f.galleries {
		if key[1] != userID {
			continue
		}
		if g, ok := f.galleryStore.galleries[key[0]]; ok {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeFavoriteRepo) AddFurniture(_ context.Context, furnitureID, userID int64) error {
	key := [2]int64{furnitureID, userID}
	if f.furniture[key] {
		return fmt.Errorf("furniture %d already favorited: %w", furnitureID, domain.ErrConflict)
	}
	f.furniture[key] = true
	return nil
}

func (f *fakeFavoriteRepo) RemoveFurniture(_ context.Context, furnitureID, userID int64) error {
	key := [2]int64{furnitureID, userID}
	if !f.furniture[key] {
		return fmt.Errorf("favorite of furniture %d: %w", furnitureID, domain.ErrNotFound)
	}
	delete(f.furniture, key)
	return nil
}

func (f *fakeFavoriteRepo) ListFurniture(_ context.Context, userID int64) ([]models.CatalogItem, error) {
	out := []models.CatalogItem{}
	for key := range f.furniture {
		if key[1] != userID {
			continue
		}
		if it, ok := f.catalogStore.items[key[0]]; ok {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

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

type fakeCatalogRepo struct {
	items map[int64]*models.CatalogItem
}

func (f *fakeCatalogRepo) Create(_ context.Context, item *models.CatalogItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*models.CatalogItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("catalog item %d: %w", id, domain.ErrNotFound)
	}
	cp := *it
	return &cp, nil
}

func (f *fakeCatalogRepo) GetByObjectID(_ context.Context, objectID string) (*models.CatalogItem, error) {
	for _, it := range f.items {
		if it.ObjectID == objectID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("catalog object %q: %w", objectID, domain.ErrNotFound)
}

func (f *fakeCatalogRepo) ListByCompany(context.Context, int64, bool) ([]models.CatalogItem, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, item *models.CatalogItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeCatalogRepo) SetActive(_ context.Context, id int64, active bool) error {
	if it, ok := f.items[id]; ok {
		it.Active = active
	}
	return nil
}

func (f *fakeCatalogRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
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

type fixture struct {
	svc     *Service
	blocks  *fakeBlocks
	gallery *fakeGalleryRepo
	catalog *fakeCatalogRepo
}

func newFixture() *fixture {
	galleryRepo := &fakeGalleryRepo{galleries: map[int64]*models.Gallery{}}
	catalogRepo := &fakeCatalogRepo{items: map[int64]*models.CatalogItem{}}
	likeRepo := &fakeLikeRepo{likes: map[[2]int64]bool{}}
	favoriteRepo := &fakeFavoriteRepo{
		galleries:    map[[2]int64]bool{},
		furniture:    map[[2]int64]bool{},
		galleryStore: galleryRepo,
		catalogStore: catalogRepo,
	}
	blocks := &fakeBlocks{edges: map[[2]int64]bool{}}

	svc := NewService(likeRepo, favoriteRepo, galleryRepo, catalogRepo, policy.NewEngine(blocks), testLogger())
	return &fixture{svc: svc, blocks: blocks, gallery: galleryRepo, catalog: catalogRepo}
}

func TestLikeTwice(t *testing.T) {
	f := newFixture()
	f.gallery.galleries[10] = &models.Gallery{ID: 10, UserID: 3, Visibility: true}
	ctx := context.Background()

	if err := f.svc.Like(ctx, client(1), 10); err != nil {
		t.Fatalf("first like: %v", err)
	}
	err := f.svc.Like(ctx, client(1), 10)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second like: got %v, want conflict", err)
	}

	// The failed duplicate does not disturb the count
	count, err := f.svc.LikeCount(ctx, client(1), 10)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestUnlikeAbsent(t *testing.T) {
	f := newFixture()
	f.gallery.galleries[10] = &models.Gallery{ID: 10, UserID: 3, Visibility: true}

	err := f.svc.Unlike(context.Background(), client(1), 10)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("unlike absent: got %v, want conflict", err)
	}
}

func TestHasLiked(t *testing.T) {
	f := newFixture()
	f.gallery.galleries[10] = &models.Gallery{ID: 10, UserID: 3, Visibility: true}
	ctx := context.Background()

	liked, err := f.svc.HasLiked(ctx, client(1), 10)
	if err != nil {
		t.Fatalf("has liked: %v", err)
	}
	if liked {
		t.Error("liked before any like")
	}

	if err := f.svc.Like(ctx, client(1), 10); err != nil {
		t.Fatalf("like: %v", err)
	}
	liked, err = f.svc.HasLiked(ctx, client(1), 10)
	if err != nil {
		t.Fatalf("has liked: %v", err)
	}
	if !liked {
		t.Error("like not reported")
	}

	// The check carries the gallery view gate like every other read
	f.gallery.galleries[11] = &models.Gallery{ID: 11, UserID: 3, Visibility: false}
	if _, err := f.svc.HasLiked(ctx, client(1), 11); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("private gallery: got %v, want forbidden", err)
	}
}

func TestLikeRequiresViewableGallery(t *testing.T) {
	f := newFixture()
	f.gallery.galleries[10] = &models.Gallery{ID: 10, UserID: 2, Visibility: true}
	f.blocks.edges[[2]int64{2, 1}] = true

	err := f.svc.Like(context.Background(), client(1), 10)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("like across block: got %v, want forbidden", err)
	}
}

func TestFavoriteGalleryDuplicate(t *testing.T) {
	f := newFixture()
	f.gallery.galleries[10] = &models.Gallery{ID: 10, UserID: 3, Visibility: true}
	ctx := context.Background()

	if err := f.svc.FavoriteGallery(ctx, client(1), 10); err != nil {
		t.Fatalf("first favorite: %v", err)
	}
	if err := f.svc.FavoriteGallery(ctx, client(1), 10); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate favorite: got %v, want conflict", err)
	}

	if err := f.svc.UnfavoriteGallery(ctx, client(1), 10); err != nil {
		t.Fatalf("unfavorite: %v", err)
	}
	if err := f.svc.UnfavoriteGallery(ctx, client(1), 10); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("unfavorite absent: got %v, want conflict", err)
	}
}

func TestListFavoriteGalleriesContentFiltered(t *testing.T) {
	f := newFixture()
	f.gallery.galleries[10] = &models.Gallery{ID: 10, UserID: 2, Visibility: true}
	f.gallery.galleries[11] = &models.Gallery{ID: 11, UserID: 3, Visibility: true}
	ctx := context.Background()

	for _, id := range []int64{10, 11} {
		if err := f.svc.FavoriteGallery(ctx, client(1), id); err != nil {
			t.Fatalf("favorite gallery %d: %v", id, err)
		}
	}

	// The owner of gallery 10 blocks the actor after the favorite was
	// taken; the bookmark silently disappears from the list.
	f.blocks.edges[[2]int64{2, 1}] = true

	galleries, err := f.svc.ListFavoriteGalleries(ctx, client(1))
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(galleries) != 1 || galleries[0].ID != 11 {
		t.Errorf("favorites = %v, want only gallery 11", galleries)
	}

	// Same for a favorite whose gallery has since gone private
	f.gallery.galleries[11].Visibility = false
	galleries, err = f.svc.ListFavoriteGalleries(ctx, client(1))
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(galleries) != 0 {
		t.Errorf("favorites = %v, want empty", galleries)
	}
}

func TestFavoriteFurnitureHidesInactiveItems(t *testing.T) {
	f := newFixture()
	f.catalog.items[5] = &models.CatalogItem{ID: 5, CompanyID: 7, ObjectID: "obj-5", Active: false}
	f.catalog.items[6] = &models.CatalogItem{ID: 6, CompanyID: 7, ObjectID: "obj-6", Active: true}
	ctx := context.Background()

	// An inactive item is indistinguishable from an absent one
	err := f.svc.FavoriteFurniture(ctx, client(1), 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("inactive item: got %v, want not found", err)
	}
	if err := f.svc.FavoriteFurniture(ctx, client(1), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("absent item: got %v, want not found", err)
	}

	// The owning company and admins still may
	company := &models.Actor{ID: 7, Role: models.RoleCompany}
	if err := f.svc.FavoriteFurniture(ctx, company, 5); err != nil {
		t.Errorf("owning company on inactive item: %v", err)
	}
	admin := &models.Actor{ID: 99, Role: models.RoleAdmin}
	if err := f.svc.FavoriteFurniture(ctx, admin, 5); err != nil {
		t.Errorf("admin on inactive item: %v", err)
	}

	// Active items favorite normally, duplicates conflict
	if err := f.svc.FavoriteFurniture(ctx, client(1), 6); err != nil {
		t.Fatalf("active item: %v", err)
	}
	if err := f.svc.FavoriteFurniture(ctx, client(1), 6); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate furniture favorite: got %v, want conflict", err)
	}
	if err := f.svc.UnfavoriteFurniture(ctx, client(1), 6); err != nil {
		t.Fatalf("unfavorite: %v", err)
	}
	if err := f.svc.UnfavoriteFurniture(ctx, client(1), 6); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("unfavorite absent: got %v, want conflict", err)
	}
}

func TestListFavoriteFurnitureHidesInactive(t *testing.T) {
	f := newFixture()
	f.catalog.items[5] = &models.CatalogItem{ID: 5, CompanyID: 7, ObjectID: "obj-5", Active: true}
	f.catalog.items[6] = &models.CatalogItem{ID: 6, CompanyID: 7, ObjectID: "obj-6", Active: true}
	ctx := context.Background()

	for _, id := range []int64{5, 6} {
		if err := f.svc.FavoriteFurniture(ctx, client(1), id); err != nil {
			t.Fatalf("favorite furniture %d: %v", id, err)
		}
	}

	// Item 5 is deactivated after the favorite was taken
	f.catalog.items[5].Active = false

	items, err := f.svc.ListFavoriteFurniture(ctx, client(1))
	if err != nil {
		t.Fatalf("list furniture favorites: %v", err)
	}
	if len(items) != 1 || items[0].ID != 6 {
		t.Errorf("favorites = %v, want only item 6", items)
	}

	// The owning company keeps seeing its own inactive item
	company := &models.Actor{ID: 7, Role: models.RoleCompany}
	if err := f.svc.FavoriteFurniture(ctx, company, 5); err != nil {
		t.Fatalf("company favorite: %v", err)
	}
	items, err = f.svc.ListFavoriteFurniture(ctx, company)
	if err != nil {
		t.Fatalf("company list: %v", err)
	}
	if len(items) != 1 || items[0].ID != 5 {
		t.Errorf("company favorites = %v, want item 5", items)
	}
}
