package posts

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Post
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Post{}}
}

func (r *testRepo) Create(ctx context.Context, p Post) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Post) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return Post{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(ctx context.Context) ([]Post, error) {
	out := make([]Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Post, error) {
	out := make([]Post, 0)
	for _, p := range r.byID {
		if p.PetID == petID {
			out = append(out, p)
		}
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_InitializesLikes(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "pet-1", "Dalila", []byte{0xFF})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.CreatedAt != now {
		t.Fatalf("expected CreatedAt = now")
	}
	if p.Likes == nil || len(p.Likes) != 0 {
		t.Fatalf("expected empty (non-nil) likes, got %#v", p.Likes)
	}
	if p.PetName != "Dalila" {
		t.Fatalf("expected pet name copied, got %q", p.PetName)
	}
}

func TestService_Create_RequiresPetID(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "  ", "Dalila", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func seedPosts(t *testing.T, svc *Service, n int) {
	t.Helper()

	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		if _, err := svc.Create(context.Background(), "pet-1", "Dalila", nil); err != nil {
			t.Fatalf("seed post #%d: %v", i, err)
		}
	}
}

func TestService_ListPage_NewestFirst(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	seedPosts(t, svc, 25)

	page, err := svc.ListPage(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if page.TotalItems != 25 || page.TotalPages != 3 || page.CurrentPage != 0 {
		t.Fatalf("page meta = %d items, %d pages, current %d",
			page.TotalItems, page.TotalPages, page.CurrentPage)
	}
	if len(page.Posts) != 10 {
		t.Fatalf("expected 10 posts, got %d", len(page.Posts))
	}
	for i := 1; i < len(page.Posts); i++ {
		if page.Posts[i].CreatedAt.After(page.Posts[i-1].CreatedAt) {
			t.Fatalf("expected posts sorted newest first")
		}
	}
}

func TestService_ListPage_LastAndBeyond(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	seedPosts(t, svc, 25)

	last, err := svc.ListPage(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if len(last.Posts) != 5 {
		t.Fatalf("expected 5 posts on last page, got %d", len(last.Posts))
	}

	// página más allá del final: vacía pero con la metadata correcta
	beyond, err := svc.ListPage(context.Background(), 9, 10)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if len(beyond.Posts) != 0 || beyond.TotalItems != 25 {
		t.Fatalf("beyond page = %d posts, %d items", len(beyond.Posts), beyond.TotalItems)
	}
}

func TestService_ToggleLike_Persists(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "pet-1", "Dalila", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	liked, err := svc.ToggleLike(context.Background(), p.ID, "user-1")
	if err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	if !liked.HasLike("user-1") {
		t.Fatalf("expected like applied")
	}

	unliked, err := svc.ToggleLike(context.Background(), p.ID, "user-1")
	if err != nil {
		t.Fatalf("ToggleLike #2 error: %v", err)
	}
	if unliked.HasLike("user-1") {
		t.Fatalf("expected like removed on second toggle")
	}

	stored := repo.byID[p.ID]
	if stored.LikeCount() != 0 {
		t.Fatalf("expected repo updated, got %#v", stored.Likes)
	}
}

func TestService_ToggleLike_UnknownPost(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.ToggleLike(context.Background(), "nope", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_CountByPet(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	seedPosts(t, svc, 3)

	n, err := svc.CountByPet(context.Background(), "pet-1")
	if err != nil || n != 3 {
		t.Fatalf("CountByPet = %d, %v; want 3", n, err)
	}

	n, err = svc.CountByPet(context.Background(), "pet-2")
	if err != nil || n != 0 {
		t.Fatalf("CountByPet unknown pet = %d, %v; want 0", n, err)
	}
}
