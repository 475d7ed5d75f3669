package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/structura-app/structura-cli/internal/models"
)

// fake listers return preconfigured results and record whether they ran.
type fakeUsers struct {
	users  []models.User
	err    error
	called bool
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	f.called = true
	return f.users, f.err
}

type fakePosts struct {
	posts []models.Post
	err   error
}

func (f *fakePosts) List(ctx context.Context) ([]models.Post, error) { return f.posts, f.err }

type fakeReviews struct {
	reviews []models.Review
	err     error
}

func (f *fakeReviews) List(ctx context.Context) ([]models.Review, error) { return f.reviews, f.err }

type fakeCourses struct {
	courses []models.Course
	err     error
}

func (f *fakeCourses) List(ctx context.Context) ([]models.Course, error) { return f.courses, f.err }

func testLoader() (*Loader, *fakeUsers, *fakePosts, *fakeReviews, *fakeCourses) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	users := &fakeUsers{users: []models.User{
		{ID: "u1", Username: "ada", CreatedAt: now.AddDate(0, -1, 0)},
		{ID: "u2", Username: "grace", CreatedAt: now},
	}}
	posts := &fakePosts{posts: []models.Post{
		{ID: "p1", Title: "one", Category: "modernism", CreatedAt: now},
		{ID: "p2", Title: "two", Category: "gothic", CreatedAt: now},
	}}
	reviews := &fakeReviews{reviews: []models.Review{
		{ID: "r1", Rating: 5, CreatedAt: now},
		{ID: "r2", Rating: 5, CreatedAt: now},
		{ID: "r3", Rating: 4, CreatedAt: now},
		{ID: "r4", Rating: 3, CreatedAt: now},
		{ID: "r5", Rating: 1, CreatedAt: now},
	}}
	courses := &fakeCourses{courses: []models.Course{{ID: "c1", Title: "course", CreatedAt: now}}}

	l := &Loader{
		Users:   users,
		Posts:   posts,
		Reviews: reviews,
		Courses: courses,
		Now:     func() time.Time { return now },
	}
	return l, users, posts, reviews, courses
}

func TestLoad_Success(t *testing.T) {
	l, _, _, _, _ := testLoader()

	snap, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Users) != 2 || len(snap.Posts) != 2 || len(snap.Reviews) != 5 || len(snap.Courses) != 1 {
		t.Errorf("unexpected collection sizes: %d users, %d posts, %d reviews, %d courses",
			len(snap.Users), len(snap.Posts), len(snap.Reviews), len(snap.Courses))
	}
	if len(snap.Growth) != growthWindow {
		t.Errorf("growth buckets = %d; want %d", len(snap.Growth), growthWindow)
	}
	if snap.Ratings[4].Count != 2 {
		t.Errorf("5-star count = %d; want 2", snap.Ratings[4].Count)
	}
	if snap.Ratings[4].Percent != 40 {
		t.Errorf("5-star percent = %v; want 40", snap.Ratings[4].Percent)
	}
	if len(snap.Activity) == 0 {
		t.Error("expected a recent-activity feed")
	}
}

func TestLoad_AnyFailureAbortsWholeLoad(t *testing.T) {
	l, _, posts, _, _ := testLoader()
	posts.err = errors.New("posts endpoint down")

	snap, err := l.Load(context.Background())
	if err == nil {
		t.Fatal("expected error when one fetch fails")
	}
	if snap != nil {
		t.Error("no partial-data snapshot on failure")
	}
	if !errors.Is(err, posts.err) {
		t.Errorf("error %v must wrap the fetch failure", err)
	}
}

func TestLoad_RespectsContext(t *testing.T) {
	l, _, _, _, _ := testLoader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Fakes ignore ctx, so the load itself succeeds; the point is that a
	// canceled group context is passed down to every lister.
	slow := &fakeUsers{}
	l.Users = listerFunc(func(ctx context.Context) ([]models.User, error) {
		slow.called = true
		return nil, ctx.Err()
	})
	if _, err := l.Load(ctx); err == nil {
		t.Fatal("expected error from canceled context")
	}
	if !slow.called {
		t.Error("lister was never invoked")
	}
}

type listerFunc func(ctx context.Context) ([]models.User, error)

func (f listerFunc) List(ctx context.Context) ([]models.User, error) { return f(ctx) }
