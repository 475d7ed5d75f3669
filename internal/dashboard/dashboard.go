// Package dashboard assembles the admin dashboard: a joint parallel fetch of
// users, posts, reviews and courses with all-or-nothing semantics, plus the
// derived statistics computed from the result.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/structura-app/structura-cli/internal/models"
	"github.com/structura-app/structura-cli/internal/stats"
)

// growthWindow is the fixed trailing window of the user-growth series.
const growthWindow = 6

// activityPerKind and activityLimit bound the recent-activity feed.
const (
	activityPerKind = 3
	activityLimit   = 10
)

// UserLister, PostLister, ReviewLister and CourseLister are the slices of
// the api services the loader needs.
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type PostLister interface {
	List(ctx context.Context) ([]models.Post, error)
}

type ReviewLister interface {
	List(ctx context.Context) ([]models.Review, error)
}

type CourseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

// Snapshot is one fully-loaded dashboard: the raw collections and every
// derived statistic, computed at LoadedAt.
type Snapshot struct {
	Users   []models.User
	Posts   []models.Post
	Reviews []models.Review
	Courses []models.Course

	Growth        []stats.MonthBucket
	Categories    []stats.CategoryCount
	Ratings       [5]stats.RatingBucket
	AverageRating float64
	Activity      []stats.Activity

	LoadedAt time.Time
}

// Loader fetches the dashboard collections.
type Loader struct {
	Users   UserLister
	Posts   PostLister
	Reviews ReviewLister
	Courses CourseLister

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Load fetches the four collections in parallel. Any single failure cancels
// the remaining fetches and fails the whole load; there is no partial-data
// snapshot.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := l.Users.List(ctx)
		if err != nil {
			return err
		}
		snap.Users = users
		return nil
	})
	g.Go(func() error {
		posts, err := l.Posts.List(ctx)
		if err != nil {
			return err
		}
		snap.Posts = posts
		return nil
	})
	g.Go(func() error {
		reviews, err := l.Reviews.List(ctx)
		if err != nil {
			return err
		}
		snap.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		courses, err := l.Courses.List(ctx)
		if err != nil {
			return err
		}
		snap.Courses = courses
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard load: %w", err)
	}

	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	snap.LoadedAt = now
	snap.Growth = stats.MonthlyGrowth(snap.Users, growthWindow, now)
	snap.Categories = stats.CategoryDistribution(snap.Posts)
	snap.Ratings = stats.RatingHistogram(snap.Reviews)
	snap.AverageRating = stats.AverageRating(snap.Reviews)
	snap.Activity = stats.RecentActivity(snap.Users, snap.Posts, snap.Reviews, snap.Courses, activityPerKind, activityLimit)
	return snap, nil
}
