// Package stats computes the derived statistics behind the admin dashboard.
// Every function is pure: input is an already-fetched collection, output is
// recomputed on each call and never persisted.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/structura-app/structura-cli/internal/models"
)

// MonthBucket is one month of the user-growth series.
type MonthBucket struct {
	Year  int
	Month time.Month
	Count int
}

// Label returns the bucket as "Jan 2026".
func (b MonthBucket) Label() string {
	return fmt.Sprintf("%s %d", b.Month.String()[:3], b.Year)
}

// MonthlyGrowth buckets user signups per month over a fixed trailing window
// ending at now. Buckets are zero-filled and ordered oldest first. Signups
// outside the window are ignored.
func MonthlyGrowth(users []models.User, window int, now time.Time) []MonthBucket {
	if window <= 0 {
		return nil
	}
	buckets := make([]MonthBucket, window)
	index := make(map[[2]int]int, window)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(window - 1), 0)
	for i := 0; i < window; i++ {
		m := first.AddDate(0, i, 0)
		buckets[i] = MonthBucket{Year: m.Year(), Month: m.Month()}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}
	for _, u := range users {
		if u.CreatedAt.IsZero() {
			continue
		}
		if i, ok := index[[2]int{u.CreatedAt.Year(), int(u.CreatedAt.Month())}]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

// CategoryCount is one slice of the category distribution.
type CategoryCount struct {
	Category string
	Count    int
	Percent  float64
}

// CategoryDistribution computes the post category histogram, ordered by
// count descending, ties broken by name for a deterministic rendering.
func CategoryDistribution(posts []models.Post) []CategoryCount {
	if len(posts) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, p := range posts {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{
			Category: cat,
			Count:    n,
			Percent:  float64(n) * 100 / float64(len(posts)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// RatingBucket is one star level of the review histogram.
type RatingBucket struct {
	Stars   int
	Count   int
	Percent float64
}

// RatingHistogram buckets reviews into a fixed 5-element array ordered
// 1-star to 5-star; index 0 is the 1-star bucket. Ratings outside 1..5 are
// dropped and do not count toward the percentage base.
func RatingHistogram(reviews []models.Review) [5]RatingBucket {
	var out [5]RatingBucket
	for i := range out {
		out[i].Stars = i + 1
	}
	total := 0
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		out[r.Rating-1].Count++
		total++
	}
	if total == 0 {
		return out
	}
	for i := range out {
		out[i].Percent = float64(out[i].Count) * 100 / float64(total)
	}
	return out
}

// AverageRating returns the mean of in-range ratings, or 0 with no reviews.
func AverageRating(reviews []models.Review) float64 {
	sum, n := 0, 0
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		sum += r.Rating
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Activity is one line of the recent-activity feed.
type Activity struct {
	Kind  string
	Title string
	At    time.Time
}

// RecentActivity concatenates the first perKind items of each collection and
// returns them sorted by timestamp descending, capped at limit.
func RecentActivity(users []models.User, posts []models.Post, reviews []models.Review, courses []models.Course, perKind, limit int) []Activity {
	var feed []Activity
	for i, u := range users {
		if i >= perKind {
			break
		}
		feed = append(feed, Activity{Kind: "user", Title: u.Username + " joined", At: u.CreatedAt})
	}
	for i, p := range posts {
		if i >= perKind {
			break
		}
		feed = append(feed, Activity{Kind: "post", Title: p.Title, At: p.CreatedAt})
	}
	for i, r := range reviews {
		if i >= perKind {
			break
		}
		feed = append(feed, Activity{Kind: "review", Title: r.Comment, At: r.CreatedAt})
	}
	for i, c := range courses {
		if i >= perKind {
			break
		}
		feed = append(feed, Activity{Kind: "course", Title: c.Title, At: c.CreatedAt})
	}
	sort.Slice(feed, func(i, j int) bool { return feed[i].At.After(feed[j].At) })
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}
