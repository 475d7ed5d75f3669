package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/structura-app/structura-cli/internal/forms"
)

// requireAdmin gates the admin commands.
func (a *app) requireAdmin() bool {
	if !a.requireAuth() {
		return false
	}
	if u := a.store.User(); u == nil || !u.IsAdmin {
		fmt.Println("Admin access required.")
		return false
	}
	return true
}

// Reviews

func (a *app) listReviews() {
	ctx, cancel := a.ctx()
	defer cancel()
	reviews, err := a.reviews.List(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	for _, r := range reviews {
		fmt.Printf("%s  %s %s: %s\n", r.ID, strings.Repeat("*", r.Rating), r.Author, r.Comment)
	}
}

func (a *app) addReview() {
	if !a.requireAuth() {
		return
	}
	rating, err := strconv.Atoi(a.prompt("Rating (1-5)"))
	if err != nil {
		fmt.Println("Rating must be a number.")
		return
	}
	form := forms.ReviewForm{Rating: rating, Comment: a.prompt("Comment")}

	ctx, cancel := a.ctx()
	defer cancel()
	r, err := a.reviews.Create(ctx, form)
	if err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Review submitted:", r.ID)
}

func (a *app) deleteReview(id string) {
	if !a.requireAdmin() || id == "" {
		return
	}
	if !a.confirm("Delete review " + id + "?") {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.reviews.Delete(ctx, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Println("Review deleted.")
}

// Users

func (a *app) listUsers() {
	if !a.requireAdmin() {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	users, err := a.users.List(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	for _, u := range users {
		role := "member"
		if u.IsAdmin {
			role = "admin"
		}
		fmt.Printf("%s  %s <%s> (%s)\n", u.ID, u.Username, u.Email, role)
	}
}

func (a *app) setAdmin(id string, isAdmin bool) {
	if !a.requireAdmin() || id == "" {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	u, err := a.users.SetAdmin(ctx, id, isAdmin)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Printf("%s admin=%v\n", u.Username, u.IsAdmin)
}

func (a *app) deleteUser(id string) {
	if !a.requireAdmin() || id == "" {
		return
	}
	if !a.confirm("Delete user " + id + "?") {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.users.Delete(ctx, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Println("User deleted.")
}

// Dashboard and reporting

func (a *app) showDashboard() {
	if !a.requireAdmin() {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	snap, err := a.dash.Load(ctx)
	if err != nil {
		a.fail(err)
		return
	}

	fmt.Printf("Users: %d  Posts: %d  Courses: %d  Reviews: %d  Avg rating: %.1f\n",
		len(snap.Users), len(snap.Posts), len(snap.Courses), len(snap.Reviews), snap.AverageRating)

	fmt.Println("\nNew users per month:")
	for _, b := range snap.Growth {
		fmt.Printf("  %s  %s (%d)\n", b.Label(), strings.Repeat("#", b.Count), b.Count)
	}

	fmt.Println("\nPosts by category:")
	for _, c := range snap.Categories {
		fmt.Printf("  %-20s %3d  %5.1f%%\n", c.Category, c.Count, c.Percent)
	}

	fmt.Println("\nReview ratings:")
	for _, b := range snap.Ratings {
		fmt.Printf("  %d star  %s (%d, %.1f%%)\n", b.Stars, strings.Repeat("#", b.Count), b.Count, b.Percent)
	}

	fmt.Println("\nRecent activity:")
	for _, act := range snap.Activity {
		fmt.Printf("  [%s] %s (%s)\n", act.Kind, act.Title, act.At.Format("2006-01-02"))
	}
}

func (a *app) generateReport() {
	if !a.requireAdmin() {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	snap, err := a.dash.Load(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	path, err := a.reports.Report(snap)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Println("Report written to", path)
}

func (a *app) generateCertificate() {
	if !a.requireAuth() {
		return
	}
	student := a.promptDefault("Student name", a.store.User().Username)
	course := a.prompt("Course title")
	if course == "" {
		fmt.Println("Course title is required.")
		return
	}
	path, err := a.reports.Certificate(student, course, time.Now())
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Println("Certificate written to", path)
}
