package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/structura-app/structura-cli/internal/api"
	"github.com/structura-app/structura-cli/internal/calendar"
	"github.com/structura-app/structura-cli/internal/export"
	"github.com/structura-app/structura-cli/internal/forms"
	"github.com/structura-app/structura-cli/internal/models"
)

const timeLayout = "2006-01-02 15:04"

// promptFile opens an optional file attachment.
func (a *app) promptFile(label, field string) *api.File {
	path := a.prompt(label + " (empty to skip)")
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("Cannot read file:", err)
		return nil
	}
	return &api.File{Field: field, Name: filepath.Base(path), Content: f}
}

func closeFile(f *api.File) {
	if f == nil {
		return
	}
	if c, ok := f.Content.(*os.File); ok {
		_ = c.Close()
	}
}

// promptTime reads a timestamp in "2006-01-02 15:04" form.
func (a *app) promptTime(label string) (time.Time, bool) {
	raw := a.prompt(label + " (YYYY-MM-DD HH:MM)")
	t, err := time.ParseInLocation(timeLayout, raw, time.Local)
	if err != nil {
		fmt.Println("Invalid time:", raw)
		return time.Time{}, false
	}
	return t, true
}

// Posts

func (a *app) listPosts(mine bool) {
	ctx, cancel := a.ctx()
	defer cancel()
	if mine {
		if !a.requireAuth() {
			return
		}
		a.refreshMyPosts(ctx)
		for _, p := range a.store.Posts() {
			fmt.Printf("%s  [%s] %s (%d likes, %d shares)\n", p.ID, p.Category, p.Title, p.Likes, p.Shares)
		}
		return
	}
	posts, err := a.posts.List(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	for _, p := range posts {
		fmt.Printf("%s  [%s] %s by %s\n", p.ID, p.Category, p.Title, p.Author)
	}
}

func (a *app) showPost(id string) {
	if id == "" {
		fmt.Println("Usage: post <id>")
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	p, err := a.posts.Get(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Printf("%s\n[%s] by %s, %s\n\n%s\n", p.Title, p.Category, p.Author, p.CreatedAt.Format(timeLayout), p.Content)
}

func (a *app) addPost() {
	if !a.requireAuth() {
		return
	}
	form := forms.PostForm{
		Title:    a.prompt("Title"),
		Content:  a.prompt("Content"),
		Category: a.prompt("Category"),
	}
	image := a.promptFile("Image path", "image")
	defer closeFile(image)

	ctx, cancel := a.ctx()
	defer cancel()
	p, err := a.posts.Create(ctx, form, image)
	if err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	a.store.UpsertPost(*p)
	fmt.Println("Post created:", p.ID)
}

func (a *app) editPost(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	current, err := a.posts.Get(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	form, err := forms.SeedPostForm(*current)
	if err != nil {
		a.fail(err)
		return
	}
	form.Title = a.promptDefault("Title", form.Title)
	form.Content = a.promptDefault("Content", form.Content)
	form.Category = a.promptDefault("Category", form.Category)
	image := a.promptFile("Image path", "image")
	defer closeFile(image)

	// Prompting can outlive the fetch context's deadline.
	updCtx, updCancel := a.ctx()
	defer updCancel()
	updated, err := a.posts.Update(updCtx, id, form, image)
	if err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	a.store.UpsertPost(*updated)
	fmt.Println("Post updated.")
}

func (a *app) deletePost(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	if !a.confirm("Delete post " + id + "?") {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.posts.Delete(ctx, id); err != nil {
		a.fail(err)
		return
	}
	a.store.RemovePost(id)
	fmt.Println("Post deleted.")
}

func (a *app) likePost(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	p, err := a.posts.Like(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	a.store.UpsertPost(*p)
	fmt.Printf("%s now has %d likes.\n", p.Title, p.Likes)
}

func (a *app) sharePost(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	p, err := a.posts.Share(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	a.store.UpsertPost(*p)
	fmt.Printf("%s now has %d shares.\n", p.Title, p.Shares)
}

// Comments

func (a *app) listComments(postID string) {
	if postID == "" {
		fmt.Println("Usage: comments <postId>")
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	comments, err := a.posts.Comments(ctx, postID)
	if err != nil {
		a.fail(err)
		return
	}
	for _, c := range comments {
		fmt.Printf("%s  %s: %s\n", c.ID, c.Author, c.Body)
	}
}

func (a *app) addComment(postID string) {
	if !a.requireAuth() || postID == "" {
		return
	}
	form := forms.CommentForm{PostID: postID, Body: a.prompt("Comment")}
	ctx, cancel := a.ctx()
	defer cancel()
	c, err := a.posts.AddComment(ctx, form)
	if err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Comment added:", c.ID)
}

func (a *app) deleteComment(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	if !a.confirm("Delete comment " + id + "?") {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.posts.DeleteComment(ctx, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Println("Comment deleted.")
}

// Courses

func (a *app) listCourses() {
	ctx, cancel := a.ctx()
	defer cancel()
	courses, err := a.courses.List(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	for _, c := range courses {
		fmt.Printf("%s  [%s] %s by %s\n", c.ID, c.Category, c.Title, c.Instructor)
	}
}

func (a *app) addCourse() {
	if !a.requireAuth() {
		return
	}
	form := forms.CourseForm{
		Title:       a.prompt("Title"),
		Description: a.prompt("Description"),
		Category:    a.prompt("Category"),
		Instructor:  a.prompt("Instructor"),
	}
	var media []api.File
	for _, slot := range []struct{ label, field string }{
		{"Image path", "image"},
		{"PDF path", "pdf"},
		{"Video path", "video"},
	} {
		if f := a.promptFile(slot.label, slot.field); f != nil {
			media = append(media, *f)
			defer closeFile(f)
		}
	}

	ctx, cancel := a.ctx()
	defer cancel()
	c, err := a.courses.Create(ctx, form, media)
	if err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Course created:", c.ID)
}

func (a *app) editCourse(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	current, err := a.courses.Get(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	form, err := forms.SeedCourseForm(*current)
	if err != nil {
		a.fail(err)
		return
	}
	form.Title = a.promptDefault("Title", form.Title)
	form.Description = a.promptDefault("Description", form.Description)
	form.Category = a.promptDefault("Category", form.Category)
	form.Instructor = a.promptDefault("Instructor", form.Instructor)

	updCtx, updCancel := a.ctx()
	defer updCancel()
	if _, err := a.courses.Update(updCtx, id, form, nil); err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Course updated.")
}

func (a *app) deleteCourse(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	if !a.confirm("Delete course " + id + "?") {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.courses.Delete(ctx, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Println("Course deleted.")
}

// Learns

func (a *app) listLearns() {
	ctx, cancel := a.ctx()
	defer cancel()
	learns, err := a.learns.List(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	for _, l := range learns {
		fmt.Printf("%s  [%s] %s\n", l.ID, l.Category, l.Title)
	}
}

func (a *app) addLearn() {
	if !a.requireAuth() {
		return
	}
	form := forms.LearnForm{
		Title:       a.prompt("Title"),
		Description: a.prompt("Description"),
		Category:    a.prompt("Category"),
		Content:     a.prompt("Content"),
	}
	image := a.promptFile("Image path", "image")
	defer closeFile(image)

	ctx, cancel := a.ctx()
	defer cancel()
	l, err := a.learns.Create(ctx, form, image)
	if err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Lesson created:", l.ID)
}

func (a *app) editLearn(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	current, err := a.learns.Get(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	form, err := forms.SeedLearnForm(*current)
	if err != nil {
		a.fail(err)
		return
	}
	form.Title = a.promptDefault("Title", form.Title)
	form.Description = a.promptDefault("Description", form.Description)
	form.Category = a.promptDefault("Category", form.Category)
	form.Content = a.promptDefault("Content", form.Content)

	updCtx, updCancel := a.ctx()
	defer updCancel()
	if _, err := a.learns.Update(updCtx, id, form, nil); err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Lesson updated.")
}

func (a *app) deleteLearn(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	if !a.confirm("Delete lesson " + id + "?") {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.learns.Delete(ctx, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Println("Lesson deleted.")
}

// Events

func (a *app) fetchEvents(upcoming bool) ([]models.Event, bool) {
	ctx, cancel := a.ctx()
	defer cancel()
	var (
		events []models.Event
		err    error
	)
	if upcoming {
		events, err = a.events.Upcoming(ctx)
	} else {
		events, err = a.events.List(ctx)
	}
	if err != nil {
		a.fail(err)
		return nil, false
	}
	return events, true
}

func (a *app) listEvents(upcoming bool) {
	events, ok := a.fetchEvents(upcoming)
	if !ok {
		return
	}
	for _, e := range events {
		fmt.Printf("%s  %s @ %s (%s)\n", e.ID, e.Title, e.Location, e.StartTime.Format(timeLayout))
	}
}

func (a *app) addEvent() {
	if !a.requireAuth() {
		return
	}
	form := forms.EventForm{
		Title:       a.prompt("Title"),
		Description: a.prompt("Description"),
		Location:    a.prompt("Location"),
	}
	var ok bool
	if form.StartTime, ok = a.promptTime("Start"); !ok {
		return
	}
	if form.EndTime, ok = a.promptTime("End"); !ok {
		return
	}
	image := a.promptFile("Image path", "image")
	defer closeFile(image)

	ctx, cancel := a.ctx()
	defer cancel()
	e, err := a.events.Create(ctx, form, image)
	if err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Event created:", e.ID)
}

func (a *app) editEvent(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	current, err := a.events.Get(ctx, id)
	if err != nil {
		a.fail(err)
		return
	}
	form, err := forms.SeedEventForm(*current)
	if err != nil {
		a.fail(err)
		return
	}
	form.Title = a.promptDefault("Title", form.Title)
	form.Description = a.promptDefault("Description", form.Description)
	form.Location = a.promptDefault("Location", form.Location)

	updCtx, updCancel := a.ctx()
	defer updCancel()
	if _, err := a.events.Update(updCtx, id, form, nil); err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Event updated.")
}

func (a *app) deleteEvent(id string) {
	if !a.requireAuth() || id == "" {
		return
	}
	events, ok := a.fetchEvents(false)
	if !ok {
		return
	}
	list := calendar.NewEventList(events)
	if !a.confirm("Delete event " + id + "?") {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.events.Delete(ctx, id); err != nil {
		a.fail(err)
		return
	}
	list.Remove(id)
	fmt.Printf("Event deleted. %d events remain.\n", len(list.All))
}

func (a *app) showCalendar(month string) {
	at := time.Now()
	if month != "" {
		parsed, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			fmt.Println("Usage: calendar [YYYY-MM]")
			return
		}
		at = parsed
	}
	events, ok := a.fetchEvents(true)
	if !ok {
		return
	}
	byDay := calendar.GroupByDay(events)

	fmt.Println(at.Format("January 2006"))
	fmt.Println("Sun  Mon  Tue  Wed  Thu  Fri  Sat")
	for _, week := range calendar.MonthGrid(at) {
		for _, day := range week {
			marker := " "
			if n := len(calendar.EventsOn(events, day)); n > 0 {
				marker = "*"
			}
			if day.Month() != at.Month() {
				fmt.Printf("  .  ")
			} else {
				fmt.Printf("%3d%s ", day.Day(), marker)
			}
		}
		fmt.Println()
	}
	fmt.Printf("%d days with events this month\n", countDaysInMonth(byDay, at))
}

func countDaysInMonth(byDay map[time.Time][]models.Event, at time.Time) int {
	n := 0
	for day := range byDay {
		if day.Year() == at.Year() && day.Month() == at.Month() {
			n++
		}
	}
	return n
}

func (a *app) showCountdowns() {
	events, ok := a.fetchEvents(true)
	if !ok {
		return
	}
	if len(events) == 0 {
		fmt.Println("No upcoming events.")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		a.scanner.Scan() // any input stops the ticker
		cancel()
	}()

	fmt.Println("Press Enter to stop.")
	for cds := range calendar.StartCountdowns(ctx, events, time.Second, nil) {
		for _, cd := range cds {
			fmt.Printf("  %s: %s\n", cd.Title, cd.Remaining)
		}
	}
}

func (a *app) exportEventsCSV() {
	events, ok := a.fetchEvents(false)
	if !ok {
		return
	}
	path, err := export.SaveEventsCSV(a.cfg.OutputDir, events, time.Now())
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Println("Events exported to", path)
}
