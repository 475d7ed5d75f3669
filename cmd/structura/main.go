// Package main is the Structura client: an interactive shell over the
// platform's REST backend, with a persisted session across runs.
package main

import (
	"bufio"
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/structura-app/structura-cli/internal/api"
	"github.com/structura-app/structura-cli/internal/config"
	"github.com/structura-app/structura-cli/internal/dashboard"
	"github.com/structura-app/structura-cli/internal/guard"
	"github.com/structura-app/structura-cli/internal/logger"
	"github.com/structura-app/structura-cli/internal/report"
	"github.com/structura-app/structura-cli/internal/session"
)

var (
	version   string
	buildDate string
)

// app bundles the wired services the shell commands operate on.
type app struct {
	cfg   *config.Options
	log   *zap.Logger
	store *session.Store

	auth    *api.AuthService
	posts   *api.PostService
	courses *api.CourseService
	learns  *api.LearnService
	events  *api.EventService
	reviews *api.ReviewService
	users   *api.UserService

	dash    *dashboard.Loader
	reports *report.Generator

	scanner *bufio.Scanner
}

// ctx returns a request context bounded by the configured timeout.
func (a *app) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.Timeout())
}

// prompt reads one line of input after printing a label.
func (a *app) prompt(label string) string {
	fmt.Print(label + ": ")
	if !a.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(a.scanner.Text())
}

// promptDefault reads one line, falling back to def on empty input.
func (a *app) promptDefault(label, def string) string {
	got := a.prompt(fmt.Sprintf("%s [%s]", label, def))
	if got == "" {
		return def
	}
	return got
}

// confirm gates destructive actions behind a y/N prompt.
func (a *app) confirm(label string) bool {
	return strings.EqualFold(a.prompt(label+" (y/N)"), "y")
}

// fail prints an error the way a view would surface it: the normalized
// message, nothing thrown past the command that issued the call.
func (a *app) fail(err error) {
	fmt.Println("Error:", errMessage(err))
}

func main() {
	var showVer bool
	var baseURL, configPath, command string
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.StringVar(&baseURL, "url", "", "backend base URL (overrides config)")
	flag.StringVar(&configPath, "config", "", "path to the JSON config file")
	flag.StringVar(&command, "cmd", "", "run a single command and exit")
	flag.Parse()

	if showVer {
		fmt.Printf("Structura Client\nVersion: %s\nBuild Date: %s\n",
			cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	options := config.Parse(configPath)
	if baseURL != "" {
		options.BaseURL = baseURL
	}

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	store := session.NewStore(options.SessionFile, zapLogger)
	if err := store.Load(); err != nil {
		zapLogger.Fatal("cannot load session", zap.Error(err))
	}

	client := api.New(options.BaseURL, store, options.Timeout(), zapLogger)

	a := &app{
		cfg:     options,
		log:     zapLogger,
		store:   store,
		auth:    api.NewAuthService(client),
		posts:   api.NewPostService(client),
		courses: api.NewCourseService(client),
		learns:  api.NewLearnService(client),
		events:  api.NewEventService(client),
		reviews: api.NewReviewService(client),
		users:   api.NewUserService(client),
		reports: report.NewGenerator(options.OutputDir, zapLogger),
		scanner: bufio.NewScanner(os.Stdin),
	}
	a.dash = &dashboard.Loader{
		Users:   a.users,
		Posts:   a.posts,
		Reviews: a.reviews,
		Courses: a.courses,
	}

	if command != "" {
		a.dispatch(strings.Fields(command))
		return
	}
	a.repl()
}

// repl runs the interactive shell loop.
func (a *app) repl() {
	fmt.Println("Structura shell. Type 'help' for commands.")
	fmt.Println("Navigation:", guard.Decide(a.store.User()))

	for {
		fmt.Print("structura> ")
		if !a.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(a.scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Println("Bye")
			return
		}
		a.dispatch(args)
	}
}

func (a *app) dispatch(args []string) {
	switch args[0] {
	case "help":
		a.printHelp()
	case "whoami":
		a.whoami()
	case "signin":
		a.signIn()
	case "signup":
		a.signUp()
	case "signout":
		a.signOut()
	case "oauth":
		a.oauthSignIn(arg(args, 1))
	case "profile":
		a.editProfile()
	case "password":
		a.changePassword()
	case "delete-account":
		a.deleteAccount()
	case "posts":
		a.listPosts(arg(args, 1) == "mine")
	case "post":
		a.showPost(arg(args, 1))
	case "post-add":
		a.addPost()
	case "post-edit":
		a.editPost(arg(args, 1))
	case "post-del":
		a.deletePost(arg(args, 1))
	case "like":
		a.likePost(arg(args, 1))
	case "share":
		a.sharePost(arg(args, 1))
	case "comments":
		a.listComments(arg(args, 1))
	case "comment-add":
		a.addComment(arg(args, 1))
	case "comment-del":
		a.deleteComment(arg(args, 1))
	case "courses":
		a.listCourses()
	case "course-add":
		a.addCourse()
	case "course-edit":
		a.editCourse(arg(args, 1))
	case "course-del":
		a.deleteCourse(arg(args, 1))
	case "learns":
		a.listLearns()
	case "learn-add":
		a.addLearn()
	case "learn-edit":
		a.editLearn(arg(args, 1))
	case "learn-del":
		a.deleteLearn(arg(args, 1))
	case "events":
		a.listEvents(false)
	case "upcoming":
		a.listEvents(true)
	case "event-add":
		a.addEvent()
	case "event-edit":
		a.editEvent(arg(args, 1))
	case "event-del":
		a.deleteEvent(arg(args, 1))
	case "calendar":
		a.showCalendar(arg(args, 1))
	case "countdown":
		a.showCountdowns()
	case "export-csv":
		a.exportEventsCSV()
	case "reviews":
		a.listReviews()
	case "review-add":
		a.addReview()
	case "review-del":
		a.deleteReview(arg(args, 1))
	case "users":
		a.listUsers()
	case "promote":
		a.setAdmin(arg(args, 1), true)
	case "demote":
		a.setAdmin(arg(args, 1), false)
	case "user-del":
		a.deleteUser(arg(args, 1))
	case "dashboard":
		a.showDashboard()
	case "report":
		a.generateReport()
	case "certificate":
		a.generateCertificate()
	default:
		fmt.Println("Unknown command. Type 'help' for a list of commands.")
	}
}

// arg returns args[i] or "".
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (a *app) printHelp() {
	fmt.Println(`Available commands:
  signin, signup, signout, oauth <provider>, whoami
  profile, password, delete-account
  posts [mine], post <id>, post-add, post-edit <id>, post-del <id>
  like <id>, share <id>
  comments <postId>, comment-add <postId>, comment-del <id>
  courses, course-add, course-edit <id>, course-del <id>
  learns, learn-add, learn-edit <id>, learn-del <id>
  events, upcoming, event-add, event-edit <id>, event-del <id>
  calendar [YYYY-MM], countdown, export-csv
  reviews, review-add, review-del <id>
  users, promote <id>, demote <id>, user-del <id>   (admin)
  dashboard, report, certificate                    (admin)
  help, exit`)
}
