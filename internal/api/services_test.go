package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/structura-app/structura-cli/internal/forms"
)

func TestCourseCreate_BlankTitleNeverHitsNetwork(t *testing.T) {
	requests := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}, "tok")
	svc := NewCourseService(c)

	form := forms.CourseForm{
		Title:       "",
		Description: "desc",
		Category:    "history",
		Instructor:  "Jane Doe",
	}
	_, err := svc.Create(context.Background(), form, nil)

	var verr *forms.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *forms.ValidationError, got %T (%v)", err, err)
	}
	found := false
	for _, fe := range verr.Fields {
		if fe.Field == "title" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a title field error, got %+v", verr.Fields)
	}
	if requests != 0 {
		t.Errorf("validation failure must not issue a network request; got %d", requests)
	}
}

func TestSignIn_DecodesUser(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signin" || r.Method != http.MethodPost {
			http.Error(w, "wrong route", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"_id":"u1","username":"ada","email":"a@b.c","token":"tok"}`))
	}, "")
	svc := NewAuthService(c)

	u, err := svc.SignIn(context.Background(), forms.SignInForm{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if u.ID != "u1" || u.Token != "tok" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestMe_FetchesCurrentUser(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"_id":"u1","username":"ada","email":"a@b.c","isAdmin":true}`))
	}, "tok")
	svc := NewAuthService(c)

	u, err := svc.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if gotMethod != http.MethodGet || gotPath != "/api/auth/me" {
		t.Errorf("got %s %s; want GET /api/auth/me", gotMethod, gotPath)
	}
	if u.ID != "u1" || !u.IsAdmin {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestSignIn_ServerErrorSurfacesMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"wrong credentials"}`))
	}, "")
	svc := NewAuthService(c)

	_, err := svc.SignIn(context.Background(), forms.SignInForm{Email: "a@b.c", Password: "bad"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "wrong credentials" {
		t.Errorf("message = %q; want server message unchanged", apiErr.Message)
	}
}

func TestEventDelete_CallsDeleteRoute(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}, "tok")
	svc := NewEventService(c)

	if err := svc.Delete(context.Background(), "e42"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/events/e42" {
		t.Errorf("got %s %s; want DELETE /api/events/e42", gotMethod, gotPath)
	}
}

func TestEventCreate_SendsRFC3339Times(t *testing.T) {
	var gotStart string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotStart = r.FormValue("startTime")
		w.Write([]byte(`{"id":"e1"}`))
	}, "tok")
	svc := NewEventService(c)

	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	form := forms.EventForm{
		Title:       "Open studio",
		Description: "tour",
		Location:    "Atelier 4",
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
	}
	if _, err := svc.Create(context.Background(), form, nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if gotStart != start.Format(time.RFC3339) {
		t.Errorf("startTime = %q; want RFC3339", gotStart)
	}
}

func TestReviewCreate_RejectsOutOfRangeRating(t *testing.T) {
	requests := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	}, "tok")
	svc := NewReviewService(c)

	_, err := svc.Create(context.Background(), forms.ReviewForm{Rating: 6, Comment: "great"})
	var verr *forms.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %T", err)
	}
	if requests != 0 {
		t.Error("invalid rating must not reach the network")
	}
}
