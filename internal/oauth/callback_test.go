package oauth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/structura-app/structura-cli/internal/models"
)

// fakeSink records the callback outcome.
type fakeSink struct {
	user    *models.User
	failure string
}

func (f *fakeSink) AuthSuccess(u models.User) { f.user = &u }
func (f *fakeSink) AuthFailure(msg string)    { f.failure = msg }

func TestAuthorizeURL(t *testing.T) {
	got := AuthorizeURL("http://api.example.com", "google", "http://localhost:8910/auth/callback")
	want := "http://api.example.com/api/auth/google?redirect_uri=http%3A%2F%2Flocalhost%3A8910%2Fauth%2Fcallback"
	if got != want {
		t.Errorf("AuthorizeURL = %q; want %q", got, want)
	}
}

func TestCallback_PopulatesSession(t *testing.T) {
	sink := &fakeSink{}
	l := NewListener("localhost:0", sink, zap.NewNop())
	srv := httptest.NewServer(l.router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/auth/callback?token=tok&id=u1&username=ada&email=a%40b.c&admin=true")
	if err != nil {
		t.Fatalf("callback request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d; want 200", resp.StatusCode)
	}
	if sink.user == nil {
		t.Fatal("session was not populated")
	}
	if sink.user.ID != "u1" || sink.user.Username != "ada" || sink.user.Token != "tok" || !sink.user.IsAdmin {
		t.Errorf("unexpected user: %+v", sink.user)
	}

	// The callback also resolves the waiting channel.
	select {
	case u := <-l.users:
		if u.ID != "u1" {
			t.Errorf("delivered user = %+v", u)
		}
	default:
		t.Error("waiting channel was not resolved")
	}
}

func TestCallback_MissingTokenIsFailure(t *testing.T) {
	sink := &fakeSink{}
	l := NewListener("localhost:0", sink, zap.NewNop())
	srv := httptest.NewServer(l.router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/auth/callback?error=access_denied")
	if err != nil {
		t.Fatalf("callback request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", resp.StatusCode)
	}
	if sink.user != nil {
		t.Errorf("session must not be populated, got %+v", sink.user)
	}
	if !strings.Contains(sink.failure, "access_denied") {
		t.Errorf("failure = %q; want provider error surfaced", sink.failure)
	}
}
