// Package oauth handles the OAuth redirect flow: building the external
// authorization URL the browser is sent to, and a loopback listener that
// consumes the return trip's query parameters and populates the session.
package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/structura-app/structura-cli/internal/models"
)

// SessionSink receives the outcome of the callback. The session store
// satisfies it.
type SessionSink interface {
	AuthSuccess(u models.User)
	AuthFailure(msg string)
}

// AuthorizeURL builds the external authorization URL for the given provider,
// carrying the loopback redirect target.
func AuthorizeURL(base, provider, redirect string) string {
	return base + "/api/auth/" + provider + "?redirect_uri=" + url.QueryEscape(redirect)
}

// Listener serves one OAuth callback on a loopback address.
type Listener struct {
	addr  string
	sink  SessionSink
	log   *zap.Logger
	users chan models.User
}

// NewListener creates a Listener on addr delivering into sink.
func NewListener(addr string, sink SessionSink, log *zap.Logger) *Listener {
	return &Listener{
		addr:  addr,
		sink:  sink,
		log:   log,
		users: make(chan models.User, 1),
	}
}

// RedirectURI is the callback URL to hand to AuthorizeURL.
func (l *Listener) RedirectURI() string {
	return "http://" + l.addr + "/auth/callback"
}

// router mounts the callback route with request logging.
func (l *Listener) router() http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestLogging(l.log))
	r.Get("/auth/callback", l.handleCallback)
	return r
}

// handleCallback consumes the identity and token carried back as query
// parameters. A missing token is an authentication failure.
func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	token := q.Get("token")
	if token == "" {
		msg := q.Get("error")
		if msg == "" {
			msg = "authorization was denied"
		}
		l.sink.AuthFailure(msg)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	u := models.User{
		ID:             q.Get("id"),
		Username:       q.Get("username"),
		Email:          q.Get("email"),
		IsAdmin:        q.Get("admin") == "true",
		Token:          token,
		ProfilePicture: q.Get("picture"),
	}
	l.sink.AuthSuccess(u)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Signed in. You can close this window.\n"))

	select {
	case l.users <- u:
	default:
	}
}

// Wait serves the loopback listener until the callback arrives or ctx is
// canceled, and returns the signed-in user.
func (l *Listener) Wait(ctx context.Context) (*models.User, error) {
	server := &http.Server{Addr: l.addr, Handler: l.router()}

	errc := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	l.log.Info("waiting for oauth callback", zap.String("addr", l.addr))
	select {
	case u := <-l.users:
		return &u, nil
	case err := <-errc:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
