package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// staticTokens is a TokenSource returning a fixed token.
type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, staticTokens(token), 5*time.Second, zap.NewNop()), srv
}

func TestDo_SetsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}, "tok123")

	var out struct{}
	if err := c.get(context.Background(), "/api/posts", &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q; want bearer token", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected an X-Request-Id header")
	}
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var present bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}, "")

	var out struct{}
	if err := c.get(context.Background(), "/api/posts", &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if present {
		t.Errorf("unexpected Authorization header %q on anonymous request", gotAuth)
	}
}

func TestDo_ErrorEnvelopeMessageKey(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"wrong credentials"}`))
	}, "")

	err := c.get(context.Background(), "/api/auth/signin", nil)
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if apiErr.Message != "wrong credentials" {
		t.Errorf("message = %q; want server message", apiErr.Message)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", apiErr.Status)
	}
	if !apiErr.IsAuth() {
		t.Error("401 must report as an authorization error")
	}
}

func TestDo_ErrorEnvelopeErrorKey(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"title taken"}`))
	}, "")

	err := c.postJSON(context.Background(), "/api/posts", struct{}{}, nil)
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "title taken" {
		t.Errorf("message = %q; the error key must feed the same envelope", apiErr.Message)
	}
}

func TestDo_ErrorFallbackMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json at all`))
	}, "")

	err := c.get(context.Background(), "/api/posts", nil)
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != genericErrMsg {
		t.Errorf("message = %q; want generic fallback", apiErr.Message)
	}
}

func TestMultipart_EncodesFieldsAndFiles(t *testing.T) {
	var gotContentType, gotTitle, gotFile string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotTitle = r.FormValue("title")
		if f, hdr, err := r.FormFile("image"); err == nil {
			defer f.Close()
			gotFile = hdr.Filename
		}
		w.Write([]byte(`{}`))
	}, "tok")

	files := []File{{Field: "image", Name: "plan.png", Content: strings.NewReader("png-bytes")}}
	var out struct{}
	err := c.postMultipart(context.Background(), "/api/posts", map[string]string{"title": "Bauhaus"}, files, &out)
	if err != nil {
		t.Fatalf("postMultipart failed: %v", err)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("content type = %q; want multipart/form-data", gotContentType)
	}
	if gotTitle != "Bauhaus" {
		t.Errorf("title field = %q", gotTitle)
	}
	if gotFile != "plan.png" {
		t.Errorf("file name = %q", gotFile)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	}, "")
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.get(ctx, "/api/slow", nil) }()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error after cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("canceled request did not return")
	}
}
