package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/structura-app/structura-cli/internal/api"
	"github.com/structura-app/structura-cli/internal/forms"
	"github.com/structura-app/structura-cli/internal/guard"
	"github.com/structura-app/structura-cli/internal/oauth"
)

// oauthWait bounds how long we wait for the browser round-trip.
const oauthWait = 2 * time.Minute

// errMessage normalizes an error into the string a view would display.
func errMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// printValidation shows per-field validation errors inline, the way a form
// view would.
func printValidation(err error) bool {
	var verr *forms.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	for _, fe := range verr.Fields {
		fmt.Printf("  %s: %s\n", fe.Field, fe.Error)
	}
	return true
}

// requireAuth gates commands that need an authenticated session.
func (a *app) requireAuth() bool {
	if a.store.Token() == "" {
		fmt.Println("You must sign in first.")
		return false
	}
	return true
}

func (a *app) whoami() {
	u := a.store.User()
	if u != nil {
		// A rehydrated session may be stale; ask the server who we are.
		ctx, cancel := a.ctx()
		defer cancel()
		if fresh, err := a.auth.Me(ctx); err != nil {
			a.log.Warn("identity refresh failed", zap.Error(err))
		} else {
			a.store.ProfileUpdated(*fresh)
			u = a.store.User()
		}
	}
	if u == nil {
		fmt.Println("Not signed in.")
	} else {
		role := "member"
		if u.IsAdmin {
			role = "admin"
		}
		fmt.Printf("%s <%s> (%s), %d cached posts\n", u.Username, u.Email, role, len(a.store.Posts()))
	}
	fmt.Println("Navigation:", guard.Decide(u))
}

func (a *app) signIn() {
	form := forms.SignInForm{
		Email:    a.prompt("Email"),
		Password: a.prompt("Password"),
	}

	a.store.Begin()
	ctx, cancel := a.ctx()
	defer cancel()
	u, err := a.auth.SignIn(ctx, form)
	if err != nil {
		a.store.AuthFailure(errMessage(err))
		if !printValidation(err) {
			fmt.Println("Sign-in failed:", a.store.Error())
		}
		return
	}
	a.store.AuthSuccess(*u)
	fmt.Println("Signed in as", u.Username)
	a.refreshMyPosts(ctx)
}

func (a *app) signUp() {
	form := forms.SignUpForm{
		Username: a.prompt("Username"),
		Email:    a.prompt("Email"),
		Password: a.prompt("Password"),
	}

	a.store.Begin()
	ctx, cancel := a.ctx()
	defer cancel()
	u, err := a.auth.SignUp(ctx, form)
	if err != nil {
		a.store.AuthFailure(errMessage(err))
		if !printValidation(err) {
			fmt.Println("Sign-up failed:", a.store.Error())
		}
		return
	}
	a.store.AuthSuccess(*u)
	fmt.Println("Welcome,", u.Username)
}

// signOut clears the session no matter what the server says.
func (a *app) signOut() {
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.auth.SignOut(ctx); err != nil {
		a.log.Warn("server sign-out failed", zap.Error(err))
	}
	a.store.SignOut()
	fmt.Println("Signed out.")
}

func (a *app) oauthSignIn(provider string) {
	if provider == "" {
		fmt.Println("Usage: oauth <provider>")
		return
	}
	listener := oauth.NewListener(a.cfg.OAuthAddr, a.store, a.log)
	authURL := oauth.AuthorizeURL(a.cfg.BaseURL, provider, listener.RedirectURI())
	fmt.Println("Open this URL in your browser to continue:")
	fmt.Println(" ", authURL)

	ctx, cancel := context.WithTimeout(context.Background(), oauthWait)
	defer cancel()
	u, err := listener.Wait(ctx)
	if err != nil {
		fmt.Println("OAuth sign-in failed:", errMessage(err))
		return
	}
	fmt.Println("Signed in as", u.Username)
	reqCtx, reqCancel := a.ctx()
	defer reqCancel()
	a.refreshMyPosts(reqCtx)
}

// refreshMyPosts is the single fetch path feeding the session's post cache.
func (a *app) refreshMyPosts(ctx context.Context) {
	posts, err := a.posts.Mine(ctx)
	if err != nil {
		a.log.Warn("post cache refresh failed", zap.Error(err))
		return
	}
	a.store.SetUserPosts(posts)
}

func (a *app) editProfile() {
	if !a.requireAuth() {
		return
	}
	u := a.store.User()
	form, err := forms.SeedProfileForm(*u)
	if err != nil {
		a.fail(err)
		return
	}
	form.Username = a.promptDefault("Username", form.Username)
	form.Email = a.promptDefault("Email", form.Email)

	var picture *api.File
	if path := a.prompt("Profile picture path (empty to keep)"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Println("Cannot read picture:", err)
			return
		}
		defer f.Close()
		picture = &api.File{Field: "profilePicture", Name: filepath.Base(path), Content: f}
	}

	ctx, cancel := a.ctx()
	defer cancel()
	updated, err := a.auth.UpdateProfile(ctx, u.ID, form, picture)
	if err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	a.store.ProfileUpdated(*updated)
	fmt.Println("Profile updated.")
}

func (a *app) changePassword() {
	if !a.requireAuth() {
		return
	}
	form := forms.PasswordForm{
		OldPassword: a.prompt("Current password"),
		NewPassword: a.prompt("New password"),
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.auth.ChangePassword(ctx, a.store.User().ID, form); err != nil {
		if !printValidation(err) {
			a.fail(err)
		}
		return
	}
	fmt.Println("Password changed.")
}

func (a *app) deleteAccount() {
	if !a.requireAuth() {
		return
	}
	if !a.confirm("Really delete your account? This cannot be undone.") {
		return
	}
	ctx, cancel := a.ctx()
	defer cancel()
	if err := a.auth.DeleteAccount(ctx, a.store.User().ID); err != nil {
		a.fail(err)
		return
	}
	a.store.AccountDeleted()
	fmt.Println("Account deleted.")
}
