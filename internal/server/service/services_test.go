package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kirill555dg/NotesApp/internal/server/config"
	"github.com/Kirill555dg/NotesApp/internal/server/repository"
	"github.com/Kirill555dg/NotesApp/internal/server/repository/sqlite"
)

func newTestServices(t *testing.T, dsn string) *Services {
	t.Helper()
	repo, err := sqlite.New(dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return NewServices(repo, config.Config{JWTSecret: "test", TokenTTL: time.Hour})
}

func TestAuthRegisterLogin(t *testing.T) {
	svcs := newTestServices(t, "file:svc_auth_login?mode=memory&cache=shared")
	ctx := context.Background()

	user, err := svcs.Auth.Register(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID == 0 || user.Username != "alice" {
		t.Fatalf("bad user: %+v", user)
	}

	tokens, err := svcs.Auth.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.TokenType != "bearer" || tokens.UserID != user.ID || tokens.Username != "alice" {
		t.Fatalf("bad token response: %+v", tokens)
	}

	subject, err := svcs.Auth.VerifyToken(tokens.AccessToken)
	if err != nil || subject != "alice" {
		t.Fatalf("verify: %v %q", err, subject)
	}
	resolved, err := svcs.Auth.ResolveUser(ctx, subject)
	if err != nil || resolved.ID != user.ID {
		t.Fatalf("resolve: %v %+v", err, resolved)
	}
}

func TestAuthFailuresAreUniform(t *testing.T) {
	svcs := newTestServices(t, "file:svc_auth_uniform?mode=memory&cache=shared")
	ctx := context.Background()

	if _, err := svcs.Auth.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatal(err)
	}

	// wrong password and unknown username produce the same error
	_, errWrongPassword := svcs.Auth.Login(ctx, "alice", "pw2")
	_, errUnknownUser := svcs.Auth.Login(ctx, "nobody", "pw1")
	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", errUnknownUser)
	}
}

func TestAuthDuplicateRegistration(t *testing.T) {
	svcs := newTestServices(t, "file:svc_auth_dup?mode=memory&cache=shared")
	ctx := context.Background()

	if _, err := svcs.Auth.Register(ctx, "bob", "pw1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svcs.Auth.Register(ctx, "bob", "pw2"); !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("duplicate register: %v", err)
	}

	// the first registration's credentials still win
	if _, err := svcs.Auth.Login(ctx, "bob", "pw2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("second password accepted: %v", err)
	}
	if _, err := svcs.Auth.Login(ctx, "bob", "pw1"); err != nil {
		t.Fatalf("first password rejected: %v", err)
	}
}

func TestNotesServiceClamping(t *testing.T) {
	svcs := newTestServices(t, "file:svc_notes_clamp?mode=memory&cache=shared")
	ctx := context.Background()

	user, err := svcs.Auth.Register(ctx, "alice", "pw")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svcs.Notes.Create(ctx, user.ID, "t", "c", nil); err != nil {
			t.Fatal(err)
		}
	}

	// negative skip and zero limit fall back to sane values
	notes, err := svcs.Notes.List(ctx, user.ID, -5, 0)
	if err != nil || len(notes) != 3 {
		t.Fatalf("clamped list: %v %d", err, len(notes))
	}
	// oversized limit is capped, not an error
	notes, err = svcs.Notes.List(ctx, user.ID, 0, 10_000)
	if err != nil || len(notes) != 3 {
		t.Fatalf("capped list: %v %d", err, len(notes))
	}
	notes, err = svcs.Notes.List(ctx, user.ID, 1, 1)
	if err != nil || len(notes) != 1 {
		t.Fatalf("paged list: %v %d", err, len(notes))
	}
}

func TestNotesServiceCRUD(t *testing.T) {
	svcs := newTestServices(t, "file:svc_notes_crud?mode=memory&cache=shared")
	ctx := context.Background()

	alice, _ := svcs.Auth.Register(ctx, "alice", "pw")
	bob, _ := svcs.Auth.Register(ctx, "bob", "pw")

	note, err := svcs.Notes.Create(ctx, alice.ID, "t", "c", []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svcs.Notes.Get(ctx, note.ID, bob.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cross-user get: %v", err)
	}
	updated, err := svcs.Notes.Update(ctx, note.ID, alice.ID, "t2", "c2", []string{"y", "z"})
	if err != nil || updated.Title != "t2" || len(updated.Tags) != 2 {
		t.Fatalf("update: %v %+v", err, updated)
	}
	deleted, err := svcs.Notes.Delete(ctx, note.ID, alice.ID)
	if err != nil || deleted.Title != "t2" {
		t.Fatalf("delete: %v %+v", err, deleted)
	}
	if _, err := svcs.Notes.Get(ctx, note.ID, alice.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
}
