package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func withTempHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd("1.2.3")
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1.2.3") {
		t.Fatalf("version output: %q", out.String())
	}
}

func TestTokenRoundTripAndLogout(t *testing.T) {
	withTempHome(t)

	if _, err := loadToken(); err == nil {
		t.Fatalf("expected error before login")
	}
	if err := saveToken("tok-123"); err != nil {
		t.Fatal(err)
	}
	tok, err := loadToken()
	if err != nil || tok != "tok-123" {
		t.Fatalf("load token: %v %q", err, tok)
	}

	root := NewRootCmd("test")
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs([]string{"auth", "logout"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := loadToken(); err == nil {
		t.Fatalf("token survived logout")
	}

	// logout with no stored token is not an error
	root.SetArgs([]string{"auth", "logout"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
}

func TestNotesListCommand(t *testing.T) {
	withTempHome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notes" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"t","content":"c","tags":[]}]`))
	}))
	defer srv.Close()

	if err := saveToken("tok-123"); err != nil {
		t.Fatal(err)
	}
	root := NewRootCmd("test")
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs([]string{"--server", srv.URL, "notes", "list"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"title": "t"`) {
		t.Fatalf("list output: %q", out.String())
	}
}

func TestNotesCommandsRequireLogin(t *testing.T) {
	withTempHome(t)

	root := NewRootCmd("test")
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"notes", "list"})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "please login") {
		t.Fatalf("expected login error, got %v", err)
	}
}
