package main

import (
	"bytes"
	"strings"
	"testing"

	icmd "github.com/Kirill555dg/NotesApp/internal/client/cmd"
)

func TestVersionCommand(t *testing.T) {
	root := icmd.NewRootCmd("1.2.3")
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "1.2.3") {
		t.Fatalf("unexpected version output: %q", buf.String())
	}
}
