package main

import (
	"fmt"
	"os"

	"github.com/Kirill555dg/NotesApp/internal/client/cmd"
)

var version = "2.0.0"

func main() {
	root := cmd.NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
