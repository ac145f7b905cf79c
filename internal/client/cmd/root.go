package cmd

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	var serverURL string
	root := &cobra.Command{
		Use:   "notesapp",
		Short: "Notes API CLI",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server base URL")

	root.AddCommand(newVersionCmd(version))
	root.AddCommand(newAuthCmd(&serverURL))
	root.AddCommand(newNotesCmd(&serverURL))
	return root
}
