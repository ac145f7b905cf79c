package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type notesClient struct{ serverURL *string }

func newNotesCmd(serverURL *string) *cobra.Command {
	n := &notesClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "notes", Short: "Manage notes"}
	list := &cobra.Command{Use: "list", Short: "List notes", RunE: n.list}
	list.Flags().Int("skip", 0, "Number of notes to skip")
	list.Flags().Int("limit", 0, "Maximum number of notes to return")
	cmd.AddCommand(list)
	cmd.AddCommand(&cobra.Command{Use: "get", Short: "Get note by id", Args: cobra.ExactArgs(1), RunE: n.get})
	cmd.AddCommand(&cobra.Command{Use: "create", Short: "Create a note", RunE: n.create})
	cmd.AddCommand(&cobra.Command{Use: "update", Short: "Replace a note by id", Args: cobra.ExactArgs(1), RunE: n.update})
	cmd.AddCommand(&cobra.Command{Use: "delete", Short: "Delete note by id", Args: cobra.ExactArgs(1), RunE: n.delete})
	return cmd
}

func (n *notesClient) list(cmd *cobra.Command, args []string) error {
	token, err := loadToken()
	if err != nil {
		return err
	}
	skip, _ := cmd.Flags().GetInt("skip")
	limit, _ := cmd.Flags().GetInt("limit")
	url := fmt.Sprintf("%s/notes?skip=%d&limit=%d", *n.serverURL, skip, limit)
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("list failed: %s", resp.Status)
	}
	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func (n *notesClient) get(cmd *cobra.Command, args []string) error {
	token, err := loadToken()
	if err != nil {
		return err
	}
	req, _ := http.NewRequest("GET", *n.serverURL+"/notes/"+args[0], nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("get failed: %s", resp.Status)
	}
	return printJSON(cmd, resp)
}

func (n *notesClient) create(cmd *cobra.Command, args []string) error {
	return n.send(cmd, "POST", *n.serverURL+"/notes", "create")
}

func (n *notesClient) update(cmd *cobra.Command, args []string) error {
	return n.send(cmd, "PUT", *n.serverURL+"/notes/"+args[0], "update")
}

// send prompts for the note fields and submits them. Update is a full
// replace, so the same prompts serve both verbs.
func (n *notesClient) send(cmd *cobra.Command, method, url, op string) error {
	token, err := loadToken()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(os.Stdin)
	fmt.Fprint(cmd.OutOrStdout(), "Title: ")
	title, _ := reader.ReadString('\n')
	fmt.Fprint(cmd.OutOrStdout(), "Content: ")
	content, _ := reader.ReadString('\n')
	fmt.Fprint(cmd.OutOrStdout(), "Tags (comma separated): ")
	rawTags, _ := reader.ReadString('\n')
	tags := []string{}
	for _, t := range strings.Split(strings.TrimSpace(rawTags), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	body := map[string]any{
		"title":   strings.TrimSpace(title),
		"content": strings.TrimSpace(content),
		"tags":    tags,
	}
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s failed: %s", op, resp.Status)
	}
	return printJSON(cmd, resp)
}

func (n *notesClient) delete(cmd *cobra.Command, args []string) error {
	token, err := loadToken()
	if err != nil {
		return err
	}
	req, _ := http.NewRequest("DELETE", *n.serverURL+"/notes/"+args[0], nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("delete failed: %s", resp.Status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Note deleted")
	return nil
}

func printJSON(cmd *cobra.Command, resp *http.Response) error {
	var v map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
