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
	"golang.org/x/term"
)

type authClient struct {
	serverURL *string
}

func newAuthCmd(serverURL *string) *cobra.Command {
	a := &authClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "auth", Short: "Authentication commands"}
	cmd.AddCommand(&cobra.Command{Use: "register", Short: "Register new user", RunE: a.register})
	cmd.AddCommand(&cobra.Command{Use: "login", Short: "Login and store token", RunE: a.login})
	cmd.AddCommand(&cobra.Command{Use: "logout", Short: "Forget stored token", RunE: a.logout})
	return cmd
}

func (a *authClient) register(cmd *cobra.Command, args []string) error {
	username, password, err := promptCredentials(cmd)
	if err != nil {
		return err
	}
	body := map[string]string{"username": username, "password": password}
	b, _ := json.Marshal(body)
	resp, err := http.Post(*a.serverURL+"/register", "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("register failed: %s", resp.Status)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Registered")
	return nil
}

func (a *authClient) login(cmd *cobra.Command, args []string) error {
	username, password, err := promptCredentials(cmd)
	if err != nil {
		return err
	}
	body := map[string]string{"username": username, "password": password}
	b, _ := json.Marshal(body)
	resp, err := http.Post(*a.serverURL+"/login", "application/json", bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("login failed: %s", resp.Status)
	}
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if err := saveToken(result.AccessToken); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
	return nil
}

func (a *authClient) logout(cmd *cobra.Command, args []string) error {
	if err := os.Remove(tokenPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func promptCredentials(cmd *cobra.Command) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Fprint(cmd.OutOrStdout(), "Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	password, err := promptPassword(cmd, "Password: ")
	if err != nil {
		return "", "", err
	}
	return username, string(password), nil
}

func promptPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	return pass, err
}

func tokenPath() string {
	home, _ := os.UserHomeDir()
	return home + string(os.PathSeparator) + ".notes_token"
}

func saveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", fmt.Errorf("no access token, please login")
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", fmt.Errorf("no access token, please login")
	}
	return token, nil
}
