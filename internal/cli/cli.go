// Package cli implements the portalctl commands. Tenant-facing and
// admin-facing commands share one credentials file but hold separate
// sessions, so a staff member can stay logged into both sides at once.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wifiportal/client"
)

const defaultServer = "http://localhost:8080"

var errNotLoggedIn = errors.New("not logged in (or session expired), run login first")

func serverURL(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		return s
	}
	if s := os.Getenv("WIFIPORTAL_SERVER"); s != "" {
		return s
	}
	return defaultServer
}

func openSessions() (*client.SessionStore, error) {
	path, err := client.DefaultSessionPath()
	if err != nil {
		return nil, err
	}
	return client.NewSessionStore(path)
}

func newClient(cmd *cobra.Command, role string) (*client.Client, error) {
	sessions, err := openSessions()
	if err != nil {
		return nil, err
	}
	return client.New(serverURL(cmd), role, sessions), nil
}

// authedClient builds a client for a role and fails fast when no live
// session exists, so every guarded command reports the same error.
func authedClient(cmd *cobra.Command, role string) (*client.Client, error) {
	sessions, err := openSessions()
	if err != nil {
		return nil, err
	}
	if !sessions.IsAuthenticated(role) {
		return nil, errNotLoggedIn
	}
	return client.New(serverURL(cmd), role, sessions), nil
}

func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
