package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cliConfig is read from --config or ~/.pulsectl.yaml.
type cliConfig struct {
	APIBaseURL   string `yaml:"api_base_url"`
	SessionToken string `yaml:"session_token"`
}

func loadConfig(path string) (cliConfig, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cliConfig{}, err
		}
		path = filepath.Join(home, ".pulsectl.yaml")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cliConfig{}, fmt.Errorf("read config: %w", err)
	}

	var cfg cliConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cliConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.APIBaseURL == "" {
		return cliConfig{}, fmt.Errorf("config %s: api_base_url is required", path)
	}
	return cfg, nil
}

type client struct {
	cfg  cliConfig
	http *http.Client
}

func newClient(cfg cliConfig) *client {
	return &client{cfg: cfg, http: &http.Client{Timeout: 15 * time.Second}}
}

func (c *client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.cfg.APIBaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.SessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.SessionToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "pulsectl",
		Short:         "Utility for managing Project Pulse client access",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.pulsectl.yaml)")

	cmd.AddCommand(newProjectsCommand(&configPath))
	cmd.AddCommand(newTokensCommand(&configPath))
	return cmd
}

func newProjectsCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects you administer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			var out struct {
				Projects []struct {
					ID         string `json:"id"`
					Name       string `json:"name"`
					ClientName string `json:"client_name"`
					Status     string `json:"status"`
				} `json:"projects"`
			}
			if err := newClient(cfg).do(http.MethodGet, "/v1/projects", nil, &out); err != nil {
				return err
			}

			for _, p := range out.Projects {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s (%s)\n", p.ID, p.Status, p.Name, p.ClientName)
			}
			return nil
		},
	})
	return cmd
}

func newTokensCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Client access-token operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTokensIssueCommand(configPath))
	cmd.AddCommand(newTokensListCommand(configPath))
	cmd.AddCommand(newTokensRevokeCommand(configPath))
	return cmd
}

func newTokensIssueCommand(configPath *string) *cobra.Command {
	var (
		projectID string
		email     string
		ttlDays   int
		sendEmail bool
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a client portal link for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			var out struct {
				Token     string `json:"token"`
				ClientURL string `json:"client_url"`
				ExpiresAt string `json:"expires_at"`
			}
			body := map[string]any{
				"client_email":    email,
				"expires_in_days": ttlDays,
				"send_email":      sendEmail,
			}
			path := fmt.Sprintf("/v1/projects/%s/access-tokens", projectID)
			if err := newClient(cfg).do(http.MethodPost, path, body, &out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "token:      %s\n", out.Token)
			fmt.Fprintf(cmd.OutOrStdout(), "client url: %s\n", out.ClientURL)
			fmt.Fprintf(cmd.OutOrStdout(), "expires at: %s\n", out.ExpiresAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&email, "email", "", "Client email the link is intended for")
	cmd.Flags().IntVar(&ttlDays, "ttl", 0, "Days until expiry (server default when 0)")
	cmd.Flags().BoolVar(&sendEmail, "send-email", false, "Email the link to the client")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newTokensListCommand(configPath *string) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tokens issued for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			var out struct {
				AccessTokens []struct {
					ID          string `json:"id"`
					ClientEmail string `json:"client_email"`
					TokenPrefix string `json:"token_prefix"`
					ExpiresAt   string `json:"expires_at"`
					IsActive    bool   `json:"is_active"`
				} `json:"access_tokens"`
			}
			path := fmt.Sprintf("/v1/projects/%s/access-tokens", projectID)
			if err := newClient(cfg).do(http.MethodGet, path, nil, &out); err != nil {
				return err
			}

			for _, t := range out.AccessTokens {
				state := "active"
				if !t.IsActive {
					state = "revoked"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %-12s %s expires %s\n",
					t.ID, state, t.TokenPrefix, t.ClientEmail, t.ExpiresAt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTokensRevokeCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke <token-id>",
		Short: "Revoke a token immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			path := fmt.Sprintf("/v1/access-tokens/%s/revoke", args[0])
			if err := newClient(cfg).do(http.MethodPost, path, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", args[0])
			return nil
		},
	}
	return cmd
}
