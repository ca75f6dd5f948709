package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"mentorship-system/pkg/mentorship"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "http://localhost:8000"

// app 命令共享的状态，在 PersistentPreRunE 中初始化
type app struct {
	baseURL     string
	sessionPath string
	output      string
	verbose     bool
	timeout     time.Duration

	log    *zap.Logger
	client *mentorship.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mentorctl",
		Short: "Command line client for the mentorship request service",
		Long: `mentorctl talks to the mentorship REST API.

Sign in once with "mentorctl login"; the session is kept in
~/.mentorship/session.yaml (or --session) and reused by later commands.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	baseURL := os.Getenv("MENTORSHIP_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", baseURL, "API base URL (or set MENTORSHIP_API_URL)")
	root.PersistentFlags().StringVar(&a.sessionPath, "session", "", "Session file (default: ~/.mentorship/session.yaml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "yaml", "Output format: yaml or json")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "HTTP timeout")

	root.AddCommand(
		a.signupCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.sendCmd(),
		a.listCmd(),
		a.transitionCmd("accept", "Accept an incoming request", (*mentorship.Board).Accept),
		a.transitionCmd("reject", "Reject an incoming request", (*mentorship.Board).Reject),
		a.transitionCmd("cancel", "Cancel one of your outgoing requests", (*mentorship.Board).Cancel),
		a.dashboardCmd(),
		a.feedCmd(),
		a.profileCmd(),
		a.resumeCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.output != "yaml" && a.output != "json" {
		return fmt.Errorf("unsupported output format %q", a.output)
	}

	a.log = zap.NewNop()
	if a.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		a.log = l
	}

	path := a.sessionPath
	if path == "" {
		p, err := mentorship.DefaultSessionPath()
		if err != nil {
			return err
		}
		path = p
	}
	store, err := mentorship.NewFileStore(path)
	if err != nil {
		return err
	}
	a.log.Debug("session loaded", zap.String("path", store.Path()), zap.Bool("authenticated", store.IsAuthenticated()))

	a.client = mentorship.NewClient(a.baseURL, store,
		mentorship.WithHTTPClient(&http.Client{Timeout: a.timeout}),
		mentorship.WithLogger(a.log),
	)
	return nil
}

func (a *app) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

// print 按 --output 输出；yaml 先经过 json 以保留字段名
func (a *app) print(w io.Writer, v interface{}) error {
	if a.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func parseRole(s string) (mentorship.Role, error) {
	role := mentorship.Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("role must be %q or %q", mentorship.RoleUser, mentorship.RoleMentor)
	}
	return role, nil
}
