package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"mentorship-system/config"
	"mentorship-system/internal/router"
	"mentorship-system/internal/testutil"
	"mentorship-system/pkg/jwt"
	"mentorship-system/pkg/mentorship"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type cli struct {
	t       *testing.T
	baseURL string
	session string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.GetDefaultConfig()
	cfg.RateLimit.RequestsPerSecond = 0
	srv := httptest.NewServer(router.New(router.Deps{
		Config: cfg,
		DB:     testutil.OpenTestDB(t),
		JWT:    jwt.NewJWTService(cfg.JWT),
	}))
	t.Cleanup(srv.Close)
	return &cli{t: t, baseURL: srv.URL, session: filepath.Join(t.TempDir(), "session.yaml")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--base-url", c.baseURL, "--session", c.session}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestRequestLifecycleFromCLI(t *testing.T) {
	c := newCLI(t)

	c.mustRun("signup", "--role", "mentor", "--name", "Bob", "--email", "bob@example.com",
		"--password", "password123", "--university", "MIT")
	c.mustRun("signup", "--name", "Alice", "--email", "alice@example.com", "--password", "password123")

	out := c.mustRun("login", "--email", "alice@example.com", "--password", "password123")
	assert.Contains(t, out, "Signed in as alice@example.com (user)")

	var feed mentorship.FeedPage
	require.NoError(t, yaml.Unmarshal([]byte(c.mustRun("feed")), &feed))
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Bob", feed.Items[0].Name)

	var sent mentorship.Request
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("-o", "json", "send", "1", "-m", "Please mentor me")), &sent))
	assert.Equal(t, mentorship.StatusPending, sent.Status)
	assert.Equal(t, mentorship.RoleMentor, sent.ReceiverType)

	_, err := c.run("send", "1", "-m", "again")
	assert.ErrorIs(t, err, mentorship.ErrExistingActiveRequest)

	c.mustRun("login", "--role", "mentor", "--email", "bob@example.com", "--password", "password123")

	var incoming []mentorship.Request
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("-o", "json", "list", "incoming")), &incoming))
	require.Len(t, incoming, 1)
	assert.Equal(t, "Alice", incoming[0].SenderName)

	var accepted mentorship.Request
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("-o", "json", "accept", "1")), &accepted))
	assert.Equal(t, mentorship.StatusAccepted, accepted.Status)

	_, err = c.run("reject", "1")
	assert.ErrorIs(t, err, mentorship.ErrRequestFailed)

	var stats mentorship.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("-o", "json", "dashboard")), &stats))
	assert.Equal(t, 1, stats.AcceptedRequests)
	require.Len(t, stats.Students, 1)
	assert.Equal(t, "Alice", stats.Students[0].Name)

	out = c.mustRun("whoami")
	assert.Contains(t, out, "email: bob@example.com")

	c.mustRun("logout")
	_, err = c.run("dashboard")
	assert.ErrorIs(t, err, mentorship.ErrUnauthenticated)
}

func TestCancelFromCLI(t *testing.T) {
	c := newCLI(t)
	c.mustRun("signup", "--role", "mentor", "--name", "Bob", "--email", "bob@example.com", "--password", "password123")
	c.mustRun("signup", "--name", "Alice", "--email", "alice@example.com", "--password", "password123")
	c.mustRun("login", "--email", "alice@example.com", "--password", "password123")
	c.mustRun("send", "1", "-m", "hi")

	out := c.mustRun("cancel", "1")
	assert.Contains(t, out, "status: rejected")

	c.mustRun("send", "1", "-m", "hi again")
}

func TestCLIArgumentErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("login", "--role", "admin", "--email", "a@example.com")
	assert.ErrorContains(t, err, "role must be")

	_, err = c.run("send", "abc", "-m", "hi")
	assert.ErrorContains(t, err, `invalid id "abc"`)

	_, err = c.run("list", "sideways")
	assert.Error(t, err)

	_, err = c.run("-o", "xml", "feed")
	assert.ErrorContains(t, err, "unsupported output format")

	_, err = c.run("send", "1", "-m", "hi")
	assert.ErrorIs(t, err, mentorship.ErrUnauthenticated)

	_, err = c.run("login", "--email", "nobody@example.com", "--password", "password123")
	var reqErr *mentorship.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, strings.Contains(reqErr.Detail, "incorrect email or password"))
}

func TestProfileAndResumeFromCLI(t *testing.T) {
	c := newCLI(t)
	c.mustRun("signup", "--role", "mentor", "--name", "Bob", "--email", "bob@example.com",
		"--password", "password123", "--university", "MIT", "--title", "PhD")
	c.mustRun("login", "--role", "mentor", "--email", "bob@example.com", "--password", "password123")

	var profile mentorship.Profile
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("-o", "json", "profile", "update", "--title", "Professor")), &profile))
	assert.Equal(t, "Professor", profile.Title)
	// 未传入的字段保持不变
	assert.Equal(t, "MIT", profile.University)
	assert.Equal(t, "Bob", profile.Name)

	out := c.mustRun("profile", "mentor", "1")
	assert.Contains(t, out, "title: Professor")

	var resume mentorship.Resume
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("-o", "json", "resume", "create",
		"--university", "MIT", "--title", "Admissions", "--description", "Ten years of coaching")), &resume))
	assert.EqualValues(t, 1, resume.MentorID)

	require.NoError(t, json.Unmarshal([]byte(c.mustRun("-o", "json", "resume", "update", "1", "--title", "Interviews")), &resume))
	assert.Equal(t, "Interviews", resume.Title)
	assert.Equal(t, "Ten years of coaching", resume.Description)

	var resumes []mentorship.Resume
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("-o", "json", "resume", "list")), &resumes))
	require.Len(t, resumes, 1)

	_, err := c.run("resume", "get", "9")
	var reqErr *mentorship.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 404, reqErr.StatusCode)
}
