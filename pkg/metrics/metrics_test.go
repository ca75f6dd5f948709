package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mentorship-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mentorsErr error
}

func (fakeSource) CountUsers() (int64, error) { return 3, nil }

func (f fakeSource) CountMentors() (int64, error) { return 2, f.mentorsErr }

func (fakeSource) CountRequestsByStatus() (map[model.RequestStatus]int64, error) {
	return map[model.RequestStatus]int64{
		model.RequestStatusPending:  4,
		model.RequestStatusAccepted: 1,
		model.RequestStatusRejected: 0,
	}, nil
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.POST("/requests/approve/:id", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/requests/approve/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/requests/approve/:id", "POST", "401")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.authRejections.WithLabelValues("401_unauthorized")))
}

func TestBusinessCollector(t *testing.T) {
	m := New()
	require.NoError(t, m.Register(NewBusinessCollector(fakeSource{})))

	expected := `
# HELP mentorship_requests Number of mentorship requests by status
# TYPE mentorship_requests gauge
mentorship_requests{status="accepted"} 1
mentorship_requests{status="pending"} 4
mentorship_requests{status="rejected"} 0
# HELP mentorship_users_total Number of registered users
# TYPE mentorship_users_total gauge
mentorship_users_total 3
`
	assert.NoError(t, testutil.GatherAndCompare(m.registry, strings.NewReader(expected),
		"mentorship_requests", "mentorship_users_total"))
}

func TestBusinessCollectorSkipsFailedQuery(t *testing.T) {
	c := NewBusinessCollector(fakeSource{mentorsErr: errors.New("db down")})
	// users + 3 个状态
	assert.Equal(t, 4, testutil.CollectAndCount(c))
}

type fakeOnline struct {
	n   int
	err error
}

func (f fakeOnline) OnlineCount(context.Context) (int, error) { return f.n, f.err }

func TestBusinessCollectorOnlineAccounts(t *testing.T) {
	m := New()
	require.NoError(t, m.Register(NewBusinessCollector(fakeSource{}).WithOnline(fakeOnline{n: 2})))

	expected := `
# HELP mentorship_online_accounts Number of accounts with an open websocket connection
# TYPE mentorship_online_accounts gauge
mentorship_online_accounts 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.registry, strings.NewReader(expected), "mentorship_online_accounts"))

	c := NewBusinessCollector(fakeSource{}).WithOnline(fakeOnline{err: errors.New("redis down")})
	// users + mentors + 3 个状态
	assert.Equal(t, 5, testutil.CollectAndCount(c))
}

func TestHandlerServesRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
