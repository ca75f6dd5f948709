package mentorship

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}

func TestComputeDashboardStats(t *testing.T) {
	incoming := []Request{
		{ID: 1, SenderID: 10, SenderType: RoleUser, SenderName: "Alice", Status: StatusAccepted, CreatedAt: daysAgo(50), UpdatedAt: daysAgo(45)},
		{ID: 2, SenderID: 11, SenderType: RoleUser, Status: StatusAccepted, CreatedAt: daysAgo(12), UpdatedAt: daysAgo(10)},
		{ID: 3, SenderID: 12, SenderType: RoleUser, SenderName: "Carol", Status: StatusPending, CreatedAt: daysAgo(1), UpdatedAt: daysAgo(1)},
		{ID: 4, SenderID: 13, SenderType: RoleUser, SenderName: "Dan", Status: StatusRejected, CreatedAt: daysAgo(5), UpdatedAt: daysAgo(4)},
	}
	outgoing := []Request{
		{ID: 5, ReceiverID: 14, ReceiverType: RoleUser, ReceiverName: "Erin", Status: StatusPending, CreatedAt: daysAgo(2), UpdatedAt: daysAgo(2)},
		{ID: 6, ReceiverID: 15, ReceiverType: RoleUser, Status: StatusAccepted, CreatedAt: daysAgo(30), UpdatedAt: daysAgo(3)},
	}

	stats := ComputeDashboardStats(incoming, outgoing, now)

	assert.Equal(t, 6, stats.TotalRequests)
	assert.Equal(t, 2, stats.PendingRequests)
	assert.Equal(t, 3, stats.AcceptedRequests)
	assert.Equal(t, 1, stats.RejectedRequests)
	assert.Equal(t, stats.TotalRequests, stats.PendingRequests+stats.AcceptedRequests+stats.RejectedRequests)

	// 只有收到且已同意的申请计入学生
	require.Len(t, stats.Students, 2)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.ActiveStudents)
	assert.Equal(t, 1, stats.InactiveStudents)

	alice := stats.Students[0]
	assert.EqualValues(t, 1, alice.RequestID)
	assert.EqualValues(t, 10, alice.ID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, Incoming, alice.RequestType)
	assert.Equal(t, StudentInactive, alice.Status)
	assert.Equal(t, 45, alice.Progress.DaysTogether)

	second := stats.Students[1]
	assert.Equal(t, "User #11", second.Name)
	assert.Equal(t, StudentActive, second.Status)
	assert.Equal(t, 10, second.Progress.DaysTogether)

	require.Len(t, stats.RecentActivity, RecentActivityLimit)
	assert.Equal(t, Activity{Date: daysAgo(1), Action: ActionNewRequest, User: "Carol"}, stats.RecentActivity[0])
	assert.Equal(t, Activity{Date: daysAgo(2), Action: ActionRequestSent, User: "Erin"}, stats.RecentActivity[1])
	assert.Equal(t, Activity{Date: daysAgo(3), Action: ActionRequestAccepted, User: "User #15"}, stats.RecentActivity[2])
	assert.Equal(t, Activity{Date: daysAgo(4), Action: ActionRequestRejected, User: "Dan"}, stats.RecentActivity[3])
	assert.Equal(t, daysAgo(10), stats.RecentActivity[4].Date)
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := ComputeDashboardStats(nil, nil, now)
	assert.Zero(t, stats.TotalRequests)
	assert.NotNil(t, stats.Students)
	assert.NotNil(t, stats.RecentActivity)
	assert.Empty(t, stats.RecentActivity)
}

func TestComputeDashboardStatsIsPure(t *testing.T) {
	incoming := []Request{{ID: 1, SenderID: 10, SenderType: RoleUser, Status: StatusAccepted, UpdatedAt: daysAgo(1)}}
	first := ComputeDashboardStats(incoming, nil, now)
	second := ComputeDashboardStats(incoming, nil, now)
	assert.Equal(t, first, second)
	assert.Equal(t, StatusAccepted, incoming[0].Status)
}

func TestGetDashboardStatsRefetchesEveryCall(t *testing.T) {
	b := newFakeBackend(t)
	b.seed(Request{SenderID: 1, SenderType: RoleUser, ReceiverID: 42, ReceiverType: RoleMentor})
	c := NewClient(b.URL(), NewMemoryStore("mentor-token", RoleMentor), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	stats := c.GetDashboardStats(ctx)
	assert.Equal(t, len(c.ListIncoming(ctx))+len(c.ListOutgoing(ctx)), stats.TotalRequests)
	assert.Equal(t, 1, stats.PendingRequests)

	_, err := c.SendMentorshipRequest(ctx, 7, "join me", RoleUser)
	require.NoError(t, err)

	stats = c.GetDashboardStats(ctx)
	assert.Equal(t, 2, stats.TotalRequests)
	assert.Equal(t, 2, stats.PendingRequests)
}

func TestGetDashboardStatsWhenBackendDown(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", NewMemoryStore("tok", RoleMentor), WithClock(func() time.Time { return now }))
	stats := c.GetDashboardStats(context.Background())
	assert.Zero(t, stats.TotalRequests)
	assert.Empty(t, stats.Students)
}
