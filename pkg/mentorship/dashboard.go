package mentorship

import (
	"context"
	"sort"
	"time"
)

const (
	// ActiveWindow 最近一次活动在此时间内的学生视为活跃
	ActiveWindow = 30 * 24 * time.Hour
	// RecentActivityLimit 最近动态条数
	RecentActivityLimit = 5
)

// 动态类型
const (
	ActionNewRequest      = "new request"
	ActionRequestSent     = "request sent"
	ActionRequestAccepted = "request accepted"
	ActionRequestRejected = "request rejected"
)

// StudentStatus 学生活跃状态
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// Progress 指导进度
type Progress struct {
	DaysTogether int `json:"days_together"`
}

// Student 已同意的收到申请对应的学生
type Student struct {
	RequestID    uint          `json:"request_id"`
	ID           uint          `json:"id"`
	Role         Role          `json:"role"`
	Name         string        `json:"name"`
	Email        string        `json:"email,omitempty"`
	Avatar       string        `json:"avatar,omitempty"`
	RequestType  BoardKind     `json:"request_type"`
	StartedAt    time.Time     `json:"started_at"`
	LastActivity time.Time     `json:"last_activity"`
	Status       StudentStatus `json:"status"`
	Progress     Progress      `json:"progress"`
}

// Activity 最近动态
type Activity struct {
	Date   time.Time `json:"date"`
	Action string    `json:"action"`
	User   string    `json:"user"`
}

// DashboardStats 导师面板统计
type DashboardStats struct {
	TotalRequests    int        `json:"total_requests"`
	PendingRequests  int        `json:"pending_requests"`
	AcceptedRequests int        `json:"accepted_requests"`
	RejectedRequests int        `json:"rejected_requests"`
	TotalStudents    int        `json:"total_students"`
	ActiveStudents   int        `json:"active_students"`
	InactiveStudents int        `json:"inactive_students"`
	Students         []Student  `json:"students"`
	RecentActivity   []Activity `json:"recent_activity"`
}

// GetDashboardStats 每次都重新获取收发列表后计算，不缓存
func (c *Client) GetDashboardStats(ctx context.Context) DashboardStats {
	incoming := c.ListIncoming(ctx)
	outgoing := c.ListOutgoing(ctx)
	return ComputeDashboardStats(incoming, outgoing, c.now())
}

// ComputeDashboardStats 由收发列表计算统计，纯函数
func ComputeDashboardStats(incoming, outgoing []Request, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalRequests:  len(incoming) + len(outgoing),
		Students:       []Student{},
		RecentActivity: []Activity{},
	}

	var activity []Activity
	count := func(r Request, kind BoardKind) {
		switch r.Status {
		case StatusPending:
			stats.PendingRequests++
		case StatusAccepted:
			stats.AcceptedRequests++
		case StatusRejected:
			stats.RejectedRequests++
		}
		activity = append(activity, activityFor(r, kind))
	}

	for _, r := range incoming {
		count(r, Incoming)
		if r.Status != StatusAccepted {
			continue
		}
		s := studentFrom(r, now)
		stats.Students = append(stats.Students, s)
		if s.Status == StudentActive {
			stats.ActiveStudents++
		} else {
			stats.InactiveStudents++
		}
	}
	for _, r := range outgoing {
		count(r, Outgoing)
	}
	stats.TotalStudents = len(stats.Students)

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})
	if len(activity) > RecentActivityLimit {
		activity = activity[:RecentActivityLimit]
	}
	stats.RecentActivity = append(stats.RecentActivity, activity...)
	return stats
}

func studentFrom(r Request, now time.Time) Student {
	started := r.UpdatedAt
	if started.IsZero() {
		started = r.CreatedAt
	}
	status := StudentInactive
	if now.Sub(started) <= ActiveWindow {
		status = StudentActive
	}
	days := int(now.Sub(started) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return Student{
		RequestID:    r.ID,
		ID:           r.SenderID,
		Role:         r.SenderType,
		Name:         r.SenderDisplayName(),
		Email:        r.SenderEmail,
		Avatar:       r.SenderAvatar,
		RequestType:  Incoming,
		StartedAt:    started,
		LastActivity: started,
		Status:       status,
		Progress:     Progress{DaysTogether: days},
	}
}

// activityFor 申请对应的动态；对方为收到申请的发送者或发出申请的接收者
func activityFor(r Request, kind BoardKind) Activity {
	user := r.ReceiverDisplayName()
	if kind == Incoming {
		user = r.SenderDisplayName()
	}
	switch r.Status {
	case StatusAccepted:
		return Activity{Date: r.UpdatedAt, Action: ActionRequestAccepted, User: user}
	case StatusRejected:
		return Activity{Date: r.UpdatedAt, Action: ActionRequestRejected, User: user}
	}
	action := ActionRequestSent
	if kind == Incoming {
		action = ActionNewRequest
	}
	return Activity{Date: r.CreatedAt, Action: action, User: user}
}
