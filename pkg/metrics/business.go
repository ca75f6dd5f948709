package metrics

import (
	"context"
	"time"

	"mentorship-system/internal/model"
	"mentorship-system/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// StatsSource 业务统计数据来源
type StatsSource interface {
	CountUsers() (int64, error)
	CountMentors() (int64, error)
	CountRequestsByStatus() (map[model.RequestStatus]int64, error)
}

// OnlineSource 在线账号数来源
type OnlineSource interface {
	OnlineCount(ctx context.Context) (int, error)
}

// BusinessCollector 每次抓取时实时查询账号数与各状态申请数
type BusinessCollector struct {
	source   StatsSource
	online   OnlineSource
	users    *prometheus.Desc
	mentors  *prometheus.Desc
	requests *prometheus.Desc
	accounts *prometheus.Desc
}

func NewBusinessCollector(source StatsSource) *BusinessCollector {
	return &BusinessCollector{
		source:   source,
		users:    prometheus.NewDesc("mentorship_users_total", "Number of registered users", nil, nil),
		mentors:  prometheus.NewDesc("mentorship_mentors_total", "Number of registered mentors", nil, nil),
		requests: prometheus.NewDesc("mentorship_requests", "Number of mentorship requests by status", []string{"status"}, nil),
		accounts: prometheus.NewDesc("mentorship_online_accounts", "Number of accounts with an open websocket connection", nil, nil),
	}
}

// WithOnline 额外暴露在线账号数
func (c *BusinessCollector) WithOnline(online OnlineSource) *BusinessCollector {
	c.online = online
	return c
}

func (c *BusinessCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.users
	ch <- c.mentors
	ch <- c.requests
	if c.online != nil {
		ch <- c.accounts
	}
}

// Collect 查询失败的指标本次跳过
func (c *BusinessCollector) Collect(ch chan<- prometheus.Metric) {
	if n, err := c.source.CountUsers(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.users, prometheus.GaugeValue, float64(n))
	} else {
		logger.Warn("统计学生数量失败", zap.Error(err))
	}
	if n, err := c.source.CountMentors(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.mentors, prometheus.GaugeValue, float64(n))
	} else {
		logger.Warn("统计导师数量失败", zap.Error(err))
	}
	if counts, err := c.source.CountRequestsByStatus(); err == nil {
		for status, n := range counts {
			ch <- prometheus.MustNewConstMetric(c.requests, prometheus.GaugeValue, float64(n), string(status))
		}
	} else {
		logger.Warn("统计申请数量失败", zap.Error(err))
	}
	if c.online == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if n, err := c.online.OnlineCount(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(c.accounts, prometheus.GaugeValue, float64(n))
	} else {
		logger.Warn("统计在线账号失败", zap.Error(err))
	}
}
