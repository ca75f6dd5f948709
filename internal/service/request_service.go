package service

import (
	"encoding/json"
	"strings"

	"mentorship-system/internal/model"
	"mentorship-system/internal/repository"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/response"

	"go.uber.org/zap"
)

// Account 当前调用方
type Account struct {
	ID   uint
	Role model.Role
}

// Notifier 推送申请事件给在线账号，返回是否投递成功
type Notifier interface {
	SendToAccount(role model.Role, id uint, msg []byte) bool
}

// 推送事件名称
const (
	EventCreated   = "created"
	EventAccepted  = "accepted"
	EventRejected  = "rejected"
	EventCancelled = "cancelled"
)

// RequestEvent WebSocket推送帧
type RequestEvent struct {
	Type    string                `json:"type"`
	Event   string                `json:"event"`
	Request *response.RequestInfo `json:"request"`
}

// RequestService 导师申请业务
type RequestService struct {
	requests *repository.RequestRepository
	users    *repository.UserRepository
	mentors  *repository.MentorRepository
	notifier Notifier
}

// NewRequestService notifier 可为 nil（不推送）
func NewRequestService(requests *repository.RequestRepository, users *repository.UserRepository,
	mentors *repository.MentorRepository, notifier Notifier) *RequestService {
	return &RequestService{requests: requests, users: users, mentors: mentors, notifier: notifier}
}

// Send 发送申请
// receiverType 为空时默认为调用方的对方角色
func (s *RequestService) Send(from Account, receiverID uint, receiverType model.Role, message string) (*response.RequestInfo, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if receiverType == "" {
		receiverType = from.Role.Counterpart()
	}
	if !receiverType.Valid() {
		return nil, ErrInvalidRole
	}
	if receiverType == from.Role && receiverID == from.ID {
		return nil, ErrSelfRequest
	}
	if receiverType == from.Role {
		return nil, ErrSameRole
	}

	receiver, err := s.profile(receiverType, receiverID)
	if err != nil {
		return nil, notFoundAs(err, ErrReceiverNotFound)
	}
	if !receiver.IsActive {
		return nil, ErrReceiverNotFound
	}

	req := &model.Request{
		SenderID:     from.ID,
		SenderType:   from.Role,
		ReceiverID:   receiverID,
		ReceiverType: receiverType,
		Message:      message,
		Status:       model.RequestStatusPending,
	}
	created, err := s.requests.CreateIfNoActive(req)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrActiveRequestExists
	}

	sender, err := s.profile(from.Role, from.ID)
	if err != nil {
		logger.Warn("查询发送者资料失败", zap.Uint("id", from.ID), zap.Error(err))
	}
	info := response.FilterRequestInfo(req, sender, receiver)

	logger.Info("申请已创建",
		zap.Uint("request_id", req.ID),
		zap.String("sender", string(from.Role)),
		zap.Uint("sender_id", from.ID),
		zap.Uint("receiver_id", receiverID),
	)
	s.notify(receiverType, receiverID, EventCreated, info)
	return info, nil
}

// ListSent 调用方发出的申请，按创建顺序
func (s *RequestService) ListSent(acc Account) ([]*response.RequestInfo, error) {
	requests, err := s.requests.ListBySender(acc.ID, acc.Role)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(requests)
}

// ListReceived 调用方收到的申请，按创建顺序
func (s *RequestService) ListReceived(acc Account) ([]*response.RequestInfo, error) {
	requests, err := s.requests.ListByReceiver(acc.ID, acc.Role)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(requests)
}

// Approve 接收者同意申请；仅 pending 状态可处理
func (s *RequestService) Approve(acc Account, id uint) (*response.RequestInfo, error) {
	req, err := s.requests.GetByID(id)
	if err != nil {
		return nil, notFoundAs(err, ErrRequestNotFound)
	}
	if !req.IsReceiver(acc.ID, acc.Role) || !req.IsPending() {
		return nil, ErrRequestNotFound
	}
	return s.transition(acc, req, model.RequestStatusAccepted, EventAccepted)
}

// Reject 拒绝申请；发送者调用即为撤回
func (s *RequestService) Reject(acc Account, id uint) (*response.RequestInfo, error) {
	req, err := s.requests.GetByID(id)
	if err != nil {
		return nil, notFoundAs(err, ErrRequestNotFound)
	}
	if !req.IsParty(acc.ID, acc.Role) || !req.IsPending() {
		return nil, ErrRequestNotFound
	}
	event := EventRejected
	if req.IsSender(acc.ID, acc.Role) {
		event = EventCancelled
	}
	return s.transition(acc, req, model.RequestStatusRejected, event)
}

func (s *RequestService) transition(acc Account, req *model.Request, to model.RequestStatus, event string) (*response.RequestInfo, error) {
	// 条件更新失败说明已被并发处理
	ok, err := s.requests.TransitionFromPending(req.ID, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRequestNotFound
	}
	updated, err := s.requests.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	infos, err := s.withProfiles([]*model.Request{updated})
	if err != nil {
		return nil, err
	}
	info := infos[0]

	logger.Info("申请状态变更",
		zap.Uint("request_id", req.ID),
		zap.String("status", string(to)),
		zap.String("by", string(acc.Role)),
		zap.Uint("by_id", acc.ID),
	)

	// 通知另一方
	if updated.IsSender(acc.ID, acc.Role) {
		s.notify(updated.ReceiverType, updated.ReceiverID, event, info)
	} else {
		s.notify(updated.SenderType, updated.SenderID, event, info)
	}
	return info, nil
}

// withProfiles 批量补齐双方展示字段
func (s *RequestService) withProfiles(requests []*model.Request) ([]*response.RequestInfo, error) {
	var userIDs, mentorIDs []uint
	collect := func(role model.Role, id uint) {
		if role == model.RoleMentor {
			mentorIDs = append(mentorIDs, id)
		} else {
			userIDs = append(userIDs, id)
		}
	}
	for _, r := range requests {
		collect(r.SenderType, r.SenderID)
		collect(r.ReceiverType, r.ReceiverID)
	}
	users, err := s.users.GetByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	mentors, err := s.mentors.GetByIDs(mentorIDs)
	if err != nil {
		return nil, err
	}
	lookup := func(role model.Role, id uint) *response.ProfileInfo {
		if role == model.RoleMentor {
			return response.FilterMentorInfo(mentors[id])
		}
		return response.FilterUserInfo(users[id])
	}

	result := make([]*response.RequestInfo, 0, len(requests))
	for _, r := range requests {
		result = append(result, response.FilterRequestInfo(r,
			lookup(r.SenderType, r.SenderID),
			lookup(r.ReceiverType, r.ReceiverID)))
	}
	return result, nil
}

func (s *RequestService) profile(role model.Role, id uint) (*response.ProfileInfo, error) {
	if role == model.RoleMentor {
		m, err := s.mentors.GetByID(id)
		if err != nil {
			return nil, err
		}
		return response.FilterMentorInfo(m), nil
	}
	u, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	return response.FilterUserInfo(u), nil
}

// notify 尽力推送，失败只记录日志
func (s *RequestService) notify(role model.Role, id uint, event string, info *response.RequestInfo) {
	if s.notifier == nil {
		return
	}
	data, err := json.Marshal(RequestEvent{Type: "request_event", Event: event, Request: info})
	if err != nil {
		logger.Warn("序列化推送事件失败", zap.Error(err))
		return
	}
	if !s.notifier.SendToAccount(role, id, data) {
		logger.Debug("对方不在线，跳过推送", zap.String("role", string(role)), zap.Uint("id", id))
	}
}
