package model

import "time"

// RequestStatus 申请状态：pending -> accepted | rejected（后两者为终态）
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// ActiveRequestStatuses 视为“进行中”的状态，同一对发送者/接收者只能存在一条
var ActiveRequestStatuses = []RequestStatus{RequestStatusPending, RequestStatusAccepted}

// Request 导师申请
type Request struct {
	ID           uint          `gorm:"primaryKey"`
	SenderID     uint          `gorm:"not null;index:idx_request_sender;comment:发送者ID"`
	SenderType   Role          `gorm:"type:varchar(16);not null;index:idx_request_sender;comment:发送者类型"`
	ReceiverID   uint          `gorm:"not null;index:idx_request_receiver;comment:接收者ID"`
	ReceiverType Role          `gorm:"type:varchar(16);not null;index:idx_request_receiver;comment:接收者类型"`
	Message      string        `gorm:"type:text;comment:申请留言"`
	Status       RequestStatus `gorm:"type:varchar(16);not null;default:'pending';index;comment:申请状态"`
	CreatedAt    time.Time     `gorm:"comment:创建时间"`
	UpdatedAt    time.Time     `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (Request) TableName() string { return "request" }

// IsPending 是否待处理
func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsParty 指定账号是否为申请的发送者或接收者
func (r *Request) IsParty(id uint, role Role) bool {
	return r.IsSender(id, role) || r.IsReceiver(id, role)
}

// IsSender 指定账号是否为发送者
func (r *Request) IsSender(id uint, role Role) bool {
	return r.SenderID == id && r.SenderType == role
}

// IsReceiver 指定账号是否为接收者
func (r *Request) IsReceiver(id uint, role Role) bool {
	return r.ReceiverID == id && r.ReceiverType == role
}

// Models 需要自动迁移的全部模型
func Models() []interface{} {
	return []interface{}{&User{}, &Mentor{}, &Request{}, &MentorResume{}}
}
