package model

import (
	"strings"
	"time"
)

// Role 账号角色：学生(user) 或 导师(mentor)
type Role string

const (
	RoleUser   Role = "user"
	RoleMentor Role = "mentor"
)

// Valid 是否为合法角色
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleMentor
}

// Counterpart 可以向其发送申请的对方角色
func (r Role) Counterpart() Role {
	if r == RoleUser {
		return RoleMentor
	}
	return RoleUser
}

// User 学生模型
// 邮箱唯一；密码仅存储哈希
// TargetUniversities 以逗号分隔存储，兼容 mysql / postgres / sqlite
type User struct {
	ID                 uint      `gorm:"primaryKey"`
	Name               string    `gorm:"type:varchar(100);not null;comment:姓名"`
	Email              string    `gorm:"type:varchar(100);not null;uniqueIndex;comment:邮箱"`
	PasswordHash       string    `gorm:"type:varchar(255);not null;comment:密码哈希"`
	IsActive           bool      `gorm:"default:true;comment:是否启用"`
	Description        string    `gorm:"type:text;comment:自我介绍"`
	AvatarURL          string    `gorm:"type:varchar(255);comment:头像URL"`
	TargetUniversities string    `gorm:"type:varchar(500);comment:目标院校"`
	AdmissionType      string    `gorm:"type:varchar(32);comment:录取方式"`
	CreatedAt          time.Time `gorm:"comment:创建时间"`
	UpdatedAt          time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (User) TableName() string { return "user" }

// Universities 目标院校列表
func (u *User) Universities() []string {
	var out []string
	for _, s := range strings.Split(u.TargetUniversities, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
