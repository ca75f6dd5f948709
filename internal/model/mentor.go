package model

import "time"

// Mentor 导师模型
type Mentor struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"type:varchar(100);not null;comment:姓名"`
	Email         string    `gorm:"type:varchar(100);not null;uniqueIndex;comment:邮箱"`
	PasswordHash  string    `gorm:"type:varchar(255);not null;comment:密码哈希"`
	IsActive      bool      `gorm:"default:true;comment:是否启用"`
	Title         string    `gorm:"type:varchar(100);comment:头衔"`
	Description   string    `gorm:"type:varchar(500);comment:简介"`
	University    string    `gorm:"type:varchar(100);comment:所在院校"`
	AdmissionType string    `gorm:"type:varchar(32);comment:录取方式"`
	AvatarURL     string    `gorm:"type:varchar(255);comment:头像URL"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (Mentor) TableName() string { return "mentor" }
