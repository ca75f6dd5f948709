package model

import "time"

// MentorResume 导师履历，一个导师可有多份
type MentorResume struct {
	ID          uint      `gorm:"primaryKey"`
	MentorID    uint      `gorm:"not null;index;comment:导师ID"`
	University  string    `gorm:"type:varchar(100);not null;comment:院校"`
	Title       string    `gorm:"type:varchar(100);not null;comment:标题"`
	Description string    `gorm:"type:text;comment:详细介绍"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (MentorResume) TableName() string { return "mentor_resume" }
