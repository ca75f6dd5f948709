// Package testutil 提供测试共用的数据库与账号准备工具
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"mentorship-system/config"
	"mentorship-system/internal/model"
	dbPkg "mentorship-system/pkg/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// OpenTestDB 打开独立的内存SQLite并迁移全部表
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := dbPkg.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		Database: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	require.NoError(t, dbPkg.AutoMigrate(conn, model.Models()...))

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

// CreateUser 直接插入一个学生
func CreateUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: strings.ToLower(name) + "@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateMentor 直接插入一个导师
func CreateMentor(t *testing.T, db *gorm.DB, name string) *model.Mentor {
	t.Helper()
	m := &model.Mentor{Name: name, Email: strings.ToLower(name) + "@example.com", PasswordHash: "x", IsActive: true, University: "MIT"}
	require.NoError(t, db.Create(m).Error)
	return m
}
