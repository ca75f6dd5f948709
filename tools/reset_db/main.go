package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"mentorship-system/config"
	"mentorship-system/internal/model"
	dbPkg "mentorship-system/pkg/db"

	"gorm.io/gorm"
)

// 子表在前
var tables = []interface{}{&model.Request{}, &model.MentorResume{}, &model.Mentor{}, &model.User{}}

func main() {
	yes := flag.Bool("yes", false, "跳过确认")
	flag.Parse()

	cfg := config.LoadConfig()
	db, err := dbPkg.Open(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	fmt.Printf("Database connected: %s (%s)\n", cfg.Database.Database, cfg.Database.Driver)

	if !*yes {
		fmt.Print("\nWARNING: This operation will CLEAR ALL DATA in tables [request, mentor_resume, mentor, user]!\n")
		fmt.Print("Type 'YES' to confirm: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(line) != "YES" {
			fmt.Println("Operation cancelled")
			return
		}
	}

	failed := false
	for _, m := range tables {
		name := tableName(db, m)
		fmt.Printf("Clearing table %s... ", name)
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			fmt.Printf("Failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Println("Success")

		if err := resetSequence(db, cfg.Database.Driver, name); err != nil {
			fmt.Printf("Resetting %s ids failed: %v\n", name, err)
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("\nDatabase reset completed!")
	fmt.Println("All table data cleared, table structure preserved")
}

func tableName(db *gorm.DB, m interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(m); err != nil {
		return fmt.Sprintf("%T", m)
	}
	return stmt.Schema.Table
}

// resetSequence 自增ID从1重新开始
func resetSequence(db *gorm.DB, driver, table string) error {
	switch driver {
	case "mysql":
		return db.Exec(fmt.Sprintf("ALTER TABLE `%s` AUTO_INCREMENT = 1", table)).Error
	case "postgres", "":
		return db.Exec(fmt.Sprintf(`ALTER SEQUENCE IF EXISTS "%s_id_seq" RESTART WITH 1`, table)).Error
	case "sqlite":
		// 仅在使用 AUTOINCREMENT 时存在该表
		if !db.Migrator().HasTable("sqlite_sequence") {
			return nil
		}
		return db.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
	default:
		return nil
	}
}
