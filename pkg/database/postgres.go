package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接并迁移内容表
// dsn: 数据库连接字符串
// models: 需要自动建表/迁移的结构体指针（六张内容表 + 管理员表）
func InitDB(dsn string, models ...interface{}) *gorm.DB {
	// 开发环境打印 SQL 方便调试，线上只记警告
	logMode := logger.Warn
	if os.Getenv("MCTT_SERVER_MODE") != "release" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	// 内容表都是单行 jsonb 小表，连接池不需要太大
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("获取底层 SQL DB 失败: %v", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("数据库连接成功")

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("自动建表出错: %v", err)
	}

	return db
}
