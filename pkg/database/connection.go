package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// 默认管理员账户
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

var DB *gorm.DB

// InitDB 初始化数据库连接
func InitDB(dbPath string) {
	db, err := Open(dbPath)
	if err != nil {
		zap.L().Fatal("初始化数据库失败", zap.String("path", dbPath), zap.Error(err))
	}
	DB = db
}

// Open 连接 SQLite 数据库、迁移表结构并创建默认管理员。
// dbPath 为 ":memory:" 时使用内存数据库。
func Open(dbPath string) (*gorm.DB, error) {
	// Silent 模式下不显示任何日志
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), config)
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	if dbPath == ":memory:" {
		// 内存库每个连接各自独立，只保留一个连接
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := migrateDB(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	if err := createDefaultAdmin(db); err != nil {
		return nil, fmt.Errorf("创建默认管理员账户失败: %w", err)
	}
	return db, nil
}

// 自动迁移数据库表结构
func migrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Operator{},
		&models.Node{},
		&models.Link{},
		&models.Alarm{},
		&models.SimulationRun{},
		&models.RunNodeResult{},
		&models.NodeStats{},
	)
}

// createDefaultAdmin 没有管理员时创建默认管理员账户
func createDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Operator{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("生成密码哈希失败")
	}

	admin := models.Operator{
		Username: DefaultAdminUsername,
		Password: string(passwordHash),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	zap.L().Info("已创建默认管理员账户", zap.String("username", DefaultAdminUsername))
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
