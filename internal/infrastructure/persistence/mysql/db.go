package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 开发环境打印SQL，生产环境静默
// 3. 连接池参数来自配置
// 4. AutoMigrate仅建表补列，生产环境应使用版本化迁移脚本
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // 唯一索引冲突翻译为gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	zap.L().Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&MemberModel{},
		&LoanModel{},
	)
}

// BookModel GORM图书模型
// 设计说明：
// 1. infrastructure层的数据模型，domain实体不依赖GORM
// 2. ISBN唯一索引防止重复登记
// 3. 删除是物理删除，ISBN可在删除后重新登记
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	ISBN      string    `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Title     string    `gorm:"index:idx_book_search;size:200;not null;comment:书名"`
	Author    string    `gorm:"index:idx_book_search;size:100;not null;comment:作者"`
	Copies    int       `gorm:"not null;default:1;comment:馆藏副本数"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// MemberModel GORM会员模型
// Email入库前已由domain层转小写，唯一索引即实现不区分大小写的唯一性
type MemberModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;size:100;not null;comment:姓名"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱(小写)"`
	JoinedAt  time.Time `gorm:"index;comment:入会时间"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (MemberModel) TableName() string {
	return "members"
}

// LoanModel GORM借阅记录模型
// 设计说明：
// 1. (member_id, book_id)复合索引服务重复借阅检查
// 2. status+due_at索引服务过期扫描
// 3. Member/Book关联仅用于Preload读侧富化，无级联约束
type LoanModel struct {
	ID         uint       `gorm:"primaryKey"`
	MemberID   uint       `gorm:"index:idx_member_book;not null;comment:会员ID"`
	BookID     uint       `gorm:"index:idx_member_book;index;not null;comment:图书ID"`
	LoanedAt   time.Time  `gorm:"index;not null;comment:借出时间"`
	DueAt      time.Time  `gorm:"index:idx_status_due;not null;comment:应还时间"`
	ReturnedAt *time.Time `gorm:"comment:归还时间"`
	Status     string     `gorm:"index:idx_status_due;type:varchar(16);not null;default:'active';comment:状态"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`

	Member MemberModel `gorm:"foreignKey:MemberID;references:ID"`
	Book   BookModel   `gorm:"foreignKey:BookID;references:ID"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}
