//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式：
//   wire gen ./cmd/api
// 生成wire_gen.go后，可用InitializeEngine()替换main.go中的手动组装。

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
)

// infrastructureSet 基础设施层：配置、数据库、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewMemberRepository,
	mysql.NewLoanRepository,
	mysql.NewTxManager,
	wire.Bind(new(apploan.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appbook.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appmember.TxManager), new(*mysql.TxManager)),
	provideStatsCache,
	wire.Bind(new(apploan.StatsCache), new(*redis.StatsCache)),
)

// domainSet 领域层
var domainSet = wire.NewSet(
	book.NewService,
	member.NewService,
)

// applicationSet 应用层
var applicationSet = wire.NewSet(
	appbook.NewDeleteBookUseCase,
	appmember.NewDeleteMemberUseCase,
	appmember.NewMemberLoansUseCase,
	apploan.NewCreateLoanUseCase,
	apploan.NewReturnBookUseCase,
	apploan.NewExtendLoanUseCase,
	apploan.NewListLoansUseCase,
	apploan.NewOverdueLoansUseCase,
	apploan.NewLoanStatsUseCase,
	apploan.NewDeleteLoanUseCase,
)

// interfaceSet 接口层
var interfaceSet = wire.NewSet(
	provideJWTManager,
	provideAuthHandler,
	provideAdminAuth,
	handler.NewBookHandler,
	handler.NewMemberHandler,
	handler.NewLoanHandler,
)

func provideStatsCache(client *goredis.Client, cfg *config.Config) *redis.StatsCache {
	return redis.NewStatsCache(client, cfg.Redis.StatsCacheTTL)
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.Auth.TokenSecret, cfg.Auth.TokenExpire)
}

func provideAuthHandler(jwtManager *jwt.Manager, cfg *config.Config) *handler.AuthHandler {
	return handler.NewAuthHandler(jwtManager, cfg.Auth.AdminSecretHash)
}

func provideAdminAuth(jwtManager *jwt.Manager, cfg *config.Config) *middleware.AdminAuth {
	return middleware.NewAdminAuth(jwtManager, cfg.Auth.Enabled())
}

func provideEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	memberHandler *handler.MemberHandler,
	loanHandler *handler.LoanHandler,
	authHandler *handler.AuthHandler,
	adminAuth *middleware.AdminAuth,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.Metrics())
	registerRoutes(r, bookHandler, memberHandler, loanHandler, authHandler, adminAuth)
	return r
}

// InitializeEngine 组装完整的HTTP引擎
func InitializeEngine() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		provideEngine,
	)
	return nil, nil
}
