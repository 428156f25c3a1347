package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

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
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// @title        图书馆借阅管理服务
// @version      1.0
// @description  图书、会员与借阅台账的管理API
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	flush, err := logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer flush()

	// 3. 初始化指标
	metrics.InitMetrics()

	// 4. 初始化存储
	db, err := mysql.NewDB(cfg)
	if err != nil {
		zap.L().Fatal("初始化数据库失败", zap.Error(err))
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		zap.L().Fatal("初始化Redis失败", zap.Error(err))
	}

	// 5. 依赖注入（手动组装）
	// Repository ← Service/UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	memberRepo := mysql.NewMemberRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	txManager := mysql.NewTxManager(db)
	statsCache := redis.NewStatsCache(redisClient, cfg.Redis.StatsCacheTTL)
	jwtManager := jwt.NewManager(cfg.Auth.TokenSecret, cfg.Auth.TokenExpire)

	// 领域层
	bookService := book.NewService(bookRepo)
	memberService := member.NewService(memberRepo)

	// 应用层
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookRepo, loanRepo, txManager)
	deleteMemberUseCase := appmember.NewDeleteMemberUseCase(memberRepo, loanRepo, txManager)
	memberLoansUseCase := appmember.NewMemberLoansUseCase(memberRepo, loanRepo)
	createLoanUseCase := apploan.NewCreateLoanUseCase(loanRepo, memberRepo, bookRepo, txManager, statsCache)
	returnBookUseCase := apploan.NewReturnBookUseCase(loanRepo, txManager, statsCache)
	extendLoanUseCase := apploan.NewExtendLoanUseCase(loanRepo, txManager, statsCache)
	listLoansUseCase := apploan.NewListLoansUseCase(loanRepo)
	overdueLoansUseCase := apploan.NewOverdueLoansUseCase(loanRepo, statsCache)
	loanStatsUseCase := apploan.NewLoanStatsUseCase(loanRepo, statsCache)
	deleteLoanUseCase := apploan.NewDeleteLoanUseCase(loanRepo, statsCache)

	// 接口层
	bookHandler := handler.NewBookHandler(bookService, deleteBookUseCase)
	memberHandler := handler.NewMemberHandler(memberService, deleteMemberUseCase, memberLoansUseCase)
	loanHandler := handler.NewLoanHandler(
		createLoanUseCase,
		returnBookUseCase,
		extendLoanUseCase,
		listLoansUseCase,
		overdueLoansUseCase,
		loanStatsUseCase,
		deleteLoanUseCase,
	)
	authHandler := handler.NewAuthHandler(jwtManager, cfg.Auth.AdminSecretHash)
	adminAuth := middleware.NewAdminAuth(jwtManager, cfg.Auth.Enabled())

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.Metrics())

	registerRoutes(r, bookHandler, memberHandler, loanHandler, authHandler, adminAuth)

	// 7. 启动服务（优雅退出）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zap.L().Info("服务启动",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.Bool("admin_auth", adminAuth.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("服务启动失败", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("收到退出信号，开始优雅关闭")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("优雅关闭失败", zap.Error(err))
	}
	zap.L().Info("服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	bookHandler *handler.BookHandler,
	memberHandler *handler.MemberHandler,
	loanHandler *handler.LoanHandler,
	authHandler *handler.AuthHandler,
	adminAuth *middleware.AdminAuth,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 管理令牌（仅在启用鉴权时开放）
	if adminAuth.Enabled() {
		r.POST("/auth/token", authHandler.IssueToken)
	}

	// 图书模块
	books := r.Group("/books")
	{
		books.POST("", bookHandler.CreateBook)
		books.GET("", bookHandler.ListBooks)
		books.GET("/search", bookHandler.SearchBooks)
		books.GET("/isbn/:isbn", bookHandler.GetBookByISBN)
		books.GET("/:id", bookHandler.GetBook)
		books.PUT("/:id", bookHandler.UpdateBook)
		books.DELETE("/:id", bookHandler.DeleteBook)
	}

	// 会员模块
	members := r.Group("/members")
	{
		members.POST("", memberHandler.RegisterMember)
		members.GET("", memberHandler.ListMembers)
		members.GET("/search", memberHandler.SearchMembers)
		members.GET("/email/:email", memberHandler.GetMemberByEmail)
		members.GET("/:id", memberHandler.GetMember)
		members.PUT("/:id", memberHandler.UpdateMember)
		members.DELETE("/:id", memberHandler.DeleteMember)
		members.GET("/:id/loans", memberHandler.MemberLoans)
		members.GET("/:id/active-loans", memberHandler.MemberActiveLoans)
	}

	// 借阅模块
	loans := r.Group("/loans")
	{
		loans.POST("", loanHandler.CreateLoan)
		loans.GET("", loanHandler.ListLoans)
		loans.GET("/overdue", loanHandler.OverdueLoans)
		loans.GET("/stats", loanHandler.LoanStats)
		loans.GET("/:id", loanHandler.GetLoan)
		loans.PUT("/:id/return", loanHandler.ReturnBook)
		loans.PUT("/:id/extend", loanHandler.ExtendLoan)
		// 台账硬删除属于管理操作
		loans.DELETE("/:id", adminAuth.RequireAdmin(), loanHandler.DeleteLoan)
	}
}
