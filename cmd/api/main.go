package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Radio_Community/internal/auth"
	"Radio_Community/internal/config"
	"Radio_Community/internal/handler"
	"Radio_Community/internal/identity"
	"Radio_Community/internal/logger"
	"Radio_Community/internal/middleware"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/repository/rdb"
	rrepo "Radio_Community/internal/repository/redis"
	"Radio_Community/internal/router"
	"Radio_Community/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

type eventSink interface {
	service.EventPublisher
	Close() error
}

func main() {
	if err := run(); err != nil {
		logger.Log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run 返回后所有 defer 的资源都已释放
func run() error {
	// .env 可选，生产环境直接用环境变量
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogJSON)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := rdb.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("connect database %s: %w", cfg.DBDriver, err)
	}
	defer rdb.Close(db)

	// 自动建表
	if err := rdb.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// 连接redis
	rdsClient, err := rrepo.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	defer rdsClient.Close()

	var events eventSink = pkg.NopPublisher{}
	if cfg.KafkaEnabled() {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		events = producer
		logger.Log.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer events.Close()

	accounts := &rdb.AccountRepository{DB: db}
	profiles := &rdb.ProfileRepository{DB: db}
	admins := &rdb.AdminRepository{DB: db}
	publications := &rdb.PublicationRepository{DB: db}
	comments := &rdb.CommentRepository{DB: db}
	contacts := &rdb.ContactRepository{DB: db}

	tokens := pkg.NewTokenIssuer(pkg.JWTConfig{
		AccessSecret:  []byte(cfg.JWTAccessSecret),
		RefreshSecret: []byte(cfg.JWTRefreshSecret),
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	})
	sessions := rrepo.NewSessionRepository(rdsClient, cfg.AccessTTL, cfg.RefreshTTL)
	provider := identity.NewLocal(accounts, sessions, tokens)

	// 管理员判定：table 为准，static 只读
	var (
		policy    auth.AdminPolicy
		registry  service.AdminRegistry
		bootstrap service.AdminBootstrapper
		static    *auth.StaticPolicy
	)
	switch cfg.AdminPolicy {
	case config.PolicyStatic:
		static = auth.NewStaticPolicy(cfg.AdminEmails)
		policy = static
		registry = service.NewStaticAdminRegistry(static)
	default:
		adminSvc := service.NewAdminService(admins, accounts, events, cfg.AdminEmails)
		if n, err := adminSvc.Bootstrap(context.Background()); err != nil {
			logger.Log.Warn("admin bootstrap failed", "error", err)
		} else if n > 0 {
			logger.Log.Info("admin table seeded", "count", n)
		}
		policy = auth.NewTablePolicy(admins)
		registry = adminSvc
		bootstrap = adminSvc
	}
	guard := middleware.NewGuard(provider, policy)
	logger.Log.Info("admin policy", "policy", cfg.AdminPolicy)

	mailer := pkg.NewSMTPMailer(pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.Sender(),
	})
	emailSvc := service.NewEmailService(rrepo.NewCodeRepository(rdsClient, cfg.VerificationCodeTTL), mailer, accounts)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}

	r := router.InitRouter(router.Deps{
		Guard:   guard,
		User:    handler.NewUserHandler(service.NewAuthService(provider, profiles, emailSvc, bootstrap), guard),
		Email:   handler.NewEmailHandler(emailSvc),
		Post:    handler.NewPostHandler(service.NewPublicationService(publications, profiles, events, cfg.DefaultImage)),
		Comment: handler.NewCommentHandler(service.NewCommentService(comments, publications, events)),
		Contact: handler.NewContactHandler(service.NewContactService(contacts, mailer, events, cfg.ContactEmail)),
		Admin:   handler.NewAdminHandler(registry),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"database": sqlDB,
			"redis":    handler.PingFunc(func(ctx context.Context) error { return rdsClient.Ping(ctx).Err() }),
		}),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)

	logger.Log.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
	return serve(srv, sigs, func() { reloadAdmins(static) })
}

// serve 阻塞到收到退出信号或监听失败，两种情况都走正常关闭流程
func serve(srv *http.Server, sigs <-chan os.Signal, onReload func()) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
wait:
	for {
		select {
		case sig := <-sigs:
			if sig == syscall.SIGHUP {
				onReload()
				continue
			}
			break wait
		case err := <-errCh:
			serveErr = fmt.Errorf("listen %s: %w", srv.Addr, err)
			break wait
		}
	}

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown", "error", err)
	}
	return serveErr
}

// reloadAdmins SIGHUP 时重新读取 .env 中的 ADMIN_EMAILS，仅 static 模式有效
func reloadAdmins(static *auth.StaticPolicy) {
	if static == nil {
		logger.Log.Info("SIGHUP ignored: admin policy is table")
		return
	}
	_ = godotenv.Overload()
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Error("reload config", "error", err)
		return
	}
	static.Reload(cfg.AdminEmails)
	logger.Log.Info("admin allow-list reloaded", "count", len(cfg.AdminEmails))
}
