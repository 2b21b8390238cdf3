package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/clubhub/internal/audit"
	auditdomain "github.com/smallbiznis/clubhub/internal/audit/domain"
	"github.com/smallbiznis/clubhub/internal/auth"
	authdomain "github.com/smallbiznis/clubhub/internal/auth/domain"
	"github.com/smallbiznis/clubhub/internal/authorization"
	"github.com/smallbiznis/clubhub/internal/billing"
	billingdomain "github.com/smallbiznis/clubhub/internal/billing/domain"
	"github.com/smallbiznis/clubhub/internal/club"
	clubdomain "github.com/smallbiznis/clubhub/internal/club/domain"
	"github.com/smallbiznis/clubhub/internal/config"
	"github.com/smallbiznis/clubhub/internal/discipline"
	disciplinedomain "github.com/smallbiznis/clubhub/internal/discipline/domain"
	"github.com/smallbiznis/clubhub/internal/membership"
	membershipdomain "github.com/smallbiznis/clubhub/internal/membership/domain"
	"github.com/smallbiznis/clubhub/internal/metrics"
	"github.com/smallbiznis/clubhub/internal/receipt"
	receiptdomain "github.com/smallbiznis/clubhub/internal/receipt/domain"
	"github.com/smallbiznis/clubhub/internal/user"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	metrics.Module,
	authorization.Module,
	audit.Module,
	auth.Module,
	club.Module,
	user.Module,
	discipline.Module,
	membership.Module,
	billing.Module,
	receipt.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(m.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	return NewEngine(log, m)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	authsvc       authdomain.Service
	authzSvc      authorization.Service
	auditSvc      auditdomain.Service
	clubSvc       clubdomain.Service
	userSvc       userdomain.Service
	disciplineSvc disciplinedomain.Service
	membershipSvc membershipdomain.Service
	billingSvc    billingdomain.Service
	receiptSvc    receiptdomain.Service
	metrics       *metrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Authsvc       authdomain.Service
	AuthzSvc      authorization.Service
	AuditSvc      auditdomain.Service
	ClubSvc       clubdomain.Service
	UserSvc       userdomain.Service
	DisciplineSvc disciplinedomain.Service
	MembershipSvc membershipdomain.Service
	BillingSvc    billingdomain.Service
	ReceiptSvc    receiptdomain.Service
	Metrics       *metrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		log:           p.Log.Named("server"),
		genID:         p.GenID,
		authsvc:       p.Authsvc,
		authzSvc:      p.AuthzSvc,
		auditSvc:      p.AuditSvc,
		clubSvc:       p.ClubSvc,
		userSvc:       p.UserSvc,
		disciplineSvc: p.DisciplineSvc,
		membershipSvc: p.MembershipSvc,
		billingSvc:    p.BillingSvc,
		receiptSvc:    p.ReceiptSvc,
		metrics:       p.Metrics,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerStaticRoutes()

	return svc
}
