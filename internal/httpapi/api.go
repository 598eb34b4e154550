// Package httpapi exposes the attendance service over HTTP with gin.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolattend/internal/attendance"
	"schoolattend/internal/auth"
	"schoolattend/internal/class"
	"schoolattend/internal/metrics"
	"schoolattend/internal/session"
	"schoolattend/internal/stats"
	"schoolattend/internal/store"
	"schoolattend/internal/user"
)

// SessionExchanger turns an OAuth callback session id into an identity.
type SessionExchanger interface {
	Exchange(ctx context.Context, sessionID string) (auth.Identity, error)
}

// API holds the services behind the HTTP surface.
type API struct {
	log      *zap.SugaredLogger
	users    *user.Service
	classes  *class.Service
	ledger   *attendance.Service
	sessions *session.Service
	stats    *stats.Service
	provider SessionExchanger

	db            *sql.DB
	redis         *store.Redis
	secureCookies bool
}

type Options struct {
	Log      *zap.SugaredLogger
	Users    *user.Service
	Classes  *class.Service
	Ledger   *attendance.Service
	Sessions *session.Service
	Stats    *stats.Service
	Provider SessionExchanger

	DB            *sql.DB
	Redis         *store.Redis
	SecureCookies bool
}

func New(opts Options) *API {
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	return &API{
		log:           opts.Log,
		users:         opts.Users,
		classes:       opts.Classes,
		ledger:        opts.Ledger,
		sessions:      opts.Sessions,
		stats:         opts.Stats,
		provider:      opts.Provider,
		db:            opts.DB,
		redis:         opts.Redis,
		secureCookies: opts.SecureCookies,
	}
}

// Router builds the gin engine. Extra middleware (CORS, rate limiting) runs
// before routing.
func (a *API) Router(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	for _, mw := range extra {
		r.Use(mw)
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/healthz", a.healthz)

	api := r.Group("/api")
	api.POST("/auth/session", a.createSession)
	api.POST("/auth/logout", a.logout)

	authed := api.Group("", auth.Authenticate(a.sessions, a.users))
	authed.GET("/auth/me", a.me)
	authed.GET("/dashboard/stats", a.dashboardStats)
	authed.GET("/classes", a.listClasses)
	authed.GET("/attendance/student/:student_id", a.studentAttendance)

	admin := authed.Group("", auth.RequireRole(user.RoleAdmin))
	admin.GET("/users", a.listUsers)
	admin.POST("/users", a.createUser)
	admin.PUT("/users/:id/role", a.updateUserRole)
	admin.POST("/classes", a.createClass)
	admin.PUT("/classes/:id/students", a.assignStudent)

	staff := authed.Group("", auth.RequireRole(user.RoleTeacher, user.RoleAdmin))
	staff.POST("/attendance/:class_id", a.submitAttendance)
	staff.GET("/attendance/:class_id", a.classAttendance)
	staff.GET("/export/attendance/:class_id", a.exportClassAttendance)

	return r
}

func (a *API) healthz(c *gin.Context) {
	dbHealthy := false
	if a.db != nil {
		start := time.Now()
		dbHealthy = a.db.PingContext(c.Request.Context()) == nil
		metrics.ObserveDBPing(time.Since(start))
	}
	redisHealthy := a.redis.Healthy(c.Request.Context())

	status := http.StatusOK
	if !dbHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
}
