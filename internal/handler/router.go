package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/middleware"
	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/config"
)

// Handlers bundles every HTTP handler served by the API.
type Handlers struct {
	Auth       *AuthHandler
	Faculty    *FacultyHandler
	Grades     *GradeHandler
	Classrooms *RoomHandler
	Labs       *RoomHandler
	Subjects   *SubjectHandler
	Schedules  *ScheduleHandler
	Swaps      *SwapHandler
	Leaves     *LeaveHandler
	Feedback   *FeedbackHandler
	Metrics    *MetricsHandler
	Audit      *AuditHandler
}

// RouterOptions controls authentication and auditing of the registered routes.
type RouterOptions struct {
	Prefix string
	// Gate is one of config.AuthGateNone, AuthGateSignup or AuthGateAll.
	Gate   string
	Tokens middleware.TokenValidator
	Audit  middleware.AuditWriter
	Logger *zap.Logger
}

// RegisterRoutes binds every endpoint onto r.
func RegisterRoutes(r *gin.Engine, h Handlers, opts RouterOptions) {
	if opts.Gate == "" {
		opts.Gate = config.AuthGateSignup
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(opts.Prefix)
	requireToken := middleware.JWT(opts.Tokens)
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(opts.Audit, opts.Logger, action, resource)
	}

	adminOnly := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if opts.Gate == config.AuthGateNone {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{requireToken, middleware.RequireRoles(models.RoleAdmin), handler}
	}

	api.POST("/signup", adminOnly(h.Auth.Signup)...)
	api.POST("/login", h.Auth.Login)
	api.GET("/me", requireToken, h.Auth.Me)

	collections := api.Group("")
	if opts.Gate == config.AuthGateAll {
		collections.Use(requireToken)
	}

	collections.GET("/metrics/summary", h.Metrics.Summary)
	if h.Audit != nil {
		api.GET("/audit-logs", adminOnly(h.Audit.List)...)
	}

	registerCRUD(collections.Group("/faculty"), h.Faculty)
	registerCRUD(collections.Group("/grades"), h.Grades)
	registerCRUD(collections.Group("/classrooms"), h.Classrooms)
	registerCRUD(collections.Group("/labs"), h.Labs)
	registerCRUD(collections.Group("/subjects"), h.Subjects)
	registerCRUD(collections.Group("/leaves"), h.Leaves)
	registerCRUD(collections.Group("/feedback"), h.Feedback)

	schedules := collections.Group("/schedules")
	schedules.GET("", h.Schedules.List)
	schedules.GET("/export", h.Schedules.Export)
	schedules.POST("", audit(models.AuditActionScheduleReplace, "schedules"), h.Schedules.Replace)
	schedules.DELETE("", audit(models.AuditActionScheduleClear, "schedules"), h.Schedules.DeleteAll)
	schedules.PUT("/:id", h.Schedules.Update)
	schedules.DELETE("/:id", h.Schedules.Delete)

	swaps := collections.Group("/swaps")
	swaps.GET("", h.Swaps.List)
	swaps.POST("", h.Swaps.Create)
	swaps.PUT("/:id/approve", audit(models.AuditActionSwapApprove, "swaps"), h.Swaps.Approve)
	swaps.PUT("/:id/reject", audit(models.AuditActionSwapReject, "swaps"), h.Swaps.Reject)
	swaps.DELETE("/:id", h.Swaps.Delete)
}

type crudHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerCRUD(g *gin.RouterGroup, h crudHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
