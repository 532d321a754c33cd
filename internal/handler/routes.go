package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/survey-admin-api/internal/service"
)

// DatabaseService is the full set of operations the admin API delegates to.
// *service.DatabaseService satisfies it.
type DatabaseService interface {
	schoolService
	courseService
	enrollmentService
	subjectService
	surveyService
	questionService
	responseService
	termService
	userService
	notificationService
}

var _ DatabaseService = (*service.DatabaseService)(nil)

// RegisterRoutes mounts every resource of the admin API on group.
// Routes that act on a single document accept the id either as a path segment or as ?id=.
func RegisterRoutes(group *gin.RouterGroup, db DatabaseService, logger *zap.Logger) {
	schools := NewSchoolHandler(db, logger)
	group.GET("/schools", schools.List)
	group.POST("/schools", schools.Create)

	courses := NewCourseHandler(db, logger)
	group.GET("/courses", courses.List)
	group.POST("/courses", courses.Create)
	group.DELETE("/courses", courses.Delete)
	group.DELETE("/courses/:id", courses.Delete)

	enrollments := NewEnrollmentHandler(db, logger)
	group.GET("/course-enrollments", enrollments.List)
	group.POST("/course-enrollments", enrollments.Create)
	group.PUT("/course-enrollments", enrollments.Update)
	group.PUT("/course-enrollments/:id", enrollments.Update)
	group.DELETE("/course-enrollments", enrollments.Delete)
	group.DELETE("/course-enrollments/:id", enrollments.Delete)

	subjects := NewSubjectHandler(db, logger)
	group.GET("/subjects", subjects.List)
	group.POST("/subjects", subjects.Create)
	group.PUT("/subjects", subjects.Update)
	group.PUT("/subjects/:id", subjects.Update)
	group.DELETE("/subjects", subjects.Delete)
	group.DELETE("/subjects/:id", subjects.Delete)

	surveys := NewSurveyHandler(db, logger)
	group.GET("/surveys", surveys.List)
	group.POST("/surveys", surveys.Create)
	group.PUT("/surveys", surveys.Update)
	group.PUT("/surveys/:id", surveys.Update)
	group.DELETE("/surveys", surveys.Delete)
	group.DELETE("/surveys/:id", surveys.Delete)

	questions := NewQuestionHandler(db, logger)
	group.GET("/survey-questions", questions.List)
	group.POST("/survey-questions", questions.Create)
	group.DELETE("/survey-questions", questions.Delete)
	group.DELETE("/survey-questions/:id", questions.Delete)

	responses := NewResponseHandler(db, logger)
	group.GET("/survey-responses", responses.List)
	group.GET("/survey-responses/summary", responses.Summary)
	group.GET("/survey-responses/export", responses.Export)
	group.POST("/survey-responses", responses.Create)

	terms := NewTermHandler(db, logger)
	group.GET("/terms", terms.List)
	group.POST("/terms", terms.Create)

	users := NewUserHandler(db, logger)
	group.DELETE("/users", users.Delete)
	group.DELETE("/users/:id", users.Delete)

	notifications := NewNotificationHandler(db, logger)
	group.GET("/admin/notifications", notifications.List)
	group.POST("/admin/notifications", notifications.Create)
}

// RegisterOps mounts the health, readiness and metrics endpoints.
func RegisterOps(r gin.IRoutes, h *MetricsHandler) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
}
