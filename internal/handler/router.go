package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prism-lt/prism-api/internal/middleware"
	"github.com/prism-lt/prism-api/internal/models"
	"github.com/prism-lt/prism-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth            *AuthHandler
	Soldiers        *SoldierHandler
	Tasks           *TaskHandler
	Attendance      *AttendanceHandler
	Exercises       *ExerciseHandler
	Evaluations     *EvaluationHandler
	StructuralUnits *StructuralUnitHandler
}

// RegisterRoutes mounts the API under the given prefix. Every route except
// login sits behind the JWT gate; mutating routes add role gates on top.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)

	protected := middleware.JWT(auth)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminOrSuperuser := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperuser)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", protected, h.Auth.Me)
		authGroup.POST("/register", protected, adminOnly, h.Auth.Register)
		authGroup.GET("/users", protected, adminOnly, h.Auth.ListUsers)
		authGroup.GET("/users/:id", protected, adminOnly, h.Auth.GetUser)
		authGroup.PUT("/users/:id", protected, adminOnly, h.Auth.UpdateUser)
		authGroup.DELETE("/users/:id", protected, adminOnly, h.Auth.DeleteUser)
	}

	soldiers := api.Group("/soldiers", protected)
	{
		soldiers.GET("", h.Soldiers.List)
		soldiers.GET("/:id", h.Soldiers.Get)
		soldiers.POST("", adminOrSuperuser, h.Soldiers.Create)
		soldiers.PUT("/:id", adminOrSuperuser, h.Soldiers.Update)
		soldiers.DELETE("/:id", adminOnly, h.Soldiers.Delete)
	}

	tasks := api.Group("/tasks", protected)
	{
		tasks.GET("", h.Tasks.List)
		tasks.GET("/:id", h.Tasks.Get)
		tasks.POST("", adminOrSuperuser, h.Tasks.Create)
		tasks.PUT("/:id", adminOrSuperuser, h.Tasks.Update)
		tasks.DELETE("/:id", adminOnly, h.Tasks.Delete)
	}

	attendance := api.Group("/attendance", protected)
	{
		attendance.GET("", h.Attendance.List)
		attendance.GET("/stats", h.Attendance.Stats)
		attendance.GET("/export", h.Attendance.Export)
		attendance.GET("/date/:date", h.Attendance.ByDate)
		attendance.POST("", adminOrSuperuser, h.Attendance.Create)
		attendance.POST("/bulk", adminOrSuperuser, h.Attendance.Bulk)
		attendance.PUT("/:id", adminOrSuperuser, h.Attendance.Update)
		attendance.DELETE("/:id", adminOrSuperuser, h.Attendance.Delete)
	}

	exercises := api.Group("/exercises", protected)
	{
		exercises.GET("", h.Exercises.List)
		exercises.GET("/stats", h.Exercises.Stats)
		exercises.GET("/:id", h.Exercises.Get)
		exercises.POST("", adminOrSuperuser, h.Exercises.Create)
		exercises.PUT("/:id", adminOrSuperuser, h.Exercises.Update)
		exercises.DELETE("/:id", adminOnly, h.Exercises.Delete)
	}

	evaluations := api.Group("/evaluations", protected)
	{
		evaluations.GET("", h.Evaluations.List)
		evaluations.GET("/stats", h.Evaluations.Stats)
		evaluations.GET("/:id", h.Evaluations.Get)
		evaluations.POST("", adminOrSuperuser, h.Evaluations.Create)
		evaluations.PUT("/:id", adminOrSuperuser, h.Evaluations.Update)
		evaluations.DELETE("/:id", adminOnly, h.Evaluations.Delete)
	}

	structuralUnits := api.Group("/structural-units", protected)
	{
		structuralUnits.GET("", h.StructuralUnits.List)
		structuralUnits.GET("/:id", h.StructuralUnits.Get)
		structuralUnits.POST("", adminOrSuperuser, h.StructuralUnits.Create)
		structuralUnits.POST("/initialize", adminOnly, h.StructuralUnits.Initialize)
		structuralUnits.PUT("/:id", adminOrSuperuser, h.StructuralUnits.Update)
		structuralUnits.DELETE("/:id", adminOnly, h.StructuralUnits.Delete)
	}
}
