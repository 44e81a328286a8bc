package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oguzk/noteshub/internal/app/controllers"
	"github.com/oguzk/noteshub/internal/app/models"
	"github.com/oguzk/noteshub/internal/middleware"
	"github.com/oguzk/noteshub/internal/pkg/auth"
)

// Controllers bundles every controller the router wires up.
type Controllers struct {
	Auth *controllers.AuthController
	Note *controllers.NoteController
}

// SetupRoutes registers the full API surface under /api/v1.
func SetupRoutes(router *gin.Engine, ctrl Controllers, jwtService *auth.JWTService) {
	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/student/login", ctrl.Auth.LoginStudent)
		authGroup.POST("/student/register", ctrl.Auth.RegisterStudent)
		authGroup.POST("/teacher/login", ctrl.Auth.LoginTeacher)
		authGroup.POST("/refresh", ctrl.Auth.RefreshToken)

		// Teacher provisioning needs an authenticated admin. The service
		// re-checks the role; the middleware just fails fast.
		authGroup.POST("/teacher/register",
			middleware.JWTAuth(jwtService),
			middleware.RoleRequired(models.RoleAdmin),
			ctrl.Auth.RegisterTeacher)
	}

	notes := v1.Group("/notes")
	notes.Use(middleware.JWTAuth(jwtService))
	{
		notes.GET("", ctrl.Note.ListNotes)
		notes.POST("", ctrl.Note.UploadNote)
		notes.GET("/:noteId", ctrl.Note.GetNote)
		notes.GET("/:noteId/view", ctrl.Note.ViewAttachment)
		notes.GET("/:noteId/download", ctrl.Note.DownloadAttachment)
		notes.POST("/:noteId/approve", ctrl.Note.ApproveNote)
		notes.POST("/:noteId/reject", ctrl.Note.RejectNote)
		notes.POST("/:noteId/pending", ctrl.Note.ResetNote)
		notes.DELETE("/:noteId", ctrl.Note.DeleteNote)
	}
}
