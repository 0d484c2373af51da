package routes

import (
	"sykli-college-api/controllers"
	"sykli-college-api/middleware"
	"sykli-college-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// Public content
			public.GET("/schools", controllers.GetSchools)
			public.GET("/departments/:slug", controllers.GetDepartment)
			public.GET("/courses", controllers.GetCourses)
			public.GET("/courses/:slug", controllers.GetCourse)
			public.GET("/news", controllers.GetNewsPosts)
			public.GET("/news/:slug", controllers.GetNewsPost)
			public.GET("/pages/:slug", controllers.GetContentPage)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "SYKLI College API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/refresh", controllers.RefreshToken)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
			protected.PUT("/notifications/read-all", controllers.MarkAllNotificationsRead)

			// Admission applications
			applications := protected.Group("/applications")
			{
				applications.GET("", controllers.GetApplications)
				applications.GET("/:id", controllers.GetApplication)
				applications.POST("", controllers.CreateApplication)
				applications.DELETE("/:id", controllers.DeleteApplication)

				// Wizard steps
				applications.PUT("/:id/personal-info", controllers.SavePersonalInfo)
				applications.PUT("/:id/contact-details", controllers.SaveContactDetails)
				applications.PUT("/:id/education-history", controllers.SaveEducationHistory)
				applications.PUT("/:id/motivation", controllers.SaveMotivation)
				applications.GET("/:id/progress", controllers.GetApplicationProgress)
				applications.POST("/:id/submit", controllers.SubmitApplication)

				// Documents
				applications.POST("/:id/documents", controllers.UploadDocument)
				applications.GET("/:id/documents", controllers.GetDocuments)

				// Review workflow (staff/admin)
				applications.POST("/:id/status",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.UpdateApplicationStatus)
			}

			// Documents by id
			documents := protected.Group("/documents")
			{
				documents.GET("/types", controllers.GetDocumentTypes)
				documents.GET("/:document_id/download", controllers.DownloadDocument)
				documents.DELETE("/:document_id", controllers.DeleteDocument)
			}

			// Housing
			housing := protected.Group("/housing")
			{
				housing.GET("/semesters", controllers.GetHousingSemesters)
				housing.GET("/buildings", controllers.GetHousingBuildings)
				housing.GET("/rooms", controllers.GetAvailableRooms)

				// Student-facing
				housing.POST("/applications", controllers.SubmitHousingApplication)
				housing.GET("/applications/mine", controllers.GetMyHousingApplications)
				housing.POST("/applications/:id/deposit", controllers.ProcessHousingDeposit)

				// Staff management
				staff := housing.Group("", middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
				{
					staff.GET("/applications", controllers.GetHousingApplications)
					staff.POST("/applications/:id/reject", controllers.RejectHousingApplication)
					staff.POST("/applications/:id/allocate", controllers.AllocateHousingRoom)
					staff.DELETE("/applications/:id", controllers.DeleteHousingApplication)
					staff.POST("/buildings", controllers.CreateHousingBuilding)
					staff.DELETE("/buildings/:id", controllers.DeleteHousingBuilding)
					staff.POST("/rooms", controllers.CreateHousingRoom)
					staff.DELETE("/rooms/:id", controllers.DeleteHousingRoom)
					staff.DELETE("/assignments/:assignment_id", controllers.UnassignHousingRoom)
				}
			}

			// Dashboards
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/me", controllers.GetApplicantDashboard)
				dashboard.GET("/stats",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.GetDashboardStats)
			}

			// Catalog management (staff/admin)
			manage := protected.Group("/manage", middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
			{
				manage.POST("/courses", controllers.CreateCourse)
				manage.PUT("/courses/:id", controllers.UpdateCourse)
				manage.DELETE("/courses/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteCourse)
				manage.POST("/news", controllers.CreateNewsPost)
				manage.DELETE("/news/:id", controllers.DeleteNewsPost)
				manage.PUT("/pages", middleware.RequireRole(models.RoleAdmin), controllers.UpsertContentPage)
			}
		}
	}
}
