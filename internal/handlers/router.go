package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-portal-service/internal/models"
	"github.com/SAP-F-2025/school-portal-service/internal/services"
	"github.com/SAP-F-2025/school-portal-service/internal/utils"
)

type HandlerManager struct {
	serviceManager      services.ServiceManager
	authHandler         *AuthHandler
	userHandler         *UserHandler
	teacherHandler      *TeacherHandler
	studentHandler      *StudentHandler
	classHandler        *ClassHandler
	subjectHandler      *SubjectHandler
	classSubjectHandler *ClassSubjectHandler
	attendanceHandler   *AttendanceHandler
	scoreHandler        *ScoreHandler
	materialHandler     *MaterialHandler
	reportHandler       *ReportHandler
	dashboardHandler    *DashboardHandler
	authMiddleware      *JWTAuthMiddleware
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		serviceManager:      serviceManager,
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		teacherHandler:      NewTeacherHandler(serviceManager.Teacher(), logger),
		studentHandler:      NewStudentHandler(serviceManager.Student(), logger),
		classHandler:        NewClassHandler(serviceManager.Class(), logger),
		subjectHandler:      NewSubjectHandler(serviceManager.Subject(), logger),
		classSubjectHandler: NewClassSubjectHandler(serviceManager.ClassSubject(), logger),
		attendanceHandler:   NewAttendanceHandler(serviceManager.Attendance(), logger),
		scoreHandler:        NewScoreHandler(serviceManager.Score(), logger),
		materialHandler:     NewMaterialHandler(serviceManager.Material(), logger),
		reportHandler:       NewReportHandler(serviceManager.Report(), logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Dashboard(), logger),
		authMiddleware:      NewJWTAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	adminOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)
	staff := hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin)
	studentOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent)

	// Login is the only unauthenticated business route
	router.POST("/auth/login", hm.authHandler.Login)

	authed := router.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.GET("/auth/me", hm.authHandler.Me)

		// Account management - Admins only
		users := authed.Group("/users", adminOnly)
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}

		teachers := authed.Group("/teachers")
		{
			teachers.POST("", adminOnly, hm.teacherHandler.CreateTeacher)
			teachers.GET("", staff, hm.teacherHandler.ListTeachers)
			teachers.GET("/:id", staff, hm.teacherHandler.GetTeacher)
			teachers.PUT("/:id", adminOnly, hm.teacherHandler.UpdateTeacher)
			teachers.DELETE("/:id", adminOnly, hm.teacherHandler.DeleteTeacher)
		}

		// Student reads and writes are scope-checked in the service layer
		students := authed.Group("/students", staff)
		{
			students.POST("", hm.studentHandler.CreateStudent)
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.PUT("/:id", hm.studentHandler.UpdateStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)
		}

		classes := authed.Group("/classes")
		{
			classes.POST("", adminOnly, hm.classHandler.CreateClass)
			classes.GET("", staff, hm.classHandler.ListClasses)
			classes.GET("/:id", staff, hm.classHandler.GetClass)
			classes.PUT("/:id", adminOnly, hm.classHandler.UpdateClass)
			classes.DELETE("/:id", adminOnly, hm.classHandler.DeleteClass)
		}

		subjects := authed.Group("/subjects")
		{
			subjects.POST("", adminOnly, hm.subjectHandler.CreateSubject)
			subjects.GET("", staff, hm.subjectHandler.ListSubjects)
			subjects.GET("/:id", staff, hm.subjectHandler.GetSubject)
			subjects.PUT("/:id", adminOnly, hm.subjectHandler.UpdateSubject)
			subjects.DELETE("/:id", adminOnly, hm.subjectHandler.DeleteSubject)
		}

		classSubjects := authed.Group("/class-subjects")
		{
			classSubjects.POST("", adminOnly, hm.classSubjectHandler.CreateClassSubject)
			classSubjects.GET("", staff, hm.classSubjectHandler.ListClassSubjects)
			classSubjects.GET("/:id", staff, hm.classSubjectHandler.GetClassSubject)
			classSubjects.PUT("/:id", adminOnly, hm.classSubjectHandler.UpdateClassSubject)
			classSubjects.DELETE("/:id", adminOnly, hm.classSubjectHandler.DeleteClassSubject)
		}

		attendance := authed.Group("/attendance")
		{
			attendance.POST("/bulk", staff, hm.attendanceHandler.BulkRecord)
			attendance.GET("/class/:classId/date/:date", staff, hm.attendanceHandler.ListClassDate)
			attendance.GET("/class/:classId/date/:date/sheet", staff, hm.attendanceHandler.GetDaySheet)
			attendance.GET("/student/:studentId", staff, hm.attendanceHandler.ListStudentAttendance)
			attendance.GET("/me", studentOnly, hm.attendanceHandler.ListMyAttendance)
		}

		scores := authed.Group("/scores")
		{
			scores.POST("/upsert", staff, hm.scoreHandler.Upsert)
			scores.GET("/class-subject/:classSubjectId", staff, hm.scoreHandler.ListByClassSubject)
			scores.GET("/student/:studentId", staff, hm.scoreHandler.StudentSummary)
			scores.GET("/me", studentOnly, hm.scoreHandler.MySummary)
		}

		materials := authed.Group("/materials")
		{
			materials.POST("", staff, hm.materialHandler.CreateMaterial)
			materials.GET("", staff, hm.materialHandler.ListMaterials)
			materials.GET("/me", studentOnly, hm.materialHandler.ListMyMaterials)
			materials.GET("/class-subject/:classSubjectId", staff, hm.materialHandler.ListByClassSubject)
			materials.GET("/:id", staff, hm.materialHandler.GetMaterial)
			materials.PUT("/:id", staff, hm.materialHandler.UpdateMaterial)
			materials.DELETE("/:id", staff, hm.materialHandler.DeleteMaterial)
		}

		reports := authed.Group("/reports", staff)
		{
			reports.GET("/scores/class-subject/:classSubjectId/xlsx", hm.reportHandler.ExportClassScores)
			reports.GET("/attendance/class/:classId/xlsx", hm.reportHandler.ExportAttendanceMonth)
		}

		authed.GET("/dashboard/overview", staff, hm.dashboardHandler.Overview)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":  "healthy",
			"service": "school-portal-service",
		}
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "unhealthy"
		}
		c.JSON(status, health)
	})
}
