package server

import (
	authz "github.com/smallbiznis/clubhub/internal/authorization"
)

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")
	api.Use(s.AuthRequired(), s.ClubContext())

	api.POST("/clubs", s.CreateClub)
	api.GET("/clubs", s.ListClubs)
	api.GET("/clubs/:id", s.GetClub)

	api.POST("/users", s.authorizeClubAction(authz.ObjectUser, authz.ActionUserCreate), s.CreateUser)
	api.GET("/users", s.authorizeClubAction(authz.ObjectUser, authz.ActionUserView), s.ListUsers)
	api.PATCH("/users/:id/status", s.authorizeClubAction(authz.ObjectUser, authz.ActionUserUpdate), s.UpdateUserStatus)
	api.GET("/users/:id/enrollments", s.authorizeClubAction(authz.ObjectEnrollment, authz.ActionEnrollmentView), s.ListStudentEnrollments)

	api.POST("/disciplines", s.authorizeClubAction(authz.ObjectDiscipline, authz.ActionDisciplineCreate), s.CreateDiscipline)
	api.GET("/disciplines", s.authorizeClubAction(authz.ObjectDiscipline, authz.ActionDisciplineView), s.ListDisciplines)

	api.POST("/categories", s.authorizeClubAction(authz.ObjectCategory, authz.ActionCategoryCreate), s.CreateCategory)
	api.PATCH("/categories/:id", s.authorizeClubAction(authz.ObjectCategory, authz.ActionCategoryUpdate), s.UpdateCategory)
	api.GET("/categories", s.authorizeClubAction(authz.ObjectCategory, authz.ActionCategoryView), s.ListCategories)

	api.POST("/enrollments", s.authorizeClubAction(authz.ObjectEnrollment, authz.ActionEnrollmentCreate), s.Enroll)
	api.DELETE("/enrollments/:id", s.authorizeClubAction(authz.ObjectEnrollment, authz.ActionEnrollmentDelete), s.RemoveEnrollment)

	api.POST("/assignments", s.authorizeClubAction(authz.ObjectAssignment, authz.ActionAssignmentCreate), s.AssignProfessor)
	api.DELETE("/assignments/:id", s.authorizeClubAction(authz.ObjectAssignment, authz.ActionAssignmentDelete), s.RemoveAssignment)

	api.POST("/payments/generate", s.authorizeClubAction(authz.ObjectPayment, authz.ActionPaymentGenerate), s.GenerateFees)
	api.POST("/payments/:id/register", s.authorizeClubAction(authz.ObjectPayment, authz.ActionPaymentRegister), s.RegisterPayment)
	api.GET("/payments", s.authorizeClubAction(authz.ObjectPayment, authz.ActionPaymentView), s.ListPayments)
	api.GET("/payments/me", s.authorizeClubAction(authz.ObjectPayment, authz.ActionPaymentViewOwn), s.ListMyPayments)
	api.GET("/payments/audits", s.authorizeClubAction(authz.ObjectAuditLog, authz.ActionAuditLogView), s.ListPaymentAudits)

	api.POST("/uploads/receipts", s.authorizeClubAction(authz.ObjectReceipt, authz.ActionReceiptUpload), s.UploadReceipt)

	api.GET("/audit-logs", s.authorizeClubAction(authz.ObjectAuditLog, authz.ActionAuditLogView), s.ListAuditLogs)
}

func (s *Server) registerStaticRoutes() {
	s.engine.Static(s.cfg.UploadBaseURL, s.cfg.UploadDir)
}
