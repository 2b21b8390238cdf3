package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	auditdomain "github.com/smallbiznis/clubhub/internal/audit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectClub       = "club"
	ObjectUser       = "user"
	ObjectDiscipline = "discipline"
	ObjectCategory   = "category"
	ObjectEnrollment = "enrollment"
	ObjectAssignment = "teaching_assignment"
	ObjectPayment    = "payment"
	ObjectReceipt    = "receipt"
	ObjectAuditLog   = "audit_log"
)

const (
	ActionClubView   = "club.view"
	ActionClubCreate = "club.create"
	ActionClubUpdate = "club.update"

	ActionUserView   = "user.view"
	ActionUserCreate = "user.create"
	ActionUserUpdate = "user.update"

	ActionDisciplineView   = "discipline.view"
	ActionDisciplineCreate = "discipline.create"

	ActionCategoryView   = "category.view"
	ActionCategoryCreate = "category.create"
	ActionCategoryUpdate = "category.update"

	ActionEnrollmentView   = "enrollment.view"
	ActionEnrollmentCreate = "enrollment.create"
	ActionEnrollmentDelete = "enrollment.delete"

	ActionAssignmentView   = "teaching_assignment.view"
	ActionAssignmentCreate = "teaching_assignment.create"
	ActionAssignmentDelete = "teaching_assignment.delete"

	ActionPaymentView     = "payment.view"
	ActionPaymentViewOwn  = "payment.view_own"
	ActionPaymentGenerate = "payment.generate"
	ActionPaymentRegister = "payment.register"

	ActionReceiptUpload = "receipt.upload"

	ActionAuditLogView = "audit_log.view"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	AuditSvc auditdomain.Service `optional:"true"`
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	auditSvc auditdomain.Service
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		auditSvc: p.AuditSvc,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, clubID string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return ErrInvalidClub
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject, roleName, actorType, actorID, err := s.resolveActor(ctx, actor, clubID)
	if err != nil {
		s.auditDenied(ctx, actorType, actorID, clubID, object, action)
		return err
	}

	domain := fmt.Sprintf("club:%s", clubID)
	if err := s.ensureGrouping(subject, roleName, domain); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, domain, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.auditDenied(ctx, actorType, actorID, clubID, object, action)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) resolveActor(ctx context.Context, actor string, clubID string) (string, string, string, *string, error) {
	if actor == "system" {
		return actor, "role:system", "system", nil, nil
	}
	if strings.HasPrefix(actor, "user:") {
		userIDRaw := strings.TrimPrefix(actor, "user:")
		userID, err := snowflake.ParseString(userIDRaw)
		if err != nil || userID == 0 {
			return "", "", "", nil, ErrInvalidActor
		}
		userIDStr := userID.String()
		parsedClubID, err := snowflake.ParseString(clubID)
		if err != nil || parsedClubID == 0 {
			return actor, "", "user", &userIDStr, ErrInvalidClub
		}
		role, err := s.roleForUser(ctx, parsedClubID, userID)
		if err != nil {
			return actor, "", "user", &userIDStr, err
		}
		roleName := fmt.Sprintf("role:%s", strings.ToLower(role))
		return actor, roleName, "user", &userIDStr, nil
	}
	return "", "", "", nil, ErrInvalidActor
}

// roleForUser resolves the actor's role from the users table. Super
// admins carry no club and act in every domain; everyone else must
// belong to the requested club.
func (s *ServiceImpl) roleForUser(ctx context.Context, clubID snowflake.ID, userID snowflake.ID) (string, error) {
	var row struct {
		Role   string `gorm:"column:role"`
		ClubID *int64 `gorm:"column:club_id"`
	}
	if err := s.db.WithContext(ctx).Raw(
		`SELECT role, club_id
		 FROM users
		 WHERE id = ? AND status = 'ACTIVE'
		 LIMIT 1`,
		userID,
	).Scan(&row).Error; err != nil {
		return "", err
	}

	role := strings.TrimSpace(row.Role)
	if role == "" {
		return "", ErrForbidden
	}
	if role == "SUPER_ADMIN" {
		return role, nil
	}
	if row.ClubID == nil || snowflake.ID(*row.ClubID) != clubID {
		return "", ErrForbidden
	}
	return role, nil
}

func (s *ServiceImpl) ensureGrouping(subject string, roleName string, domain string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject, "", domain)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if rule[1] != roleName {
			params := make([]interface{}, 0, len(rule))
			for _, value := range rule {
				params = append(params, value)
			}
			_, _ = s.enforcer.RemoveGroupingPolicy(params...)
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName, domain)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName, domain)
	return err
}

func (s *ServiceImpl) auditDenied(ctx context.Context, actorType string, actorID *string, clubID string, object string, action string) {
	if s.auditSvc == nil {
		return
	}
	parsedClubID, err := snowflake.ParseString(clubID)
	if err != nil || parsedClubID == 0 {
		return
	}
	targetID := "capability"
	_ = s.auditSvc.AuditLog(ctx, &parsedClubID, actorType, actorID, "authorization.denied", "authorization", &targetID, map[string]any{
		"object":  object,
		"action":  action,
		"club_id": clubID,
	})
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	// Super admins manage the club lifecycle and the user roster only.
	// In-club operations (disciplines, enrollments, fees, receipts)
	// belong to the club's own roles.
	superAdmin := []string{
		ActionClubView, ActionClubCreate, ActionClubUpdate,
		ActionUserView, ActionUserCreate, ActionUserUpdate,
	}

	clubAdmin := []string{
		ActionClubView, ActionClubUpdate,
		ActionUserView, ActionUserCreate, ActionUserUpdate,
		ActionDisciplineView, ActionDisciplineCreate,
		ActionCategoryView, ActionCategoryCreate, ActionCategoryUpdate,
		ActionEnrollmentView, ActionEnrollmentCreate, ActionEnrollmentDelete,
		ActionAssignmentView, ActionAssignmentCreate, ActionAssignmentDelete,
		ActionPaymentView, ActionPaymentViewOwn, ActionPaymentGenerate, ActionPaymentRegister,
		ActionReceiptUpload,
		ActionAuditLogView,
	}

	policies := make([][]string, 0, len(superAdmin)+len(clubAdmin)+10)
	for _, action := range superAdmin {
		policies = append(policies, []string{"role:super_admin", "*", objectOf(action), action})
	}
	for _, action := range clubAdmin {
		policies = append(policies, []string{"role:club_admin", "*", objectOf(action), action})
	}

	policies = append(policies,
		// Professors see their categories and handle receipts.
		[]string{"role:professor", "*", ObjectDiscipline, ActionDisciplineView},
		[]string{"role:professor", "*", ObjectCategory, ActionCategoryView},
		[]string{"role:professor", "*", ObjectEnrollment, ActionEnrollmentView},
		[]string{"role:professor", "*", ObjectPayment, ActionPaymentView},
		[]string{"role:professor", "*", ObjectPayment, ActionPaymentViewOwn},
		[]string{"role:professor", "*", ObjectPayment, ActionPaymentRegister},
		[]string{"role:professor", "*", ObjectReceipt, ActionReceiptUpload},

		// Students see their own payments only.
		[]string{"role:student", "*", ObjectDiscipline, ActionDisciplineView},
		[]string{"role:student", "*", ObjectCategory, ActionCategoryView},
		[]string{"role:student", "*", ObjectPayment, ActionPaymentViewOwn},
	)

	for _, policy := range policies {
		if len(policy) < 4 {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}

func objectOf(action string) string {
	i := strings.LastIndex(action, ".")
	if i <= 0 {
		return action
	}
	return action[:i]
}
