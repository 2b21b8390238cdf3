package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/clubhub/internal/clock"
	disciplinedomain "github.com/smallbiznis/clubhub/internal/discipline/domain"
	"github.com/smallbiznis/clubhub/internal/membership/domain"
	userdomain "github.com/smallbiznis/clubhub/internal/user/domain"
	"github.com/smallbiznis/clubhub/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	UserSvc       userdomain.Service
	DisciplineSvc disciplinedomain.Service
}

type service struct {
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	userSvc       userdomain.Service
	disciplineSvc disciplinedomain.Service
}

func NewService(p Params) domain.Service {
	return &service{
		log:           p.Log.Named("membership"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		userSvc:       p.UserSvc,
		disciplineSvc: p.DisciplineSvc,
	}
}

// memberOf checks that the user exists, belongs to the club and holds
// the expected role.
func (s *service) memberOf(ctx context.Context, clubID, userID snowflake.ID, role string) (*userdomain.User, error) {
	user, err := s.userSvc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ClubID == nil || *user.ClubID != clubID {
		return nil, domain.ErrUnknownUser
	}
	if user.Role != role {
		return nil, nil
	}
	return user, nil
}

func (s *service) categoryOf(ctx context.Context, clubID, categoryID snowflake.ID) error {
	ownerID, err := s.disciplineSvc.ResolveCategoryClub(ctx, categoryID)
	if err != nil {
		return domain.ErrUnknownCategory
	}
	if ownerID != clubID {
		return domain.ErrUnknownCategory
	}
	return nil
}

func (s *service) Enroll(ctx context.Context, clubID, userID, categoryID snowflake.ID) (*domain.Enrollment, error) {
	user, err := s.memberOf(ctx, clubID, userID, userdomain.RoleStudent)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotStudent
	}
	if err := s.categoryOf(ctx, clubID, categoryID); err != nil {
		return nil, err
	}

	enrollment := domain.Enrollment{
		ID:         s.genID.Generate(),
		UserID:     userID,
		CategoryID: categoryID,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.CreateEnrollment(ctx, enrollment); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.log.Info("student enrolled",
		zap.Int64("user_id", int64(userID)),
		zap.Int64("category_id", int64(categoryID)),
	)
	return &enrollment, nil
}

func (s *service) AssignProfessor(ctx context.Context, clubID, userID, categoryID snowflake.ID) (*domain.TeachingAssignment, error) {
	user, err := s.memberOf(ctx, clubID, userID, userdomain.RoleProfessor)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotProfessor
	}
	if err := s.categoryOf(ctx, clubID, categoryID); err != nil {
		return nil, err
	}

	assignment := domain.TeachingAssignment{
		ID:         s.genID.Generate(),
		UserID:     userID,
		CategoryID: categoryID,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyAssigned
		}
		return nil, err
	}

	s.log.Info("professor assigned",
		zap.Int64("user_id", int64(userID)),
		zap.Int64("category_id", int64(categoryID)),
	)
	return &assignment, nil
}

func (s *service) RemoveEnrollment(ctx context.Context, clubID, enrollmentID snowflake.ID) error {
	_, err := s.repo.DeleteEnrollment(ctx, clubID, enrollmentID)
	return err
}

func (s *service) RemoveAssignment(ctx context.Context, clubID, assignmentID snowflake.ID) error {
	_, err := s.repo.DeleteAssignment(ctx, clubID, assignmentID)
	return err
}

func (s *service) ListEnrollmentsByStudent(ctx context.Context, clubID, userID snowflake.ID) ([]domain.EnrollmentDetail, error) {
	return s.repo.ListEnrollmentsByUser(ctx, clubID, userID)
}

func (s *service) ListEnrollmentsByCategory(ctx context.Context, categoryID snowflake.ID) ([]domain.Enrollment, error) {
	return s.repo.ListEnrollmentsByCategory(ctx, categoryID)
}

func (s *service) ListBillableEnrollments(ctx context.Context, clubID snowflake.ID, disciplineID *snowflake.ID) ([]domain.BillableEnrollment, error) {
	return s.repo.ListBillableEnrollments(ctx, clubID, disciplineID)
}

func (s *service) ListAssignmentsByProfessor(ctx context.Context, userID snowflake.ID) ([]domain.TeachingAssignment, error) {
	return s.repo.ListAssignmentsByUser(ctx, userID)
}

func (s *service) AssignedCategoryIDs(ctx context.Context, userID snowflake.ID) ([]snowflake.ID, error) {
	return s.repo.ListAssignedCategoryIDs(ctx, userID)
}
