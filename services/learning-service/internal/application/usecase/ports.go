package usecase

import (
	"context"
	"fmt"

	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

// Количество попыток compare-and-swap перед тем, как вернуть конфликт.
const maxSaveAttempts = 3

type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, courseID string) (*domain.Course, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
	List(ctx context.Context, category string) ([]domain.Course, error)
	Save(ctx context.Context, c *domain.Course) error
}

type ProgressRepository interface {
	Get(ctx context.Context, userID, courseID string) (*domain.UserCourseProgress, error)
	ListByUser(ctx context.Context, userID string) ([]domain.UserCourseProgress, error)
	Create(ctx context.Context, p *domain.UserCourseProgress) (bool, error)
	Update(ctx context.Context, p *domain.UserCourseProgress) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	Get(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	List(ctx context.Context, userID string) ([]domain.Transaction, error)
}

type StructureCache interface {
	Get(ctx context.Context, courseID string) (*domain.CourseStructure, error)
	Set(ctx context.Context, s *domain.CourseStructure) error
	Invalidate(ctx context.Context, courseID string) error
}

type StructureProvider interface {
	Structure(ctx context.Context, courseID string) (*domain.CourseStructure, error)
}

type ProgressInitializer interface {
	GetOrInit(ctx context.Context, userID, courseID string) (*domain.UserCourseProgress, error)
}

// authorize пропускает только владельца ресурса.
func authorize(callerID, ownerID string) error {
	if callerID == "" || callerID != ownerID {
		return fmt.Errorf("%w: caller %q cannot access data of user %q", domain.ErrUnauthorized, callerID, ownerID)
	}
	return nil
}

func required(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i+1] == "" {
			return domain.InvalidInput("%s is required", fields[i])
		}
	}
	return nil
}
