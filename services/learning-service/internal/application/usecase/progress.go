package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/progress"
)

// ProgressService владеет циклом чтение-слияние-запись документа прогресса.
type ProgressService struct {
	records    ProgressRepository
	courses    CourseRepository
	structures StructureProvider
	log        *logger.Logger
	now        func() time.Time
}

func NewProgressService(records ProgressRepository, courses CourseRepository, structures StructureProvider, log *logger.Logger) *ProgressService {
	return &ProgressService{
		records:    records,
		courses:    courses,
		structures: structures,
		log:        log.With("usecase", "ProgressService"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// GetOrInit возвращает сохранённый прогресс или создаёт его по текущей структуре курса.
// Существующая запись никогда не перезаписывается.
func (s *ProgressService) GetOrInit(ctx context.Context, userID, courseID string) (*domain.UserCourseProgress, error) {
	p, err := s.records.Get(ctx, userID, courseID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrProgressNotFound) {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	structure, err := s.structures.Structure(ctx, courseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p = &domain.UserCourseProgress{
		UserID:                userID,
		CourseID:              courseID,
		EnrollmentDate:        now,
		OverallProgress:       0,
		Sections:              progress.Seed(structure),
		LastAccessedTimestamp: now,
	}
	created, err := s.records.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create progress: %w", err)
	}
	if !created {
		// Запись успел создать параллельный запрос.
		return s.records.Get(ctx, userID, courseID)
	}
	s.log.Info("progress initialized", "user_id", userID, "course_id", courseID)
	return p, nil
}

// ApplyUpdate сливает частичное обновление с сохранённым прогрессом и пересчитывает overallProgress.
func (s *ProgressService) ApplyUpdate(ctx context.Context, callerID, userID, courseID string, sections []domain.SectionProgress) (*domain.UserCourseProgress, error) {
	if err := required("userId", userID, "courseId", courseID); err != nil {
		return nil, err
	}
	if err := authorize(callerID, userID); err != nil {
		return nil, err
	}
	if err := progress.ValidateUpdate(sections); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		current, err := s.GetOrInit(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}

		current.Sections = progress.Merge(current.Sections, sections)
		current.OverallProgress = progress.OverallProgress(current.Sections)
		current.LastAccessedTimestamp = s.now()

		err = s.records.Update(ctx, current)
		if err == nil {
			return current, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, fmt.Errorf("save progress: %w", err)
		}
		if attempt == maxSaveAttempts {
			return nil, fmt.Errorf("%w: gave up after %d attempts", domain.ErrProgressConflict, attempt)
		}
		s.log.Debug("progress version conflict, retrying", "user_id", userID, "course_id", courseID, "attempt", attempt)
	}
}

func (s *ProgressService) Get(ctx context.Context, callerID, userID, courseID string) (*domain.UserCourseProgress, error) {
	if err := required("userId", userID, "courseId", courseID); err != nil {
		return nil, err
	}
	if err := authorize(callerID, userID); err != nil {
		return nil, err
	}
	return s.records.Get(ctx, userID, courseID)
}

// EnrolledCourses - курсы, по которым у пользователя есть прогресс.
func (s *ProgressService) EnrolledCourses(ctx context.Context, callerID, userID string) ([]domain.Course, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	if err := authorize(callerID, userID); err != nil {
		return nil, err
	}

	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	if len(records) == 0 {
		return []domain.Course{}, nil
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.CourseID)
	}
	return s.courses.GetByIDs(ctx, ids)
}
