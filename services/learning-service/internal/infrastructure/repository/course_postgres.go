package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

type CourseRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepository(db *gorm.DB, log *logger.Logger) *CourseRepository {
	return &CourseRepository{db: db, log: log.With("repo", "CourseRepository")}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	m := courseToModel(c)
	m.Version = 1
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	c.Version = m.Version
	c.CreatedAt, c.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, courseID string) (*domain.Course, error) {
	var m courseModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return courseFromModel(&m), nil
}

// GetByIDs - пакетное чтение, отсутствующие идентификаторы просто пропускаются.
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}
	var models []courseModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	return coursesFromModels(models), nil
}

func (r *CourseRepository) List(ctx context.Context, category string) ([]domain.Course, error) {
	query := r.db.WithContext(ctx).Model(&courseModel{})
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	var models []courseModel
	if err := query.Order("created_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	return coursesFromModels(models), nil
}

// Save перезаписывает разделы и записи о зачислении, если версия документа не изменилась.
// При устаревшей версии возвращает domain.ErrVersionConflict.
func (r *CourseRepository) Save(ctx context.Context, c *domain.Course) error {
	res := r.db.WithContext(ctx).Model(&courseModel{}).
		Where("id = ? AND version = ?", c.CourseID, c.Version).
		Updates(map[string]interface{}{
			"sections":    datatypes.NewJSONSlice(nonNil(c.Sections)),
			"enrollments": datatypes.NewJSONSlice(nonNil(c.Enrollments)),
			"version":     c.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, c.CourseID); err != nil {
			return err
		}
		r.log.Debug("stale course version", "course_id", c.CourseID, "version", c.Version)
		return domain.ErrVersionConflict
	}
	c.Version++
	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&courseModel{}).Count(&total).Error
	return total, err
}

func coursesFromModels(models []courseModel) []domain.Course {
	courses := make([]domain.Course, 0, len(models))
	for i := range models {
		courses = append(courses, *courseFromModel(&models[i]))
	}
	return courses
}
