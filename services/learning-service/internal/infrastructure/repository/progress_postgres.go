package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

type ProgressRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepository(db *gorm.DB, log *logger.Logger) *ProgressRepository {
	return &ProgressRepository{db: db, log: log.With("repo", "ProgressRepository")}
}

func (r *ProgressRepository) Get(ctx context.Context, userID, courseID string) (*domain.UserCourseProgress, error) {
	var m progressModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, err
	}
	return progressFromModel(&m), nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.UserCourseProgress, error) {
	var models []progressModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_accessed_timestamp desc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserCourseProgress, 0, len(models))
	for i := range models {
		out = append(out, *progressFromModel(&models[i]))
	}
	return out, nil
}

// Create добавляет запись, только если её ещё нет. created == false значит,
// что запись уже создал другой запрос.
func (r *ProgressRepository) Create(ctx context.Context, p *domain.UserCourseProgress) (bool, error) {
	m := progressToModel(p)
	m.Version = 1
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Debug("progress already exists", "user_id", p.UserID, "course_id", p.CourseID)
		return false, nil
	}
	p.Version = m.Version
	return true, nil
}

// Update - compare-and-swap по версии документа.
func (r *ProgressRepository) Update(ctx context.Context, p *domain.UserCourseProgress) error {
	res := r.db.WithContext(ctx).Model(&progressModel{}).
		Where("user_id = ? AND course_id = ? AND version = ?", p.UserID, p.CourseID, p.Version).
		Updates(map[string]interface{}{
			"sections":                datatypes.NewJSONSlice(nonNil(p.Sections)),
			"overall_progress":        p.OverallProgress,
			"last_accessed_timestamp": p.LastAccessedTimestamp,
			"version":                 p.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Debug("stale progress version", "user_id", p.UserID, "course_id", p.CourseID, "version", p.Version)
		return domain.ErrVersionConflict
	}
	p.Version++
	return nil
}
