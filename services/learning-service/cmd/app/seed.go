package main

import (
	"context"

	"github.com/waste3d/courseplatform-api/services/learning-service/internal/application/usecase"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/infrastructure/repository"
)

// seedDemoCourse создаёт один демонстрационный курс в пустой базе.
func seedDemoCourse(ctx context.Context, repo *repository.CourseRepository, courses *usecase.CourseService) (bool, error) {
	total, err := repo.Count(ctx)
	if err != nil || total > 0 {
		return false, err
	}
	demo := &domain.Course{
		TeacherID:   "demo-teacher",
		TeacherName: "Demo Teacher",
		Title:       "Go: первые шаги",
		Description: "Короткий курс для проверки записи на курс и прогресса",
		Category:    "backend",
		Price:       4999,
		Level:       "Beginner",
		Status:      "Published",
		Sections: []domain.Section{{
			SectionTitle: "Введение",
			Chapters: []domain.Chapter{
				{ChapterID: "c1", Type: domain.ChapterText, Title: "Установка Go", Content: "go.dev/dl"},
				{ChapterID: "c2", Type: domain.ChapterQuiz, Title: "Проверка знаний"},
			},
		}},
	}
	if err := courses.Create(ctx, demo); err != nil {
		return false, err
	}
	return true, nil
}
