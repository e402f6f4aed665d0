package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

type CourseService struct {
	courses CourseRepository
	cache   StructureCache
	log     *logger.Logger
	newID   func() string
}

// cache может быть nil, тогда структура всегда читается из базы.
func NewCourseService(courses CourseRepository, cache StructureCache, log *logger.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		cache:   cache,
		log:     log.With("usecase", "CourseService"),
		newID:   uuid.NewString,
	}
}

func (s *CourseService) Get(ctx context.Context, courseID string) (*domain.Course, error) {
	if err := required("courseId", courseID); err != nil {
		return nil, err
	}
	return s.courses.GetByID(ctx, courseID)
}

func (s *CourseService) List(ctx context.Context, category string) ([]domain.Course, error) {
	return s.courses.List(ctx, strings.TrimSpace(category))
}

// Structure отдаёт скелет курса. Ошибки кеша не роняют запрос.
func (s *CourseService) Structure(ctx context.Context, courseID string) (*domain.CourseStructure, error) {
	if err := required("courseId", courseID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, courseID)
		if err != nil {
			s.log.Warn("structure cache read failed", "course_id", courseID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	structure := course.Structure()

	if s.cache != nil {
		if err := s.cache.Set(ctx, structure); err != nil {
			s.log.Warn("structure cache write failed", "course_id", courseID, "error", err)
		}
	}
	return structure, nil
}

// Create сохраняет новый курс, выдавая идентификаторы разделам и главам без них.
func (s *CourseService) Create(ctx context.Context, c *domain.Course) error {
	if err := required("title", c.Title, "teacherId", c.TeacherID); err != nil {
		return err
	}
	if c.Price < 0 {
		return domain.InvalidInput("price must not be negative")
	}
	if c.CourseID == "" {
		c.CourseID = s.newID()
	}
	for i := range c.Sections {
		sec := &c.Sections[i]
		if sec.SectionID == "" {
			sec.SectionID = s.newID()
		}
		for j := range sec.Chapters {
			ch := &sec.Chapters[j]
			if ch.ChapterID == "" {
				ch.ChapterID = s.newID()
			}
			if ch.Type == "" {
				ch.Type = domain.ChapterText
			}
			if !ch.Type.Valid() {
				return domain.InvalidInput("chapter %s: unknown type %q", ch.ChapterID, ch.Type)
			}
		}
	}
	if c.Enrollments == nil {
		c.Enrollments = []domain.Enrollment{}
	}

	if err := s.courses.Create(ctx, c); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	s.invalidate(ctx, c.CourseID)
	return nil
}

// AttachChapterVideo записывает URL видео в главу. Писать может только автор курса.
func (s *CourseService) AttachChapterVideo(ctx context.Context, callerID, courseID, sectionID, chapterID, videoURL string) (*domain.Course, error) {
	if err := required("courseId", courseID, "sectionId", sectionID, "chapterId", chapterID, "videoUrl", strings.TrimSpace(videoURL)); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		course, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if err := authorize(callerID, course.TeacherID); err != nil {
			return nil, err
		}
		chapter, err := course.FindChapter(sectionID, chapterID)
		if err != nil {
			return nil, err
		}
		chapter.Video = videoURL

		err = s.courses.Save(ctx, course)
		if err == nil {
			return course, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) || attempt == maxSaveAttempts {
			return nil, fmt.Errorf("save course %s: %w", courseID, err)
		}
	}
}

func (s *CourseService) invalidate(ctx context.Context, courseID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, courseID); err != nil {
		s.log.Warn("structure cache invalidate failed", "course_id", courseID, "error", err)
	}
}
