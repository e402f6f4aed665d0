package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func demoCourse(id, category string) *domain.Course {
	return &domain.Course{
		CourseID:  id,
		TeacherID: "teacher-1",
		Title:     "Go basics",
		Category:  category,
		Price:     4999,
		Level:     "Beginner",
		Status:    "Published",
		Sections: []domain.Section{{SectionID: "s1", SectionTitle: "Start", Chapters: []domain.Chapter{
			{ChapterID: "c1", Type: domain.ChapterText, Title: "Intro"},
			{ChapterID: "c2", Type: domain.ChapterVideo, Title: "Setup"},
		}}},
	}
}

func TestCourseRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(newTestDB(t), logger.Nop())

	c := demoCourse("course-1", "backend")
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(1), c.Version)

	got, err := repo.GetByID(ctx, "course-1")
	require.NoError(t, err)
	assert.Equal(t, c.Sections, got.Sections)
	assert.Empty(t, got.Enrollments)
	assert.NotNil(t, got.Enrollments)
	assert.Equal(t, int64(4999), got.Price)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCourseRepositoryListAndBatchGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(newTestDB(t), logger.Nop())

	require.NoError(t, repo.Create(ctx, demoCourse("a", "backend")))
	require.NoError(t, repo.Create(ctx, demoCourse("b", "frontend")))
	require.NoError(t, repo.Create(ctx, demoCourse("c", "backend")))

	backend, err := repo.List(ctx, "backend")
	require.NoError(t, err)
	assert.Len(t, backend, 2)

	all, err := repo.List(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	batch, err := repo.GetByIDs(ctx, []string{"a", "c", "missing"})
	require.NoError(t, err)
	ids := []string{}
	for _, c := range batch {
		ids = append(ids, c.CourseID)
	}
	assert.ElementsMatch(t, []string{"a", "c"}, ids)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestCourseRepositorySaveDetectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(newTestDB(t), logger.Nop())
	require.NoError(t, repo.Create(ctx, demoCourse("course-1", "backend")))

	first, err := repo.GetByID(ctx, "course-1")
	require.NoError(t, err)
	stale, err := repo.GetByID(ctx, "course-1")
	require.NoError(t, err)

	first.Enrollments = append(first.Enrollments, domain.Enrollment{UserID: "u-1", EnrolledAt: time.Now().UTC()})
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	stale.Enrollments = append(stale.Enrollments, domain.Enrollment{UserID: "u-2"})
	assert.ErrorIs(t, repo.Save(ctx, stale), domain.ErrVersionConflict)

	got, err := repo.GetByID(ctx, "course-1")
	require.NoError(t, err)
	require.Len(t, got.Enrollments, 1)
	assert.Equal(t, "u-1", got.Enrollments[0].UserID)

	missing := demoCourse("missing", "backend")
	assert.ErrorIs(t, repo.Save(ctx, missing), domain.ErrCourseNotFound)
}

func TestProgressRepositoryCreateIsAddIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(newTestDB(t), logger.Nop())
	now := time.Now().UTC()

	p := &domain.UserCourseProgress{
		UserID:                "u-1",
		CourseID:              "course-1",
		EnrollmentDate:        now,
		LastAccessedTimestamp: now,
		Sections:              []domain.SectionProgress{{SectionID: "s1", Chapters: []domain.ChapterProgress{{ChapterID: "c1"}}}},
	}
	created, err := repo.Create(ctx, p)
	require.NoError(t, err)
	assert.True(t, created)

	again := *p
	again.Sections = nil
	created, err = repo.Create(ctx, &again)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.Get(ctx, "u-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, p.Sections, got.Sections)
	assert.Equal(t, int64(1), got.Version)

	_, err = repo.Get(ctx, "u-1", "other")
	assert.ErrorIs(t, err, domain.ErrProgressNotFound)
}

func TestProgressRepositoryUpdateCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(newTestDB(t), logger.Nop())

	p := &domain.UserCourseProgress{UserID: "u-1", CourseID: "course-1", Sections: []domain.SectionProgress{}}
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)

	a, err := repo.Get(ctx, "u-1", "course-1")
	require.NoError(t, err)
	b, err := repo.Get(ctx, "u-1", "course-1")
	require.NoError(t, err)

	a.Sections = []domain.SectionProgress{{SectionID: "s1", Chapters: []domain.ChapterProgress{{ChapterID: "c1", Completed: true}}}}
	a.OverallProgress = 1
	require.NoError(t, repo.Update(ctx, a))
	assert.Equal(t, int64(2), a.Version)

	b.OverallProgress = 0
	assert.ErrorIs(t, repo.Update(ctx, b), domain.ErrVersionConflict)

	got, err := repo.Get(ctx, "u-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.OverallProgress)
	assert.Equal(t, a.Sections, got.Sections)
}

func TestProgressRepositoryLogsStaleVersion(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.DebugLevel)
	repo := NewProgressRepository(newTestDB(t), &logger.Logger{SugaredLogger: zap.New(core).Sugar()})

	p := &domain.UserCourseProgress{UserID: "u-1", CourseID: "course-1", Sections: []domain.SectionProgress{}}
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)

	stale := *p
	require.NoError(t, repo.Update(ctx, p))
	assert.ErrorIs(t, repo.Update(ctx, &stale), domain.ErrVersionConflict)

	entries := logs.FilterMessage("stale progress version").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ProgressRepository", fields["repo"])
	assert.Equal(t, "course-1", fields["course_id"])
}

func TestProgressRepositoryListByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(newTestDB(t), logger.Nop())
	base := time.Now().UTC()

	for i, courseID := range []string{"a", "b"} {
		_, err := repo.Create(ctx, &domain.UserCourseProgress{
			UserID:                "u-1",
			CourseID:              courseID,
			LastAccessedTimestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.UserCourseProgress{UserID: "u-2", CourseID: "a"})
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].CourseID)
	assert.Equal(t, "a", list[1].CourseID)
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t), logger.Nop())
	base := time.Now().UTC()

	tx := &domain.Transaction{UserID: "u-1", TransactionID: "tx-9", CourseID: "course-1", Amount: 4999, PaymentProvider: "stripe", DateTime: base}
	require.NoError(t, repo.Create(ctx, tx))
	require.NoError(t, repo.Create(ctx, &domain.Transaction{UserID: "u-1", TransactionID: "tx-10", CourseID: "course-2", Amount: 100, PaymentProvider: "stripe", DateTime: base.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &domain.Transaction{UserID: "u-2", TransactionID: "tx-9", CourseID: "course-1", Amount: 4999, PaymentProvider: "stripe", DateTime: base}))

	assert.Error(t, repo.Create(ctx, tx))

	got, err := repo.Get(ctx, "u-1", "tx-9")
	require.NoError(t, err)
	assert.Equal(t, int64(4999), got.Amount)
	assert.Equal(t, "course-1", got.CourseID)

	_, err = repo.Get(ctx, "u-3", "tx-9")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	mine, err := repo.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "tx-10", mine[0].TransactionID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
