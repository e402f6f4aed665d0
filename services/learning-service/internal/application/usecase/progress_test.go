package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

type progressFixture struct {
	courses  *fakeCourses
	progress *fakeProgress
	svc      *ProgressService
}

func newProgressFixture(courses ...*domain.Course) *progressFixture {
	fc := newFakeCourses(courses...)
	fp := newFakeProgress()
	svc := NewProgressService(fp, fc, NewCourseService(fc, nil, logger.Nop()), logger.Nop())
	svc.now = func() time.Time { return fixedNow }
	return &progressFixture{courses: fc, progress: fp, svc: svc}
}

func completed(sectionID, chapterID string, done bool) []domain.SectionProgress {
	return []domain.SectionProgress{{SectionID: sectionID, Chapters: []domain.ChapterProgress{{ChapterID: chapterID, Completed: done}}}}
}

func TestGetOrInitSeedsFromCourse(t *testing.T) {
	f := newProgressFixture(twoChapterCourse())

	p, err := f.svc.GetOrInit(context.Background(), "u-1", "course-1")
	require.NoError(t, err)

	assert.Equal(t, 0.0, p.OverallProgress)
	assert.True(t, p.EnrollmentDate.Equal(fixedNow))
	assert.True(t, p.LastAccessedTimestamp.Equal(fixedNow))
	assert.Equal(t, []domain.SectionProgress{{SectionID: "s1", Chapters: []domain.ChapterProgress{
		{ChapterID: "c1", Completed: false},
		{ChapterID: "c2", Completed: false},
	}}}, p.Sections)

	_, err = f.progress.Get(context.Background(), "u-1", "course-1")
	assert.NoError(t, err, "seeded record must be persisted")
}

func TestGetOrInitKeepsExistingRecord(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(twoChapterCourse())
	_, err := f.svc.ApplyUpdate(ctx, "u-1", "u-1", "course-1", completed("s1", "c1", true))
	require.NoError(t, err)

	p, err := f.svc.GetOrInit(ctx, "u-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.OverallProgress)
}

func TestGetOrInitUnknownCourse(t *testing.T) {
	f := newProgressFixture()

	_, err := f.svc.GetOrInit(context.Background(), "u-1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.progress.items)
}

func TestGetOrInitLosesCreateRace(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(twoChapterCourse())
	winner := &domain.UserCourseProgress{UserID: "u-1", CourseID: "course-1", OverallProgress: 0.5,
		Sections: completed("s1", "c1", true)}
	racing := &racingProgress{fakeProgress: f.progress, winner: winner}
	f.svc.records = racing

	p, err := f.svc.GetOrInit(ctx, "u-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.OverallProgress)
}

// racingProgress создаёт запись другого писателя между Get и Create.
type racingProgress struct {
	*fakeProgress
	winner *domain.UserCourseProgress
}

func (r *racingProgress) Create(ctx context.Context, p *domain.UserCourseProgress) (bool, error) {
	if _, err := r.fakeProgress.Create(ctx, r.winner); err != nil {
		return false, err
	}
	return r.fakeProgress.Create(ctx, p)
}

func TestApplyUpdateTwoChapterScenario(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(twoChapterCourse())

	p, err := f.svc.GetOrInit(ctx, "u-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.OverallProgress)

	p, err = f.svc.ApplyUpdate(ctx, "u-1", "u-1", "course-1", completed("s1", "c1", true))
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.OverallProgress)

	p, err = f.svc.ApplyUpdate(ctx, "u-1", "u-1", "course-1", completed("s1", "c2", true))
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.OverallProgress)

	stored, err := f.svc.Get(ctx, "u-1", "u-1", "course-1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, stored.OverallProgress)
	assert.True(t, stored.LastAccessedTimestamp.Equal(fixedNow))
}

func TestApplyUpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(twoChapterCourse())
	update := completed("s1", "c2", true)

	once, err := f.svc.ApplyUpdate(ctx, "u-1", "u-1", "course-1", update)
	require.NoError(t, err)
	twice, err := f.svc.ApplyUpdate(ctx, "u-1", "u-1", "course-1", update)
	require.NoError(t, err)

	assert.Equal(t, once.Sections, twice.Sections)
	assert.Equal(t, once.OverallProgress, twice.OverallProgress)
}

func TestApplyUpdateInitializesMissingRecord(t *testing.T) {
	f := newProgressFixture(twoChapterCourse())

	p, err := f.svc.ApplyUpdate(context.Background(), "u-1", "u-1", "course-1", completed("s1", "c1", true))
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.OverallProgress)
	assert.Len(t, p.Sections[0].Chapters, 2)
}

func TestApplyUpdateCountsUnknownChapters(t *testing.T) {
	f := newProgressFixture(twoChapterCourse())

	p, err := f.svc.ApplyUpdate(context.Background(), "u-1", "u-1", "course-1", []domain.SectionProgress{
		{SectionID: "s1", Chapters: []domain.ChapterProgress{{ChapterID: "c1", Completed: true}}},
		{SectionID: "s-new", Chapters: []domain.ChapterProgress{{ChapterID: "c-new", Completed: true}}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, p.OverallProgress, 1e-9)
	assert.Len(t, p.Sections, 2)
}

func TestApplyUpdateRejects(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(twoChapterCourse())

	_, err := f.svc.ApplyUpdate(ctx, "u-2", "u-1", "course-1", completed("s1", "c1", true))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.ApplyUpdate(ctx, "", "u-1", "course-1", completed("s1", "c1", true))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.ApplyUpdate(ctx, "u-1", "u-1", "course-1", completed("", "c1", true))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.ApplyUpdate(ctx, "u-1", "u-1", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.ApplyUpdate(ctx, "u-1", "u-1", "missing", completed("s1", "c1", true))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.progress.items)
}

func TestApplyUpdateRemergesAfterConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(twoChapterCourse())
	_, err := f.svc.GetOrInit(ctx, "u-1", "course-1")
	require.NoError(t, err)

	// Параллельный клиент отмечает c2 между нашим чтением и записью.
	f.progress.beforeUpdate = func(fp *fakeProgress) {
		stored := fp.items[progressKey{"u-1", "course-1"}]
		stored.Sections[0].Chapters[1].Completed = true
		stored.Version++
	}

	p, err := f.svc.ApplyUpdate(ctx, "u-1", "u-1", "course-1", completed("s1", "c1", true))
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.OverallProgress)
	assert.Equal(t, 2, f.progress.updates)
}

func TestApplyUpdateGivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newProgressFixture(twoChapterCourse())
	f.progress.conflicts = maxSaveAttempts

	_, err := f.svc.ApplyUpdate(context.Background(), "u-1", "u-1", "course-1", completed("s1", "c1", true))
	assert.ErrorIs(t, err, domain.ErrProgressConflict)
	assert.Equal(t, maxSaveAttempts, f.progress.updates)
}

func TestApplyUpdateStoreFailure(t *testing.T) {
	f := newProgressFixture(twoChapterCourse())
	f.progress.updateErr = errors.New("disk full")

	_, err := f.svc.ApplyUpdate(context.Background(), "u-1", "u-1", "course-1", completed("s1", "c1", true))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProgressConflict)
	assert.Equal(t, 1, f.progress.updates)
}

func TestEnrolledCourses(t *testing.T) {
	ctx := context.Background()
	other := twoChapterCourse()
	other.CourseID = "course-2"
	f := newProgressFixture(twoChapterCourse(), other)

	none, err := f.svc.EnrolledCourses(ctx, "u-1", "u-1")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	_, err = f.svc.GetOrInit(ctx, "u-1", "course-2")
	require.NoError(t, err)

	courses, err := f.svc.EnrolledCourses(ctx, "u-1", "u-1")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "course-2", courses[0].CourseID)

	_, err = f.svc.EnrolledCourses(ctx, "u-2", "u-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetProgress(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(twoChapterCourse())

	_, err := f.svc.Get(ctx, "u-1", "u-1", "course-1")
	assert.ErrorIs(t, err, domain.ErrProgressNotFound)

	_, err = f.svc.Get(ctx, "u-2", "u-1", "course-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
