package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Фейки хранят документы в JSON, чтобы вызывающий не мог менять сохранённое состояние по указателю.
func clone[T any](v *T) *T {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		panic(err)
	}
	return out
}

type fakeCourses struct {
	mu      sync.Mutex
	items   map[string]*domain.Course
	saveErr error
	// conflicts - сколько ближайших Save вернут конфликт версии
	conflicts int
	saves     int
	gets      int
}

func newFakeCourses(courses ...*domain.Course) *fakeCourses {
	f := &fakeCourses{items: map[string]*domain.Course{}}
	for _, c := range courses {
		stored := clone(c)
		stored.Version = 1
		f.items[c.CourseID] = stored
	}
	return f
}

func (f *fakeCourses) get(id string) *domain.Course {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil
	}
	out := clone(c)
	out.Version = c.Version
	return out
}

func (f *fakeCourses) Create(_ context.Context, c *domain.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := clone(c)
	stored.Version = 1
	f.items[c.CourseID] = stored
	c.Version = 1
	return nil
}

func (f *fakeCourses) GetByID(_ context.Context, id string) (*domain.Course, error) {
	f.mu.Lock()
	f.gets++
	f.mu.Unlock()
	c := f.get(id)
	if c == nil {
		return nil, domain.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourses) GetByIDs(_ context.Context, ids []string) ([]domain.Course, error) {
	out := []domain.Course{}
	for _, id := range ids {
		if c := f.get(id); c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourses) List(_ context.Context, category string) ([]domain.Course, error) {
	f.mu.Lock()
	ids := make([]string, 0, len(f.items))
	for id, c := range f.items {
		if category == "" || category == "all" || c.Category == category {
			ids = append(ids, id)
		}
	}
	f.mu.Unlock()
	sort.Strings(ids)
	return f.GetByIDs(context.Background(), ids)
}

func (f *fakeCourses) Save(_ context.Context, c *domain.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	stored, ok := f.items[c.CourseID]
	if !ok {
		return domain.ErrCourseNotFound
	}
	if f.conflicts > 0 {
		f.conflicts--
		stored.Version++
		return domain.ErrVersionConflict
	}
	if stored.Version != c.Version {
		return domain.ErrVersionConflict
	}
	next := clone(c)
	next.Version = c.Version + 1
	f.items[c.CourseID] = next
	c.Version++
	return nil
}

type progressKey struct{ userID, courseID string }

type fakeProgress struct {
	mu        sync.Mutex
	items     map[progressKey]*domain.UserCourseProgress
	createErr error
	updateErr error
	conflicts int
	updates   int
	// beforeUpdate вызывается перед проверкой версии, имитирует параллельного писателя
	beforeUpdate func(f *fakeProgress)
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{items: map[progressKey]*domain.UserCourseProgress{}}
}

func (f *fakeProgress) Get(_ context.Context, userID, courseID string) (*domain.UserCourseProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[progressKey{userID, courseID}]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	out := clone(p)
	out.Version = p.Version
	return out, nil
}

func (f *fakeProgress) ListByUser(_ context.Context, userID string) ([]domain.UserCourseProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.UserCourseProgress
	for k, p := range f.items {
		if k.userID == userID {
			out = append(out, *clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

func (f *fakeProgress) Create(_ context.Context, p *domain.UserCourseProgress) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return false, f.createErr
	}
	key := progressKey{p.UserID, p.CourseID}
	if _, ok := f.items[key]; ok {
		return false, nil
	}
	stored := clone(p)
	stored.Version = 1
	f.items[key] = stored
	p.Version = 1
	return true, nil
}

func (f *fakeProgress) Update(_ context.Context, p *domain.UserCourseProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.beforeUpdate != nil {
		hook := f.beforeUpdate
		f.beforeUpdate = nil
		hook(f)
	}
	key := progressKey{p.UserID, p.CourseID}
	stored, ok := f.items[key]
	if !ok || stored.Version != p.Version {
		return domain.ErrVersionConflict
	}
	if f.conflicts > 0 {
		f.conflicts--
		return domain.ErrVersionConflict
	}
	next := clone(p)
	next.Version = p.Version + 1
	f.items[key] = next
	p.Version++
	return nil
}

type txKey struct{ userID, transactionID string }

type fakeTransactions struct {
	mu        sync.Mutex
	items     map[txKey]*domain.Transaction
	order     []txKey
	createErr error
	getErr    error
	creates   int
}

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{items: map[txKey]*domain.Transaction{}}
}

func (f *fakeTransactions) Create(_ context.Context, tx *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	key := txKey{tx.UserID, tx.TransactionID}
	if _, ok := f.items[key]; ok {
		return domain.ErrTransactionExists
	}
	f.items[key] = clone(tx)
	f.order = append(f.order, key)
	return nil
}

func (f *fakeTransactions) Get(_ context.Context, userID, transactionID string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	tx, ok := f.items[txKey{userID, transactionID}]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return clone(tx), nil
}

func (f *fakeTransactions) List(_ context.Context, userID string) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Transaction{}
	for i := len(f.order) - 1; i >= 0; i-- {
		key := f.order[i]
		if userID == "" || key.userID == userID {
			out = append(out, *clone(f.items[key]))
		}
	}
	return out, nil
}

type fakeCache struct {
	mu      sync.Mutex
	items   map[string]*domain.CourseStructure
	getErr  error
	setErr  error
	hits    int
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string]*domain.CourseStructure{}}
}

func (f *fakeCache) Get(_ context.Context, courseID string) (*domain.CourseStructure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.items[courseID]
	if !ok {
		return nil, nil
	}
	f.hits++
	return clone(s), nil
}

func (f *fakeCache) Set(_ context.Context, s *domain.CourseStructure) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.items[s.CourseID] = clone(s)
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, courseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, courseID)
	f.deleted = append(f.deleted, courseID)
	return nil
}

func twoChapterCourse() *domain.Course {
	return &domain.Course{
		CourseID:  "course-1",
		TeacherID: "teacher-1",
		Title:     "Go basics",
		Category:  "backend",
		Price:     4999,
		Sections: []domain.Section{{SectionID: "s1", SectionTitle: "Start", Chapters: []domain.Chapter{
			{ChapterID: "c1", Type: domain.ChapterText, Title: "Intro"},
			{ChapterID: "c2", Type: domain.ChapterVideo, Title: "Setup"},
		}}},
		Enrollments: []domain.Enrollment{},
	}
}
