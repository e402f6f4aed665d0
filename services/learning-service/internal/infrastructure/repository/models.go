package repository

import (
	"time"

	"gorm.io/datatypes"

	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

// Курс и прогресс хранятся документами: вложенные разделы лежат в JSON колонках.
type courseModel struct {
	ID          string `gorm:"primaryKey"`
	TeacherID   string `gorm:"index"`
	TeacherName string
	Title       string
	Description string
	Category    string `gorm:"index"`
	Image       string
	Price       int64
	Level       string
	Status      string
	Sections    datatypes.JSONSlice[domain.Section]
	Enrollments datatypes.JSONSlice[domain.Enrollment]
	Version     int64 `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (courseModel) TableName() string { return "courses" }

type progressModel struct {
	UserID                string `gorm:"primaryKey"`
	CourseID              string `gorm:"primaryKey;index"`
	EnrollmentDate        time.Time
	OverallProgress       float64
	Sections              datatypes.JSONSlice[domain.SectionProgress]
	LastAccessedTimestamp time.Time
	Version               int64 `gorm:"not null;default:1"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (progressModel) TableName() string { return "user_course_progress" }

type transactionModel struct {
	UserID          string `gorm:"primaryKey"`
	TransactionID   string `gorm:"primaryKey"`
	CourseID        string `gorm:"index"`
	Amount          int64
	PaymentProvider string
	DateTime        time.Time `gorm:"index"`
	CreatedAt       time.Time
}

func (transactionModel) TableName() string { return "transactions" }

// Models возвращает модели для AutoMigrate.
func Models() []interface{} {
	return []interface{}{&courseModel{}, &progressModel{}, &transactionModel{}}
}

func courseFromModel(m *courseModel) *domain.Course {
	return &domain.Course{
		CourseID:    m.ID,
		TeacherID:   m.TeacherID,
		TeacherName: m.TeacherName,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Image:       m.Image,
		Price:       m.Price,
		Level:       m.Level,
		Status:      m.Status,
		Sections:    []domain.Section(m.Sections),
		Enrollments: []domain.Enrollment(m.Enrollments),
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func courseToModel(c *domain.Course) *courseModel {
	return &courseModel{
		ID:          c.CourseID,
		TeacherID:   c.TeacherID,
		TeacherName: c.TeacherName,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Image:       c.Image,
		Price:       c.Price,
		Level:       c.Level,
		Status:      c.Status,
		Sections:    datatypes.NewJSONSlice(nonNil(c.Sections)),
		Enrollments: datatypes.NewJSONSlice(nonNil(c.Enrollments)),
		Version:     c.Version,
	}
}

func progressFromModel(m *progressModel) *domain.UserCourseProgress {
	return &domain.UserCourseProgress{
		UserID:                m.UserID,
		CourseID:              m.CourseID,
		EnrollmentDate:        m.EnrollmentDate,
		OverallProgress:       m.OverallProgress,
		Sections:              []domain.SectionProgress(m.Sections),
		LastAccessedTimestamp: m.LastAccessedTimestamp,
		Version:               m.Version,
	}
}

func progressToModel(p *domain.UserCourseProgress) *progressModel {
	return &progressModel{
		UserID:                p.UserID,
		CourseID:              p.CourseID,
		EnrollmentDate:        p.EnrollmentDate,
		OverallProgress:       p.OverallProgress,
		Sections:              datatypes.NewJSONSlice(nonNil(p.Sections)),
		LastAccessedTimestamp: p.LastAccessedTimestamp,
		Version:               p.Version,
	}
}

func transactionFromModel(m *transactionModel) domain.Transaction {
	return domain.Transaction{
		UserID:          m.UserID,
		TransactionID:   m.TransactionID,
		DateTime:        m.DateTime,
		CourseID:        m.CourseID,
		Amount:          m.Amount,
		PaymentProvider: m.PaymentProvider,
	}
}

// null в JSON колонке превращается в nil при чтении, пишем [] вместо него.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
