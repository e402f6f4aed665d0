package domain

import "time"

type ChapterProgress struct {
	ChapterID string `json:"chapterId"`
	Completed bool   `json:"completed"`
}

type SectionProgress struct {
	SectionID string            `json:"sectionId"`
	Chapters  []ChapterProgress `json:"chapters"`
}

type UserCourseProgress struct {
	UserID                string            `json:"userId"`
	CourseID              string            `json:"courseId"`
	EnrollmentDate        time.Time         `json:"enrollmentDate"`
	OverallProgress       float64           `json:"overallProgress"`
	Sections              []SectionProgress `json:"sections"`
	LastAccessedTimestamp time.Time         `json:"lastAccessedTimestamp"`
	Version               int64             `json:"-"`
}
