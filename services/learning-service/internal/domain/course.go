package domain

import "time"

type ChapterType string

const (
	ChapterText  ChapterType = "Text"
	ChapterVideo ChapterType = "Video"
	ChapterQuiz  ChapterType = "Quiz"
)

func (t ChapterType) Valid() bool {
	switch t {
	case ChapterText, ChapterVideo, ChapterQuiz:
		return true
	}
	return false
}

type Chapter struct {
	ChapterID string      `json:"chapterId"`
	Type      ChapterType `json:"type"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Video     string      `json:"video,omitempty"` // URL из объектного хранилища
}

type Section struct {
	SectionID          string    `json:"sectionId"`
	SectionTitle       string    `json:"sectionTitle"`
	SectionDescription string    `json:"sectionDescription,omitempty"`
	Chapters           []Chapter `json:"chapters"`
}

type Enrollment struct {
	UserID     string    `json:"userId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

type Course struct {
	CourseID    string       `json:"courseId"`
	TeacherID   string       `json:"teacherId"`
	TeacherName string       `json:"teacherName"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	Image       string       `json:"image,omitempty"`
	Price       int64        `json:"price"`
	Level       string       `json:"level"`
	Status      string       `json:"status"`
	Sections    []Section    `json:"sections"`
	Enrollments []Enrollment `json:"enrollments"`
	Version     int64        `json:"-"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (c *Course) IsEnrolled(userID string) bool {
	for _, e := range c.Enrollments {
		if e.UserID == userID {
			return true
		}
	}
	return false
}

// FindChapter возвращает указатель внутрь c.Sections, изменения видны в курсе.
func (c *Course) FindChapter(sectionID, chapterID string) (*Chapter, error) {
	for i := range c.Sections {
		if c.Sections[i].SectionID != sectionID {
			continue
		}
		for j := range c.Sections[i].Chapters {
			if c.Sections[i].Chapters[j].ChapterID == chapterID {
				return &c.Sections[i].Chapters[j], nil
			}
		}
		return nil, ErrChapterNotFound
	}
	return nil, ErrSectionNotFound
}

// CourseStructure - только идентификаторы разделов и глав, без контента.
type CourseStructure struct {
	CourseID string             `json:"courseId"`
	Sections []SectionStructure `json:"sections"`
}

type SectionStructure struct {
	SectionID string             `json:"sectionId"`
	Chapters  []ChapterStructure `json:"chapters"`
}

type ChapterStructure struct {
	ChapterID string      `json:"chapterId"`
	Type      ChapterType `json:"type"`
}

func (c *Course) Structure() *CourseStructure {
	s := &CourseStructure{CourseID: c.CourseID, Sections: make([]SectionStructure, 0, len(c.Sections))}
	for _, sec := range c.Sections {
		ss := SectionStructure{SectionID: sec.SectionID, Chapters: make([]ChapterStructure, 0, len(sec.Chapters))}
		for _, ch := range sec.Chapters {
			ss.Chapters = append(ss.Chapters, ChapterStructure{ChapterID: ch.ChapterID, Type: ch.Type})
		}
		s.Sections = append(s.Sections, ss)
	}
	return s
}
