package grpc_server

import (
	"github.com/waste3d/courseplatform-api/pkg/learningpb"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/application/usecase"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

func toPbCourse(c *domain.Course) learningpb.Course {
	sections := make([]learningpb.Section, 0, len(c.Sections))
	for _, s := range c.Sections {
		chapters := make([]learningpb.Chapter, 0, len(s.Chapters))
		for _, ch := range s.Chapters {
			chapters = append(chapters, learningpb.Chapter{
				ChapterId: ch.ChapterID,
				Type:      string(ch.Type),
				Title:     ch.Title,
				Content:   ch.Content,
				Video:     ch.Video,
			})
		}
		sections = append(sections, learningpb.Section{
			SectionId:          s.SectionID,
			SectionTitle:       s.SectionTitle,
			SectionDescription: s.SectionDescription,
			Chapters:           chapters,
		})
	}
	enrollments := make([]learningpb.Enrollment, 0, len(c.Enrollments))
	for _, e := range c.Enrollments {
		enrollments = append(enrollments, learningpb.Enrollment{UserId: e.UserID, EnrolledAt: e.EnrolledAt})
	}
	return learningpb.Course{
		CourseId:    c.CourseID,
		TeacherId:   c.TeacherID,
		TeacherName: c.TeacherName,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Image:       c.Image,
		Price:       c.Price,
		Level:       c.Level,
		Status:      c.Status,
		Sections:    sections,
		Enrollments: enrollments,
	}
}

func toPbCourses(courses []domain.Course) []learningpb.Course {
	out := make([]learningpb.Course, 0, len(courses))
	for i := range courses {
		out = append(out, toPbCourse(&courses[i]))
	}
	return out
}

func toPbProgress(p *domain.UserCourseProgress) learningpb.UserCourseProgress {
	sections := make([]learningpb.SectionProgress, 0, len(p.Sections))
	for _, s := range p.Sections {
		chapters := make([]learningpb.ChapterProgress, 0, len(s.Chapters))
		for _, c := range s.Chapters {
			chapters = append(chapters, learningpb.ChapterProgress{ChapterId: c.ChapterID, Completed: c.Completed})
		}
		sections = append(sections, learningpb.SectionProgress{SectionId: s.SectionID, Chapters: chapters})
	}
	return learningpb.UserCourseProgress{
		UserId:                p.UserID,
		CourseId:              p.CourseID,
		EnrollmentDate:        p.EnrollmentDate,
		OverallProgress:       p.OverallProgress,
		Sections:              sections,
		LastAccessedTimestamp: p.LastAccessedTimestamp,
	}
}

// fromPbSections берёт только идентификаторы и флаги, overallProgress клиента игнорируется.
func fromPbSections(in []learningpb.SectionProgress) []domain.SectionProgress {
	out := make([]domain.SectionProgress, 0, len(in))
	for _, s := range in {
		chapters := make([]domain.ChapterProgress, 0, len(s.Chapters))
		for _, c := range s.Chapters {
			chapters = append(chapters, domain.ChapterProgress{ChapterID: c.ChapterId, Completed: c.Completed})
		}
		out = append(out, domain.SectionProgress{SectionID: s.SectionId, Chapters: chapters})
	}
	return out
}

func toPbTransaction(tx *domain.Transaction) learningpb.Transaction {
	return learningpb.Transaction{
		UserId:          tx.UserID,
		TransactionId:   tx.TransactionID,
		DateTime:        tx.DateTime,
		CourseId:        tx.CourseID,
		Amount:          tx.Amount,
		PaymentProvider: tx.PaymentProvider,
	}
}

func toPbPurchase(res *usecase.PurchaseResult) *learningpb.PurchaseResponse {
	out := &learningpb.PurchaseResponse{Transaction: toPbTransaction(res.Transaction)}
	if res.Progress != nil {
		p := toPbProgress(res.Progress)
		out.Progress = &p
	}
	if res.Partial != nil {
		steps := make([]string, 0, len(res.Partial.Failures))
		for _, s := range res.Partial.Steps() {
			steps = append(steps, string(s))
		}
		out.Warning = &learningpb.Warning{
			Code:    learningpb.WarningPartialEnrollment,
			Steps:   steps,
			Message: "payment recorded, enrollment incomplete; retry with ResumeEnrollment",
		}
	}
	return out
}
