package grpc_server

import (
	"context"

	"github.com/waste3d/courseplatform-api/pkg/learningpb"
	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/application/usecase"
)

type LearningServer struct {
	learningpb.UnimplementedLearningServiceServer
	courses     *usecase.CourseService
	progress    *usecase.ProgressService
	enrollments *usecase.EnrollmentService
	log         *logger.Logger
}

func NewLearningServer(courses *usecase.CourseService, progress *usecase.ProgressService, enrollments *usecase.EnrollmentService, log *logger.Logger) *LearningServer {
	return &LearningServer{
		courses:     courses,
		progress:    progress,
		enrollments: enrollments,
		log:         log.With("component", "LearningServer"),
	}
}

func (s *LearningServer) GetCourse(ctx context.Context, req *learningpb.GetCourseRequest) (*learningpb.CourseResponse, error) {
	course, err := s.courses.Get(ctx, req.CourseId)
	if err != nil {
		return nil, s.fail("GetCourse", err)
	}
	return &learningpb.CourseResponse{Course: toPbCourse(course)}, nil
}

func (s *LearningServer) ListCourses(ctx context.Context, req *learningpb.ListCoursesRequest) (*learningpb.ListCoursesResponse, error) {
	courses, err := s.courses.List(ctx, req.Category)
	if err != nil {
		return nil, s.fail("ListCourses", err)
	}
	return &learningpb.ListCoursesResponse{Courses: toPbCourses(courses)}, nil
}

func (s *LearningServer) AttachChapterVideo(ctx context.Context, req *learningpb.AttachChapterVideoRequest) (*learningpb.CourseResponse, error) {
	course, err := s.courses.AttachChapterVideo(ctx, req.CallerId, req.CourseId, req.SectionId, req.ChapterId, req.VideoUrl)
	if err != nil {
		return nil, s.fail("AttachChapterVideo", err)
	}
	return &learningpb.CourseResponse{Course: toPbCourse(course)}, nil
}

func (s *LearningServer) GetProgress(ctx context.Context, req *learningpb.GetProgressRequest) (*learningpb.ProgressResponse, error) {
	p, err := s.progress.Get(ctx, req.CallerId, req.UserId, req.CourseId)
	if err != nil {
		return nil, s.fail("GetProgress", err)
	}
	return &learningpb.ProgressResponse{Progress: toPbProgress(p)}, nil
}

func (s *LearningServer) UpdateProgress(ctx context.Context, req *learningpb.UpdateProgressRequest) (*learningpb.ProgressResponse, error) {
	p, err := s.progress.ApplyUpdate(ctx, req.CallerId, req.UserId, req.CourseId, fromPbSections(req.Sections))
	if err != nil {
		return nil, s.fail("UpdateProgress", err)
	}
	return &learningpb.ProgressResponse{Progress: toPbProgress(p)}, nil
}

func (s *LearningServer) GetEnrolledCourses(ctx context.Context, req *learningpb.GetEnrolledCoursesRequest) (*learningpb.ListCoursesResponse, error) {
	courses, err := s.progress.EnrolledCourses(ctx, req.CallerId, req.UserId)
	if err != nil {
		return nil, s.fail("GetEnrolledCourses", err)
	}
	return &learningpb.ListCoursesResponse{Courses: toPbCourses(courses)}, nil
}

func (s *LearningServer) RecordPurchase(ctx context.Context, req *learningpb.RecordPurchaseRequest) (*learningpb.PurchaseResponse, error) {
	res, err := s.enrollments.RecordPurchase(ctx, usecase.PurchaseRequest{
		CallerID:        req.CallerId,
		UserID:          req.UserId,
		CourseID:        req.CourseId,
		TransactionID:   req.TransactionId,
		Amount:          req.Amount,
		PaymentProvider: req.PaymentProvider,
	})
	if err != nil {
		return nil, s.fail("RecordPurchase", err)
	}
	return toPbPurchase(res), nil
}

func (s *LearningServer) ResumeEnrollment(ctx context.Context, req *learningpb.ResumeEnrollmentRequest) (*learningpb.PurchaseResponse, error) {
	res, err := s.enrollments.ResumeEnrollment(ctx, req.CallerId, req.UserId, req.CourseId, req.TransactionId)
	if err != nil {
		return nil, s.fail("ResumeEnrollment", err)
	}
	return toPbPurchase(res), nil
}

func (s *LearningServer) ListTransactions(ctx context.Context, req *learningpb.ListTransactionsRequest) (*learningpb.ListTransactionsResponse, error) {
	txs, err := s.enrollments.ListTransactions(ctx, req.CallerId, req.UserId)
	if err != nil {
		return nil, s.fail("ListTransactions", err)
	}
	out := make([]learningpb.Transaction, 0, len(txs))
	for i := range txs {
		out = append(out, toPbTransaction(&txs[i]))
	}
	return &learningpb.ListTransactionsResponse{Transactions: out}, nil
}

func (s *LearningServer) fail(method string, err error) error {
	st := toStatus(err)
	if reason := learningpb.ReasonOf(st); reason == learningpb.ReasonInternal || reason == learningpb.ReasonTransactionWriteFailed {
		s.log.Error("request failed", "method", method, "error", err)
	}
	return st
}
