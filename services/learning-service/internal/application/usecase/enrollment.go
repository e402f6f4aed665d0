package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

type PurchaseRequest struct {
	CallerID        string
	UserID          string
	CourseID        string
	TransactionID   string
	Amount          int64
	PaymentProvider string
}

func (r PurchaseRequest) validate() error {
	if err := required("userId", r.UserID, "courseId", r.CourseID, "transactionId", r.TransactionID, "paymentProvider", r.PaymentProvider); err != nil {
		return err
	}
	if r.Amount < 0 {
		return domain.InvalidInput("amount must not be negative")
	}
	if r.Amount > domain.MaxAmount {
		return domain.InvalidInput("amount must not exceed %d", domain.MaxAmount)
	}
	if !domain.PaymentProviders[r.PaymentProvider] {
		return domain.InvalidInput("unsupported payment provider %q", r.PaymentProvider)
	}
	return nil
}

// PurchaseResult: при Partial != nil оплата записана, но зачисление выполнено не полностью.
type PurchaseResult struct {
	Transaction *domain.Transaction
	Progress    *domain.UserCourseProgress
	Partial     *domain.PartialEnrollmentError
}

type EnrollmentService struct {
	courses      CourseRepository
	transactions TransactionRepository
	progress     ProgressInitializer
	log          *logger.Logger
	now          func() time.Time
}

func NewEnrollmentService(courses CourseRepository, transactions TransactionRepository, progress ProgressInitializer, log *logger.Logger) *EnrollmentService {
	return &EnrollmentService{
		courses:      courses,
		transactions: transactions,
		progress:     progress,
		log:          log.With("usecase", "EnrollmentService"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RecordPurchase: курс -> транзакция -> прогресс -> запись о зачислении.
// Ошибка после записи транзакции не откатывает её, а попадает в PurchaseResult.Partial.
func (s *EnrollmentService) RecordPurchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if err := authorize(req.CallerID, req.UserID); err != nil {
		return nil, err
	}

	// 1. Курс должен существовать до любой записи
	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	// 2. Транзакция
	tx, err := s.recordTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3-4. Прогресс и зачисление
	result := &PurchaseResult{Transaction: tx}
	s.completeEnrollment(ctx, result, course)
	return result, nil
}

// ResumeEnrollment повторяет шаги после оплаты. Доказательство оплаты - сохранённая транзакция.
func (s *EnrollmentService) ResumeEnrollment(ctx context.Context, callerID, userID, courseID, transactionID string) (*PurchaseResult, error) {
	if err := required("userId", userID, "courseId", courseID, "transactionId", transactionID); err != nil {
		return nil, err
	}
	if err := authorize(callerID, userID); err != nil {
		return nil, err
	}

	tx, err := s.transactions.Get(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.CourseID != courseID {
		return nil, domain.InvalidInput("transaction %s was recorded for another course", transactionID)
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	result := &PurchaseResult{Transaction: tx}
	s.completeEnrollment(ctx, result, course)
	return result, nil
}

// ListTransactions: пустой userID означает транзакции самого вызывающего.
func (s *EnrollmentService) ListTransactions(ctx context.Context, callerID, userID string) ([]domain.Transaction, error) {
	if userID == "" {
		userID = callerID
	}
	if err := authorize(callerID, userID); err != nil {
		return nil, err
	}
	return s.transactions.List(ctx, userID)
}

func (s *EnrollmentService) recordTransaction(ctx context.Context, req PurchaseRequest) (*domain.Transaction, error) {
	existing, err := s.transactions.Get(ctx, req.UserID, req.TransactionID)
	switch {
	case err == nil:
		return s.replay(existing, req)
	case !errors.Is(err, domain.ErrTransactionNotFound):
		s.log.Error("transaction lookup failed", "user_id", req.UserID, "transaction_id", req.TransactionID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionWriteFailed, err)
	}

	tx := &domain.Transaction{
		UserID:          req.UserID,
		TransactionID:   req.TransactionID,
		DateTime:        s.now(),
		CourseID:        req.CourseID,
		Amount:          req.Amount,
		PaymentProvider: req.PaymentProvider,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		if errors.Is(err, domain.ErrTransactionExists) {
			if existing, getErr := s.transactions.Get(ctx, req.UserID, req.TransactionID); getErr == nil {
				return s.replay(existing, req)
			}
		}
		s.log.Error("transaction write failed", "user_id", req.UserID, "course_id", req.CourseID, "transaction_id", req.TransactionID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionWriteFailed, err)
	}
	s.log.Info("transaction recorded", "user_id", tx.UserID, "course_id", tx.CourseID, "transaction_id", tx.TransactionID, "amount", tx.Amount)
	return tx, nil
}

// Повтор той же оплаты переиспользует сохранённую транзакцию.
func (s *EnrollmentService) replay(existing *domain.Transaction, req PurchaseRequest) (*domain.Transaction, error) {
	if existing.CourseID != req.CourseID {
		return nil, domain.InvalidInput("transaction %s was recorded for another course", req.TransactionID)
	}
	s.log.Info("transaction already recorded, reusing", "user_id", req.UserID, "transaction_id", req.TransactionID)
	return existing, nil
}

func (s *EnrollmentService) completeEnrollment(ctx context.Context, result *PurchaseResult, course *domain.Course) {
	userID := result.Transaction.UserID
	var failures []domain.StepFailure

	p, err := s.progress.GetOrInit(ctx, userID, course.CourseID)
	if err != nil {
		failures = append(failures, domain.StepFailure{Step: domain.StepProgressSeed, Err: err})
	} else {
		result.Progress = p
	}

	if err := s.appendEnrollment(ctx, course, userID); err != nil {
		failures = append(failures, domain.StepFailure{Step: domain.StepEnrollmentAppend, Err: err})
	}

	if len(failures) == 0 {
		return
	}
	result.Partial = &domain.PartialEnrollmentError{
		UserID:        userID,
		CourseID:      course.CourseID,
		TransactionID: result.Transaction.TransactionID,
		Failures:      failures,
	}
	s.log.Warn("partial enrollment",
		"user_id", userID,
		"course_id", course.CourseID,
		"transaction_id", result.Transaction.TransactionID,
		"steps", result.Partial.Steps(),
		"error", result.Partial,
	)
}

// appendEnrollment добавляет пользователя в список зачисленных, если его там нет.
func (s *EnrollmentService) appendEnrollment(ctx context.Context, course *domain.Course, userID string) error {
	for attempt := 1; ; attempt++ {
		if course.IsEnrolled(userID) {
			return nil
		}
		course.Enrollments = append(course.Enrollments, domain.Enrollment{UserID: userID, EnrolledAt: s.now()})

		err := s.courses.Save(ctx, course)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) || attempt == maxSaveAttempts {
			return err
		}

		fresh, err := s.courses.GetByID(ctx, course.CourseID)
		if err != nil {
			return err
		}
		course = fresh
	}
}
