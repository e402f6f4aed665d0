package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/waste3d/courseplatform-api/pkg/logger"
	"github.com/waste3d/courseplatform-api/services/learning-service/internal/domain"
)

type TransactionRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepository(db *gorm.DB, log *logger.Logger) *TransactionRepository {
	return &TransactionRepository{db: db, log: log.With("repo", "TransactionRepository")}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	m := &transactionModel{
		UserID:          tx.UserID,
		TransactionID:   tx.TransactionID,
		CourseID:        tx.CourseID,
		Amount:          tx.Amount,
		PaymentProvider: tx.PaymentProvider,
		DateTime:        tx.DateTime,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate transaction", "user_id", tx.UserID, "transaction_id", tx.TransactionID)
			return domain.ErrTransactionExists
		}
		r.log.Error("failed to write transaction", "user_id", tx.UserID, "transaction_id", tx.TransactionID, "error", err)
		return err
	}
	return nil
}

func (r *TransactionRepository) Get(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	var m transactionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND transaction_id = ?", userID, transactionID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	tx := transactionFromModel(&m)
	return &tx, nil
}

// List возвращает транзакции пользователя, пустой userID - все транзакции.
func (r *TransactionRepository) List(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&transactionModel{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	var models []transactionModel
	if err := query.Order("date_time desc").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(models))
	for i := range models {
		out = append(out, transactionFromModel(&models[i]))
	}
	return out, nil
}
