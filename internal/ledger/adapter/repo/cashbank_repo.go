package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

type CashBankTransactionRepo struct {
	db *gorm.DB
}

func NewCashBankTransactionRepo(db *gorm.DB) *CashBankTransactionRepo {
	return &CashBankTransactionRepo{db: db}
}

func (r *CashBankTransactionRepo) Create(ctx context.Context, tx *gorm.DB, t *domain.CashBankTransaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *CashBankTransactionRepo) ListByOffsetPrefix(ctx context.Context, prefixes []string, types []domain.TransactionType, start, end time.Time, branches []int64) ([]domain.CashBankTransaction, error) {
	if len(prefixes) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Where("type IN ?", types).
		Where(r.prefixClause("offset_code", prefixes))
	if len(branches) > 0 {
		q = q.Where("branch_id IN ?", branches)
	}

	var txns []domain.CashBankTransaction
	err := q.Order("date").Order("id").Find(&txns).Error
	return txns, err
}

func (r *CashBankTransactionRepo) prefixClause(column string, prefixes []string) *gorm.DB {
	q := r.db.Where(column+" LIKE ?", prefixes[0]+"%")
	for _, p := range prefixes[1:] {
		q = q.Or(column+" LIKE ?", p+"%")
	}
	return q
}
