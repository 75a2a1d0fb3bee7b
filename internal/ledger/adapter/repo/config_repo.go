package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

type ReportConfigRepo struct {
	db *gorm.DB
}

func NewReportConfigRepo(db *gorm.DB) *ReportConfigRepo {
	return &ReportConfigRepo{db: db}
}

func (r *ReportConfigRepo) Sections(ctx context.Context) ([]domain.CashFlowSection, error) {
	var sections []domain.CashFlowSection
	err := r.db.WithContext(ctx).
		Preload("Items", func(q *gorm.DB) *gorm.DB {
			return q.Order("sort_order")
		}).
		Preload("Items.Prefixes").
		Order("sort_order").
		Find(&sections).Error
	return sections, err
}

func (r *ReportConfigRepo) CashAccounts(ctx context.Context) ([]domain.CashFlowCashAccount, error) {
	var accounts []domain.CashFlowCashAccount
	err := r.db.WithContext(ctx).Order("prefix").Find(&accounts).Error
	return accounts, err
}
