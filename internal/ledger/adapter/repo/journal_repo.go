package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

type JournalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) CreateBatch(ctx context.Context, tx *gorm.DB, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&entries).Error
}

func (r *JournalRepo) DeleteBySource(ctx context.Context, tx *gorm.DB, src domain.SourceRef) error {
	return tx.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", src.Type, src.ID).
		Delete(&domain.JournalEntry{}).Error
}

func (r *JournalRepo) ListByAccount(ctx context.Context, accountID int64, f domain.EntryFilter) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	q := r.applyFilter(r.db.WithContext(ctx).Where("account_id = ?", accountID), f)
	err := q.Order("date").Order("id").Find(&entries).Error
	return entries, err
}

func (r *JournalRepo) ListByAccounts(ctx context.Context, accountIDs []int64, f domain.EntryFilter) ([]domain.JournalEntry, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	var entries []domain.JournalEntry
	q := r.applyFilter(r.db.WithContext(ctx).Where("account_id IN ?", accountIDs), f)
	err := q.Order("date").Order("id").Find(&entries).Error
	return entries, err
}

func (r *JournalRepo) ListBySource(ctx context.Context, src domain.SourceRef) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", src.Type, src.ID).
		Order("id").
		Find(&entries).Error
	return entries, err
}

func (r *JournalRepo) ListByCodePrefix(ctx context.Context, prefixes []string, f domain.EntryFilter) ([]domain.JournalEntry, error) {
	if len(prefixes) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).
		Joins("JOIN chart_of_accounts ON chart_of_accounts.id = journal_entries.account_id")

	prefixQ := r.db.Where("chart_of_accounts.code LIKE ?", prefixes[0]+"%")
	for _, p := range prefixes[1:] {
		prefixQ = prefixQ.Or("chart_of_accounts.code LIKE ?", p+"%")
	}
	q = q.Where(prefixQ)
	q = r.applyFilter(q, f)

	var entries []domain.JournalEntry
	err := q.Order("journal_entries.date").Order("journal_entries.id").Find(&entries).Error
	return entries, err
}

// applyFilter translates an EntryFilter into WHERE clauses. Column names are
// qualified so the method also works on joined queries.
func (r *JournalRepo) applyFilter(q *gorm.DB, f domain.EntryFilter) *gorm.DB {
	if f.BranchID != nil {
		q = q.Where("journal_entries.branch_id = ?", *f.BranchID)
	}
	if len(f.BranchIDs) > 0 {
		q = q.Where("journal_entries.branch_id IN ?", f.BranchIDs)
	}
	if f.JournalType != "" {
		q = q.Where("journal_entries.journal_type = ?", f.JournalType)
	}
	if f.SourceType != "" {
		q = q.Where("journal_entries.source_type = ?", f.SourceType)
	}
	if f.AsOf != nil {
		q = q.Where("journal_entries.date <= ?", *f.AsOf)
	}
	if f.Before != nil {
		q = q.Where("journal_entries.date < ?", *f.Before)
	}
	if f.Start != nil {
		q = q.Where("journal_entries.date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("journal_entries.date <= ?", *f.End)
	}
	return q
}
