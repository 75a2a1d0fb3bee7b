package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) FindByCode(ctx context.Context, code string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", domain.ErrAccountNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) FindByType(ctx context.Context, t domain.AccountType) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.db.WithContext(ctx).
		Where("type = ? AND is_active = ?", t, true).
		Order("code").
		Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepo) FindByCodePrefix(ctx context.Context, prefix string) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.db.WithContext(ctx).
		Where("code LIKE ? AND is_active = ?", prefix+"%", true).
		Order("code").
		Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepo) Children(ctx context.Context, id int64) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", id).
		Order("code").
		Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepo) Ancestors(ctx context.Context, id int64) ([]domain.Account, error) {
	var chain []domain.Account
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for current.ParentID != nil {
		parent, err := r.FindByID(ctx, *current.ParentID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *parent)
		current = parent
	}
	return chain, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}
