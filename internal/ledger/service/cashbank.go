package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

// CashBankService stores cash-book documents and posts their batches in the
// same flow, so the transaction record and the ledger never drift apart.
// Inflows debit the cash account and credit the offset; outflows reverse.
type CashBankService struct {
	db      *gorm.DB
	txns    domain.CashBankTransactionRepository
	posting *PostingService
	engine  *PostingEngine
}

func NewCashBankService(db *gorm.DB, txns domain.CashBankTransactionRepository, engine *PostingEngine, posting *PostingService) *CashBankService {
	return &CashBankService{
		db:      db,
		txns:    txns,
		posting: posting,
		engine:  engine,
	}
}

// PostTransaction persists the document and posts its two-sided batch. The
// document insert runs in its own short transaction first so the posting
// engine has a stable source ID to key the batch on; a posting failure
// leaves no ledger rows (the engine rolls back its own transaction).
func (s *CashBankService) PostTransaction(ctx context.Context, trx *domain.CashBankTransaction, dims domain.Dimensions) (*PostingResult, error) {
	if !trx.Amount.IsPositive() {
		return nil, fmt.Errorf("cash/bank transaction %s has no amount", trx.Number)
	}

	if trx.ID == 0 {
		if err := s.db.Transaction(func(tx *gorm.DB) error {
			return s.txns.Create(ctx, tx, trx)
		}); err != nil {
			return nil, fmt.Errorf("storing cash/bank transaction: %w", err)
		}
	}

	var lines []PostingLine
	desc := trx.Description
	if desc == "" {
		desc = "Cash/bank transaction " + trx.Number
	}
	if trx.Type.IsInflow() {
		lines = []PostingLine{
			{AccountCode: trx.AccountCode, Debit: trx.Amount, Description: desc},
			{AccountCode: trx.OffsetCode, Credit: trx.Amount, Description: desc},
		}
	} else {
		lines = []PostingLine{
			{AccountCode: trx.OffsetCode, Debit: trx.Amount, Description: desc},
			{AccountCode: trx.AccountCode, Credit: trx.Amount, Description: desc},
		}
	}

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceCashBankTransaction, ID: trx.ID},
		Date:        trx.Date,
		Reference:   trx.Number,
		JournalType: domain.JournalCashBank,
		Dims:        dims,
		Lines:       lines,
	})
}
