package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/samudra-erp/backend/internal/ledger/adapter/repo"
	"github.com/samudra-erp/backend/internal/ledger/domain"
	ledger "github.com/samudra-erp/backend/internal/ledger/service"
)

// reportEnv runs the report services on the real repositories over an
// in-memory database, with the posting engine producing the ledger rows.
type reportEnv struct {
	db           *gorm.DB
	accounts     *repo.AccountRepo
	journal      *repo.JournalRepo
	txns         *repo.CashBankTransactionRepo
	config       *repo.ReportConfigRepo
	engine       *ledger.PostingEngine
	rules        *ledger.PostingService
	cashBank     *ledger.CashBankService
	calc         *ledger.BalanceCalculator
	balanceSheet *BalanceSheetService
	income       *IncomeStatementService
	cashFlow     *CashFlowService
}

func newReportEnv(t *testing.T) *reportEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Account{},
		&domain.JournalEntry{},
		&domain.CashBankTransaction{},
		&domain.CashFlowSection{},
		&domain.CashFlowItem{},
		&domain.CashFlowItemPrefix{},
		&domain.CashFlowCashAccount{},
	))

	accounts := repo.NewAccountRepo(db)
	journal := repo.NewJournalRepo(db)
	txns := repo.NewCashBankTransactionRepo(db)
	config := repo.NewReportConfigRepo(db)

	engine := ledger.NewPostingEngine(db, accounts, journal, zap.NewNop())
	rules := ledger.NewPostingService(engine, ledger.NewFieldDimensionResolver())
	cashBank := ledger.NewCashBankService(db, txns, engine, rules)
	calc := ledger.NewBalanceCalculator(accounts, journal)
	income := NewIncomeStatementService(accounts, journal, calc)

	return &reportEnv{
		db:           db,
		accounts:     accounts,
		journal:      journal,
		txns:         txns,
		config:       config,
		engine:       engine,
		rules:        rules,
		cashBank:     cashBank,
		calc:         calc,
		balanceSheet: NewBalanceSheetService(accounts, journal, calc),
		income:       income,
		cashFlow:     NewCashFlowService(calc, income, txns, config, zap.NewNop()),
	}
}

func (e *reportEnv) addAccount(t *testing.T, code, name string, at domain.AccountType, isCurrent bool) *domain.Account {
	t.Helper()
	a := &domain.Account{Code: code, Name: name, Type: at, IsCurrent: isCurrent, IsActive: true}
	require.NoError(t, e.db.Create(a).Error)
	return a
}

// post books one two-sided batch with a synthetic source id.
var postSeq int64

func (e *reportEnv) post(t *testing.T, day time.Time, journalType, debitCode, creditCode string, amount decimal.Decimal) {
	t.Helper()
	e.postBranch(t, day, journalType, debitCode, creditCode, amount, nil)
}

func (e *reportEnv) postBranch(t *testing.T, day time.Time, journalType, debitCode, creditCode string, amount decimal.Decimal, branchID *int64) {
	t.Helper()
	postSeq++
	_, err := e.engine.Post(context.Background(), ledger.PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceInvoice, ID: postSeq},
		Date:        day,
		JournalType: journalType,
		Dims:        domain.Dimensions{BranchID: branchID},
		Lines: []ledger.PostingLine{
			{AccountCode: debitCode, Debit: amount},
			{AccountCode: creditCode, Credit: amount},
		},
	})
	require.NoError(t, err)
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
