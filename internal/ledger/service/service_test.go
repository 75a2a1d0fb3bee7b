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
)

// testEnv wires the real repositories against an in-memory database so the
// services run exactly the code paths production uses.
type testEnv struct {
	db       *gorm.DB
	accounts *repo.AccountRepo
	journal  *repo.JournalRepo
	txns     *repo.CashBankTransactionRepo
	engine   *PostingEngine
	rules    *PostingService
	cashBank *CashBankService
	calc     *BalanceCalculator
}

func newTestEnv(t *testing.T) *testEnv {
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
	engine := NewPostingEngine(db, accounts, journal, zap.NewNop())
	rules := NewPostingService(engine, NewFieldDimensionResolver())

	return &testEnv{
		db:       db,
		accounts: accounts,
		journal:  journal,
		txns:     txns,
		engine:   engine,
		rules:    rules,
		cashBank: NewCashBankService(db, txns, engine, rules),
		calc:     NewBalanceCalculator(accounts, journal),
	}
}

// seedChart inserts the accounts the posting rules address by default.
func (e *testEnv) seedChart(t *testing.T) {
	t.Helper()
	seed := []domain.Account{
		{Code: CodeCashDefault, Name: "Petty Cash", Type: domain.Asset, IsCurrent: true},
		{Code: CodeBankDefault, Name: "Operating Bank", Type: domain.Asset, IsCurrent: true},
		{Code: CodeTradeReceivable, Name: "Trade Receivable", Type: domain.Asset, IsCurrent: true},
		{Code: CodeRawMaterialInventory, Name: "Raw Material Inventory", Type: domain.Asset, IsCurrent: true},
		{Code: CodeWorkInProcess, Name: "Work In Process", Type: domain.Asset, IsCurrent: true},
		{Code: CodeFinishedGoods, Name: "Finished Goods", Type: domain.Asset, IsCurrent: true},
		{Code: CodeSupplierDeposit, Name: "Supplier Deposit", Type: domain.Asset, IsCurrent: true},
		{Code: CodeInputTax, Name: "Input Tax", Type: domain.Asset, IsCurrent: true},
		{Code: CodeTemporaryProcurement, Name: "Temporary Procurement", Type: domain.Asset, IsCurrent: true},
		{Code: CodeUnbilledPurchase, Name: "Unbilled Purchase", Type: domain.Liability, IsCurrent: true},
		{Code: CodeAccountsPayable, Name: "Accounts Payable", Type: domain.Liability, IsCurrent: true},
		{Code: CodeOutputTax, Name: "Output Tax", Type: domain.Liability, IsCurrent: true},
		{Code: CodeSalesRevenue, Name: "Sales Revenue", Type: domain.Revenue},
		{Code: CodeFreightIncome, Name: "Freight Income", Type: domain.Revenue},
		{Code: CodeDefaultExpense, Name: "General Expense", Type: domain.Expense},
		{Code: CodeAdminFee, Name: "Bank Admin Fee", Type: domain.Expense},
	}
	for i := range seed {
		seed[i].IsActive = true
		require.NoError(t, e.db.Create(&seed[i]).Error)
	}
}

func (e *testEnv) addAccount(t *testing.T, code, name string, at domain.AccountType, opening decimal.Decimal) *domain.Account {
	t.Helper()
	a := &domain.Account{Code: code, Name: name, Type: at, IsActive: true, OpeningBalance: opening}
	require.NoError(t, e.db.Create(a).Error)
	return a
}

func (e *testEnv) entriesFor(t *testing.T, src domain.SourceRef) []domain.JournalEntry {
	t.Helper()
	entries, err := e.journal.ListBySource(context.Background(), src)
	require.NoError(t, err)
	return entries
}

// requireBalanced asserts the batch's debits equal its credits.
func requireBalanced(t *testing.T, entries []domain.JournalEntry) {
	t.Helper()
	var debit, credit decimal.Decimal
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	require.True(t, debit.Equal(credit), "batch unbalanced: debit=%s credit=%s", debit, credit)
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
