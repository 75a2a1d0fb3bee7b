package main

import (
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/samudra-erp/backend/internal/ledger/adapter/repo"
	ledgerapi "github.com/samudra-erp/backend/internal/ledger/api"
	ledgersvc "github.com/samudra-erp/backend/internal/ledger/service"
	"github.com/samudra-erp/backend/internal/platform/database"
	"github.com/samudra-erp/backend/internal/platform/logger"
	"github.com/samudra-erp/backend/internal/platform/server"
	reportsapi "github.com/samudra-erp/backend/internal/reports/api"
	reportssvc "github.com/samudra-erp/backend/internal/reports/service"
)

func main() {
	viper.SetConfigFile("configs/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %s", err)
	}

	appLogger := logger.NewLogger(viper.GetString("server.mode"))

	dsn := viper.GetString("database.dsn")
	maxIdleConns := viper.GetInt("database.max_idle_conns")
	maxOpenConns := viper.GetInt("database.max_open_conns")
	db := database.NewPostgresDB(dsn, maxIdleConns, maxOpenConns)

	// -- Ledger module --
	accountRepo := repo.NewAccountRepo(db)
	journalRepo := repo.NewJournalRepo(db)
	cashBankRepo := repo.NewCashBankTransactionRepo(db)
	configRepo := repo.NewReportConfigRepo(db)

	engine := ledgersvc.NewPostingEngine(db, accountRepo, journalRepo, appLogger)
	resolver := ledgersvc.NewFieldDimensionResolver()
	rules := ledgersvc.NewPostingService(engine, resolver)
	cashBank := ledgersvc.NewCashBankService(db, cashBankRepo, engine, rules)
	calc := ledgersvc.NewBalanceCalculator(accountRepo, journalRepo)
	ledgerHandler := ledgerapi.NewLedgerHandler(rules, cashBank, calc)

	// -- Reports module --
	balanceSheet := reportssvc.NewBalanceSheetService(accountRepo, journalRepo, calc)
	income := reportssvc.NewIncomeStatementService(accountRepo, journalRepo, calc)
	cashFlow := reportssvc.NewCashFlowService(calc, income, cashBankRepo, configRepo, appLogger)
	reportHandler := reportsapi.NewReportHandler(balanceSheet, income, cashFlow)

	srv := server.NewServer(
		appLogger,
		viper.GetString("server.port"),
		viper.GetString("server.mode"),
		ledgerHandler,
		reportHandler,
	)

	if err := srv.Run(); err != nil {
		appLogger.Fatal("Server startup failed", zap.Error(err))
	}
}
