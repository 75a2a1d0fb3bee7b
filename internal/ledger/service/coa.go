package service

// Default chart-of-accounts codes used by the posting rules when the source
// document does not carry an explicit account override. The numbering
// follows the standard seeded chart: 1xxx assets, 2xxx liabilities, 4xxx
// revenue, 6xxx operating expenses, 8xxx non-operating.
const (
	CodeCashDefault          = "1111.01" // petty cash
	CodeBankDefault          = "1112.01" // main operating bank
	CodeTradeReceivable      = "1120"
	CodeRawMaterialInventory = "1140.01"
	CodeWorkInProcess        = "1140.02"
	CodeFinishedGoods        = "1140.03"
	CodeSupplierDeposit      = "1150.01"
	CodeInputTax             = "1170.06"
	CodeTemporaryProcurement = "1180.01"
	CodeUnbilledPurchase     = "2100.10"
	CodeAccountsPayable      = "2110"
	CodeOutputTax            = "2140.01"
	CodeSalesRevenue         = "4100"
	CodeFreightIncome        = "4200"
	CodeDefaultExpense       = "6100"
	CodeAdminFee             = "8000.01"
)

// orDefault picks the document's override code when present.
func orDefault(code, fallback string) string {
	if code != "" {
		return code
	}
	return fallback
}
