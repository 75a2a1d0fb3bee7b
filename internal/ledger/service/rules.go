package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

// PostingService maps business documents onto balanced batches and hands
// them to the engine. Each rule is a pure function of its document's fields;
// the only external inputs are account resolution and the dimension
// resolver.
type PostingService struct {
	engine   *PostingEngine
	resolver domain.DimensionResolver
}

func NewPostingService(engine *PostingEngine, resolver domain.DimensionResolver) *PostingService {
	return &PostingService{engine: engine, resolver: resolver}
}

// PostGoodsReceipt books arrived goods still pending quality control:
// Dr temporary procurement, Cr unbilled purchase.
func (s *PostingService) PostGoodsReceipt(ctx context.Context, item domain.PurchaseReceiptItem) (*PostingResult, error) {
	amount := item.QtyReceived.Mul(item.UnitPrice)
	desc := "Goods received pending QC - " + item.Number

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourcePurchaseReceiptItem, ID: item.ID},
		Date:        item.Date,
		Reference:   item.Number,
		JournalType: domain.JournalProcurement,
		Dims:        s.resolver.Resolve(item),
		Lines: []PostingLine{
			{AccountCode: CodeTemporaryProcurement, Debit: amount, Description: desc},
			{AccountCode: CodeUnbilledPurchase, Credit: amount, Description: desc},
		},
	})
}

// PostQualityControl books a QC pass: the passed quantity's value moves from
// the temporary procurement position into inventory.
func (s *PostingService) PostQualityControl(ctx context.Context, qc domain.QualityControl) (*PostingResult, error) {
	amount := qc.PassedQty.Mul(qc.UnitPrice)
	inventory := orDefault(qc.InventoryCode, CodeRawMaterialInventory)

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceQualityControl, ID: qc.ID},
		Date:        qc.Date,
		Reference:   qc.Number,
		JournalType: domain.JournalInventory,
		Dims:        s.resolver.Resolve(qc),
		Lines: []PostingLine{
			{AccountCode: inventory, Debit: amount, Description: "QC passed stock in - " + qc.Number},
			{AccountCode: CodeTemporaryProcurement, Credit: amount, Description: "QC passed stock in - " + qc.Number},
		},
	})
}

// PostInvoice dispatches on the invoice kind.
func (s *PostingService) PostInvoice(ctx context.Context, inv domain.Invoice) (*PostingResult, error) {
	switch inv.Kind {
	case domain.PurchaseInvoice:
		return s.postPurchaseInvoice(ctx, inv)
	case domain.SalesInvoice:
		return s.postSalesInvoice(ctx, inv)
	default:
		return nil, fmt.Errorf("unknown invoice kind %q", inv.Kind)
	}
}

// postPurchaseInvoice: Dr unbilled purchase (subtotal) + Dr input tax,
// Cr accounts payable for the full total. Fees beyond subtotal+tax are
// debited to the default expense account so the batch stays balanced with
// the invoice total.
func (s *PostingService) postPurchaseInvoice(ctx context.Context, inv domain.Invoice) (*PostingResult, error) {
	unbilled := orDefault(inv.InventoryCode, CodeUnbilledPurchase)
	inputTax := orDefault(inv.TaxCode, CodeInputTax)
	payable := orDefault(inv.PayableCode, CodeAccountsPayable)
	otherFees := inv.Total.Sub(inv.Subtotal).Sub(inv.Tax)

	lines := []PostingLine{
		{AccountCode: unbilled, Debit: inv.Subtotal, Description: "Purchase invoice " + inv.Number},
	}
	if inv.Tax.IsPositive() {
		lines = append(lines, PostingLine{AccountCode: inputTax, Debit: inv.Tax, Description: "Input tax " + inv.Number})
	}
	if otherFees.IsPositive() {
		lines = append(lines, PostingLine{AccountCode: CodeDefaultExpense, Debit: otherFees, Description: "Other fees " + inv.Number})
	}
	lines = append(lines, PostingLine{AccountCode: payable, Credit: inv.Total, Description: "Accounts payable " + inv.Number})

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceInvoice, ID: inv.ID},
		Date:        inv.Date,
		Reference:   inv.Number,
		JournalType: domain.JournalPurchase,
		Dims:        s.resolver.Resolve(inv),
		Lines:       lines,
	})
}

// postSalesInvoice: Dr accounts receivable for the total, Cr revenue +
// output tax + freight income.
func (s *PostingService) postSalesInvoice(ctx context.Context, inv domain.Invoice) (*PostingResult, error) {
	receivable := orDefault(inv.ReceivableCode, CodeTradeReceivable)
	revenue := orDefault(inv.RevenueCode, CodeSalesRevenue)
	outputTax := orDefault(inv.TaxCode, CodeOutputTax)
	otherFees := inv.Total.Sub(inv.Subtotal).Sub(inv.Tax)

	lines := []PostingLine{
		{AccountCode: receivable, Debit: inv.Total, Description: "Sales invoice " + inv.Number},
		{AccountCode: revenue, Credit: inv.Subtotal, Description: "Sales revenue " + inv.Number},
	}
	if inv.Tax.IsPositive() {
		lines = append(lines, PostingLine{AccountCode: outputTax, Credit: inv.Tax, Description: "Output tax " + inv.Number})
	}
	if otherFees.IsPositive() {
		lines = append(lines, PostingLine{AccountCode: CodeFreightIncome, Credit: otherFees, Description: "Freight and other income " + inv.Number})
	}

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceInvoice, ID: inv.ID},
		Date:        inv.Date,
		Reference:   inv.Number,
		JournalType: domain.JournalSales,
		Dims:        s.resolver.Resolve(inv),
		Lines:       lines,
	})
}

// PostVendorPayment: Dr accounts payable, Cr bank and/or supplier deposit.
func (s *PostingService) PostVendorPayment(ctx context.Context, p domain.VendorPayment) (*PostingResult, error) {
	bank := orDefault(p.BankCode, CodeBankDefault)
	deposit := orDefault(p.DepositCode, CodeSupplierDeposit)

	depositAmount := decimal.Min(p.Amount, p.DepositAmount)
	bankAmount := p.Amount.Sub(depositAmount)

	lines := []PostingLine{
		{AccountCode: CodeAccountsPayable, Debit: p.Amount, Description: "Vendor payment " + p.Number},
	}
	if depositAmount.IsPositive() {
		lines = append(lines, PostingLine{AccountCode: deposit, Credit: depositAmount, Description: "Deposit applied " + p.Number})
	}
	if bankAmount.IsPositive() {
		lines = append(lines, PostingLine{AccountCode: bank, Credit: bankAmount, Description: "Cash/bank out " + p.Number})
	}

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceVendorPayment, ID: p.ID},
		Date:        p.Date,
		Reference:   p.Number,
		JournalType: domain.JournalPayment,
		Dims:        s.resolver.Resolve(p),
		Lines:       lines,
	})
}

// PostCustomerReceipt: Dr cash/bank, Cr accounts receivable.
func (s *PostingService) PostCustomerReceipt(ctx context.Context, r domain.CustomerReceipt) (*PostingResult, error) {
	bank := orDefault(r.BankCode, CodeBankDefault)
	receivable := orDefault(r.ReceivableCode, CodeTradeReceivable)

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceCustomerReceipt, ID: r.ID},
		Date:        r.Date,
		Reference:   r.Number,
		JournalType: domain.JournalReceipt,
		Dims:        s.resolver.Resolve(r),
		Lines: []PostingLine{
			{AccountCode: bank, Debit: r.Amount, Description: "Customer receipt " + r.Number},
			{AccountCode: receivable, Credit: r.Amount, Description: "Receivable settled " + r.Number},
		},
	})
}

// PostMaterialIssue books raw material movements against work in process.
// Issues debit WIP once for the total and credit each item's inventory
// account; returns reverse the legs.
func (s *PostingService) PostMaterialIssue(ctx context.Context, mi domain.MaterialIssue) (*PostingResult, error) {
	var total decimal.Decimal
	for _, item := range mi.Items {
		total = total.Add(item.Cost)
	}

	journalType := domain.JournalMaterialIssue
	if mi.Kind == domain.ReturnFromProduction {
		journalType = domain.JournalMaterialReturn
	}

	lines := make([]PostingLine, 0, len(mi.Items)+1)
	if mi.Kind == domain.IssueToProduction {
		lines = append(lines, PostingLine{
			AccountCode: CodeWorkInProcess,
			Debit:       total,
			Description: "Material issue to production - " + mi.Number,
		})
	}
	for _, item := range mi.Items {
		inventory := orDefault(item.InventoryCode, CodeRawMaterialInventory)
		line := PostingLine{
			AccountCode: inventory,
			Description: fmt.Sprintf("Material %s: %s", mi.Kind, item.ProductName),
		}
		if mi.Kind == domain.IssueToProduction {
			line.Credit = item.Cost
		} else {
			line.Debit = item.Cost
		}
		lines = append(lines, line)
	}
	if mi.Kind == domain.ReturnFromProduction {
		lines = append(lines, PostingLine{
			AccountCode: CodeWorkInProcess,
			Credit:      total,
			Description: "Material return from production - " + mi.Number,
		})
	}

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceMaterialIssue, ID: mi.ID},
		Date:        mi.Date,
		Reference:   mi.Number,
		JournalType: journalType,
		Dims:        s.resolver.Resolve(mi),
		Lines:       lines,
	})
}

// PostProductionCompletion moves the accumulated WIP cost into finished
// goods.
func (s *PostingService) PostProductionCompletion(ctx context.Context, p domain.Production) (*PostingResult, error) {
	finished := orDefault(p.FinishedGoodsCode, CodeFinishedGoods)
	wip := orDefault(p.WIPCode, CodeWorkInProcess)
	desc := "Production completion - " + p.Number

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceProduction, ID: p.ID},
		Date:        p.Date,
		Reference:   p.Number,
		JournalType: domain.JournalCompletion,
		Dims:        s.resolver.Resolve(p),
		Lines: []PostingLine{
			{AccountCode: finished, Debit: p.TotalCost, Description: desc},
			{AccountCode: wip, Credit: p.TotalCost, Description: desc},
		},
	})
}

// PostCashBankTransfer: Cr source account for amount plus fee, Dr target for
// the amount, Dr the admin-fee expense when a fee is charged.
func (s *PostingService) PostCashBankTransfer(ctx context.Context, t domain.CashBankTransfer) (*PostingResult, error) {
	total := t.Amount.Add(t.OtherCosts)
	fee := orDefault(t.FeeCode, CodeAdminFee)

	lines := []PostingLine{
		{AccountCode: t.FromCode, Credit: total, Description: "Transfer out " + t.Number},
		{AccountCode: t.ToCode, Debit: t.Amount, Description: "Transfer in " + t.Number},
	}
	if t.OtherCosts.IsPositive() {
		lines = append(lines, PostingLine{AccountCode: fee, Debit: t.OtherCosts, Description: "Transfer fee " + t.Number})
	}

	return s.engine.Post(ctx, PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceCashBankTransfer, ID: t.ID},
		Date:        t.Date,
		Reference:   t.Number,
		JournalType: domain.JournalCashBankTransfer,
		Dims:        s.resolver.Resolve(t),
		Lines:       lines,
	})
}
