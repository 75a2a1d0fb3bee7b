package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/samudra-erp/backend/internal/ledger/domain"
	ledger "github.com/samudra-erp/backend/internal/ledger/service"
)

// MethodDirect and MethodIndirect select how the operating section is built.
const (
	MethodDirect   = "direct"
	MethodIndirect = "indirect"
)

var depreciationPrefixes = []string{"6311", "6312", "6313", "6314"}

// workingCapitalPrefixes are the current asset/liability roots whose period
// deltas feed the indirect method.
var workingCapitalPrefixes = []struct {
	key    string
	label  string
	prefix string
}{
	{"accounts_receivable_change", "Decrease (Increase) in Accounts Receivable", "1120"},
	{"inventory_change", "Decrease (Increase) in Inventory", "1140"},
	{"accounts_payable_change", "Increase (Decrease) in Accounts Payable", "2110"},
}

// CashFlowStatement is the generated report. OpeningBalance + NetChange
// equals ClosingBalance regardless of method.
type CashFlowStatement struct {
	Start  time.Time `json:"start_date"`
	End    time.Time `json:"end_date"`
	Method string    `json:"method"`

	Sections       []FlowSection   `json:"sections"`
	NetChange      decimal.Decimal `json:"net_change"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

type FlowSection struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Items []FlowItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type FlowItem struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlowOptions tunes one Generate call. An unknown Method falls back to
// direct.
type CashFlowOptions struct {
	Method   string
	Branches []int64
}

type CashFlowService struct {
	calc   *ledger.BalanceCalculator
	income *IncomeStatementService
	txns   domain.CashBankTransactionRepository
	config domain.ReportConfigRepository
	logger *zap.Logger
}

func NewCashFlowService(
	calc *ledger.BalanceCalculator,
	income *IncomeStatementService,
	txns domain.CashBankTransactionRepository,
	config domain.ReportConfigRepository,
	logger *zap.Logger,
) *CashFlowService {
	return &CashFlowService{calc: calc, income: income, txns: txns, config: config, logger: logger}
}

// Generate builds the statement for [start, end]. Zero times default to the
// first day of the current month and today.
func (s *CashFlowService) Generate(ctx context.Context, start, end time.Time, opts CashFlowOptions) (*CashFlowStatement, error) {
	now := time.Now()
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		end = now
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidPeriod
	}

	method := opts.Method
	if method != MethodIndirect {
		method = MethodDirect
	}

	opening, cashPrefixes, err := s.openingBalance(ctx, start, opts.Branches)
	if err != nil {
		return nil, err
	}

	var sections []FlowSection
	switch method {
	case MethodIndirect:
		sections, err = s.indirectSections(ctx, start, end, opts.Branches)
	default:
		sections, err = s.directSections(ctx, start, end, cashPrefixes, opts.Branches)
	}
	if err != nil {
		return nil, err
	}

	netChange := decimal.Zero
	for _, sec := range sections {
		netChange = netChange.Add(sec.Total)
	}

	return &CashFlowStatement{
		Start:          start,
		End:            end,
		Method:         method,
		Sections:       sections,
		NetChange:      netChange,
		OpeningBalance: opening,
		ClosingBalance: opening.Add(netChange),
	}, nil
}

// openingBalance is the configured carrying amounts of the cash accounts
// plus every ledger movement on them before the period start.
func (s *CashFlowService) openingBalance(ctx context.Context, start time.Time, branches []int64) (decimal.Decimal, []string, error) {
	cashAccounts, err := s.config.CashAccounts(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}

	opening := decimal.Zero
	prefixes := make([]string, 0, len(cashAccounts))
	for _, ca := range cashAccounts {
		opening = opening.Add(ca.OpeningBalance)
		prefixes = append(prefixes, ca.Prefix)
	}
	if len(prefixes) == 0 {
		s.logger.Warn("no cash accounts configured for cash flow report")
		return opening, prefixes, nil
	}

	posted, err := s.calc.PrefixNet(ctx, prefixes, domain.EntryFilter{Before: &start, BranchIDs: branches})
	if err != nil {
		return decimal.Zero, nil, err
	}
	return opening.Add(posted), prefixes, nil
}

// directSections walks the seeded report layout and resolves each line from
// the cash book.
func (s *CashFlowService) directSections(ctx context.Context, start, end time.Time, cashPrefixes []string, branches []int64) ([]FlowSection, error) {
	layout, err := s.config.Sections(ctx)
	if err != nil {
		return nil, err
	}
	if len(layout) == 0 {
		s.logger.Warn("cash flow report layout is empty")
		return []FlowSection{}, nil
	}

	sections := make([]FlowSection, 0, len(layout))
	for _, sec := range layout {
		out := FlowSection{Key: sec.Key, Label: sec.Label, Items: make([]FlowItem, 0, len(sec.Items))}
		for _, item := range sec.Items {
			amount, err := s.resolveItem(ctx, item, start, end, cashPrefixes, branches)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, FlowItem{Key: item.Key, Label: item.Label, Amount: amount})
			out.Total = out.Total.Add(amount)
		}
		sections = append(sections, out)
	}
	return sections, nil
}

func (s *CashFlowService) resolveItem(ctx context.Context, item domain.CashFlowItem, start, end time.Time, cashPrefixes []string, branches []int64) (decimal.Decimal, error) {
	if item.Resolver == "salesReceipts" {
		return s.salesReceipts(ctx, start, end, cashPrefixes, branches)
	}

	prefixes := make([]string, 0, len(item.Prefixes))
	for _, p := range item.Prefixes {
		prefixes = append(prefixes, p.Prefix)
	}
	if len(prefixes) == 0 {
		s.logger.Warn("cash flow item has no account prefixes", zap.String("item", item.Key))
		return decimal.Zero, nil
	}

	inTypes := []domain.TransactionType{domain.CashIn, domain.BankIn}
	outTypes := []domain.TransactionType{domain.CashOut, domain.BankOut}

	sum := func(types []domain.TransactionType) (decimal.Decimal, error) {
		txns, err := s.txns.ListByOffsetPrefix(ctx, prefixes, types, start, end, branches)
		if err != nil {
			return decimal.Zero, err
		}
		total := decimal.Zero
		for _, t := range txns {
			total = total.Add(t.Amount)
		}
		return total, nil
	}

	switch item.Type {
	case domain.FlowInflow:
		return sum(inTypes)
	case domain.FlowOutflow:
		total, err := sum(outTypes)
		if err != nil {
			return decimal.Zero, err
		}
		return total.Neg(), nil
	default: // net
		in, err := sum(inTypes)
		if err != nil {
			return decimal.Zero, err
		}
		out, err := sum(outTypes)
		if err != nil {
			return decimal.Zero, err
		}
		return in.Sub(out), nil
	}
}

// salesReceipts sums the period's cash-side debits of receipt journals.
// Customer receipts post straight to the ledger rather than through the cash
// book, so the generic resolver cannot see them.
func (s *CashFlowService) salesReceipts(ctx context.Context, start, end time.Time, cashPrefixes []string, branches []int64) (decimal.Decimal, error) {
	if len(cashPrefixes) == 0 {
		return decimal.Zero, nil
	}
	entries, err := s.calc.EntriesByPrefix(ctx, cashPrefixes, domain.EntryFilter{
		Start:       &start,
		End:         &end,
		JournalType: domain.JournalReceipt,
		BranchIDs:   branches,
	})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Debit)
	}
	return total, nil
}

// indirectSections reconstructs operating cash flow from net income,
// non-cash addbacks and working-capital deltas. Investing and financing stay
// empty until their documents carry enough classification to fill them.
func (s *CashFlowService) indirectSections(ctx context.Context, start, end time.Time, branches []int64) ([]FlowSection, error) {
	netIncome, err := s.income.NetIncome(ctx, start, end, branches)
	if err != nil {
		return nil, err
	}

	operating := FlowSection{
		Key:   "operating",
		Label: "Cash Flows from Operating Activities",
		Items: []FlowItem{{Key: "net_income", Label: "Net Income", Amount: netIncome}},
		Total: netIncome,
	}

	depreciation, err := s.calc.PrefixNet(ctx, depreciationPrefixes, domain.EntryFilter{Start: &start, End: &end, BranchIDs: branches})
	if err != nil {
		return nil, err
	}
	operating.Items = append(operating.Items, FlowItem{Key: "depreciation", Label: "Depreciation and Amortization", Amount: depreciation})
	operating.Total = operating.Total.Add(depreciation)

	for _, wc := range workingCapitalPrefixes {
		delta, err := s.workingCapitalDelta(ctx, wc.prefix, start, end, branches)
		if err != nil {
			return nil, err
		}
		operating.Items = append(operating.Items, FlowItem{Key: wc.key, Label: wc.label, Amount: delta})
		operating.Total = operating.Total.Add(delta)
	}

	return []FlowSection{
		operating,
		{Key: "investing", Label: "Cash Flows from Investing Activities", Items: []FlowItem{}},
		{Key: "financing", Label: "Cash Flows from Financing Activities", Items: []FlowItem{}},
	}, nil
}

// workingCapitalDelta is beginning minus ending net position: a growing
// receivable or inventory consumes cash, a growing payable releases it.
func (s *CashFlowService) workingCapitalDelta(ctx context.Context, prefix string, start, end time.Time, branches []int64) (decimal.Decimal, error) {
	beginning, err := s.calc.PrefixNet(ctx, []string{prefix}, domain.EntryFilter{Before: &start, BranchIDs: branches})
	if err != nil {
		return decimal.Zero, err
	}
	ending, err := s.calc.PrefixNet(ctx, []string{prefix}, domain.EntryFilter{AsOf: &end, BranchIDs: branches})
	if err != nil {
		return decimal.Zero, err
	}
	return beginning.Sub(ending), nil
}
