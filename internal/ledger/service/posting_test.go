package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samudra-erp/backend/internal/ledger/domain"
)

func balancedRequest(id int64) PostingRequest {
	return PostingRequest{
		Source:      domain.SourceRef{Type: domain.SourceInvoice, ID: id},
		Date:        date(2026, time.January, 15),
		Reference:   "INV-001",
		JournalType: domain.JournalSales,
		Lines: []PostingLine{
			{AccountCode: CodeTradeReceivable, Debit: d("110000"), Description: "Receivable"},
			{AccountCode: CodeSalesRevenue, Credit: d("100000"), Description: "Revenue"},
			{AccountCode: CodeOutputTax, Credit: d("10000"), Description: "Tax"},
		},
	}
}

func TestPostCommitsBalancedBatch(t *testing.T) {
	env := newTestEnv(t)
	env.seedChart(t)
	ctx := context.Background()

	result, err := env.engine.Post(ctx, balancedRequest(1))
	require.NoError(t, err)
	assert.Equal(t, "posted", result.Status)
	assert.Len(t, result.Entries, 3)

	stored := env.entriesFor(t, domain.SourceRef{Type: domain.SourceInvoice, ID: 1})
	require.Len(t, stored, 3)
	requireBalanced(t, stored)
	for _, e := range stored {
		assert.Equal(t, domain.SourceInvoice, e.SourceType)
		assert.Equal(t, int64(1), e.SourceID)
		assert.Equal(t, domain.JournalSales, e.JournalType)
	}
}

func TestPostRejectsUnbalancedBatch(t *testing.T) {
	env := newTestEnv(t)
	env.seedChart(t)
	ctx := context.Background()

	req := balancedRequest(2)
	req.Lines[0].Debit = d("120000") // no longer matches the credits

	_, err := env.engine.Post(ctx, req)
	require.ErrorIs(t, err, domain.ErrUnbalancedBatch)

	assert.Empty(t, env.entriesFor(t, req.Source))
}

func TestPostRejectsUnknownAccount(t *testing.T) {
	env := newTestEnv(t)
	env.seedChart(t)
	ctx := context.Background()

	req := balancedRequest(3)
	req.Lines[1].AccountCode = "9999.99"

	_, err := env.engine.Post(ctx, req)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	assert.Empty(t, env.entriesFor(t, req.Source))
}

func TestPostRejectsInvalidLines(t *testing.T) {
	env := newTestEnv(t)
	env.seedChart(t)
	ctx := context.Background()

	t.Run("negative amount", func(t *testing.T) {
		req := balancedRequest(4)
		req.Lines[0].Debit = d("-5")
		_, err := env.engine.Post(ctx, req)
		require.ErrorIs(t, err, domain.ErrUnbalancedBatch)
	})

	t.Run("both sides on one line", func(t *testing.T) {
		req := balancedRequest(5)
		req.Lines[0].Credit = d("10")
		_, err := env.engine.Post(ctx, req)
		require.ErrorIs(t, err, domain.ErrUnbalancedBatch)
	})

	t.Run("empty batch", func(t *testing.T) {
		req := balancedRequest(6)
		req.Lines = nil
		_, err := env.engine.Post(ctx, req)
		require.ErrorIs(t, err, domain.ErrUnbalancedBatch)
	})

	t.Run("missing source reference", func(t *testing.T) {
		req := balancedRequest(7)
		req.Source = domain.SourceRef{}
		_, err := env.engine.Post(ctx, req)
		require.Error(t, err)
	})
}

func TestRepostReplacesPreviousBatch(t *testing.T) {
	env := newTestEnv(t)
	env.seedChart(t)
	ctx := context.Background()

	src := domain.SourceRef{Type: domain.SourceInvoice, ID: 10}
	other := domain.SourceRef{Type: domain.SourceInvoice, ID: 11}

	_, err := env.engine.Post(ctx, balancedRequest(10))
	require.NoError(t, err)
	_, err = env.engine.Post(ctx, balancedRequest(11))
	require.NoError(t, err)

	// Repost the first document with corrected amounts.
	req := balancedRequest(10)
	req.Lines = []PostingLine{
		{AccountCode: CodeTradeReceivable, Debit: d("220000")},
		{AccountCode: CodeSalesRevenue, Credit: d("200000")},
		{AccountCode: CodeOutputTax, Credit: d("20000")},
	}
	_, err = env.engine.Post(ctx, req)
	require.NoError(t, err)

	stored := env.entriesFor(t, src)
	require.Len(t, stored, 3, "old batch must be fully replaced, not appended to")
	requireBalanced(t, stored)
	assert.True(t, stored[0].Debit.Equal(d("220000")))

	// The unrelated document's batch is untouched.
	assert.Len(t, env.entriesFor(t, other), 3)
}

func TestRepostIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedChart(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.engine.Post(ctx, balancedRequest(20))
		require.NoError(t, err)
	}

	stored := env.entriesFor(t, domain.SourceRef{Type: domain.SourceInvoice, ID: 20})
	assert.Len(t, stored, 3)
}

func TestFailedRepostKeepsOldBatch(t *testing.T) {
	env := newTestEnv(t)
	env.seedChart(t)
	ctx := context.Background()

	src := domain.SourceRef{Type: domain.SourceInvoice, ID: 30}
	_, err := env.engine.Post(ctx, balancedRequest(30))
	require.NoError(t, err)

	// Validation fails before the transaction opens, so the committed batch
	// survives an unbalanced repost attempt.
	bad := balancedRequest(30)
	bad.Lines[0].Debit = d("1")
	_, err = env.engine.Post(ctx, bad)
	require.ErrorIs(t, err, domain.ErrUnbalancedBatch)

	stored := env.entriesFor(t, src)
	require.Len(t, stored, 3)
	assert.True(t, stored[0].Debit.Equal(d("110000")))
}

func TestPostStampsDimensions(t *testing.T) {
	env := newTestEnv(t)
	env.seedChart(t)
	ctx := context.Background()

	branch := int64(2)
	project := int64(7)
	req := balancedRequest(40)
	req.Dims = domain.Dimensions{BranchID: &branch, ProjectID: &project}

	_, err := env.engine.Post(ctx, req)
	require.NoError(t, err)

	for _, e := range env.entriesFor(t, req.Source) {
		require.NotNil(t, e.BranchID)
		assert.Equal(t, branch, *e.BranchID)
		require.NotNil(t, e.ProjectID)
		assert.Equal(t, project, *e.ProjectID)
		assert.Nil(t, e.DepartmentID)
	}
}
