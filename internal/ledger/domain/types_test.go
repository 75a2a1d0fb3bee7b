package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanceSign(t *testing.T) {
	debitNormal := []AccountType{Asset, Expense}
	for _, at := range debitNormal {
		assert.Equal(t, 1, at.BalanceSign(), "%s should be debit-normal", at)
	}

	creditNormal := []AccountType{Liability, Equity, Revenue, ContraAsset}
	for _, at := range creditNormal {
		assert.Equal(t, -1, at.BalanceSign(), "%s should be credit-normal", at)
	}
}

func TestAccountTypeIsValid(t *testing.T) {
	for _, at := range []AccountType{Asset, Liability, Equity, Revenue, Expense, ContraAsset} {
		assert.True(t, at.IsValid())
	}
	assert.False(t, AccountType("Mystery").IsValid())
	assert.False(t, AccountType("").IsValid())
}

func TestTransactionTypeIsInflow(t *testing.T) {
	assert.True(t, CashIn.IsInflow())
	assert.True(t, BankIn.IsInflow())
	assert.False(t, CashOut.IsInflow())
	assert.False(t, BankOut.IsInflow())
}
