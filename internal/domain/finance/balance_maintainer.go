package finance

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceMaintainer keeps cached account balances in lockstep with the
// transaction stream. Apply and Reverse must run inside the same
// transactional scope as the event write they mirror; any failure here
// is fatal to that scope so the two can never diverge.
type BalanceMaintainer struct{}

// NewBalanceMaintainer creates a new BalanceMaintainer
func NewBalanceMaintainer() *BalanceMaintainer {
	return &BalanceMaintainer{}
}

// Apply moves account balances for a freshly posted transaction. For a
// transfer the source account decreases and the destination increases
// by the same amount; for everything else the single referenced account
// moves by the kind-signed amount.
func (m *BalanceMaintainer) Apply(ctx context.Context, accounts AccountRepository, txn *Transaction) error {
	return m.shift(ctx, accounts, txn, false)
}

// Reverse undoes the balance effect of a transaction being reversed.
// It applies the exact opposite deltas of Apply.
func (m *BalanceMaintainer) Reverse(ctx context.Context, accounts AccountRepository, txn *Transaction) error {
	return m.shift(ctx, accounts, txn, true)
}

func (m *BalanceMaintainer) shift(ctx context.Context, accounts AccountRepository, txn *Transaction, undo bool) error {
	if txn.Kind.IsTransfer() {
		from, to := txn.Amount.Neg(), txn.Amount
		if undo {
			from, to = to, from
		}
		// Lock accounts in a stable order so two concurrent transfers
		// between the same pair cannot deadlock.
		legs := []struct {
			id    uuid.UUID
			delta decimal.Decimal
		}{
			{*txn.FromAccountID, from},
			{*txn.ToAccountID, to},
		}
		if bytes.Compare(legs[1].id[:], legs[0].id[:]) < 0 {
			legs[0], legs[1] = legs[1], legs[0]
		}
		for _, leg := range legs {
			if err := m.adjust(ctx, accounts, txn.TenantID, leg.id, leg.delta); err != nil {
				return err
			}
		}
		return nil
	}

	delta := txn.SignedAmount()
	if undo {
		delta = delta.Neg()
	}
	return m.adjust(ctx, accounts, txn.TenantID, *txn.AccountID, delta)
}

func (m *BalanceMaintainer) adjust(ctx context.Context, accounts AccountRepository, tenantID, accountID uuid.UUID, delta decimal.Decimal) error {
	account, err := accounts.FindByIDForUpdate(ctx, tenantID, accountID)
	if err != nil {
		return &BalanceApplyError{AccountID: accountID, Err: err}
	}
	account.AdjustBalance(delta)
	if err := accounts.Save(ctx, account); err != nil {
		return &BalanceApplyError{AccountID: accountID, Err: err}
	}
	return nil
}
