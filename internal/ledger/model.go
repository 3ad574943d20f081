package ledger

import "time"

// Kind classifies a transaction record. Direction is always encoded by
// the kind, never by the sign of the amount.
type Kind string

const (
	KindDeposit     Kind = "deposit"
	KindWithdrawal  Kind = "withdrawal"
	KindTransferOut Kind = "transfer_out"
	KindTransferIn  Kind = "transfer_in"
)

// ParseKind validates a kind string coming from an external caller.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindDeposit, KindWithdrawal, KindTransferOut, KindTransferIn:
		return Kind(s), true
	}
	return "", false
}

// Account is a stored-value account. Balance is held in minor currency
// units (cents) and never goes negative.
type Account struct {
	ID          string
	DisplayName string
	Balance     int64
	CreatedAt   time.Time
}

// Transaction is one immutable entry in the append-only ledger log.
// ResultingBalance caches the affected account's balance immediately
// after this entry, so history display and audit replay need no fold.
type Transaction struct {
	ID               int64
	Kind             Kind
	AccountID        string
	CounterpartyID   string
	Amount           int64
	Timestamp        time.Time
	ResultingBalance int64
}

// TransferRecord is the linked pair a transfer appends: the debit on
// the source account and the credit on the destination, sharing one
// timestamp and consecutive IDs.
type TransferRecord struct {
	Out Transaction
	In  Transaction
}

// Filter narrows a history query. Zero values leave the corresponding
// dimension unbounded. From is inclusive, To exclusive.
type Filter struct {
	Kinds []Kind
	From  time.Time
	To    time.Time
	Limit int
}

func (f Filter) matchesKind(k Kind) bool {
	if len(f.Kinds) == 0 {
		return true
	}
	for _, want := range f.Kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (f Filter) matchesTime(ts time.Time) bool {
	if !f.From.IsZero() && ts.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !ts.Before(f.To) {
		return false
	}
	return true
}
