package ledger

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
	log      []Transaction
	nextID   int64
}

// NewMemory creates a concurrency-safe in-memory store. A single mutex
// serializes all mutations, so cross-account transfers are atomic by
// construction. Used by unit tests and when no database is configured.
func NewMemory() Store {
	return &memoryStore{accounts: make(map[string]*Account)}
}

func (s *memoryStore) CreateAccount(_ context.Context, id, displayName string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[id]; exists {
		return Account{}, ErrDuplicateAccount
	}
	acct := &Account{ID: id, DisplayName: displayName, CreatedAt: time.Now().UTC()}
	s.accounts[id] = acct
	return *acct, nil
}

func (s *memoryStore) Account(_ context.Context, id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return Account{}, &NotFoundError{AccountID: id}
	}
	return *acct, nil
}

func (s *memoryStore) Deposit(_ context.Context, id string, amount int64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return Transaction{}, &NotFoundError{AccountID: id}
	}
	acct.Balance += amount
	return s.append(KindDeposit, id, "", amount, time.Now().UTC(), acct.Balance), nil
}

func (s *memoryStore) Withdraw(_ context.Context, id string, amount int64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return Transaction{}, &NotFoundError{AccountID: id}
	}
	if acct.Balance < amount {
		return Transaction{}, &InsufficientFundsError{AccountID: id, Balance: acct.Balance, Requested: amount}
	}
	acct.Balance -= amount
	return s.append(KindWithdrawal, id, "", amount, time.Now().UTC(), acct.Balance), nil
}

func (s *memoryStore) Transfer(_ context.Context, fromID, toID string, amount int64) (TransferRecord, error) {
	if amount <= 0 {
		return TransferRecord{}, ErrInvalidAmount
	}
	if fromID == toID {
		return TransferRecord{}, ErrSameAccount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	from, ok := s.accounts[fromID]
	if !ok {
		return TransferRecord{}, &NotFoundError{AccountID: fromID}
	}
	to, ok := s.accounts[toID]
	if !ok {
		return TransferRecord{}, &NotFoundError{AccountID: toID}
	}
	if from.Balance < amount {
		return TransferRecord{}, &InsufficientFundsError{AccountID: fromID, Balance: from.Balance, Requested: amount}
	}

	from.Balance -= amount
	to.Balance += amount

	now := time.Now().UTC()
	out := s.append(KindTransferOut, fromID, toID, amount, now, from.Balance)
	in := s.append(KindTransferIn, toID, fromID, amount, now, to.Balance)
	return TransferRecord{Out: out, In: in}, nil
}

func (s *memoryStore) History(_ context.Context, id string, f Filter) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.accounts[id]; !ok {
		return nil, &NotFoundError{AccountID: id}
	}
	out := make([]Transaction, 0)
	for _, tx := range s.log {
		if tx.AccountID != id || !f.matchesKind(tx.Kind) || !f.matchesTime(tx.Timestamp) {
			continue
		}
		out = append(out, tx)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (s *memoryStore) Balance(_ context.Context, id string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return 0, &NotFoundError{AccountID: id}
	}
	return acct.Balance, nil
}

// append must be called with the write lock held.
func (s *memoryStore) append(kind Kind, accountID, counterpartyID string, amount int64, ts time.Time, resulting int64) Transaction {
	s.nextID++
	tx := Transaction{
		ID:               s.nextID,
		Kind:             kind,
		AccountID:        accountID,
		CounterpartyID:   counterpartyID,
		Amount:           amount,
		Timestamp:        ts,
		ResultingBalance: resulting,
	}
	s.log = append(s.log, tx)
	return tx
}
