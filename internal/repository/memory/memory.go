// Package memory provides an in-memory Store implementation with the same
// soft-delete semantics as the Postgres repository. It backs the test suites
// and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/corebank/finance-service/internal/models"
	"github.com/corebank/finance-service/internal/repository"
)

// Store keeps all records in process memory.
type Store struct {
	mu sync.Mutex

	users        map[int64]*models.User
	cards        map[int64]*models.DebitCard
	transactions map[int64]*models.DebitCardTransaction
	loans        map[int64]*models.Loan
	repayments   map[int64]*models.ScheduledRepayment

	nextID int64
}

// NewStore initializes an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        map[int64]*models.User{},
		cards:        map[int64]*models.DebitCard{},
		transactions: map[int64]*models.DebitCardTransaction{},
		loans:        map[int64]*models.Loan{},
		repayments:   map[int64]*models.ScheduledRepayment{},
	}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) nextSerial() int64 {
	s.nextID++
	return s.nextID
}

// WithinTx serializes fn against the store. Rollback on error is not
// simulated; callers validate before writing, as the services do.
func (s *Store) WithinTx(_ context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	user.ID = s.nextSerial()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *Store) CreateDebitCard(_ context.Context, card *models.DebitCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.DeletedAt == nil && c.Number == card.Number {
			return repository.ErrDuplicate
		}
	}
	now := time.Now()
	card.ID = s.nextSerial()
	card.CreatedAt = now
	card.UpdatedAt = now
	clone := *card
	s.cards[card.ID] = &clone
	return nil
}

func (s *Store) ListDebitCardsByUser(_ context.Context, userID int64) ([]models.DebitCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := []models.DebitCard{}
	for _, c := range s.cards {
		if c.UserID == userID && c.DeletedAt == nil {
			cards = append(cards, *c)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

func (s *Store) FindDebitCardByID(_ context.Context, id int64) (*models.DebitCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok || c.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *Store) FindDebitCardByIDForUpdate(ctx context.Context, id int64) (*models.DebitCard, error) {
	return s.FindDebitCardByID(ctx, id)
}

func (s *Store) UpdateDebitCardActivation(_ context.Context, card *models.DebitCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[card.ID]
	if !ok || c.DeletedAt != nil {
		return repository.ErrNotFound
	}
	c.IsActive = card.IsActive
	c.DisabledAt = card.DisabledAt
	c.UpdatedAt = time.Now()
	card.UpdatedAt = c.UpdatedAt
	return nil
}

func (s *Store) SoftDeleteDebitCard(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok || c.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	c.UpdatedAt = now
	return nil
}

func (s *Store) CardNumberExists(_ context.Context, number string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.DeletedAt == nil && c.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CountTransactionsByCard(_ context.Context, cardID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, t := range s.transactions {
		if t.DebitCardID == cardID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateDebitCardTransaction(_ context.Context, txn *models.DebitCardTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn.ID = s.nextSerial()
	txn.CreatedAt = time.Now()
	clone := *txn
	s.transactions[txn.ID] = &clone
	return nil
}

func (s *Store) ListTransactionsByUser(_ context.Context, userID int64) ([]models.DebitCardTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txns := []models.DebitCardTransaction{}
	for _, t := range s.transactions {
		c, ok := s.cards[t.DebitCardID]
		if ok && c.UserID == userID && c.DeletedAt == nil {
			txns = append(txns, *t)
		}
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].ID < txns[j].ID })
	return txns, nil
}

func (s *Store) FindTransactionByID(_ context.Context, id int64) (*models.DebitCardTransaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil, 0, repository.ErrNotFound
	}
	c, ok := s.cards[t.DebitCardID]
	if !ok || c.DeletedAt != nil {
		return nil, 0, repository.ErrNotFound
	}
	clone := *t
	return &clone, c.UserID, nil
}

func (s *Store) CreateLoan(_ context.Context, loan *models.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	loan.ID = s.nextSerial()
	loan.CreatedAt = now
	loan.UpdatedAt = now
	clone := *loan
	s.loans[loan.ID] = &clone
	return nil
}

func (s *Store) ListLoansByUser(_ context.Context, userID int64) ([]models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loans := []models.Loan{}
	for _, l := range s.loans {
		if l.UserID == userID {
			loans = append(loans, *l)
		}
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

func (s *Store) FindLoanByID(_ context.Context, id int64) (*models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (s *Store) CreateScheduledRepayment(_ context.Context, sr *models.ScheduledRepayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	sr.ID = s.nextSerial()
	sr.CreatedAt = now
	sr.UpdatedAt = now
	clone := *sr
	s.repayments[sr.ID] = &clone
	return nil
}

func (s *Store) ListScheduledRepaymentsByLoan(_ context.Context, loanID int64) ([]models.ScheduledRepayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	repayments := []models.ScheduledRepayment{}
	for _, sr := range s.repayments {
		if sr.LoanID == loanID {
			repayments = append(repayments, *sr)
		}
	}
	sort.Slice(repayments, func(i, j int) bool {
		return repayments[i].DueDate.Before(repayments[j].DueDate)
	})
	return repayments, nil
}

func (s *Store) DueScheduledRepayments(_ context.Context, onOrBefore time.Time) ([]repository.DueRepayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	due := []repository.DueRepayment{}
	for _, sr := range s.repayments {
		if sr.Status != models.RepaymentStatusDue || sr.DueDate.After(onOrBefore) {
			continue
		}
		l, ok := s.loans[sr.LoanID]
		if !ok {
			continue
		}
		u, ok := s.users[l.UserID]
		if !ok {
			continue
		}
		due = append(due, repository.DueRepayment{Repayment: *sr, Username: u.Username, Email: u.Email})
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].Repayment.DueDate.Before(due[j].Repayment.DueDate)
	})
	return due, nil
}
