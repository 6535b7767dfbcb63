// Package filestore keeps the ledger in flat JSON files, one per partition,
// plus the last rate table. It is the default backend.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_ledger/internal/core/ports/repositories"
)

// File names inside the data directory.
const (
	IncomeFile   = "income.json"
	ExpensesFile = "expenses.json"
	RatesFile    = "exchange_rates.json"
)

// partition is the in-memory copy of one file. Records keep file order.
type partition struct {
	mu      sync.RWMutex
	path    string
	records []domain.Transaction
}

func (p *partition) indexOf(id string) int {
	for i := range p.records {
		if p.records[i].TransactionID == id {
			return i
		}
	}
	return -1
}

// Store implements the transaction and rate snapshot repositories on top of DATA_DIR.
type Store struct {
	dir        string
	logger     *slog.Logger
	partitions map[domain.TransactionKind]*partition

	ratesMu sync.Mutex
}

var (
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.RateSnapshotRepository      = (*Store)(nil)
)

// Open creates dir if needed and loads both partitions.
// A missing file is an empty partition. A corrupt file is moved aside and also loads as empty.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	s := &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "filestore")),
		partitions: map[domain.TransactionKind]*partition{
			domain.Income:  {path: filepath.Join(dir, IncomeFile)},
			domain.Expense: {path: filepath.Join(dir, ExpensesFile)},
		},
	}

	// Ids are unique across both partitions. The first partition loaded keeps a shared id.
	seen := make(map[string]bool)
	for _, kind := range domain.Kinds {
		p := s.partitions[kind]
		p.records = s.loadPartition(p.path, kind, seen)
		s.logger.Info("Loaded partition",
			slog.String("kind", string(kind)),
			slog.String("path", p.path),
			slog.Int("records", len(p.records)))
	}
	return s, nil
}

func (s *Store) loadPartition(path string, kind domain.TransactionKind, seen map[string]bool) []domain.Transaction {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Transaction{}
	}
	if err != nil {
		s.logger.Warn("Failed to read partition, starting empty", slog.String("path", path), slog.String("error", err.Error()))
		return []domain.Transaction{}
	}
	if len(data) == 0 {
		return []domain.Transaction{}
	}

	var records []transactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.quarantine(path, err)
		return []domain.Transaction{}
	}

	out := make([]domain.Transaction, 0, len(records))
	for i, rec := range records {
		t, err := rec.toDomain(kind)
		if err == nil {
			err = t.Validate()
		}
		if err != nil {
			s.logger.Warn("Skipping unreadable record",
				slog.String("path", path),
				slog.Int("index", i),
				slog.String("error", err.Error()))
			continue
		}
		if seen[t.TransactionID] {
			s.logger.Warn("Skipping duplicate record", slog.String("path", path), slog.String("transaction_id", t.TransactionID))
			continue
		}
		seen[t.TransactionID] = true
		out = append(out, t)
	}
	return out
}

// quarantine renames a corrupt file so the next write does not silently destroy it.
func (s *Store) quarantine(path string, cause error) {
	aside := fmt.Sprintf("%s.corrupt-%d", path, time.Now().UnixNano())
	if err := os.Rename(path, aside); err != nil {
		s.logger.Warn("Corrupt file could not be moved aside", slog.String("path", path), slog.String("error", err.Error()))
	}
	s.logger.Warn("Corrupt data file loaded as empty",
		slog.String("path", path),
		slog.String("moved_to", aside),
		slog.String("error", cause.Error()))
}

// writeFileAtomic replaces path with data via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// flushLocked writes records to p's file. p.mu must be held for writing.
func flushLocked(p *partition, records []domain.Transaction) error {
	out := make([]transactionRecord, len(records))
	for i, t := range records {
		out[i] = toRecord(t)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(p.path, data)
}

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	for _, kind := range domain.Kinds {
		p := s.partitions[kind]
		p.mu.RLock()
		i := p.indexOf(transactionID)
		if i >= 0 {
			t := p.records[i]
			p.mu.RUnlock()
			return &t, nil
		}
		p.mu.RUnlock()
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListTransactions(_ context.Context, kind *domain.TransactionKind) ([]domain.Transaction, error) {
	kinds := domain.Kinds
	if kind != nil {
		if _, ok := s.partitions[*kind]; !ok {
			return nil, fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, *kind)
		}
		kinds = []domain.TransactionKind{*kind}
	}

	out := []domain.Transaction{}
	for _, k := range kinds {
		p := s.partitions[k]
		p.mu.RLock()
		out = append(out, p.records...)
		p.mu.RUnlock()
	}
	return out, nil
}

// SaveTransaction appends a new record or replaces one in place. The file is rewritten
// before memory changes, so a failed write leaves both untouched.
func (s *Store) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	p, ok := s.partitions[txn.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, txn.Kind)
	}
	if other := s.otherPartition(txn.Kind); other != nil {
		other.mu.RLock()
		clash := other.indexOf(txn.TransactionID) >= 0
		other.mu.RUnlock()
		if clash {
			return fmt.Errorf("%w: transaction %s belongs to the other partition", apperrors.ErrDuplicate, txn.TransactionID)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	next := make([]domain.Transaction, len(p.records), len(p.records)+1)
	copy(next, p.records)
	if i := p.indexOf(txn.TransactionID); i >= 0 {
		next[i] = txn
	} else {
		next = append(next, txn)
	}

	if err := flushLocked(p, next); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.path, err)
	}
	p.records = next
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, transactionID string) (bool, error) {
	for _, kind := range domain.Kinds {
		p := s.partitions[kind]
		p.mu.Lock()
		i := p.indexOf(transactionID)
		if i < 0 {
			p.mu.Unlock()
			continue
		}

		next := make([]domain.Transaction, 0, len(p.records)-1)
		next = append(next, p.records[:i]...)
		next = append(next, p.records[i+1:]...)
		if err := flushLocked(p, next); err != nil {
			p.mu.Unlock()
			return false, fmt.Errorf("failed to write %s: %w", p.path, err)
		}
		p.records = next
		p.mu.Unlock()
		return true, nil
	}
	return false, nil
}

func (s *Store) otherPartition(kind domain.TransactionKind) *partition {
	for k, p := range s.partitions {
		if k != kind {
			return p
		}
	}
	return nil
}

func (s *Store) SaveRateTable(_ context.Context, table domain.RateTable) error {
	rec := rateSnapshotRecord{
		BaseCurrency: table.BaseCurrency,
		Rates:        toRateRecords(table.Rates),
		Date:         table.FetchedAt.String(),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	s.ratesMu.Lock()
	defer s.ratesMu.Unlock()
	if err := writeFileAtomic(filepath.Join(s.dir, RatesFile), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", RatesFile, err)
	}
	return nil
}

// LoadRateTable returns apperrors.ErrNotFound when no snapshot was ever written.
func (s *Store) LoadRateTable(_ context.Context) (*domain.RateTable, error) {
	s.ratesMu.Lock()
	data, err := os.ReadFile(filepath.Join(s.dir, RatesFile))
	s.ratesMu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", RatesFile, err)
	}

	var rec rateSnapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", RatesFile, err)
	}
	if len(rec.Rates) == 0 {
		return nil, apperrors.ErrNotFound
	}

	table := &domain.RateTable{BaseCurrency: rec.BaseCurrency, Rates: fromRateRecords(rec.Rates)}
	if rec.Date != "" {
		if d, err := domain.ParseDate(rec.Date); err == nil {
			table.FetchedAt = d
		}
	}
	return table, nil
}
