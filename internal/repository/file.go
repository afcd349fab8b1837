package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

const (
	cardsCollection        = "cards"
	transactionsCollection = "transactions"
)

// FileStore keeps every card and transaction in memory behind a single lock
// and rewrites its whole file on each change. It suits development and
// low-volume use. A FileStore without a path never touches disk.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu           sync.Mutex
	loaded       bool
	cards        map[string]models.Card
	transactions map[string]*models.Transaction
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by path. The file is read on first use.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// NewMemoryStore creates a store that is never written to disk.
func NewMemoryStore(logger *slog.Logger) *FileStore {
	return NewFileStore("", logger)
}

// load reads the file once. Callers hold s.mu.
func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}

	cards := make(map[string]models.Card)
	transactions := make(map[string]*models.Transaction)

	if s.path != "" {
		data, err := os.ReadFile(s.path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.logger.Info("store file does not exist yet", "path", s.path)
		case err != nil:
			return fmt.Errorf("failed to read store file: %w", err)
		default:
			if err := decodeStore(data, cards, transactions); err != nil {
				return fmt.Errorf("failed to parse store file %s: %w", s.path, err)
			}
			s.logger.Info("store file loaded",
				"path", s.path,
				"cards", len(cards),
				"transactions", len(transactions),
			)
		}
	}

	s.cards = cards
	s.transactions = transactions
	s.loaded = true
	return nil
}

func decodeStore(data []byte, cards map[string]models.Card, transactions map[string]*models.Transaction) error {
	groups, err := readFlat(bytes.NewReader(data))
	if err != nil {
		return err
	}

	for name := range groups {
		if name != cardsCollection && name != transactionsCollection {
			return fmt.Errorf("unknown collection %q", name)
		}
	}

	for _, n := range ordinals(groups[cardsCollection]) {
		var rec cardRecord
		if err := decodeNode(groups[cardsCollection][n], &rec); err != nil {
			return fmt.Errorf("%s.%d: %w", cardsCollection, n, err)
		}
		if rec.ID == "" {
			return fmt.Errorf("%s.%d: missing id", cardsCollection, n)
		}
		if _, dup := cards[rec.ID]; dup {
			return fmt.Errorf("%s.%d: duplicate id %s", cardsCollection, n, rec.ID)
		}
		card, err := rec.card()
		if err != nil {
			return fmt.Errorf("%s.%d: %w", cardsCollection, n, err)
		}
		cards[rec.ID] = card
	}

	for _, n := range ordinals(groups[transactionsCollection]) {
		var rec transactionRecord
		if err := decodeNode(groups[transactionsCollection][n], &rec); err != nil {
			return fmt.Errorf("%s.%d: %w", transactionsCollection, n, err)
		}
		if rec.ID == "" {
			return fmt.Errorf("%s.%d: missing id", transactionsCollection, n)
		}
		if _, dup := transactions[rec.ID]; dup {
			return fmt.Errorf("%s.%d: duplicate id %s", transactionsCollection, n, rec.ID)
		}
		txn, err := rec.transaction()
		if err != nil {
			return fmt.Errorf("%s.%d: %w", transactionsCollection, n, err)
		}
		transactions[rec.ID] = txn
	}
	return nil
}

func (s *FileStore) encode() ([]byte, error) {
	entries := make(map[string]string)

	for i, id := range sortedIDs(s.cards) {
		prefix := cardsCollection + "." + strconv.Itoa(i)
		if err := flatten(prefix, newCardRecord(s.cards[id]), entries); err != nil {
			return nil, err
		}
	}
	for i, id := range sortedIDs(s.transactions) {
		prefix := transactionsCollection + "." + strconv.Itoa(i)
		if err := flatten(prefix, newTransactionRecord(s.transactions[id]), entries); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := writeFlat(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// save writes the new contents to path.new, moves the current file to
// path.backup and renames path.new into place. Callers hold s.mu.
func (s *FileStore) save() error {
	if s.path == "" {
		return nil
	}

	data, err := s.encode()
	if err != nil {
		return err
	}

	newPath := s.path + ".new"
	backupPath := s.path + ".backup"

	if err := writeFileSync(newPath, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", newPath, err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := os.Remove(backupPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", backupPath, err)
		}
		if err := os.Rename(s.path, backupPath); err != nil {
			return fmt.Errorf("failed to rename %s to %s: %w", s.path, backupPath, err)
		}
	}

	if err := os.Rename(newPath, s.path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", newPath, s.path, err)
	}
	return nil
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// begin checks ctx, then locks and loads the store. The caller must call
// s.mu.Unlock when begin succeeds.
func (s *FileStore) begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.load(); err != nil {
		s.mu.Unlock()
		return err
	}
	return nil
}

// PingContext reports whether the store file can be loaded.
func (s *FileStore) PingContext(ctx context.Context) error {
	if err := s.begin(ctx); err != nil {
		return err
	}
	s.mu.Unlock()
	return nil
}

func (s *FileStore) StoreCard(ctx context.Context, principal models.Principal, card models.Card) (string, error) {
	if err := s.begin(ctx); err != nil {
		return "", err
	}
	defer s.mu.Unlock()

	if card.ProviderUniqueID != "" {
		for _, existing := range s.cards {
			if existing.ProviderID == card.ProviderID && existing.ProviderUniqueID == card.ProviderUniqueID {
				return "", fmt.Errorf("card %s/%s: %w", card.ProviderID, card.ProviderUniqueID, models.ErrDuplicate)
			}
		}
	}

	id := nextID(s.cards)
	stored := card.WithoutSecrets()
	stored.ID = id
	s.cards[id] = stored

	if err := s.save(); err != nil {
		delete(s.cards, id)
		return "", err
	}

	s.logger.Debug("card stored", "card_id", id, "principal", principal)
	return id, nil
}

func (s *FileStore) GetCard(ctx context.Context, _ models.Principal, id string) (models.Card, error) {
	if err := s.begin(ctx); err != nil {
		return models.Card{}, err
	}
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return models.Card{}, fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	return card, nil
}

func (s *FileStore) GetCards(ctx context.Context, _ models.Principal) (map[string]models.Card, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	cards := make(map[string]models.Card, len(s.cards))
	for id, card := range s.cards {
		cards[id] = card
	}
	return cards, nil
}

func (s *FileStore) GetCardsByProvider(ctx context.Context, _ models.Principal, providerID string) (map[string]models.Card, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	cards := make(map[string]models.Card)
	for _, card := range s.cards {
		if card.ProviderID != providerID || card.ProviderUniqueID == "" {
			continue
		}
		if _, dup := cards[card.ProviderUniqueID]; dup {
			return nil, fmt.Errorf("provider unique id %s stored more than once: %w", card.ProviderUniqueID, models.ErrDuplicate)
		}
		cards[card.ProviderUniqueID] = card
	}
	return cards, nil
}

// modifyCard applies fn to the stored copy of card and saves, restoring the
// previous value if the save fails.
func (s *FileStore) modifyCard(ctx context.Context, id string, fn func(stored *models.Card) error) error {
	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	existing, ok := s.cards[id]
	if !ok {
		return fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}

	updated := existing
	if err := fn(&updated); err != nil {
		return err
	}
	s.cards[id] = updated

	if err := s.save(); err != nil {
		s.cards[id] = existing
		return err
	}
	return nil
}

func (s *FileStore) UpdateCard(ctx context.Context, _ models.Principal, card models.Card) error {
	return s.modifyCard(ctx, card.ID, func(stored *models.Card) error {
		updated := card.WithoutSecrets()
		updated.ID = stored.ID
		updated.PrincipalName = stored.PrincipalName
		updated.GroupName = stored.GroupName
		updated.ProviderID = stored.ProviderID
		updated.ProviderUniqueID = stored.ProviderUniqueID
		updated.CopyExpiration(*stored)
		*stored = updated
		return nil
	})
}

func (s *FileStore) UpdateCardNumber(ctx context.Context, _ models.Principal, card models.Card, cardNumber string, month, year int) error {
	return s.modifyCard(ctx, card.ID, func(stored *models.Card) error {
		if err := stored.SetExpiration(month, year); err != nil {
			return err
		}
		stored.SetMaskedNumber(models.MaskCardNumber(cardNumber))
		return nil
	})
}

func (s *FileStore) UpdateExpiration(ctx context.Context, _ models.Principal, card models.Card, month, year int) error {
	return s.modifyCard(ctx, card.ID, func(stored *models.Card) error {
		return stored.SetExpiration(month, year)
	})
}

func (s *FileStore) DeleteCard(ctx context.Context, _ models.Principal, card models.Card) error {
	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	existing, ok := s.cards[card.ID]
	if !ok {
		return fmt.Errorf("card %s: %w", card.ID, models.ErrNotFound)
	}
	delete(s.cards, card.ID)

	if err := s.save(); err != nil {
		s.cards[card.ID] = existing
		return err
	}
	return nil
}

func (s *FileStore) InsertTransaction(ctx context.Context, principal models.Principal, groupName string, txn *models.Transaction) (string, error) {
	if err := s.begin(ctx); err != nil {
		return "", err
	}
	defer s.mu.Unlock()

	id := nextID(s.transactions)
	stored := txn.Clone()
	stored.ID = id
	stored.GroupName = groupName
	stored.Card.Scrub()
	s.transactions[id] = stored

	if err := s.save(); err != nil {
		delete(s.transactions, id)
		return "", err
	}

	s.logger.Debug("transaction inserted", "transaction_id", id, "principal", principal)
	return id, nil
}

func (s *FileStore) GetTransaction(ctx context.Context, _ models.Principal, id string) (*models.Transaction, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	txn, ok := s.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
	}
	return txn.Clone(), nil
}

func (s *FileStore) updateTransaction(ctx context.Context, txn *models.Transaction) error {
	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	existing, ok := s.transactions[txn.ID]
	if !ok {
		return fmt.Errorf("transaction %s: %w", txn.ID, models.ErrNotFound)
	}

	stored := txn.Clone()
	stored.Card.Scrub()
	s.transactions[txn.ID] = stored

	if err := s.save(); err != nil {
		s.transactions[txn.ID] = existing
		return err
	}
	return nil
}

func (s *FileStore) SaleCompleted(ctx context.Context, _ models.Principal, txn *models.Transaction) error {
	return s.updateTransaction(ctx, txn)
}

func (s *FileStore) AuthorizeCompleted(ctx context.Context, _ models.Principal, txn *models.Transaction) error {
	return s.updateTransaction(ctx, txn)
}

func (s *FileStore) VoidCompleted(ctx context.Context, _ models.Principal, txn *models.Transaction) error {
	return s.updateTransaction(ctx, txn)
}

// nextID returns one more than the largest numeric key in m.
func nextID[V any](m map[string]V) string {
	largest := 0
	for id := range m {
		if n, err := strconv.Atoi(id); err == nil && n > largest {
			largest = n
		}
	}
	return strconv.Itoa(largest + 1)
}

// sortedIDs orders keys numerically, then lexically for non-numeric keys.
func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return ids[i] < ids[j]
	})
	return ids
}
