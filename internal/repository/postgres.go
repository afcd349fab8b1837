package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/benx421/payment-gateway/processor/internal/db"
	"github.com/benx421/payment-gateway/processor/internal/models"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// PostgresStore keeps cards and transactions in Postgres. The searchable
// columns are denormalized; everything else lives in a JSONB record.
type PostgresStore struct {
	db     *db.DB
	logger *slog.Logger
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a store over an open connection pool.
func NewPostgresStore(database *db.DB, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: database, logger: logger}
}

// PingContext checks the database is reachable.
func (s *PostgresStore) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) StoreCard(ctx context.Context, principal models.Principal, card models.Card) (string, error) {
	rec := newCardRecord(card.WithoutSecrets())
	rec.ID = ""
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode card: %w", err)
	}

	query := `
		INSERT INTO cards (principal_name, group_name, provider_id, provider_unique_id, masked_number, record)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err = s.db.QueryRowContext(ctx, query,
		rec.PrincipalName, rec.GroupName, rec.ProviderID, rec.ProviderUniqueID, rec.MaskedNumber, payload,
	).Scan(&id)
	if isUniqueViolation(err) {
		return "", fmt.Errorf("card %s/%s: %w", rec.ProviderID, rec.ProviderUniqueID, models.ErrDuplicate)
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert card: %w", err)
	}

	s.logger.Debug("card stored", "card_id", id, "principal", principal)
	return strconv.FormatInt(id, 10), nil
}

func scanCard(row interface{ Scan(...any) error }) (models.Card, error) {
	var (
		id      int64
		payload []byte
	)
	if err := row.Scan(&id, &payload); err != nil {
		return models.Card{}, err
	}
	var rec cardRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return models.Card{}, fmt.Errorf("failed to decode card %d: %w", id, err)
	}
	rec.ID = strconv.FormatInt(id, 10)
	return rec.card()
}

func (s *PostgresStore) GetCard(ctx context.Context, _ models.Principal, id string) (models.Card, error) {
	if !validID(id) {
		return models.Card{}, fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	card, err := scanCard(s.db.QueryRowContext(ctx, `SELECT id, record FROM cards WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Card{}, fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Card{}, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

func (s *PostgresStore) queryCards(ctx context.Context, query string, args ...any) ([]models.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return cards, nil
}

func (s *PostgresStore) GetCards(ctx context.Context, _ models.Principal) (map[string]models.Card, error) {
	cards, err := s.queryCards(ctx, `SELECT id, record FROM cards ORDER BY id`)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Card, len(cards))
	for _, card := range cards {
		out[card.ID] = card
	}
	return out, nil
}

func (s *PostgresStore) GetCardsByProvider(ctx context.Context, _ models.Principal, providerID string) (map[string]models.Card, error) {
	cards, err := s.queryCards(ctx, `
		SELECT id, record FROM cards
		WHERE provider_id = $1 AND provider_unique_id <> ''
		ORDER BY id
	`, providerID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Card, len(cards))
	for _, card := range cards {
		out[card.ProviderUniqueID] = card
	}
	return out, nil
}

// modifyCard locks the row, applies fn and writes the record back in one
// database transaction.
func (s *PostgresStore) modifyCard(ctx context.Context, id string, fn func(stored *models.Card) error) (err error) {
	if !validID(id) {
		return fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stored, err := scanCard(tx.QueryRowContext(ctx, `SELECT id, record FROM cards WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("card %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	if err = fn(&stored); err != nil {
		return err
	}

	rec := newCardRecord(stored)
	rec.ID = ""
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode card: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE cards
		SET masked_number = $2, record = $3, updated_at = NOW()
		WHERE id = $1
	`, id, rec.MaskedNumber, payload)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit card update: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateCard(ctx context.Context, _ models.Principal, card models.Card) error {
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

func (s *PostgresStore) UpdateCardNumber(ctx context.Context, _ models.Principal, card models.Card, cardNumber string, month, year int) error {
	return s.modifyCard(ctx, card.ID, func(stored *models.Card) error {
		if err := stored.SetExpiration(month, year); err != nil {
			return err
		}
		stored.SetMaskedNumber(models.MaskCardNumber(cardNumber))
		return nil
	})
}

func (s *PostgresStore) UpdateExpiration(ctx context.Context, _ models.Principal, card models.Card, month, year int) error {
	return s.modifyCard(ctx, card.ID, func(stored *models.Card) error {
		return stored.SetExpiration(month, year)
	})
}

func (s *PostgresStore) DeleteCard(ctx context.Context, _ models.Principal, card models.Card) error {
	if !validID(card.ID) {
		return fmt.Errorf("card %s: %w", card.ID, models.ErrNotFound)
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, card.ID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return requireRow(result, "card", card.ID)
}

func (s *PostgresStore) InsertTransaction(ctx context.Context, principal models.Principal, groupName string, txn *models.Transaction) (string, error) {
	rec := newTransactionRecord(txn)
	rec.ID = ""
	rec.GroupName = groupName
	rec.Card = newCardRecord(txn.Card.WithoutSecrets())
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode transaction: %w", err)
	}

	query := `
		INSERT INTO transactions (provider_id, group_name, principal_name, status, record)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	if err := s.db.QueryRowContext(ctx, query, rec.ProviderID, groupName, string(principal), string(rec.Status), payload).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *PostgresStore) GetTransaction(ctx context.Context, _ models.Principal, id string) (*models.Transaction, error) {
	if !validID(id) {
		return nil, fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
	}
	var (
		rowID   int64
		payload []byte
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, record FROM transactions WHERE id = $1`, id).Scan(&rowID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	var rec transactionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode transaction %d: %w", rowID, err)
	}
	rec.ID = strconv.FormatInt(rowID, 10)
	return rec.transaction()
}

func (s *PostgresStore) updateTransaction(ctx context.Context, txn *models.Transaction) error {
	if !validID(txn.ID) {
		return fmt.Errorf("transaction %s: %w", txn.ID, models.ErrNotFound)
	}
	rec := newTransactionRecord(txn)
	rec.ID = ""
	rec.Card = newCardRecord(txn.Card.WithoutSecrets())
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET status = $2, record = $3, updated_at = NOW()
		WHERE id = $1
	`, txn.ID, string(rec.Status), payload)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireRow(result, "transaction", txn.ID)
}

func (s *PostgresStore) SaleCompleted(ctx context.Context, _ models.Principal, txn *models.Transaction) error {
	return s.updateTransaction(ctx, txn)
}

func (s *PostgresStore) AuthorizeCompleted(ctx context.Context, _ models.Principal, txn *models.Transaction) error {
	return s.updateTransaction(ctx, txn)
}

func (s *PostgresStore) VoidCompleted(ctx context.Context, _ models.Principal, txn *models.Transaction) error {
	return s.updateTransaction(ctx, txn)
}

// validID reports whether id can name a BIGSERIAL row.
func validID(id string) bool {
	n, err := strconv.ParseInt(id, 10, 64)
	return err == nil && n > 0
}

func requireRow(result sql.Result, kind, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return nil
}

// isUniqueViolation recognizes unique violations from either driver: lib/pq
// reports *pq.Error and pgx reports *pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
