package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/calebwray/flock-api/internal/domain"
	"github.com/calebwray/flock-api/internal/platform/logger"
	"github.com/calebwray/flock-api/internal/store"
)

// OfferingStore implements the store.OfferingStore interface using a
// PostgreSQL database as the storage backend.
type OfferingStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewOfferingStore creates a new PostgreSQL implementation of the
// OfferingStore interface. It accepts a pooled database connection
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewOfferingStore(db *sql.DB, logger *slog.Logger) *OfferingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OfferingStore{
		db:     db,
		logger: logger.With(slog.String("component", "offering_store")),
	}
}

// Ensure OfferingStore implements store.OfferingStore interface
var _ store.OfferingStore = (*OfferingStore)(nil)

// Create implements store.OfferingStore.Create.
// The member-existence check and the insert run in one transaction so
// a member deleted concurrently surfaces as store.ErrMemberNotFound or
// a foreign-key rejection, never as an orphaned offering.
func (s *OfferingStore) Create(ctx context.Context, input store.CreateOfferingInput) (domain.Offering, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created domain.Offering
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		exists, err := memberExists(ctx, tx, input.MemberID)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrMemberNotFound
		}

		// Omitting donated_at lets the column default assign the
		// insertion time.
		if input.DonatedAt == nil {
			return tx.QueryRowContext(ctx, `
				INSERT INTO offerings (member_id, amount, note)
				VALUES ($1, $2, $3)
				RETURNING id, member_id, amount, currency, donated_at, note
			`, input.MemberID, input.Amount, input.Note).
				Scan(&created.ID, &created.MemberID, &created.Amount,
					&created.Currency, &created.DonatedAt, &created.Note)
		}

		return tx.QueryRowContext(ctx, `
			INSERT INTO offerings (member_id, amount, note, donated_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, member_id, amount, currency, donated_at, note
		`, input.MemberID, input.Amount, input.Note, *input.DonatedAt).
			Scan(&created.ID, &created.MemberID, &created.Amount,
				&created.Currency, &created.DonatedAt, &created.Note)
	})

	if err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("offering rejected: member does not exist",
				slog.String("member_id", input.MemberID.String()))
			return domain.Offering{}, err
		}
		log.Error("failed to create offering",
			slog.String("error", err.Error()),
			slog.String("member_id", input.MemberID.String()))
		return domain.Offering{}, MapError(err)
	}

	log.Info("offering recorded",
		slog.Int64("offering_id", created.ID),
		slog.String("member_id", created.MemberID.String()),
		slog.Float64("amount", created.Amount))
	return created, nil
}

// LogForMember implements store.OfferingStore.LogForMember.
// Returns the member's offerings most recent first plus the rounded
// total; a member with no offerings yields an empty log and total 0.
// Returns store.ErrMemberNotFound when the member itself is absent.
func (s *OfferingStore) LogForMember(ctx context.Context, memberID uuid.UUID) (domain.OfferingLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := memberExists(ctx, s.db, memberID)
	if err != nil {
		log.Error("failed to check member existence",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return domain.OfferingLog{}, err
	}
	if !exists {
		return domain.OfferingLog{}, store.ErrMemberNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, amount, currency, donated_at, note
		FROM offerings
		WHERE member_id = $1
		ORDER BY donated_at DESC
	`, memberID)
	if err != nil {
		log.Error("failed to load offerings",
			slog.String("error", err.Error()),
			slog.String("member_id", memberID.String()))
		return domain.OfferingLog{}, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	offerings := []domain.Offering{}
	for rows.Next() {
		var (
			o      domain.Offering
			amount sql.NullFloat64
		)
		if err := rows.Scan(&o.ID, &o.MemberID, &amount, &o.Currency, &o.DonatedAt, &o.Note); err != nil {
			return domain.OfferingLog{}, MapError(err)
		}
		// NULL amounts count as 0 toward the total.
		o.Amount = amount.Float64
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return domain.OfferingLog{}, MapError(err)
	}

	return domain.OfferingLog{
		MemberID: memberID,
		Total:    domain.SumAmounts(offerings),
		Log:      offerings,
	}, nil
}
