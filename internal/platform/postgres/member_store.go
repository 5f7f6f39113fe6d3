package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/calebwray/flock-api/internal/domain"
	"github.com/calebwray/flock-api/internal/platform/logger"
	"github.com/calebwray/flock-api/internal/store"
)

// MemberStore implements the store.MemberStore interface using a
// PostgreSQL database as the storage backend.
type MemberStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMemberStore creates a new PostgreSQL implementation of the
// MemberStore interface. It accepts a pooled database connection that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewMemberStore(db *sql.DB, logger *slog.Logger) *MemberStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MemberStore{
		db:     db,
		logger: logger.With(slog.String("component", "member_store")),
	}
}

// Ensure MemberStore implements the store interfaces
var (
	_ store.MemberStore    = (*MemberStore)(nil)
	_ store.LookupResolver = (*MemberStore)(nil)
)

// List implements store.MemberStore.List.
// It returns every member's {id, name}, ordered by creation time
// ascending.
func (s *MemberStore) List(ctx context.Context) ([]domain.MemberSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM members
		ORDER BY created_at
	`)
	if err != nil {
		log.Error("failed to list members", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanSummaries(rows)
}

// SearchByName implements store.MemberStore.SearchByName.
// The match is a case-insensitive substring match; results are ordered
// alphabetically by name.
func (s *MemberStore) SearchByName(ctx context.Context, term string) ([]domain.MemberSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM members
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
	`, term)
	if err != nil {
		log.Error("failed to search members",
			slog.String("error", err.Error()),
			slog.String("term", term))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanSummaries(rows)
}

// GetIDByName implements store.MemberStore.GetIDByName.
// Names are not unique; when several members share one, the earliest
// created member wins so repeated calls return a stable answer.
// Returns store.ErrMemberNotFound if no member has the name.
func (s *MemberStore) GetIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM members
		WHERE name = $1
		ORDER BY created_at
		LIMIT 1
	`, name).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, store.ErrMemberNotFound
	}
	if err != nil {
		log.Error("failed to look up member by name",
			slog.String("error", err.Error()))
		return uuid.Nil, MapError(err)
	}

	return id, nil
}

// ResolveLookupID implements store.LookupResolver.
// Both reference forms are verified against the lookup table: a string
// code is matched by its code column, a numeric id by its id column.
// An unmatched reference of either form yields store.ErrUnknownCode.
// An unset reference resolves to a NULL id.
func (s *MemberStore) ResolveLookupID(
	ctx context.Context,
	tx store.DBTX,
	table domain.LookupTable,
	ref domain.LookupRef,
) (sql.NullInt64, error) {
	if !ref.Set {
		return sql.NullInt64{}, nil
	}

	// Table names come from the closed domain.LookupTable set, never
	// from caller input, so interpolation here is safe.
	var (
		id  int64
		err error
	)
	if ref.IsCode() {
		err = tx.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT id FROM %s WHERE code = $1`, table),
			ref.Code,
		).Scan(&id)
	} else {
		err = tx.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT id FROM %s WHERE id = $1`, table),
			ref.ID,
		).Scan(&id)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return sql.NullInt64{}, fmt.Errorf("%w: %q in %s", store.ErrUnknownCode, ref.String(), table)
	}
	if err != nil {
		return sql.NullInt64{}, MapError(err)
	}

	return sql.NullInt64{Int64: id, Valid: true}, nil
}

// Create implements store.MemberStore.Create.
// Lookup resolution and the insert run in one transaction, so an
// unknown code leaves no partial write behind.
func (s *MemberStore) Create(ctx context.Context, input store.CreateMemberInput) (domain.MemberSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateMemberName(input.Name); err != nil {
		log.Warn("member validation failed during create",
			slog.String("error", err.Error()))
		return domain.MemberSummary{}, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var created domain.MemberSummary
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		levelID, err := s.ResolveLookupID(ctx, tx, domain.LookupMembershipLevels, input.MembershipLevel)
		if err != nil {
			return err
		}
		statusID, err := s.ResolveLookupID(ctx, tx, domain.LookupInterviewStatuses, input.InterviewStatus)
		if err != nil {
			return err
		}

		var basicInfo any
		if input.BasicInfo != nil {
			basicInfo = []byte(input.BasicInfo)
		}

		return tx.QueryRowContext(ctx, `
			INSERT INTO members
				(name, membership_level_id, interview_status_id, gender, birthdate, phone, email, basic_info)
			VALUES
				($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, name
		`,
			input.Name,
			levelID,
			statusID,
			input.Gender,
			input.Birthdate,
			input.Phone,
			input.Email,
			basicInfo,
		).Scan(&created.ID, &created.Name)
	})

	if err != nil {
		if errors.Is(err, store.ErrUnknownCode) {
			log.Warn("unknown lookup code during member creation",
				slog.String("error", err.Error()))
			return domain.MemberSummary{}, err
		}
		log.Error("failed to create member",
			slog.String("error", err.Error()))
		return domain.MemberSummary{}, MapError(err)
	}

	log.Info("member created",
		slog.String("member_id", created.ID.String()))
	return created, nil
}

// Delete implements store.MemberStore.Delete.
// Offerings are removed before the member row within one transaction;
// the order is mandatory because offerings carry a foreign key to the
// member and the schema deliberately does not cascade.
func (s *MemberStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM offerings WHERE member_id = $1`, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
		if err != nil {
			return err
		}

		deleted, err = result.RowsAffected()
		return err
	})

	if err != nil {
		log.Error("failed to delete member",
			slog.String("error", err.Error()),
			slog.String("member_id", id.String()))
		return 0, MapError(err)
	}

	log.Info("member delete finished",
		slog.String("member_id", id.String()),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// memberExists reports whether a member row with the given id exists.
// Shared with the offering store so both can distinguish a missing
// member from an empty result.
func memberExists(ctx context.Context, db store.DBTX, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

func scanSummaries(rows *sql.Rows) ([]domain.MemberSummary, error) {
	summaries := []domain.MemberSummary{}
	for rows.Next() {
		var s domain.MemberSummary
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, MapError(err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return summaries, nil
}
