//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebwray/flock-api/internal/domain"
	"github.com/calebwray/flock-api/internal/platform/postgres"
	"github.com/calebwray/flock-api/internal/store"
	"github.com/calebwray/flock-api/internal/testdb"
)

// uniqueName returns a member name that cannot collide with rows left
// behind by other tests sharing the database.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// mustCreateMember inserts a member through the store and registers a
// cleanup that removes it (and any offerings) again.
func mustCreateMember(ctx context.Context, t *testing.T, s *postgres.MemberStore, input store.CreateMemberInput) domain.MemberSummary {
	t.Helper()

	created, err := s.Create(ctx, input)
	require.NoError(t, err, "member creation should succeed")
	t.Cleanup(func() {
		_, _ = s.Delete(context.Background(), created.ID)
	})
	return created
}

func TestMemberStore_Create(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)
	memberStore := postgres.NewMemberStore(db, nil)

	t.Run("creates member with lookup codes", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		name := uniqueName("create-codes")
		created := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{
			Name:            name,
			MembershipLevel: domain.ByCode("participant"),
			InterviewStatus: domain.ByCode("undecided"),
		})

		assert.Equal(t, name, created.Name)
		assert.NotEqual(t, uuid.Nil, created.ID)

		// Exactly one row with the submitted name and resolved ids.
		var count int
		var levelID, statusID sql.NullInt64
		err := db.QueryRowContext(ctx, `
			SELECT count(*), min(membership_level_id), min(interview_status_id)
			FROM members WHERE name = $1
		`, name).Scan(&count, &levelID, &statusID)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "exactly one row should match the submitted name")
		assert.True(t, levelID.Valid, "membership level should be resolved")
		assert.True(t, statusID.Valid, "interview status should be resolved")
	})

	t.Run("code and id resolve to the same row", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var participantID int64
		err := db.QueryRowContext(ctx,
			`SELECT id FROM membership_levels WHERE code = 'participant'`,
		).Scan(&participantID)
		require.NoError(t, err)

		byCode := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{
			Name:            uniqueName("resolve-code"),
			MembershipLevel: domain.ByCode("participant"),
		})
		byID := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{
			Name:            uniqueName("resolve-id"),
			MembershipLevel: domain.ByID(participantID),
		})

		var codeLevel, idLevel int64
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT membership_level_id FROM members WHERE id = $1`, byCode.ID).Scan(&codeLevel))
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT membership_level_id FROM members WHERE id = $1`, byID.ID).Scan(&idLevel))
		assert.Equal(t, codeLevel, idLevel, "code and id must resolve to the same lookup row")
	})

	t.Run("unknown code rolls back the whole insert", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		name := uniqueName("unknown-code")
		_, err := memberStore.Create(ctx, store.CreateMemberInput{
			Name:            name,
			MembershipLevel: domain.ByCode("no-such-level"),
		})
		require.ErrorIs(t, err, store.ErrUnknownCode)

		var count int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT count(*) FROM members WHERE name = $1`, name).Scan(&count))
		assert.Zero(t, count, "no member row may survive a rolled-back create")
	})

	t.Run("unknown numeric id is rejected like a code", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := memberStore.Create(ctx, store.CreateMemberInput{
			Name:            uniqueName("forged-id"),
			InterviewStatus: domain.ByID(999999),
		})
		assert.ErrorIs(t, err, store.ErrUnknownCode)
	})

	t.Run("stores optional fields and basic_info verbatim", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		gender := "f"
		email := "mei@example.com"
		info := json.RawMessage(`{"baptized": true, "notes": ["viola", "choir"]}`)
		created := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{
			Name:      uniqueName("optional-fields"),
			Gender:    &gender,
			Email:     &email,
			BasicInfo: info,
		})

		var storedGender, storedEmail string
		var storedInfo []byte
		require.NoError(t, db.QueryRowContext(ctx, `
			SELECT gender, email, basic_info FROM members WHERE id = $1
		`, created.ID).Scan(&storedGender, &storedEmail, &storedInfo))
		assert.Equal(t, gender, storedGender)
		assert.Equal(t, email, storedEmail)
		assert.JSONEq(t, string(info), string(storedInfo), "basic_info must round-trip verbatim")
	})

	t.Run("rejects empty name before touching the database", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := memberStore.Create(ctx, store.CreateMemberInput{Name: ""})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestMemberStore_ResolveLookupID(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)
	memberStore := postgres.NewMemberStore(db, nil)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		t.Run("unset resolves to NULL", func(t *testing.T) {
			id, err := memberStore.ResolveLookupID(ctx, tx, domain.LookupMembershipLevels, domain.LookupRef{})
			require.NoError(t, err)
			assert.False(t, id.Valid)
		})

		t.Run("known code resolves", func(t *testing.T) {
			id, err := memberStore.ResolveLookupID(ctx, tx, domain.LookupInterviewStatuses, domain.ByCode("scheduled"))
			require.NoError(t, err)
			assert.True(t, id.Valid)
		})

		t.Run("known id resolves to itself", func(t *testing.T) {
			known, err := memberStore.ResolveLookupID(ctx, tx, domain.LookupInterviewStatuses, domain.ByCode("completed"))
			require.NoError(t, err)

			id, err := memberStore.ResolveLookupID(ctx, tx, domain.LookupInterviewStatuses, domain.ByID(known.Int64))
			require.NoError(t, err)
			assert.Equal(t, known, id)
		})

		t.Run("unknown code fails", func(t *testing.T) {
			_, err := memberStore.ResolveLookupID(ctx, tx, domain.LookupMembershipLevels, domain.ByCode("archbishop"))
			assert.ErrorIs(t, err, store.ErrUnknownCode)
		})

		t.Run("unknown id fails", func(t *testing.T) {
			_, err := memberStore.ResolveLookupID(ctx, tx, domain.LookupMembershipLevels, domain.ByID(424242))
			assert.ErrorIs(t, err, store.ErrUnknownCode)
		})
	})
}

func TestMemberStore_ListAndSearch(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)
	memberStore := postgres.NewMemberStore(db, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	marker := uuid.NewString()[:8]
	first := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{Name: "Zhang Mei " + marker})
	second := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{Name: "Amei Lin " + marker})
	mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{Name: "Bob " + marker})

	t.Run("list is ordered by creation time", func(t *testing.T) {
		all, err := memberStore.List(ctx)
		require.NoError(t, err)

		// Find our three members; creation order must be preserved.
		var positions []int
		for i, m := range all {
			if m.ID == first.ID || m.ID == second.ID {
				positions = append(positions, i)
			}
		}
		require.Len(t, positions, 2)
		assert.Less(t, positions[0], positions[1], "earlier member must come first")

		var firstPos int
		for i, m := range all {
			if m.ID == first.ID {
				firstPos = i
			}
		}
		assert.Equal(t, positions[0], firstPos)
	})

	t.Run("search matches case-insensitive substring sorted by name", func(t *testing.T) {
		results, err := memberStore.SearchByName(ctx, "MEI "+marker)
		require.NoError(t, err)

		require.Len(t, results, 2, "both names containing the term should match")
		assert.Equal(t, second.ID, results[0].ID, "results must be sorted by name ascending")
		assert.Equal(t, first.ID, results[1].ID)
	})

	t.Run("search with no matches returns empty slice", func(t *testing.T) {
		results, err := memberStore.SearchByName(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestMemberStore_GetIDByName(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)
	memberStore := postgres.NewMemberStore(db, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("exact match returns the id", func(t *testing.T) {
		name := uniqueName("exact")
		created := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{Name: name})

		id, err := memberStore.GetIDByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, created.ID, id)
	})

	t.Run("missing name yields member not found", func(t *testing.T) {
		_, err := memberStore.GetIDByName(ctx, uniqueName("missing"))
		assert.ErrorIs(t, err, store.ErrMemberNotFound)
	})

	t.Run("duplicate names return the earliest member", func(t *testing.T) {
		name := uniqueName("dup")
		older := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{Name: name})
		mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{Name: name})

		id, err := memberStore.GetIDByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, older.ID, id, "the earliest created member wins")
	})
}

func TestMemberStore_Delete(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)
	memberStore := postgres.NewMemberStore(db, nil)
	offeringStore := postgres.NewOfferingStore(db, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("cascades offerings and reports one row", func(t *testing.T) {
		member := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{Name: uniqueName("cascade")})

		for i := 0; i < 3; i++ {
			_, err := offeringStore.Create(ctx, store.CreateOfferingInput{
				MemberID: member.ID,
				Amount:   float64(i) + 1,
			})
			require.NoError(t, err)
		}

		deleted, err := memberStore.Delete(ctx, member.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		var offerings int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT count(*) FROM offerings WHERE member_id = $1`, member.ID).Scan(&offerings))
		assert.Zero(t, offerings, "no orphaned offerings may survive the delete")

		var members int
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT count(*) FROM members WHERE id = $1`, member.ID).Scan(&members))
		assert.Zero(t, members)
	})

	t.Run("repeating the delete reports zero rows", func(t *testing.T) {
		member := mustCreateMember(ctx, t, memberStore, store.CreateMemberInput{Name: uniqueName("repeat")})

		deleted, err := memberStore.Delete(ctx, member.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), deleted)

		deleted, err = memberStore.Delete(ctx, member.ID)
		require.NoError(t, err)
		assert.Zero(t, deleted, "second delete finds nothing to do")
	})

	t.Run("deleting an unknown id reports zero rows without error", func(t *testing.T) {
		deleted, err := memberStore.Delete(ctx, uuid.New())
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}
