package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bostadsportal/mono-repo/backend/shared/go-models"
	"github.com/bostadsportal/mono-repo/backend/shared/go-utils"
)

func TestWithRetrySucceedsAfterConflict(t *testing.T) {
	stored := &models.Unit{UnitNumber: "1101", Versioned: models.Versioned{RowVersion: 4}}
	calls := 0

	get := func(ctx context.Context, id string) (*models.Unit, error) {
		cp := *stored
		return &cp, nil
	}
	update := func(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
		calls++
		if calls == 1 {
			return pgconn.CommandTag("UPDATE 0"), nil
		}
		assert.Equal(t, int64(4), expected)
		stored = u
		return pgconn.CommandTag("UPDATE 1"), nil
	}

	err := WithRetry(context.Background(), 3, "u1", get, update, func(u *models.Unit) error {
		u.EntryCode = "4711"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "4711", stored.EntryCode)
	assert.Equal(t, int64(5), stored.RowVersion)
}

func TestWithRetryGivesUp(t *testing.T) {
	get := func(ctx context.Context, id string) (*models.Unit, error) {
		return &models.Unit{}, nil
	}
	update := func(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
		return pgconn.CommandTag("UPDATE 0"), nil
	}

	err := WithRetry(context.Background(), 2, "u1", get, update, func(*models.Unit) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrRowVersionConflict))
}

func TestWithRetryMissingRow(t *testing.T) {
	get := func(ctx context.Context, id string) (*models.Unit, error) { return nil, nil }
	update := func(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
		t.Fatal("update must not run for a missing row")
		return nil, nil
	}

	err := WithRetry(context.Background(), 3, "gone", get, update, func(*models.Unit) error { return nil })
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestWithRetryStopsOnMutateError(t *testing.T) {
	boom := errors.New("boom")
	get := func(ctx context.Context, id string) (*models.Unit, error) { return &models.Unit{}, nil }
	update := func(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
		t.Fatal("update must not run when mutate fails")
		return nil, nil
	}

	err := WithRetry(context.Background(), 3, "u1", get, update, func(*models.Unit) error { return boom })
	assert.ErrorIs(t, err, boom)
}
