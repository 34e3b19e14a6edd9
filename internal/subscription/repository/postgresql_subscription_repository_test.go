package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovationhq/ovation/internal/subscription/domain"
	"github.com/ovationhq/ovation/internal/testutil"
)

func subscriptionColumns() []string {
	return []string{"id", "user_id", "plan_name", "status", "price_cents", "discount_value", "created_at", "updated_at"}
}

func TestPostgreSQLSubscriptionRepository_Create(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLSubscriptionRepository(db)

	subscription := &domain.Subscription{
		ID:            uuid.Must(uuid.NewV7()),
		UserID:        uuid.Must(uuid.NewV7()),
		PlanName:      "gold",
		Status:        domain.StatusActive,
		PriceCents:    5000,
		DiscountValue: 500,
	}

	mock.ExpectExec(`INSERT INTO subscriptions`).
		WithArgs(subscription.ID, subscription.UserID, "gold", domain.StatusActive, int64(5000), int64(500)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), subscription))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLSubscriptionRepository_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLSubscriptionRepository(db)

		id := uuid.Must(uuid.NewV7())
		now := time.Now()
		rows := sqlmock.NewRows(subscriptionColumns()).
			AddRow(id, uuid.Must(uuid.NewV7()), "gold", domain.StatusActive, int64(5000), int64(500), now, now)

		mock.ExpectQuery(`SELECT id, user_id, plan_name, status, price_cents`).
			WithArgs(id).
			WillReturnRows(rows)

		subscription, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "gold", subscription.PlanName)
		assert.EqualValues(t, 500, subscription.DiscountValue)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLSubscriptionRepository(db)

		id := uuid.Must(uuid.NewV7())
		mock.ExpectQuery(`SELECT id, user_id, plan_name, status, price_cents`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(subscriptionColumns()))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
	})
}

func TestPostgreSQLSubscriptionRepository_List(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLSubscriptionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(subscriptionColumns()).
		AddRow(uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), "gold", domain.StatusActive, int64(5000), int64(0), now, now).
		AddRow(uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), "silver", domain.StatusCanceled, int64(3000), int64(0), now, now)

	mock.ExpectQuery(`SELECT id, user_id, plan_name, status, price_cents`).
		WithArgs(0, 50).
		WillReturnRows(rows)

	subscriptions, err := repo.List(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, subscriptions, 2)
	assert.Equal(t, "silver", subscriptions[1].PlanName)
}
