package dao

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserDAO_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "email", "password", "name", "role", "has_profile", "profile_mobile", "created_at", "updated_at"}).
			AddRow(2, "member@club.com", "hash", "John Doe", "member", true, "9876543210", now, now)
		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(rows)

		user, err := NewUserDAO(db).FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(2), user.ID)
		assert.Equal(t, "member@club.com", user.Email)
		assert.True(t, user.HasProfile)
		assert.Equal(t, "9876543210", user.Profile.Mobile)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewUserDAO(db).FindByID(ctx, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserDAO_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).AddRow(1, "admin@club.com", "admin"))

	user, err := NewUserDAO(db).FindByEmail(context.Background(), "Admin@Club.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
}

func TestUserDAO_Insert_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(&pgconn.PgError{
		Code:    pgerrcode.UniqueViolation,
		Message: `duplicate key value violates unique constraint "uni_users_email"`,
	})

	_, err := NewUserDAO(db).Insert(context.Background(), User{Email: "member@club.com", Password: "x", Name: "John"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestApplicationDAO_FindByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "sport", "status", "payment_status", "membership_type", "membership_fee", "form_data", "submitted_at", "updated_at"}).
		AddRow("a1", 2, "golf", "pending", "pending", "railway", 50000, []byte(`{}`), now, now).
		AddRow("a2", 2, "tennis", "approved", nil, "outsider", 30000, []byte(`{}`), now.Add(time.Minute), now)
	mock.ExpectQuery(`SELECT \* FROM "applications" WHERE user_id = \$1 ORDER BY submitted_at ASC, id ASC`).
		WillReturnRows(rows)

	apps, err := NewApplicationDAO(db).FindByUserID(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "a1", apps[0].ID)
	require.NotNil(t, apps[0].PaymentStatus)
	assert.Equal(t, "pending", *apps[0].PaymentStatus)
	assert.Nil(t, apps[1].PaymentStatus)
	assert.Equal(t, int64(30000), apps[1].MembershipFee)
}

func TestApplicationDAO_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "applications"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewApplicationDAO(db).FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApplicationDAO_UpdateStatus_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "applications" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := NewApplicationDAO(db).UpdateStatus(context.Background(), Application{ID: "missing", Status: "approved"})
	assert.ErrorIs(t, err, ErrApplicationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
