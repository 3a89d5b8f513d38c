package repository_test_test

import (
	"testing"

	"passkey_auth_ms/repository/query_repository"
	"passkey_auth_ms/repository/repository_test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGetUnverifiedByCode_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "email", "verification_code", "is_verified"}).
		AddRow(1, "test@example.com", "abc123", false)

	mock.ExpectQuery(`SELECT \* FROM "password_reset_requests" WHERE verification_code = \$1 AND is_verified = \$2 ORDER BY "password_reset_requests"\."id" LIMIT \$3`).
		WithArgs("abc123", false, 1).
		WillReturnRows(rows)

	repo := query_repository.NewPasswordResetQueryRepository()
	reset, err := repo.GetUnverifiedByCode(conn, "abc123")

	assert.NoError(t, err)
	assert.NotNil(t, reset)
	assert.Equal(t, "test@example.com", reset.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUnverifiedByCode_Consumed_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	// A consumed code no longer matches the unverified predicate
	mock.ExpectQuery(`SELECT \* FROM "password_reset_requests" WHERE verification_code = \$1 AND is_verified = \$2 ORDER BY "password_reset_requests"\."id" LIMIT \$3`).
		WithArgs("used456", false, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := query_repository.NewPasswordResetQueryRepository()
	reset, err := repo.GetUnverifiedByCode(conn, "used456")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, reset)
	assert.NoError(t, mock.ExpectationsWereMet())
}
