package repository_test_test

import (
	"testing"

	"passkey_auth_ms/repository/command_repository"
	"passkey_auth_ms/repository/repository_test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUpdateAfterLogin_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)
	credID := []byte{0x01, 0x02, 0x03}

	// The counter update is conditional, so a replayed assertion with an old
	// counter matches zero rows instead of overwriting the stored value
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "user_authenticators" SET .+ WHERE credential_id = \$4 AND sign_count < \$5`).
		WithArgs(sqlmock.AnyArg(), 7, sqlmock.AnyArg(), credID, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := command_repository.NewAuthenticatorCommandRepository()
	err := repo.UpdateAfterLogin(conn, credID, 7)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAfterLogin_StaleCounter_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)
	credID := []byte{0x01, 0x02, 0x03}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "user_authenticators" SET .+ WHERE credential_id = \$4 AND sign_count < \$5`).
		WithArgs(sqlmock.AnyArg(), 3, sqlmock.AnyArg(), credID, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := command_repository.NewAuthenticatorCommandRepository()
	err := repo.UpdateAfterLogin(conn, credID, 3)

	assert.ErrorIs(t, err, command_repository.ErrStaleSignCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAfterLogin_ZeroCounter_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)
	credID := []byte{0x01, 0x02, 0x03}

	// Counterless authenticators report 0 forever; only last_used_at moves
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "user_authenticators" SET "last_used_at"=\$1,"updated_at"=\$2 WHERE credential_id = \$3`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), credID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := command_repository.NewAuthenticatorCommandRepository()
	err := repo.UpdateAfterLogin(conn, credID, 0)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRename_OwnerScoped_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	// The owner id is part of the predicate, so renaming someone else's
	// passkey matches zero rows
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "user_authenticators" SET "name"=\$1,"updated_at"=\$2 WHERE id = \$3 AND user_id = \$4`).
		WithArgs("My Yubikey", sqlmock.AnyArg(), 5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := command_repository.NewAuthenticatorCommandRepository()
	affected, err := repo.Rename(conn, 5, 2, "My Yubikey")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_OwnerScoped_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_authenticators" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := command_repository.NewAuthenticatorCommandRepository()
	affected, err := repo.Delete(conn, 5, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
