package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bankmore/transfers/pkg/dto"
	repo "github.com/bankmore/transfers/pkg/repository/idempotency"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	records := repository{db: db}

	hash := "request-hash"
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "idempotency_records" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := records.Create(context.Background(), dto.IdempotencyCreate{
		ID:          uuid.New(),
		RequestHash: &hash,
		Result:      "none",
	})
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func TestRepository_GetByRequest(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	records := repository{db: db}

	id := uuid.New()
	hash := "request-hash"
	rows := sqlmock.NewRows([]string{"id", "request_hash", "result", "created_at", "updated_at"}).
		AddRow(id, hash, "done", time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "idempotency_records" WHERE request_hash = \$1 ORDER BY "idempotency_records"\."id" LIMIT \$2`).
		WithArgs(hash, 1).WillReturnRows(rows)

	read, err := records.GetByRequest(context.Background(), hash)
	require.NoError(err)
	assert.Equal(id, read.ID)
	require.NotNil(read.RequestHash)
	assert.Equal(hash, *read.RequestHash)
	assert.Equal("done", read.Result)
}

func TestRepository_GetByRequest_NotFound(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	records := repository{db: db}

	mock.ExpectQuery(`SELECT \* FROM "idempotency_records" WHERE request_hash = \$1 ORDER BY "idempotency_records"\."id" LIMIT \$2`).
		WithArgs("missing", 1).WillReturnError(gorm.ErrRecordNotFound)

	read, err := records.GetByRequest(context.Background(), "missing")
	require.Nil(read)
	require.ErrorIs(err, repo.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	records := repository{db: db}

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "idempotency_records" SET (.+) WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := records.Update(context.Background(), id, dto.IdempotencyUpdate{Result: "done"})
	require.NoError(err)
}

func TestRepository_Update_NotFound(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	records := repository{db: db}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "idempotency_records" SET (.+) WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := records.Update(context.Background(), uuid.New(), dto.IdempotencyUpdate{Result: "failed"})
	require.ErrorIs(err, repo.ErrNotFound)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "idempotency_records" SET (.+) WHERE id = \$\d`).
		WillReturnError(errors.New("update error"))
	mock.ExpectRollback()

	err = records.Update(context.Background(), uuid.New(), dto.IdempotencyUpdate{Result: "failed"})
	require.Error(err)
	require.NotErrorIs(err, repo.ErrNotFound)
}
