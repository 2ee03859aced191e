package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/14kear/online_polls/internal/storage"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewWithDB(db)
	s.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return s, mock
}

func TestSaveUser_PostgresUniqueViolation(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("bob", []byte("hash"), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := s.SaveUser(context.Background(), "bob", []byte("hash"), []string{"polls.add_poll"})
	require.ErrorIs(t, err, storage.ErrUserAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUser_RollbackOnPermissionError(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("bob", []byte("hash"), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_permissions")).
		WithArgs(int64(7), "polls.add_poll").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := s.SaveUser(context.Background(), "bob", []byte("hash"), []string{"polls.add_poll"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveVote_PostgresUniqueViolation(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO votes")).
		WithArgs(int64(1), int64(2), int64(3), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := s.SaveVote(context.Background(), 1, 2, 3)
	require.ErrorIs(t, err, storage.ErrVoteAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveVote_OtherPostgresError(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO votes")).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := s.SaveVote(context.Background(), 1, 2, 3)
	require.Error(t, err)
	assert.False(t, errors.Is(err, storage.ErrVoteAlreadyExists))
}

func TestPoll_DriverError(t *testing.T) {
	s, mock := newMockStorage(t)

	driverErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, text, pub_date, active, owner_id FROM polls")).
		WithArgs(int64(7)).
		WillReturnError(driverErr)

	_, err := s.Poll(context.Background(), 7)
	require.ErrorIs(t, err, driverErr)
	assert.Contains(t, err.Error(), "storage.sqlstore.Poll")
}

func TestSavePollWithChoices_RollbackOnChoiceError(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO polls")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO choices")).
		WithArgs(int64(5), "Go").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO choices")).
		WithArgs(int64(5), "Rust").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := s.SavePollWithChoices(context.Background(), "Best Language?", time.Now(), 1, []string{"Go", "Rust"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivatePoll_RowsAffected(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE polls SET active")).
		WithArgs(false, int64(3), true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := s.DeactivatePoll(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, changed)
	require.NoError(t, mock.ExpectationsWereMet())
}
