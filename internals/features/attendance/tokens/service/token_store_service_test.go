package service

import (
	"database/sql"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	qrservice "absensiku_backend/internals/features/attendance/qr/service"
)

func newStoreWithMock(t *testing.T) (*TokenStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return &TokenStore{DB: gdb, TTL: 5 * time.Minute}, mock, db
}

func testPayload(t *testing.T) (*qrservice.QRPayload, []byte) {
	t.Helper()
	p := &qrservice.QRPayload{
		SessionID: "1b8e7a0e-54f6-4d7a-b6f3-0f2b48c1d9aa",
		Timestamp: time.Now().UnixMilli(),
		Nonce:     "9f86d081884c7d659a2feaa0c55ad015",
		Signature: "a3f1c2d4e5b6978812345678900987654321abcdefabcdefabcdefabcdefabcd",
	}
	raw, err := sonic.Marshal(p)
	require.NoError(t, err)
	return p, raw
}

func tokenRows(raw []byte, createdAt, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"qr_short_token_token",
		"qr_short_token_payload",
		"qr_short_token_created_at",
		"qr_short_token_expires_at",
	}).AddRow("Ab3_x9-Q", raw, createdAt, expiresAt)
}

func TestPut_ReturnsShortURLSafeToken(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	payload, _ := testPayload(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "qr_short_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	token, err := store.Put(payload)
	require.NoError(t, err)

	assert.Len(t, token, 8) // base64url dari 6 byte
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]{8}$`), token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_ResolvesStoredPayload(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	want, raw := testPayload(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM "qr_short_tokens"`).
		WillReturnRows(tokenRows(raw, now, now.Add(5*time.Minute)))

	got, err := store.Get("Ab3_x9-Q")
	require.NoError(t, err)

	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.Timestamp, got.Timestamp)
	assert.Equal(t, want.Nonce, got.Nonce)
	assert.Equal(t, want.Signature, got.Signature)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_UnknownToken(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "qr_short_tokens"`).
		WillReturnRows(sqlmock.NewRows([]string{"qr_short_token_token"}))

	_, err := store.Get("xxxxxxxx")
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_ExpiredToken_IndistinguishableAndDeleted(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	_, raw := testPayload(t)
	created := time.Now().Add(-10 * time.Minute)

	mock.ExpectQuery(`SELECT (.+) FROM "qr_short_tokens"`).
		WillReturnRows(tokenRows(raw, created, created.Add(5*time.Minute)))
	// cleanup best-effort untuk row kadaluarsa
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "qr_short_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := store.Get("Ab3_x9-Q")
	assert.ErrorIs(t, err, ErrTokenNotFound, "token kadaluarsa tidak boleh dibedakan dari token yang tidak pernah ada")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_ConcurrentResolvers(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	const resolvers = 10

	want, raw := testPayload(t)
	now := time.Now()

	mock.MatchExpectationsInOrder(false)
	for i := 0; i < resolvers; i++ {
		mock.ExpectQuery(`SELECT (.+) FROM "qr_short_tokens"`).
			WillReturnRows(tokenRows(raw, now, now.Add(5*time.Minute)))
	}

	var wg sync.WaitGroup
	errs := make(chan error, resolvers)
	for i := 0; i < resolvers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := store.Get("Ab3_x9-Q")
			if err != nil {
				errs <- err
				return
			}
			if got.Signature != want.Signature {
				errs <- ErrTokenNotFound
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("resolve konkuren gagal: %v", err)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_Idempotent(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	// row sudah tidak ada: delete 0 baris tetap sukses
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "qr_short_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.NoError(t, store.Invalidate("Ab3_x9-Q"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepExpired_ReturnsDeletedCount(t *testing.T) {
	store, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "qr_short_tokens"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	count, err := store.SweepExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
