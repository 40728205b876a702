package postgres

import (
	"context"
	"testing"
	"time"

	"identity-service/app/domain"
	"identity-service/app/utils/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOtpRepository(t *testing.T) (*OtpRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewOtpRepository(mockDB, testLogger).(*OtpRepository)

	return repo, mockDB
}

func createTestOtpRecord(t *testing.T) *domain.OtpRecord {
	t.Helper()

	record, err := domain.NewOtpRecord("+819012345678", "bcrypt-digest", 5*time.Minute)
	require.NoError(t, err)

	return record
}

func otpColumns() []string {
	return []string{"id", "identifier", "code_digest", "created_at", "expires_at"}
}

func TestOtpRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		setupDB func(pgxmock.PgxPoolIface, *domain.OtpRecord)
		wantErr bool
	}{
		{
			name: "successful record creation",
			setupDB: func(mockDB pgxmock.PgxPoolIface, record *domain.OtpRecord) {
				mockDB.ExpectExec("INSERT INTO otp_records").
					WithArgs(
						record.ID,
						record.Identifier,
						record.CodeDigest,
						record.CreatedAt,
						record.ExpiresAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "database error",
			setupDB: func(mockDB pgxmock.PgxPoolIface, record *domain.OtpRecord) {
				mockDB.ExpectExec("INSERT INTO otp_records").
					WithArgs(
						record.ID,
						record.Identifier,
						record.CodeDigest,
						record.CreatedAt,
						record.ExpiresAt,
					).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestOtpRepository(t)
			defer mockDB.Close()

			record := createTestOtpRecord(t)
			tt.setupDB(mockDB, record)

			err := repo.Create(context.Background(), record)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestOtpRepository_GetLatestActive(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		setupDB      func(pgxmock.PgxPoolIface, *domain.OtpRecord)
		wantErr      bool
		expectRecord bool
	}{
		{
			name: "active record found",
			setupDB: func(mockDB pgxmock.PgxPoolIface, record *domain.OtpRecord) {
				mockDB.ExpectQuery("SELECT (.+) FROM otp_records").
					WithArgs(record.Identifier, now).
					WillReturnRows(pgxmock.NewRows(otpColumns()).
						AddRow(record.ID, record.Identifier, record.CodeDigest, record.CreatedAt, record.ExpiresAt))
			},
			expectRecord: true,
		},
		{
			name: "no active record returns nil without error",
			setupDB: func(mockDB pgxmock.PgxPoolIface, record *domain.OtpRecord) {
				mockDB.ExpectQuery("SELECT (.+) FROM otp_records").
					WithArgs(record.Identifier, now).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "database error",
			setupDB: func(mockDB pgxmock.PgxPoolIface, record *domain.OtpRecord) {
				mockDB.ExpectQuery("SELECT (.+) FROM otp_records").
					WithArgs(record.Identifier, now).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestOtpRepository(t)
			defer mockDB.Close()

			record := createTestOtpRecord(t)
			tt.setupDB(mockDB, record)

			found, err := repo.GetLatestActive(context.Background(), record.Identifier, now)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, found)
			} else if tt.expectRecord {
				assert.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, record.ID, found.ID)
				assert.Equal(t, record.CodeDigest, found.CodeDigest)
			} else {
				assert.NoError(t, err)
				assert.Nil(t, found)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestOtpRepository_Delete(t *testing.T) {
	tests := []struct {
		name        string
		setupDB     func(pgxmock.PgxPoolIface, uuid.UUID)
		wantErr     bool
		wantDeleted bool
	}{
		{
			name: "row deleted",
			setupDB: func(mockDB pgxmock.PgxPoolIface, id uuid.UUID) {
				mockDB.ExpectExec("DELETE FROM otp_records").
					WithArgs(id).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			wantDeleted: true,
		},
		{
			name: "row already consumed",
			setupDB: func(mockDB pgxmock.PgxPoolIface, id uuid.UUID) {
				mockDB.ExpectExec("DELETE FROM otp_records").
					WithArgs(id).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
		},
		{
			name: "database error",
			setupDB: func(mockDB pgxmock.PgxPoolIface, id uuid.UUID) {
				mockDB.ExpectExec("DELETE FROM otp_records").
					WithArgs(id).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestOtpRepository(t)
			defer mockDB.Close()

			id := uuid.New()
			tt.setupDB(mockDB, id)

			deleted, err := repo.Delete(context.Background(), id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantDeleted, deleted)
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestOtpRepository_DeleteExpired(t *testing.T) {
	repo, mockDB := createTestOtpRepository(t)
	defer mockDB.Close()

	now := time.Now()
	mockDB.ExpectExec("DELETE FROM otp_records").
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	count, err := repo.DeleteExpired(context.Background(), now)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
