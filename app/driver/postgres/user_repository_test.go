package postgres

import (
	"context"
	"testing"

	"identity-service/app/domain"
	"identity-service/app/utils/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUserRepository(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewUserRepository(mockDB, testLogger).(*UserRepository)

	return repo, mockDB
}

func createTestEmailUser(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUserWithEmail("alice@example.com")
	require.NoError(t, err)

	return user
}

func userColumns() []string {
	return []string{"id", "email", "phone", "password_digest", "created_at", "updated_at"}
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		setupDB func(pgxmock.PgxPoolIface, *domain.User)
		wantErr bool
	}{
		{
			name: "successful user creation",
			setupDB: func(mockDB pgxmock.PgxPoolIface, user *domain.User) {
				mockDB.ExpectExec("INSERT INTO users").
					WithArgs(
						user.ID,
						user.Email,
						user.Phone,
						user.PasswordDigest,
						user.CreatedAt,
						user.UpdatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "database error",
			setupDB: func(mockDB pgxmock.PgxPoolIface, user *domain.User) {
				mockDB.ExpectExec("INSERT INTO users").
					WithArgs(
						user.ID,
						user.Email,
						user.Phone,
						user.PasswordDigest,
						user.CreatedAt,
						user.UpdatedAt,
					).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestUserRepository(t)
			defer mockDB.Close()

			user := createTestEmailUser(t)
			tt.setupDB(mockDB, user)

			err := repo.Create(context.Background(), user)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		setupDB    func(pgxmock.PgxPoolIface)
		wantErr    bool
		expectUser bool
	}{
		{
			name:  "user found",
			email: "alice@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				user := createTestEmailUser(t)
				mockDB.ExpectQuery("SELECT (.+) FROM users").
					WithArgs("alice@example.com").
					WillReturnRows(pgxmock.NewRows(userColumns()).
						AddRow(user.ID, user.Email, user.Phone, user.PasswordDigest, user.CreatedAt, user.UpdatedAt))
			},
			expectUser: true,
		},
		{
			name:  "user not found returns nil without error",
			email: "missing@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT (.+) FROM users").
					WithArgs("missing@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:  "database error",
			email: "alice@example.com",
			setupDB: func(mockDB pgxmock.PgxPoolIface) {
				mockDB.ExpectQuery("SELECT (.+) FROM users").
					WithArgs("alice@example.com").
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestUserRepository(t)
			defer mockDB.Close()

			tt.setupDB(mockDB)

			user, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else if tt.expectUser {
				assert.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, user.Email)
				assert.Equal(t, tt.email, *user.Email)
			} else {
				assert.NoError(t, err)
				assert.Nil(t, user)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	user := createTestEmailUser(t)
	mockDB.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(user.ID).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(user.ID, user.Email, user.Phone, user.PasswordDigest, user.CreatedAt, user.UpdatedAt))

	found, err := repo.GetByID(context.Background(), user.ID)

	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_GetByPhone(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	defer mockDB.Close()

	user, err := domain.NewUserWithPhone("+819012345678")
	require.NoError(t, err)
	user.ID = uuid.New()

	mockDB.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("+819012345678").
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(user.ID, user.Email, user.Phone, user.PasswordDigest, user.CreatedAt, user.UpdatedAt))

	found, err := repo.GetByPhone(context.Background(), "+819012345678")

	assert.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.Phone)
	assert.Equal(t, "+819012345678", *found.Phone)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
