package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	autherrors "go-timetrack/internal/auth/errors"
	"go-timetrack/internal/employee"
	"go-timetrack/internal/security"
	"go-timetrack/internal/token"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	findLoginCandidateForUpdateFn func(ctx context.Context, email string) (*employee.Employee, error)
	findByIDForUpdateFn           func(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
	findBySubjectFn               func(ctx context.Context, id uuid.UUID, email string) (*employee.Employee, error)
	setFingerprintFn              func(ctx context.Context, id uuid.UUID, fingerprint *string) error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeRepo) FindLoginCandidateForUpdate(ctx context.Context, email string) (*employee.Employee, error) {
	return f.findLoginCandidateForUpdateFn(ctx, email)
}
func (f *fakeRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	return f.findByIDForUpdateFn(ctx, id)
}
func (f *fakeRepo) FindBySubject(ctx context.Context, id uuid.UUID, email string) (*employee.Employee, error) {
	return f.findBySubjectFn(ctx, id, email)
}
func (f *fakeRepo) SetFingerprint(ctx context.Context, id uuid.UUID, fingerprint *string) error {
	return f.setFingerprintFn(ctx, id, fingerprint)
}

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

func activatedAccount(t *testing.T, passwords *security.PasswordManager, password string) *employee.Employee {
	t.Helper()
	hash, err := passwords.Hash(password)
	assert.NoError(t, err)
	return &employee.Employee{
		ID:           uuid.New(),
		Name:         "Dana Reyes",
		Email:        "dana@example.com",
		IsActive:     true,
		IsActivated:  true,
		PasswordHash: &hash,
	}
}

func TestService_LoginAuthenticateLogout(t *testing.T) {
	gdb, mock := newGormMock(t)
	tokens := token.NewManager("test-secret", time.Hour)
	passwords := security.NewPasswordManager()

	account := activatedAccount(t, passwords, "Sup3rSecret")
	repo := &fakeRepo{
		findLoginCandidateForUpdateFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			assert.Equal(t, account.Email, email)
			return account, nil
		},
		findByIDForUpdateFn: func(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
			return account, nil
		},
		findBySubjectFn: func(ctx context.Context, id uuid.UUID, email string) (*employee.Employee, error) {
			return account, nil
		},
		setFingerprintFn: func(ctx context.Context, id uuid.UUID, fingerprint *string) error {
			account.SessionFingerprint = fingerprint
			return nil
		},
	}
	svc := NewService(gdb, repo, tokens, passwords)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	accessToken, err := svc.Login(ctx, account.Email, "Sup3rSecret")
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotNil(t, account.SessionFingerprint)

	authed, err := svc.Authenticate(ctx, accessToken)
	assert.NoError(t, err)
	assert.Equal(t, account.ID, authed.ID)

	mock.ExpectBegin()
	mock.ExpectCommit()
	assert.NoError(t, svc.Logout(ctx, account.ID))
	assert.Nil(t, account.SessionFingerprint)

	// The token is dead the moment the fingerprint is cleared.
	_, err = svc.Authenticate(ctx, accessToken)
	assert.True(t, errors.Is(err, autherrors.ErrTokenRevoked))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Login_SecondLoginRevokesFirstToken(t *testing.T) {
	gdb, mock := newGormMock(t)
	tokens := token.NewManager("test-secret", time.Hour)
	passwords := security.NewPasswordManager()

	account := activatedAccount(t, passwords, "Sup3rSecret")
	repo := &fakeRepo{
		findLoginCandidateForUpdateFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			return account, nil
		},
		findBySubjectFn: func(ctx context.Context, id uuid.UUID, email string) (*employee.Employee, error) {
			return account, nil
		},
		setFingerprintFn: func(ctx context.Context, id uuid.UUID, fingerprint *string) error {
			account.SessionFingerprint = fingerprint
			return nil
		},
	}
	svc := NewService(gdb, repo, tokens, passwords)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.Login(ctx, account.Email, "Sup3rSecret")
	assert.NoError(t, err)

	// Issued tokens embed an expiry timestamp; a second issue in the same
	// second would be byte-identical, so force a distinct token.
	time.Sleep(1100 * time.Millisecond)

	mock.ExpectBegin()
	mock.ExpectCommit()
	second, err := svc.Login(ctx, account.Email, "Sup3rSecret")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = svc.Authenticate(ctx, first)
	assert.True(t, errors.Is(err, autherrors.ErrTokenRevoked))

	authed, err := svc.Authenticate(ctx, second)
	assert.NoError(t, err)
	assert.Equal(t, account.ID, authed.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	gdb, mock := newGormMock(t)
	passwords := security.NewPasswordManager()
	account := activatedAccount(t, passwords, "Sup3rSecret")

	repo := &fakeRepo{
		findLoginCandidateForUpdateFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			return account, nil
		},
	}
	svc := NewService(gdb, repo, token.NewManager("test-secret", time.Hour), passwords)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Login(context.Background(), account.Email, "wrong")
	assert.True(t, errors.Is(err, autherrors.ErrInvalidCredentials))
}

func TestService_Login_UnknownOrNotActivated(t *testing.T) {
	gdb, mock := newGormMock(t)

	repo := &fakeRepo{
		findLoginCandidateForUpdateFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(gdb, repo, token.NewManager("test-secret", time.Hour), security.NewPasswordManager())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.True(t, errors.Is(err, autherrors.ErrInvalidCredentials))
}

func TestService_Login_PasswordNotSet(t *testing.T) {
	gdb, mock := newGormMock(t)

	account := &employee.Employee{ID: uuid.New(), Email: "new@example.com", IsActive: true, IsActivated: true}
	repo := &fakeRepo{
		findLoginCandidateForUpdateFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			return account, nil
		},
	}
	svc := NewService(gdb, repo, token.NewManager("test-secret", time.Hour), security.NewPasswordManager())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Login(context.Background(), account.Email, "whatever")
	assert.True(t, errors.Is(err, autherrors.ErrPasswordNotSet))
}

func TestService_Authenticate_GarbageToken(t *testing.T) {
	gdb, _ := newGormMock(t)
	svc := NewService(gdb, &fakeRepo{}, token.NewManager("test-secret", time.Hour), security.NewPasswordManager())

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
