// file: internals/features/users/service/auth_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hoaportal_backend/internals/configs"
	dto "hoaportal_backend/internals/features/users/dto"
	model "hoaportal_backend/internals/features/users/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE users (
		user_id TEXT PRIMARY KEY,
		user_email TEXT NOT NULL,
		user_full_name TEXT NOT NULL,
		user_password_hash TEXT NOT NULL DEFAULT '',
		user_roles TEXT,
		user_lot_number TEXT,
		user_is_billing_contact NUMERIC NOT NULL DEFAULT false,
		user_is_active NUMERIC NOT NULL DEFAULT true,
		user_created_at DATETIME NOT NULL,
		user_updated_at DATETIME NOT NULL,
		user_deleted_at DATETIME
	)`).Error)
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	configs.JWTSecret = "test-secret"
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	lot := "A-17"
	user, err := svc.Register(ctx, dto.RegisterDTO{
		UserEmail:     "Pat@Example.com",
		UserFullName:  "Pat Homeowner",
		UserPassword:  "hunter2hunter2",
		UserLotNumber: &lot,
	})
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", user.UserEmail)
	assert.Equal(t, []string{"member"}, []string(user.UserRoles))
	assert.NotEqual(t, "hunter2hunter2", user.UserPasswordHash)

	pair, err := svc.Login(ctx, dto.LoginDTO{
		UserEmail:    "pat@example.com",
		UserPassword: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.UserID, pair.User.UserID)

	// The access token carries the subject and role claims the middleware
	// reads back out.
	token, err := jwt.Parse(pair.AccessToken, func(tok *jwt.Token) (any, error) {
		return []byte(configs.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.UserID.String(), claims["sub"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	configs.JWTSecret = "test-secret"
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterDTO{
		UserEmail:    "pat@example.com",
		UserFullName: "Pat Homeowner",
		UserPassword: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterDTO{
		UserEmail:    "PAT@example.com",
		UserFullName: "Other Pat",
		UserPassword: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	configs.JWTSecret = "test-secret"
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterDTO{
		UserEmail:    "pat@example.com",
		UserFullName: "Pat Homeowner",
		UserPassword: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginDTO{
		UserEmail:    "pat@example.com",
		UserPassword: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginDTO{
		UserEmail:    "nobody@example.com",
		UserPassword: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	configs.JWTSecret = "test-secret"
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterDTO{
		UserEmail:    "pat@example.com",
		UserFullName: "Pat Homeowner",
		UserPassword: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.User{}).
		Where("user_id = ?", user.UserID).
		Update("user_is_active", false).Error)

	_, err = svc.Login(ctx, dto.LoginDTO{
		UserEmail:    "pat@example.com",
		UserPassword: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrAccountInactive)
}
