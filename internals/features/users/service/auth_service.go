// file: internals/features/users/service/auth_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hoaportal_backend/internals/configs"
	"hoaportal_backend/internals/constants"
	dto "hoaportal_backend/internals/features/users/dto"
	model "hoaportal_backend/internals/features/users/model"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrGoogleTokenInvalid = errors.New("google id token could not be verified")
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Register creates a member account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in dto.RegisterDTO) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.UserEmail))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.User{}).
		Where("user_email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		UserEmail:        email,
		UserFullName:     strings.TrimSpace(in.UserFullName),
		UserPasswordHash: string(hash),
		UserRoles:        []string{constants.RoleMember},
		UserLotNumber:    in.UserLotNumber,
		UserIsActive:     true,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the password and issues a token pair.
func (s *AuthService) Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenPairResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.UserEmail))

	var user model.User
	if err := s.DB.WithContext(ctx).First(&user, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.UserIsActive {
		return nil, ErrAccountInactive
	}
	if user.UserPasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(in.UserPassword)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokenPair(&user)
}

// LoginWithGoogle verifies a Google ID token and logs the matching account
// in (or provisions a member account on first sign-in).
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*dto.TokenPairResponse, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, ErrGoogleTokenInvalid
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil || claimSet.Email == "" {
		return nil, ErrGoogleTokenInvalid
	}
	email := strings.ToLower(claimSet.Email)

	var user model.User
	err = s.DB.WithContext(ctx).First(&user, "user_email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = model.User{
			UserEmail:    email,
			UserFullName: claimSet.Name,
			UserRoles:    []string{constants.RoleMember},
			UserIsActive: true,
		}
		if user.UserFullName == "" {
			user.UserFullName = email
		}
		if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	if !user.UserIsActive {
		return nil, ErrAccountInactive
	}
	return s.issueTokenPair(&user)
}

func (s *AuthService) issueTokenPair(user *model.User) (*dto.TokenPairResponse, error) {
	access, err := signToken(user, configs.JWTSecret, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshSecret := configs.JWTRefreshSecret
	if refreshSecret == "" {
		refreshSecret = configs.JWTSecret
	}
	refresh, err := signToken(user, refreshSecret, refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(*user),
	}, nil
}

func signToken(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID.String(),
		"roles": []string(user.UserRoles),
		"name":  user.UserFullName,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
