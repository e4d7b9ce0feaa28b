package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cppla/threadbbs/models"
	"github.com/cppla/threadbbs/utils"
)

// dummyHash is compared against on unknown emails so login timing does not
// reveal which addresses are registered.
var dummyHash, _ = utils.HashPassword("threadbbs-dummy-password")

// AuthService handles registration, login and logout.
type AuthService struct {
	db      *gorm.DB
	tokens  *utils.TokenManager
	revoker utils.TokenRevoker
}

// NewAuthService builds an AuthService. revoker may be nil, in which case
// logout is acknowledged without revoking the token.
func NewAuthService(db *gorm.DB, tokens *utils.TokenManager, revoker utils.TokenRevoker) *AuthService {
	return &AuthService{db: db, tokens: tokens, revoker: revoker}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Register creates a user and issues a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&existing).Error; err != nil {
		return nil, utils.Internal(50010, "failed to check user", err)
	}
	if existing > 0 {
		return nil, ErrUserExists
	}

	hash, err := utils.HashPassword(in.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, utils.Internal(50011, "failed to hash password", err)
	}

	user := models.User{Email: email, Username: username, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// a concurrent registration may win between the check and the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, utils.Internal(50012, "failed to create user", err)
	}
	return s.issue(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = utils.CheckPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, utils.Internal(50013, "failed to load user", err)
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (*UserView, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, utils.Internal(50014, "failed to load user", err)
	}
	view := toUserView(user)
	return &view, nil
}

// Logout revokes token until its expiry when a revoker is configured.
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if s.revoker == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, token, expiresAt); err != nil {
		return utils.Internal(50015, "failed to revoke token", err)
	}
	return nil
}

func (s *AuthService) issue(user models.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, utils.Internal(50016, "failed to generate token", err)
	}
	return &AuthResult{User: toUserView(user), Token: token}, nil
}
