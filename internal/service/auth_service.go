package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  *repository.UserRepository
	email  *EmailService
	cfg    *config.Config
	logger *zap.Logger
}

func NewAuthService(users *repository.UserRepository, email *EmailService, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, email: email, cfg: cfg, logger: logger}
}

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"max=150"`
}

// Register creates a user with the default role and hashed password.
func (s *AuthService) Register(input *RegisterInput) (*model.User, error) {
	taken, err := s.users.ExistsByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUsernameTaken
	}
	if _, err := s.users.FindByEmail(input.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !isNotFound(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	roles, err := s.users.FindRolesByNames([]string{model.RoleUser})
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		FullName: input.FullName,
		Roles:    roles,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Login checks credentials against username or email and issues a JWT.
// A locked account is rejected before the password is even examined.
func (s *AuthService) Login(input *LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByUsername(input.Username)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		user, err = s.users.FindByEmail(input.Username)
		if err != nil {
			if isNotFound(err) {
				return nil, util.ErrInvalidCredentials
			}
			return nil, err
		}
	}

	if user.Locked {
		return nil, util.ErrAccountLocked
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.Issuer, s.cfg.JWT.Audience, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.JWT.ExpireTime),
		User:      user,
	}, nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (s *AuthService) ChangePassword(userID uint, input *ChangePasswordInput) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return util.ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
		return util.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.users.Update(user)
}

// ForgotPassword mails a reset token to the address when it belongs to an
// account. An unknown address is reported as success so the endpoint cannot be
// used to probe for registered mails.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if isNotFound(err) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := util.GenerateRandomString(32)
	if token == "" {
		return fmt.Errorf("generate reset token")
	}
	hash := HashResetToken(token)
	expires := time.Now().Add(time.Hour)
	user.ResetTokenHash = hash
	user.ResetTokenExpiresAt = &expires
	if err := s.users.Update(user); err != nil {
		return err
	}

	body := BuildResetMessage(user.FullName, user.Email, token, s.cfg.Frontend.ResetPasswordURL)
	return s.email.Send(user.Email, "Password reset request", body)
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ResetPassword consumes an outstanding reset token. The token is single use;
// it is cleared whether or not the password write succeeds downstream.
func (s *AuthService) ResetPassword(input *ResetPasswordInput) error {
	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		if isNotFound(err) {
			return util.ErrResetTokenInvalid
		}
		return err
	}

	if user.ResetTokenHash == "" || user.ResetTokenExpiresAt == nil ||
		time.Now().After(*user.ResetTokenExpiresAt) ||
		user.ResetTokenHash != HashResetToken(input.Token) {
		return util.ErrResetTokenInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	return s.users.Update(user)
}

// HashResetToken maps a raw reset token to its stored form.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
