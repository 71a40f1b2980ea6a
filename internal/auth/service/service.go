package service

import (
	"context"
	"errors"
	"time"

	"mediagent_backend/internal/auth/password"
	"mediagent_backend/internal/auth/repository"
	"mediagent_backend/internal/auth/token"
	"mediagent_backend/internal/events"
	"mediagent_backend/platform/config"
	"mediagent_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrEmailNotVerified = errors.New("email not verified")
var ErrEmailTaken = errors.New("email already registered")

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

func (s *Service) SignUp(ctx context.Context, email, plainPassword string) error {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	user, err := s.repo.CreateUser(ctx, email, hash)
	if err != nil {
		return err
	}

	verifyToken, err := token.GenerateRandomToken(32)
	if err != nil {
		return err
	}

	verifyHash := token.HashSHA256(verifyToken)
	expiresAt := time.Now().Add(s.cfg.GetVerifyTokenTTL())
	if err := s.repo.CreateUserToken(ctx, user.ID, verifyHash, repository.TokenTypeEmailVerify, expiresAt); err != nil {
		return err
	}

	s.log.AuthEvent("sign_up", user.Email, true, "")
	s.bus.Publish(ctx, events.UserSignedUp{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      user.ID,
		Email:       user.Email,
		VerifyToken: verifyToken,
	})
	s.bus.Publish(ctx, events.EmailVerificationRequested{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      user.ID,
		Email:       user.Email,
		VerifyToken: verifyToken,
	})

	return nil
}

func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return "", "", ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false, "bad password")
		return "", "", ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return "", "", ErrEmailNotVerified
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return s.issueTokens(ctx, user.ID)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return "", "", ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return "", "", ErrTokenExpired
	}

	_ = s.repo.RevokeRefreshToken(ctx, hash)
	return s.issueTokens(ctx, userID)
}

func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Do not leak account existence.
		return nil
	}

	resetToken, err := token.GenerateRandomToken(32)
	if err != nil {
		return err
	}

	resetHash := token.HashSHA256(resetToken)
	expiresAt := time.Now().Add(s.cfg.GetResetTokenTTL())
	if err := s.repo.CreateUserToken(ctx, user.ID, resetHash, repository.TokenTypePasswordReset, expiresAt); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.PasswordResetRequested{
		BaseEvent:  events.NewBaseEvent(),
		UserID:     user.ID,
		Email:      user.Email,
		ResetToken: resetToken,
	})

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	hash := token.HashSHA256(rawToken)
	userID, expiresAt, err := s.repo.GetUserToken(ctx, hash, repository.TokenTypePasswordReset)
	if err != nil {
		return ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		return ErrTokenExpired
	}

	passwordHash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	_ = s.repo.UseUserToken(ctx, hash, repository.TokenTypePasswordReset)
	_ = s.repo.RevokeAllRefreshTokens(ctx, userID)

	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, rawToken string) error {
	hash := token.HashSHA256(rawToken)
	userID, expiresAt, err := s.repo.GetUserToken(ctx, hash, repository.TokenTypeEmailVerify)
	if err != nil {
		return ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		return ErrTokenExpired
	}

	if err := s.repo.MarkEmailVerified(ctx, userID); err != nil {
		return err
	}

	_ = s.repo.UseUserToken(ctx, hash, repository.TokenTypeEmailVerify)
	return nil
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID) (string, string, error) {
	accessToken, err := s.signJWT(userID, s.cfg.GetAccessTokenTTL(), accessTokenType, s.cfg.GetJWTAccessSecret())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return "", "", err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, userID, hash, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *Service) signJWT(userID uuid.UUID, ttl time.Duration, tokenType, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"type": tokenType,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(secret))
}
