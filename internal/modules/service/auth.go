package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arcadehq/arcade/internal/config"
	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/repo"
	"github.com/arcadehq/arcade/internal/pkg/utils/secrets"
	"github.com/arcadehq/arcade/internal/pkg/utils/tokens"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginOutput, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*model.User, error)
	EnsureDefaultAdmin(ctx context.Context) error
}

type authService struct {
	users repo.UserRepo
	rdb   *redis.Client
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthService(users repo.UserRepo, rdb *redis.Client, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{users: users, rdb: rdb, cfg: cfg, log: log}
}

type LoginOutput struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

func sessionKey(digest string) string { return "session:" + digest }

func (s *authService) sessionTTL() time.Duration {
	return time.Duration(s.cfg.Auth.SessionTTLMin) * time.Minute
}

// Login verifies the password and mints a bearer token. Only the HMAC digest
// of the token secret is stored server side.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := secrets.VerifyPassword(password, s.cfg.Auth.SecretPepper, user.PasswordPHC)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	secret, err := tokens.NewSessionSecret()
	if err != nil {
		return nil, err
	}
	digest := tokens.HMAC256Hex(s.cfg.Auth.SecretPepper, secret)
	ttl := s.sessionTTL()
	if err := s.rdb.Set(ctx, sessionKey(digest), user.ID.String(), ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.log.Info("admin logged in", zap.String("username", user.Username))
	return &LoginOutput{
		Token:     s.cfg.Auth.SessionTokenPrefix + secret,
		ExpiresAt: time.Now().Add(ttl),
		User:      user,
	}, nil
}

func (s *authService) Logout(ctx context.Context, rawToken string) error {
	secret, ok := tokens.ParseToken(rawToken, s.cfg.Auth.SessionTokenPrefix)
	if !ok {
		return ErrUnauthorized
	}
	digest := tokens.HMAC256Hex(s.cfg.Auth.SecretPepper, secret)
	return s.rdb.Del(ctx, sessionKey(digest)).Err()
}

// Authenticate resolves a bearer token to its user and slides the session TTL.
func (s *authService) Authenticate(ctx context.Context, rawToken string) (*model.User, error) {
	secret, ok := tokens.ParseToken(rawToken, s.cfg.Auth.SessionTokenPrefix)
	if !ok {
		return nil, ErrUnauthorized
	}
	digest := tokens.HMAC256Hex(s.cfg.Auth.SecretPepper, secret)

	raw, err := s.rdb.Get(ctx, sessionKey(digest)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	_ = s.rdb.Expire(ctx, sessionKey(digest), s.sessionTTL()).Err()
	return user, nil
}

// EnsureDefaultAdmin seeds the configured admin account on an empty install.
func (s *authService) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := s.users.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if s.cfg.Auth.DefaultAdminUser == "" || s.cfg.Auth.DefaultAdminPassword == "" {
		s.log.Warn("no admin accounts exist and no default admin is configured")
		return nil
	}

	phc, err := secrets.HashPassword(s.cfg.Auth.DefaultAdminPassword, s.cfg.Auth.SecretPepper)
	if err != nil {
		return err
	}
	user := &model.User{
		Username:    s.cfg.Auth.DefaultAdminUser,
		Email:       s.cfg.Auth.DefaultAdminEmail,
		PasswordPHC: phc,
		IsAdmin:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.log.Info("seeded default admin account", zap.String("username", user.Username))
	return nil
}
