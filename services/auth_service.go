package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"healthtracker/logging"
	"healthtracker/metrics"
	"healthtracker/models"
	"healthtracker/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength counts characters, not bytes.
const MinPasswordLength = 6

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Age             *int
	Gender          *string
}

type AuthService struct {
	db       *gorm.DB
	sessions SessionStore
	mailer   utils.Mailer
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, sessions SessionStore, mailer utils.Mailer, ttl time.Duration) *AuthService {
	if mailer == nil {
		mailer = utils.NopMailer{}
	}
	return &AuthService{db: db, sessions: sessions, mailer: mailer, ttl: ttl, now: time.Now}
}

// Register creates an account and returns its id. Uniqueness of username and
// email is left to the unique indexes so there is no check-then-insert race.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (uint, error) {
	if in.Password != in.ConfirmPassword {
		metrics.Registrations.WithLabelValues("validation").Inc()
		return 0, ErrPasswordMismatch
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		metrics.Registrations.WithLabelValues("validation").Inc()
		return 0, ErrPasswordTooShort
	}
	// Username and email are stored exactly as submitted.
	if strings.TrimSpace(in.Username) == "" {
		metrics.Registrations.WithLabelValues("validation").Inc()
		return 0, &ValidationError{Field: "username", Message: "Username is required"}
	}
	if strings.TrimSpace(in.Email) == "" {
		metrics.Registrations.WithLabelValues("validation").Inc()
		return 0, &ValidationError{Field: "email", Message: "Email is required"}
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			metrics.Registrations.WithLabelValues("validation").Inc()
			return 0, ErrPasswordTooLong
		}
		metrics.Registrations.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hashed,
		Age:      in.Age,
		Gender:   in.Gender,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.Registrations.WithLabelValues("duplicate").Inc()
			return 0, ErrDuplicateIdentity
		}
		metrics.Registrations.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("create user: %w", err)
	}
	metrics.Registrations.WithLabelValues("ok").Inc()
	logging.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	if err := s.mailer.SendWelcome(ctx, user.Email, user.Username); err != nil {
		logging.Warn().Err(err).Uint("user_id", user.ID).Msg("welcome mail not sent")
	}
	return user.ID, nil
}

// Login checks the credentials and stores a new session for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.Logins.WithLabelValues("invalid").Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		metrics.Logins.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateRandomToken(32)
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	now := s.now()
	sess := &Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("store session: %w", err)
	}
	metrics.Logins.WithLabelValues("ok").Inc()
	return sess, nil
}

// Logout forgets the session. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Clear(ctx, token)
}

// Resolve maps a token to its live session or ErrUnauthenticated.
func (s *AuthService) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if sess.IsExpired(s.now()) {
		_ = s.sessions.Clear(ctx, token)
		return nil, ErrUnauthenticated
	}
	return sess, nil
}
