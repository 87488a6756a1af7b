package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AkaashSamson/Devnovate-Blogs/internal/models"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/pkg/log"
	"github.com/AkaashSamson/Devnovate-Blogs/internal/storage"
)

// bcryptCost чуть выше дефолта: регистрация — редкая операция.
const bcryptCost = 12

const minPasswordLen = 8

// AuthResult — результат регистрации/входа: пользователь и подписанный токен.
type AuthResult struct {
	User  models.User
	Token string
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - name не пустое (после TrimSpace);
//   - email валиден по RFC 5322 и нормализуется (lowercase);
//   - пароль не короче minPasswordLen.
//
// Поведение/ошибки:
//   - ErrEmailTaken — email уже зарегистрирован;
//   - ErrInternal/ErrTimeout — ошибки стораджа.
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	const op = "service/auth/Register"

	lg := log.From(ctx).With("op", op)

	name = strings.TrimSpace(name)
	if name == "" {
		lg.Warn("invalid argument: empty name")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	normEmail, err := normalizeEmail(email)
	if err != nil {
		lg.Warn("invalid argument: bad email")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if utf8.RuneCountInString(password) < minPasswordLen {
		lg.Warn("invalid argument: weak password")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		lg.Error("bcrypt_hash_failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        normEmail,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.SaveUser(ctx, &user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Warn("email taken")
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		lg.Error("storage error on SaveUser", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		lg.Error("token_sign_failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login выполняет вход по email+пароль.
// Любое несовпадение (нет пользователя / неверный пароль) — единый
// ErrInvalidCredentials, чтобы не раскрывать, какой из факторов неверен.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "service/auth/Login"

	lg := log.From(ctx).With("op", op)

	normEmail, err := normalizeEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if password == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.users.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		lg.Error("storage error on UserByEmail", "err", err)
		return nil, fmt.Errorf("%s: %w", op, storageFailure(err))
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		lg.Error("token_sign_failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &AuthResult{User: *user, Token: token}, nil
}

// normalizeEmail валидирует и приводит email к нижнему регистру.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("invalid email")
	}

	return email, nil
}
