package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"

	"levelup/internal/storage"
)

var ErrInvalidToken = errors.New("invalid or unknown token")

// Identity resolves the current user for an operation.
type Identity interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// Static is a fixed local identity, used by the CLI.
type Static string

func (s Static) CurrentUserID(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrInvalidToken
	}
	return string(s), nil
}

// Service mints and verifies API bearer tokens. Tokens are random 32-byte
// values stored only as sha256 hashes.
type Service struct {
	tokens *storage.TokenRepo
}

func NewService(tokens *storage.TokenRepo) *Service {
	return &Service{tokens: tokens}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

// Mint creates a token for a user and returns the plaintext value once.
func (s *Service) Mint(ctx context.Context, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user id is required")
	}
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.tokens.Insert(ctx, storage.APIToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashToken(token),
	}); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps a bearer token to a user id.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	t, err := s.tokens.GetByHash(ctx, hashToken(token))
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", ErrInvalidToken
	}
	return t.UserID, nil
}

// Revoke deletes a token by its plaintext value.
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.tokens.DeleteByHash(ctx, hashToken(token))
}
