package api

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tokenValueBytes is the entropy of a token value before encoding. 32 bytes
// keeps token strings comfortably above a 256-bit guessing floor.
const tokenValueBytes = 32

// TokenStore is the access-token lifecycle contract. Implementations decide
// validity entirely from stored rows; rows are deactivated, never deleted, so
// the table doubles as an audit trail.
type TokenStore interface {
	// Issue creates a new active token for the pair. ttlDays must be positive.
	// Issue is deliberately not idempotent: repeated calls mint distinct,
	// independently valid tokens.
	Issue(ctx context.Context, projectID uuid.UUID, clientEmail string, ttlDays int) (AccessToken, error)
	// Lookup resolves a raw token value. It fails with ErrTokenNotFound when
	// no active row matches and ErrTokenExpired when the row is past expiry.
	// Lookup never mutates state.
	Lookup(ctx context.Context, value string) (AccessToken, error)
	// Touch records a successful use. Callers treat failures as non-fatal.
	Touch(ctx context.Context, id uuid.UUID) error
	// Revoke deactivates the token immediately, regardless of expiry.
	Revoke(ctx context.Context, id uuid.UUID) error
	// ListByProject returns all tokens ever issued for a project, newest first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]AccessToken, error)
}

func newTokenValue() (string, error) {
	buf := make([]byte, tokenValueBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

type dbTokenStore struct {
	orm *gorm.DB
	now func() time.Time
}

func newDBTokenStore(orm *gorm.DB) (*dbTokenStore, error) {
	if orm == nil {
		return nil, errors.New("nil gorm handle")
	}
	return &dbTokenStore{orm: orm, now: time.Now}, nil
}

func (s *dbTokenStore) Issue(ctx context.Context, projectID uuid.UUID, clientEmail string, ttlDays int) (AccessToken, error) {
	if ttlDays <= 0 {
		return AccessToken{}, ErrInvalidTTL
	}

	value, err := newTokenValue()
	if err != nil {
		return AccessToken{}, err
	}

	now := s.now().UTC()
	model := tokenModel{
		ID:          uuid.New(),
		ProjectID:   projectID,
		ClientEmail: clientEmail,
		Token:       value,
		ExpiresAt:   now.AddDate(0, 0, ttlDays),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orm.WithContext(ctx).Create(&model).Error; err != nil {
		return AccessToken{}, err
	}
	return model.toAPI(), nil
}

func (s *dbTokenStore) Lookup(ctx context.Context, value string) (AccessToken, error) {
	var model tokenModel
	err := s.orm.WithContext(ctx).
		Where("token = ? AND is_active = ?", value, true).
		First(&model).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return AccessToken{}, ErrTokenNotFound
	case err != nil:
		return AccessToken{}, err
	}

	token := model.toAPI()
	if token.ExpiredAt(s.now().UTC()) {
		return AccessToken{}, ErrTokenExpired
	}
	return token, nil
}

func (s *dbTokenStore) Touch(ctx context.Context, id uuid.UUID) error {
	now := s.now().UTC()
	return s.orm.WithContext(ctx).
		Model(&tokenModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_used_at": now, "updated_at": now}).Error
}

func (s *dbTokenStore) Revoke(ctx context.Context, id uuid.UUID) error {
	res := s.orm.WithContext(ctx).
		Model(&tokenModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": s.now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (s *dbTokenStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]AccessToken, error) {
	var models []tokenModel
	err := s.orm.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	tokens := make([]AccessToken, 0, len(models))
	for _, m := range models {
		tokens = append(tokens, m.toAPI())
	}
	return tokens, nil
}
