package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ems-hq/ems-backend-go/internal/repository/postgresql"
)

type refreshTokenRecord struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

type refreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]refreshTokenRecord
}

func NewRefreshTokenRepository() postgresql.RefreshTokenRepository {
	return &refreshTokenRepository{tokens: make(map[string]refreshTokenRecord)}
}

func (r *refreshTokenRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = refreshTokenRecord{userID: userID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r *refreshTokenRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.tokens[token]
	if !ok {
		// Unknown token counts as revoked
		return true, nil
	}
	return rec.revoked || !rec.expiresAt.After(time.Now()), nil
}

func (r *refreshTokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.tokens[token]; ok {
		rec.revoked = true
		r.tokens[token] = rec
	}
	return nil
}
