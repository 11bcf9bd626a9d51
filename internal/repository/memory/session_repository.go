package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// RevokedTokenRepository remembers signed-out session tokens until they
// would have expired anyway.
type RevokedTokenRepository struct {
	cache *cache.Cache
}

func NewRevokedTokenRepository(ttl time.Duration) *RevokedTokenRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &RevokedTokenRepository{
		cache: c,
	}
}

// Revoke marks token as signed out until expiresAt.
func (r *RevokedTokenRepository) Revoke(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	r.cache.Set(token, struct{}{}, ttl)
}

func (r *RevokedTokenRepository) IsRevoked(token string) bool {
	_, found := r.cache.Get(token)
	return found
}
