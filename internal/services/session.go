package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rajmohan-14/Travel-itinerary/internal/config"
)

// PendingRegistration is the short-lived context parked between
// registration and OTP verification: the contact phone rides here until
// a session exists to carry it.
type PendingRegistration struct {
	Phone string
}

// PendingTTL bounds how long an unverified registration context lives.
const PendingTTL = 10 * time.Minute

// SessionStore keeps pending registration context and revoked token IDs.
type SessionStore interface {
	SavePending(ctx context.Context, email string, p PendingRegistration) error
	GetPending(ctx context.Context, email string) (*PendingRegistration, error)
	DeletePending(ctx context.Context, email string) error

	RevokeToken(ctx context.Context, jti string, until time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// PurgeExpired drops stale entries; a no-op where TTLs are native.
	PurgeExpired()
}

// ---------------- JWT ----------------

// TokenClaims is what a verified session token carries.
type TokenClaims struct {
	UserID    uint
	Phone     string
	TokenID   string
	ExpiresAt time.Time
}

// JWTManager issues and verifies session tokens.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

func NewJWTManager(cfg config.JWTConfig) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(cfg.Secret),
		tokenDuration: cfg.Duration,
	}
}

// GenerateToken creates a session token for a verified user. The phone
// claim carries the registration contact number until it lands on a
// trip record.
func (j *JWTManager) GenerateToken(userID uint, phone string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"phone": phone,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(j.tokenDuration).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// VerifyToken validates the token signature and expiry and unpacks the
// claims.
func (j *JWTManager) VerifyToken(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return j.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid sub claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sub claim: %w", err)
	}

	out := &TokenClaims{UserID: uint(userID)}
	if phone, ok := claims["phone"].(string); ok {
		out.Phone = phone
	}
	if jti, ok := claims["jti"].(string); ok {
		out.TokenID = jti
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}

// ---------------- Memory store ----------------

type pendingEntry struct {
	pending   PendingRegistration
	expiresAt time.Time
}

// MemorySessionStore keeps session state in process memory.
type MemorySessionStore struct {
	mu      sync.RWMutex
	pending map[string]pendingEntry
	revoked map[string]time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		pending: make(map[string]pendingEntry),
		revoked: make(map[string]time.Time),
	}
}

func (m *MemorySessionStore) SavePending(_ context.Context, email string, p PendingRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[email] = pendingEntry{pending: p, expiresAt: time.Now().Add(PendingTTL)}
	return nil
}

func (m *MemorySessionStore) GetPending(_ context.Context, email string) (*PendingRegistration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, exists := m.pending[email]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	p := entry.pending
	return &p, nil
}

func (m *MemorySessionStore) DeletePending(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, email)
	return nil
}

func (m *MemorySessionStore) RevokeToken(_ context.Context, jti string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = until
	return nil
}

func (m *MemorySessionStore) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	until, exists := m.revoked[jti]
	return exists && time.Now().Before(until), nil
}

func (m *MemorySessionStore) PurgeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for email, entry := range m.pending {
		if now.After(entry.expiresAt) {
			delete(m.pending, email)
		}
	}
	for jti, until := range m.revoked {
		if now.After(until) {
			delete(m.revoked, jti)
		}
	}
}

// ---------------- Redis store ----------------

// RedisSessionStore keeps session state in Redis with native TTLs.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(cfg config.RedisConfig) *RedisSessionStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisSessionStore{client: rdb}
}

func pendingKey(email string) string { return "pending:" + email }
func revokedKey(jti string) string   { return "revoked:" + jti }

func (r *RedisSessionStore) SavePending(ctx context.Context, email string, p PendingRegistration) error {
	key := pendingKey(email)
	if err := r.client.HSet(ctx, key, map[string]string{"phone": p.Phone}).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, PendingTTL).Err()
}

func (r *RedisSessionStore) GetPending(ctx context.Context, email string) (*PendingRegistration, error) {
	vals, err := r.client.HGetAll(ctx, pendingKey(email)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil // not found
	}
	return &PendingRegistration{Phone: vals["phone"]}, nil
}

func (r *RedisSessionStore) DeletePending(ctx context.Context, email string) error {
	return r.client.Del(ctx, pendingKey(email)).Err()
}

func (r *RedisSessionStore) RevokeToken(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return r.client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (r *RedisSessionStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired is a no-op: Redis TTLs expire keys on their own.
func (r *RedisSessionStore) PurgeExpired() {}
