package session

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=../mocks/session_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side state of one authenticated staff member.
type Session struct {
	TokenID   string    `json:"token_id"`
	StaffID   int64     `json:"staff_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps sessions keyed by token id. Sessions expire on their own after
// the configured TTL.
type Store interface {
	Create(ctx context.Context, sess Session) error
	Get(ctx context.Context, tokenID string) (Session, error)
	Delete(ctx context.Context, tokenID string) error
}

type redisStore struct {
	cache cache.RedisCache
	ttl   time.Duration
	otel  otel.Otel
}

func New(cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Store {
	return &redisStore{
		cache: cache,
		ttl:   time.Duration(cfg.Session.TTLMinutes) * time.Minute,
		otel:  otel,
	}
}

func key(tokenID string) string {
	return shared.BuildCacheKey(constant.SessionKeyPrefix, tokenID)
}

func (s *redisStore) Create(ctx context.Context, sess Session) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Save(ctx, key(sess.TokenID), sess, s.ttl); err != nil {
		log.Error().Err(err).Int64("staff_id", sess.StaffID).Msg("failed to save session")

		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *redisStore) Get(ctx context.Context, tokenID string) (sess Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, key(tokenID), &sess)
	if errors.Is(err, cache.Nil) {
		return sess, ErrNotFound
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return sess, fmt.Errorf("failed to get session: %w", err)
	}

	return sess, nil
}

func (s *redisStore) Delete(ctx context.Context, tokenID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSessionScopeName, constant.OtelSessionScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Delete(ctx, key(tokenID)); err != nil {
		log.Error().Err(err).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
