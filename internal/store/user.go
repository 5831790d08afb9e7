package store

import (
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/storage"
)

// UserStore holds the signed-in shopper and their bearer token. It is the
// API client's token source; an empty token means anonymous browsing.
type UserStore struct {
	mu     sync.RWMutex
	user   *domain.User
	token  string
	kv     storage.KV
	logger *zap.Logger
}

type userSnapshot struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// UserPatch carries partial profile updates; nil fields are left unchanged.
type UserPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

func NewUserStore(kv storage.KV, logger *zap.Logger) *UserStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &UserStore{
		kv:     kv,
		logger: logger,
	}
	s.load()
	return s
}

func (s *UserStore) load() {
	ctx, cancel := persistCtx()
	defer cancel()

	data, err := s.kv.Get(ctx, userStorageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("user snapshot load failed", zap.Error(err))
		return
	}

	var snap userSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("user snapshot corrupt, starting signed out", zap.Error(err))
		return
	}
	s.user = snap.User
	s.token = snap.Token
}

// SetUser records a successful login or registration.
func (s *UserStore) SetUser(user domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	s.token = token
	s.persistLocked()
}

// UpdateUser merges a partial profile update. No-op while signed out.
func (s *UserStore) UpdateUser(patch UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	if patch.Name != nil {
		s.user.Name = *patch.Name
	}
	if patch.Email != nil {
		s.user.Email = *patch.Email
	}
	if patch.Phone != nil {
		s.user.Phone = *patch.Phone
	}
	if patch.Address != nil {
		s.user.Address = *patch.Address
	}
	s.persistLocked()
}

// Logout clears the user and token.
func (s *UserStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.persistLocked()
}

func (s *UserStore) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Token implements the API client's token source.
func (s *UserStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *UserStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

func (s *UserStore) persistLocked() {
	data, err := json.Marshal(userSnapshot{User: s.user, Token: s.token})
	if err != nil {
		s.logger.Error("user snapshot marshal failed", zap.Error(err))
		return
	}

	ctx, cancel := persistCtx()
	defer cancel()
	if err := s.kv.Set(ctx, userStorageKey, data); err != nil {
		s.logger.Warn("user snapshot persist failed", zap.Error(err))
	}
}
