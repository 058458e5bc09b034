package spirit

import (
	"sync"

	"github.com/taurusgroup/spirit/pkg/tact"
)

// TokenSet answers registry membership queries.
type TokenSet interface {
	Contains(token *tact.Token) bool
}

// Registry is the append-only set of tokens issued so far.
//
// Insertions are serialised, and the version increases with every new token. The zero
// value is an empty registry.
type Registry struct {
	mtx     sync.RWMutex
	tokens  map[string]*tact.Token
	version uint64
}

// NewRegistry returns a registry holding tokens, for instance reloaded from storage.
func NewRegistry(tokens ...*tact.Token) *Registry {
	r := &Registry{tokens: make(map[string]*tact.Token, len(tokens))}
	for _, token := range tokens {
		r.insert(token)
	}
	return r
}

// Insert adds token, and returns false if it was already present.
func (r *Registry) Insert(token *tact.Token) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.insert(token)
}

func (r *Registry) insert(token *tact.Token) bool {
	if r.tokens == nil {
		r.tokens = make(map[string]*tact.Token)
	}
	key := token.Key()
	if _, ok := r.tokens[key]; ok {
		return false
	}
	r.tokens[key] = token
	r.version++
	return true
}

// Contains implements TokenSet.
func (r *Registry) Contains(token *tact.Token) bool {
	if token == nil || token.Commitment == nil || token.Signature == nil {
		return false
	}
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	_, ok := r.tokens[token.Key()]
	return ok
}

// Len returns the number of tokens.
func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.tokens)
}

// Version returns the number of insertions so far.
func (r *Registry) Version() uint64 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.version
}

// Snapshot returns an immutable copy of the current registry.
func (r *Registry) Snapshot() *RegistrySnapshot {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	tokens := make(map[string]*tact.Token, len(r.tokens))
	for k, v := range r.tokens {
		tokens[k] = v
	}
	return &RegistrySnapshot{Version: r.version, tokens: tokens}
}

// RegistrySnapshot is the registry as of some version.
type RegistrySnapshot struct {
	Version uint64
	tokens  map[string]*tact.Token
}

// Contains implements TokenSet.
func (s *RegistrySnapshot) Contains(token *tact.Token) bool {
	if token == nil || token.Commitment == nil || token.Signature == nil {
		return false
	}
	_, ok := s.tokens[token.Key()]
	return ok
}

// Len returns the number of tokens.
func (s *RegistrySnapshot) Len() int {
	return len(s.tokens)
}

// Tokens returns the tokens of the snapshot, in no particular order.
func (s *RegistrySnapshot) Tokens() []*tact.Token {
	tokens := make([]*tact.Token, 0, len(s.tokens))
	for _, token := range s.tokens {
		tokens = append(tokens, token)
	}
	return tokens
}
