// Package store persists a deployment, its token registry and the confirmed pseudonyms
// in LevelDB.
//
// Tokens and pseudonyms are sets: entries are keyed by their own encoding, and are
// reloaded in no particular order.
package store

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/taurusgroup/spirit/pkg/prf"
	"github.com/taurusgroup/spirit/pkg/tact"
	"github.com/taurusgroup/spirit/protocols/spirit"
)

var (
	deploymentKey = []byte("deployment")
	tokenPrefix   = []byte("token/")
	elidPrefix    = []byte("elid/")
)

// Store wraps a LevelDB database.
type Store struct {
	db        *leveldb.DB
	writeOpts *opt.WriteOptions
}

// Open opens or creates the database in the directory path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return &Store{db: db, writeOpts: &opt.WriteOptions{Sync: true}}, nil
}

// OpenMemory returns a store kept in memory.
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("store: open memory: %w", err)
	}
	return &Store{db: db, writeOpts: &opt.WriteOptions{}}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(prefix []byte, k string) []byte {
	return append(append([]byte(nil), prefix...), k...)
}

// PutDeployment stores d, replacing any previous deployment.
func (s *Store) PutDeployment(d *spirit.Deployment) error {
	value, err := cbor.Marshal(d)
	if err != nil {
		return fmt.Errorf("store: encode deployment: %w", err)
	}
	if err = s.db.Put(deploymentKey, value, s.writeOpts); err != nil {
		return fmt.Errorf("store: put deployment: %w", err)
	}
	return nil
}

// Deployment returns the stored deployment, or nil if there is none.
func (s *Store) Deployment() (*spirit.Deployment, error) {
	value, err := s.db.Get(deploymentKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get deployment: %w", err)
	}
	d := new(spirit.Deployment)
	if err = cbor.Unmarshal(value, d); err != nil {
		return nil, fmt.Errorf("store: decode deployment: %w", err)
	}
	return d, nil
}

// PutToken stores token. Storing the same token twice has no effect.
func (s *Store) PutToken(token *tact.Token) error {
	value, err := cbor.Marshal(token)
	if err != nil {
		return fmt.Errorf("store: encode token: %w", err)
	}
	if err = s.db.Put(key(tokenPrefix, token.Key()), value, s.writeOpts); err != nil {
		return fmt.Errorf("store: put token: %w", err)
	}
	return nil
}

// Tokens returns every stored token.
func (s *Store) Tokens() ([]*tact.Token, error) {
	var tokens []*tact.Token
	it := s.db.NewIterator(util.BytesPrefix(tokenPrefix), nil)
	defer it.Release()
	for it.Next() {
		token := new(tact.Token)
		if err := cbor.Unmarshal(it.Value(), token); err != nil {
			return nil, fmt.Errorf("store: decode token: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("store: iterate tokens: %w", err)
	}
	return tokens, nil
}

// PutElIDs stores elids in a single batch.
func (s *Store) PutElIDs(elids []prf.ElID) error {
	batch := new(leveldb.Batch)
	for _, elid := range elids {
		batch.Put(key(elidPrefix, elid.Key()), nil)
	}
	if err := s.db.Write(batch, s.writeOpts); err != nil {
		return fmt.Errorf("store: put pseudonyms: %w", err)
	}
	return nil
}

// ElIDs returns every stored pseudonym.
func (s *Store) ElIDs() ([]prf.ElID, error) {
	var elids []prf.ElID
	it := s.db.NewIterator(util.BytesPrefix(elidPrefix), nil)
	defer it.Release()
	for it.Next() {
		var elid prf.ElID
		if err := elid.UnmarshalBinary(it.Key()[len(elidPrefix):]); err != nil {
			return nil, fmt.Errorf("store: decode pseudonym: %w", err)
		}
		elids = append(elids, elid)
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("store: iterate pseudonyms: %w", err)
	}
	return elids, nil
}
