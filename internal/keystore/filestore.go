package keystore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"main/pkg/exception"

	"github.com/yanun0323/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the account → secret mapping as a JSON file with
// owner-only permissions. Writes go through a temp file plus rename so
// a crash mid-write never leaves a truncated store behind.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// OpenFileStore loads or creates the keystore file at path.
func OpenFileStore(path string) (*FileStore, error) {
	store := &FileStore{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, errors.Wrap(err, "read keystore")
	}

	if err := json.Unmarshal(data, &store.entries); err != nil {
		return nil, errors.Wrap(err, "decode keystore")
	}

	return store, nil
}

func (s *FileStore) Resolve(accountID string) (*Keypair, error) {
	s.mu.Lock()
	secret, ok := s.entries[accountID]
	s.mu.Unlock()

	if !ok {
		return nil, errors.Wrapf(exception.ErrAccountNotFound, "account %s", accountID)
	}

	return KeypairFromSecret(secret)
}

func (s *FileStore) Persist(accountID, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[accountID] = secret
	return s.flushLocked()
}

func (s *FileStore) Import(secret string) (string, error) {
	kp, err := KeypairFromSecret(secret)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[kp.AccountID()] = secret
	if err := s.flushLocked(); err != nil {
		return "", err
	}

	return kp.AccountID(), nil
}

func (s *FileStore) Export(accountID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	secret, ok := s.entries[accountID]
	if !ok {
		return "", errors.Wrapf(exception.ErrAccountNotFound, "account %s", accountID)
	}

	return secret, nil
}

func (s *FileStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]string, 0, len(s.entries))
	for accountID := range s.entries {
		accounts = append(accounts, accountID)
	}
	sort.Strings(accounts)
	return accounts, nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode keystore")
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrap(err, "create keystore dir")
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "write keystore")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace keystore")
	}

	return nil
}
