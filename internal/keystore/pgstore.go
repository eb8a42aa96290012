package keystore

import (
	stderrors "errors"
	"sync"

	"main/pkg/conn"
	"main/pkg/exception"

	"github.com/yanun0323/errors"
	"gorm.io/gorm"
)

var _ Store = (*PgStore)(nil)

type keypairRecord struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
	Secret    string `gorm:"column:secret"`
}

func (keypairRecord) TableName() string {
	return "keypairs"
}

// PgStore keeps the account → secret mapping in PostgreSQL for
// deployments where a shared keystore outlives a single host. The same
// single-writer discipline applies as for the file backend.
type PgStore struct {
	mu     sync.Mutex
	client *conn.Client
}

// OpenPgStore connects and migrates the keypairs table.
func OpenPgStore(option conn.Option) (*PgStore, error) {
	client, err := conn.New(option)
	if err != nil {
		return nil, errors.Wrap(err, "connect keystore database")
	}

	if err := client.DB().AutoMigrate(&keypairRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate keypairs table")
	}

	return &PgStore{client: client}, nil
}

func (s *PgStore) Resolve(accountID string) (*Keypair, error) {
	var record keypairRecord
	err := s.client.DB().First(&record, "account_id = ?", accountID).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(exception.ErrAccountNotFound, "account %s", accountID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query keypair")
	}

	return KeypairFromSecret(record.Secret)
}

func (s *PgStore) Persist(accountID, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := keypairRecord{AccountID: accountID, Secret: secret}
	if err := s.client.DB().Save(&record).Error; err != nil {
		return errors.Wrap(err, "save keypair")
	}

	return nil
}

func (s *PgStore) Import(secret string) (string, error) {
	kp, err := KeypairFromSecret(secret)
	if err != nil {
		return "", err
	}

	if err := s.Persist(kp.AccountID(), secret); err != nil {
		return "", err
	}

	return kp.AccountID(), nil
}

func (s *PgStore) Export(accountID string) (string, error) {
	var record keypairRecord
	err := s.client.DB().First(&record, "account_id = ?", accountID).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return "", errors.Wrapf(exception.ErrAccountNotFound, "account %s", accountID)
	}
	if err != nil {
		return "", errors.Wrap(err, "query keypair")
	}

	return record.Secret, nil
}

func (s *PgStore) List() ([]string, error) {
	var accounts []string
	err := s.client.DB().
		Model(&keypairRecord{}).
		Order("account_id").
		Pluck("account_id", &accounts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list keypairs")
	}

	return accounts, nil
}

func (s *PgStore) Close() error {
	return s.client.Close()
}
