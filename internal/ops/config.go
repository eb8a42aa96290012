// Package ops loads runtime configuration from a JSON file with
// environment overrides.
package ops

import (
	"encoding/json"
	"os"

	"main/internal/pipeline"
	"main/internal/sim"
	"main/internal/trade"
	"main/pkg/conn"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

const (
	defaultLedgerURL    = "https://horizon-testnet.stellar.org"
	defaultFriendbotURL = "https://friendbot.stellar.org"
	defaultNetwork      = "Test SDF Network ; September 2015"
	defaultKeystorePath = "keystore.json"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	LedgerURL         string          `json:"ledgerUrl"`
	FriendbotURL      string          `json:"friendbotUrl"`
	NetworkPassphrase string          `json:"networkPassphrase"`
	BaseFee           int64           `json:"baseFee"`
	DepthLimit        int             `json:"depthLimit"`
	MaxSlippage       string          `json:"maxSlippage"`
	ExecutionBuffer   string          `json:"executionBuffer"`
	Keystore          KeystoreConfig  `json:"keystore"`
	Profiling         ProfilingConfig `json:"profiling"`
}

// KeystoreConfig selects the keystore backend.
type KeystoreConfig struct {
	Backend  string      `json:"backend"` // file, postgres
	Path     string      `json:"path"`
	Postgres conn.Option `json:"postgres"`
}

// ProfilingConfig enables continuous profiling when a server address is
// set.
type ProfilingConfig struct {
	ServerAddress   string `json:"serverAddress"`
	ApplicationName string `json:"applicationName"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	LedgerURL    string
	FriendbotURL string
	Pipeline     pipeline.Config
	Trade        trade.Config
	Keystore     KeystoreConfig
	Profiling    ProfilingConfig
}

// Load reads the optional JSON file, applies .env/environment
// overrides and resolves defaults.
func Load(path string) (Loaded, error) {
	_ = godotenv.Load()

	var file FileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, errors.Wrap(err, "read config")
		}
		if err := json.Unmarshal(data, &file); err != nil {
			return Loaded{}, errors.Wrap(err, "decode config")
		}
	}

	applyEnv(&file)

	loaded := Loaded{
		LedgerURL:    fallback(file.LedgerURL, defaultLedgerURL),
		FriendbotURL: fallback(file.FriendbotURL, defaultFriendbotURL),
		Pipeline: pipeline.Config{
			Network: fallback(file.NetworkPassphrase, defaultNetwork),
			BaseFee: file.BaseFee,
		},
		Keystore:  file.Keystore,
		Profiling: file.Profiling,
	}

	if loaded.Keystore.Backend == "" {
		loaded.Keystore.Backend = "file"
	}
	if loaded.Keystore.Path == "" {
		loaded.Keystore.Path = defaultKeystorePath
	}

	maxSlippage, err := parseOptionalDecimal(file.MaxSlippage, "maxSlippage")
	if err != nil {
		return Loaded{}, err
	}

	buffer, err := parseOptionalDecimal(file.ExecutionBuffer, "executionBuffer")
	if err != nil {
		return Loaded{}, err
	}

	simCfg := sim.DefaultConfig()
	if !buffer.IsZero() {
		simCfg.BufferFactor = buffer
	}

	loaded.Trade = trade.Config{
		DepthLimit:         file.DepthLimit,
		DefaultMaxSlippage: maxSlippage,
		Sim:                simCfg,
	}

	return loaded, nil
}

func applyEnv(file *FileConfig) {
	if v := os.Getenv("LEDGER_URL"); v != "" {
		file.LedgerURL = v
	}
	if v := os.Getenv("FRIENDBOT_URL"); v != "" {
		file.FriendbotURL = v
	}
	if v := os.Getenv("NETWORK_PASSPHRASE"); v != "" {
		file.NetworkPassphrase = v
	}
	if v := os.Getenv("KEYSTORE_PATH"); v != "" {
		file.Keystore.Path = v
	}
	if v := os.Getenv("KEYSTORE_PG_CONN"); v != "" {
		file.Keystore.Backend = "postgres"
		file.Keystore.Postgres.ConnString = v
	}
	if v := os.Getenv("PYROSCOPE_SERVER_ADDRESS"); v != "" {
		file.Profiling.ServerAddress = v
	}
}

func parseOptionalDecimal(s, name string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse %s", name)
	}
	return d, nil
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
