package ledger

import (
	"main/internal/adapter"

	"github.com/shopspring/decimal"
)

// Balance is one asset holding of a ledger account.
type Balance struct {
	Asset  adapter.Asset
	Amount decimal.Decimal
}

// Account is the ledger's view of an account.
type Account struct {
	ID       string
	Sequence int64
	Balances []Balance
}

// Transaction is one historical ledger transaction of an account.
type Transaction struct {
	Hash           string
	Ledger         int64
	CreatedAt      string
	SourceAccount  string
	FeeCharged     int64
	OperationCount int
	Successful     bool
}

// SubmitResult is a successful submission outcome.
type SubmitResult struct {
	Hash   string
	Ledger int64
}

// FeeStats is the network's current fee estimate.
type FeeStats struct {
	LastLedgerBaseFee int64
	MaxFee            int64
	MinFee            int64
}

// RootStatus is the ledger API's health/version report.
type RootStatus struct {
	ServerVersion       string
	CoreVersion         string
	HistoryLatestLedger int64
	NetworkPassphrase   string
}

type levelPayload struct {
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

type orderBookPayload struct {
	Bids []levelPayload `json:"bids"`
	Asks []levelPayload `json:"asks"`
}

type balancePayload struct {
	AssetType string `json:"asset_type"`
	Code      string `json:"asset_code,omitempty"`
	Issuer    string `json:"asset_issuer,omitempty"`
	Balance   string `json:"balance"`
}

type accountPayload struct {
	ID       string           `json:"id"`
	Sequence string           `json:"sequence"`
	Balances []balancePayload `json:"balances"`
}

type assetPayload struct {
	Type   string `json:"type,omitempty"`
	Code   string `json:"code,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

type offerPayload struct {
	ID      int64        `json:"id"`
	Seller  string       `json:"seller"`
	Selling assetPayload `json:"selling"`
	Buying  assetPayload `json:"buying"`
	Side    string       `json:"side"`
	Amount  string       `json:"amount"`
	Price   string       `json:"price"`
}

type offersPayload struct {
	Offers []offerPayload `json:"offers"`
}

type transactionPayload struct {
	Hash           string `json:"hash"`
	Ledger         int64  `json:"ledger"`
	CreatedAt      string `json:"created_at"`
	SourceAccount  string `json:"source_account"`
	FeeCharged     string `json:"fee_charged"`
	OperationCount int    `json:"operation_count"`
	Successful     bool   `json:"successful"`
}

type transactionsPayload struct {
	Transactions []transactionPayload `json:"transactions"`
}

type submitPayload struct {
	Successful bool   `json:"successful"`
	Hash       string `json:"hash"`
	Ledger     int64  `json:"ledger"`
	Code       string `json:"code,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

type feeStatsPayload struct {
	LastLedgerBaseFee string `json:"last_ledger_base_fee"`
	MaxFee            struct {
		Max string `json:"max"`
	} `json:"max_fee"`
	MinFee struct {
		Min string `json:"min"`
	} `json:"min_fee"`
}

type rootPayload struct {
	ServerVersion       string `json:"server_version"`
	CoreVersion         string `json:"core_version"`
	HistoryLatestLedger int64  `json:"history_latest_ledger"`
	NetworkPassphrase   string `json:"network_passphrase"`
}
