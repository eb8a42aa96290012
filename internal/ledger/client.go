// Package ledger is the REST client for the exchange's Horizon-style
// API: depth snapshots, accounts, open offers, fee stats and signed
// transaction submission. It performs no retries; every rejection is
// surfaced verbatim to the caller.
package ledger

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

const _requestTimeout = 15 * time.Second

// Client talks to one ledger API endpoint.
type Client struct {
	client       *http.Client
	baseURL      string
	friendbotURL string
}

func NewClient(client *http.Client, baseURL, friendbotURL string) *Client {
	return &Client{
		client:       client,
		baseURL:      strings.TrimRight(baseURL, "/"),
		friendbotURL: friendbotURL,
	}
}

// OrderBook fetches a depth snapshot for the pair, best price first on
// both sides, at most limit levels per side.
func (c *Client) OrderBook(ctx context.Context, pair adapter.AssetPair, limit int) (adapter.Depth, error) {
	query := url.Values{}
	query.Set("selling", assetParam(pair.Selling))
	query.Set("buying", assetParam(pair.Buying))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var payload orderBookPayload
	if err := c.get(ctx, "/order_book?"+query.Encode(), &payload); err != nil {
		return adapter.Depth{}, err
	}

	depth := adapter.Depth{Pair: pair}
	var err error
	if depth.Bids, err = parseLevels(payload.Bids); err != nil {
		return adapter.Depth{}, err
	}
	if depth.Asks, err = parseLevels(payload.Asks); err != nil {
		return adapter.Depth{}, err
	}

	return depth, nil
}

// Account loads the account's sequence number and balances.
func (c *Client) Account(ctx context.Context, accountID string) (Account, error) {
	var payload accountPayload
	if err := c.get(ctx, "/accounts/"+url.PathEscape(accountID), &payload); err != nil {
		return Account{}, err
	}

	sequence, err := strconv.ParseInt(payload.Sequence, 10, 64)
	if err != nil {
		return Account{}, errors.Wrapf(exception.ErrMalformedAmountOrPrice, "account sequence %q", payload.Sequence)
	}

	account := Account{ID: payload.ID, Sequence: sequence}
	for _, b := range payload.Balances {
		amount, err := parseDecimal(b.Balance)
		if err != nil {
			return Account{}, err
		}

		asset := adapter.NativeAsset()
		if b.AssetType != "native" {
			asset = adapter.IssuedAsset(b.Code, b.Issuer)
		}
		account.Balances = append(account.Balances, Balance{Asset: asset, Amount: amount})
	}

	return account, nil
}

// Offers lists the account's open offers, normalized to adapter.Offer.
func (c *Client) Offers(ctx context.Context, accountID string) ([]adapter.Offer, error) {
	var payload offersPayload
	if err := c.get(ctx, "/accounts/"+url.PathEscape(accountID)+"/offers", &payload); err != nil {
		return nil, err
	}

	offers := make([]adapter.Offer, 0, len(payload.Offers))
	for _, entry := range payload.Offers {
		offer, err := parseOffer(entry)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

// Transactions lists the account's transaction history, newest first,
// at most limit entries.
func (c *Client) Transactions(ctx context.Context, accountID string, limit int) ([]Transaction, error) {
	path := "/accounts/" + url.PathEscape(accountID) + "/transactions"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var payload transactionsPayload
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(payload.Transactions))
	for _, entry := range payload.Transactions {
		fee, err := parseFee(entry.FeeCharged)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, Transaction{
			Hash:           entry.Hash,
			Ledger:         entry.Ledger,
			CreatedAt:      entry.CreatedAt,
			SourceAccount:  entry.SourceAccount,
			FeeCharged:     fee,
			OperationCount: entry.OperationCount,
			Successful:     entry.Successful,
		})
	}

	return transactions, nil
}

// Offer loads one offer by id. A missing offer maps to
// exception.ErrOrderNotFound.
func (c *Client) Offer(ctx context.Context, offerID int64) (adapter.Offer, string, error) {
	var payload offerPayload
	err := c.get(ctx, "/offers/"+strconv.FormatInt(offerID, 10), &payload)
	if err != nil {
		if stderrors.Is(err, errNotFound) {
			return adapter.Offer{}, "", errors.Wrapf(exception.ErrOrderNotFound, "offer %d", offerID)
		}
		return adapter.Offer{}, "", err
	}

	offer, err := parseOffer(payload)
	if err != nil {
		return adapter.Offer{}, "", err
	}

	return offer, payload.Seller, nil
}

// Submit hands a signed envelope to the submission endpoint. Rejections
// come back as exception.ErrNetworkSubmission wrapping the subkind
// sentinel, with the ledger's diagnostic payload attached verbatim.
func (c *Client) Submit(ctx context.Context, encodedTx string) (SubmitResult, error) {
	body, err := sonic.ConfigFastest.Marshal(map[string]string{"tx": encodedTx})
	if err != nil {
		return SubmitResult{}, errors.Wrap(err, "encode submission")
	}

	ctx, cancel := context.WithTimeout(ctx, _requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return SubmitResult{}, errors.Wrap(err, "build submission request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return SubmitResult{}, errors.Wrap(exception.ErrNetworkSubmission, err.Error())
	}
	defer resp.Body.Close()

	var payload submitPayload
	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SubmitResult{}, errors.Wrap(exception.ErrNetworkSubmission, err.Error())
	}

	if !payload.Successful {
		return SubmitResult{}, rejectionError(payload)
	}

	return SubmitResult{Hash: payload.Hash, Ledger: payload.Ledger}, nil
}

// FeeStats returns the network's current base-fee estimate.
func (c *Client) FeeStats(ctx context.Context) (FeeStats, error) {
	var payload feeStatsPayload
	if err := c.get(ctx, "/fee_stats", &payload); err != nil {
		return FeeStats{}, err
	}

	stats := FeeStats{}
	var err error
	if stats.LastLedgerBaseFee, err = parseFee(payload.LastLedgerBaseFee); err != nil {
		return FeeStats{}, err
	}
	if stats.MaxFee, err = parseFee(payload.MaxFee.Max); err != nil {
		return FeeStats{}, err
	}
	if stats.MinFee, err = parseFee(payload.MinFee.Min); err != nil {
		return FeeStats{}, err
	}

	return stats, nil
}

// Root reports the ledger API's version and health.
func (c *Client) Root(ctx context.Context) (RootStatus, error) {
	var payload rootPayload
	if err := c.get(ctx, "/", &payload); err != nil {
		return RootStatus{}, err
	}

	return RootStatus{
		ServerVersion:       payload.ServerVersion,
		CoreVersion:         payload.CoreVersion,
		HistoryLatestLedger: payload.HistoryLatestLedger,
		NetworkPassphrase:   payload.NetworkPassphrase,
	}, nil
}

// FundAccount requests friendbot funding for a testnet account.
func (c *Client) FundAccount(ctx context.Context, accountID string) error {
	if c.friendbotURL == "" {
		return errors.New("friendbot is not configured for this network")
	}

	ctx, cancel := context.WithTimeout(ctx, _requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.friendbotURL+"?addr="+url.QueryEscape(accountID), nil)
	if err != nil {
		return errors.Wrap(err, "build friendbot request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "friendbot request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Wrapf(exception.ErrNetworkSubmission, "friendbot status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

var errNotFound = stderrors.New("resource not found")

func (c *Client) get(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, _requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "get %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(errNotFound, "get %s", path)
	}

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("get %s: status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := sonic.ConfigFastest.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}

	return nil
}

func rejectionError(payload submitPayload) error {
	detail := payload.Detail
	if detail == "" {
		detail = payload.Code
	}

	var kind error
	switch payload.Code {
	case "tx_insufficient_balance", "op_underfunded":
		kind = exception.ErrTxUnderfunded
	case "op_cross_self":
		kind = exception.ErrTxSelfTrade
	case "tx_bad_seq":
		kind = exception.ErrTxStaleSequence
	default:
		kind = exception.ErrTxRejected
	}

	return stderrors.Join(exception.ErrNetworkSubmission,
		errors.Wrapf(kind, "code %s: %s", payload.Code, detail))
}

func parseLevels(rows []levelPayload) ([]adapter.DepthLevel, error) {
	levels := make([]adapter.DepthLevel, 0, len(rows))
	for _, row := range rows {
		price, err := parseDecimal(row.Price)
		if err != nil {
			return nil, err
		}
		amount, err := parseDecimal(row.Amount)
		if err != nil {
			return nil, err
		}
		levels = append(levels, adapter.DepthLevel{Price: price, Amount: amount})
	}
	return levels, nil
}

func parseOffer(entry offerPayload) (adapter.Offer, error) {
	amount, err := parseDecimal(entry.Amount)
	if err != nil {
		return adapter.Offer{}, err
	}
	price, err := parseDecimal(entry.Price)
	if err != nil {
		return adapter.Offer{}, err
	}

	side := enum.OrderSideSell
	if entry.Side == "buy" {
		side = enum.OrderSideBuy
	}

	return adapter.Offer{
		ID: entry.ID,
		Pair: adapter.AssetPair{
			Selling: assetFromParam(entry.Selling),
			Buying:  assetFromParam(entry.Buying),
		},
		Side:   side,
		Amount: amount,
		Price:  price,
		Status: enum.OfferStatusOpen,
	}, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(exception.ErrMalformedAmountOrPrice, "%q", s)
	}
	return d, nil
}

func parseFee(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	fee, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(exception.ErrMalformedAmountOrPrice, "fee %q", s)
	}
	return fee, nil
}

func assetParam(a adapter.Asset) string {
	if a.Native {
		return "native"
	}
	return fmt.Sprintf("%s:%s", a.Code, a.Issuer)
}

func assetFromParam(a assetPayload) adapter.Asset {
	if a.Type == "native" {
		return adapter.NativeAsset()
	}
	return adapter.IssuedAsset(a.Code, a.Issuer)
}
