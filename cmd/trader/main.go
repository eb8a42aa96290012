package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"main/internal/adapter"
	"main/internal/adapter/enum"
	"main/internal/keystore"
	"main/internal/ledger"
	"main/internal/ops"
	"main/internal/pipeline"
	"main/internal/trade"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/shopspring/decimal"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	action := flag.String("action", "", "Trade action: buy | sell | cancel | list")
	account := flag.String("account", "", "Account id (G...)")
	target := flag.String("target", "", "Target asset code (empty or 'native' for the native asset)")
	targetIssuer := flag.String("target-issuer", "", "Target asset issuer")
	counter := flag.String("counter", "native", "Counter asset code")
	counterIssuer := flag.String("counter-issuer", "", "Counter asset issuer")
	amount := flag.String("amount", "", "Amount as a decimal string")
	price := flag.String("price", "", "Limit price (empty = market order)")
	maxSlippage := flag.String("max-slippage", "", "Max slippage for market orders (default from config)")
	offerID := flag.Int64("offer-id", 0, "Offer id for cancel")
	autoSign := flag.Bool("auto-sign", true, "Sign and submit automatically")
	flag.Parse()

	loaded, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if loaded.Profiling.ServerAddress != "" {
		name := loaded.Profiling.ApplicationName
		if name == "" {
			name = "sdex-trader"
		}
		if _, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: name,
			ServerAddress:   loaded.Profiling.ServerAddress,
		}); err != nil {
			log.Printf("pyroscope start failed: %v", err)
		}
	}

	keys, err := openKeystore(loaded.Keystore)
	if err != nil {
		log.Fatalf("keystore open failed: %v", err)
	}
	defer keys.Close()

	req, err := buildRequest(*action, *account, *target, *targetIssuer, *counter, *counterIssuer, *amount, *price, *maxSlippage, *offerID, *autoSign)
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	client := ledger.NewClient(http.DefaultClient, loaded.LedgerURL, loaded.FriendbotURL)
	pipe := pipeline.New(client, keys, loaded.Pipeline)
	usecase := trade.NewUsecase(client, pipe, loaded.Trade)

	result := usecase.Trade(context.Background(), req)
	printResult(result)
	if result.Err != nil {
		os.Exit(1)
	}
}

func openKeystore(cfg ops.KeystoreConfig) (keystore.Store, error) {
	switch cfg.Backend {
	case "postgres":
		return keystore.OpenPgStore(cfg.Postgres)
	default:
		return keystore.OpenFileStore(cfg.Path)
	}
}

func buildRequest(action, account, target, targetIssuer, counter, counterIssuer, amount, price, maxSlippage string, offerID int64, autoSign bool) (trade.TradeRequest, error) {
	req := trade.TradeRequest{
		AccountID: account,
		Target:    parseAsset(target, targetIssuer),
		Counter:   parseAsset(counter, counterIssuer),
		OfferID:   offerID,
		AutoSign:  autoSign,
	}

	switch action {
	case "buy":
		req.Action = enum.TradeActionBuy
	case "sell":
		req.Action = enum.TradeActionSell
	case "cancel":
		req.Action = enum.TradeActionCancel
	case "list":
		req.Action = enum.TradeActionListOpen
	default:
		return trade.TradeRequest{}, fmt.Errorf("unknown action %q", action)
	}

	if amount != "" {
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return trade.TradeRequest{}, fmt.Errorf("amount %q: %w", amount, err)
		}
		req.Amount = parsed
	}

	if price != "" {
		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return trade.TradeRequest{}, fmt.Errorf("price %q: %w", price, err)
		}
		req.LimitPrice = &parsed
	}

	if maxSlippage != "" {
		parsed, err := decimal.NewFromString(maxSlippage)
		if err != nil {
			return trade.TradeRequest{}, fmt.Errorf("max slippage %q: %w", maxSlippage, err)
		}
		req.MaxSlippage = &parsed
	}

	return req, nil
}

func parseAsset(code, issuer string) adapter.Asset {
	if code == "" || code == "native" {
		return adapter.NativeAsset()
	}
	return adapter.IssuedAsset(code, issuer)
}

type resultView struct {
	Success        bool             `json:"success"`
	Hash           string           `json:"hash,omitempty"`
	LedgerSequence int64            `json:"ledger_sequence,omitempty"`
	UnsignedTx     string           `json:"unsigned_tx,omitempty"`
	Diagnostics    *diagnosticsView `json:"execution_diagnostics,omitempty"`
	Offers         []offerView      `json:"offers,omitempty"`
	Error          string           `json:"error,omitempty"`
}

type diagnosticsView struct {
	Fills          [][2]string `json:"fills"`
	AveragePrice   string      `json:"average_price"`
	BestPrice      string      `json:"best_price"`
	ExecutionPrice string      `json:"execution_price"`
	Slippage       string      `json:"slippage"`
}

type offerView struct {
	ID      int64  `json:"id"`
	Selling string `json:"selling"`
	Buying  string `json:"buying"`
	Side    string `json:"side"`
	Amount  string `json:"amount"`
	Price   string `json:"price"`
}

func printResult(result adapter.TradeResult) {
	view := resultView{
		Success:        result.Success,
		Hash:           result.Hash,
		LedgerSequence: result.LedgerSequence,
		UnsignedTx:     result.UnsignedTx,
	}

	if result.Err != nil {
		view.Error = result.Err.Error()
	}

	if result.Diagnostics != nil {
		diagnostics := &diagnosticsView{
			AveragePrice:   result.Diagnostics.AveragePrice.String(),
			BestPrice:      result.Diagnostics.BestPrice.String(),
			ExecutionPrice: result.Diagnostics.ExecutionPrice.String(),
			Slippage:       result.Diagnostics.Slippage.String(),
		}
		for _, fill := range result.Diagnostics.Fills {
			diagnostics.Fills = append(diagnostics.Fills, [2]string{fill.Price.String(), fill.Amount.String()})
		}
		view.Diagnostics = diagnostics
	}

	for _, offer := range result.Offers {
		view.Offers = append(view.Offers, offerView{
			ID:      offer.ID,
			Selling: offer.Pair.Selling.String(),
			Buying:  offer.Pair.Buying.String(),
			Side:    offer.Side.String(),
			Amount:  offer.Amount.String(),
			Price:   offer.Price.String(),
		})
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(data))
}
