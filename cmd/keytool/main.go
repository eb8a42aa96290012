package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"main/internal/account"
	"main/internal/adapter"
	"main/internal/keystore"
	"main/internal/ledger"
	"main/internal/ops"
	"main/internal/pipeline"
	"main/internal/trust"

	"github.com/shopspring/decimal"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	secret := flag.String("secret", "", "Secret key for import")
	accountID := flag.String("account", "", "Account id for export/fund/get/trust")
	assetCode := flag.String("asset", "", "Asset code for trust/untrust")
	assetIssuer := flag.String("issuer", "", "Asset issuer for trust/untrust")
	limit := flag.String("limit", "", "Trustline limit (empty = maximum)")
	count := flag.Int("count", 10, "Max entries for transactions")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		log.Fatal("usage: keytool [flags] create|import|export|list|fund|get|transactions|trust|untrust")
	}

	loaded, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	keys, err := openKeystore(loaded.Keystore)
	if err != nil {
		log.Fatalf("keystore open failed: %v", err)
	}
	defer keys.Close()

	client := ledger.NewClient(http.DefaultClient, loaded.LedgerURL, loaded.FriendbotURL)
	manager := account.NewManager(keys, client)
	trusts := trust.NewManager(pipeline.New(client, keys, loaded.Pipeline))
	ctx := context.Background()

	switch command {
	case "create":
		created, err := manager.Create()
		if err != nil {
			log.Fatalf("create failed: %v", err)
		}
		fmt.Println(created)
	case "import":
		imported, err := manager.Import(*secret)
		if err != nil {
			log.Fatalf("import failed: %v", err)
		}
		fmt.Println(imported)
	case "export":
		exported, err := manager.Export(*accountID)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		fmt.Println(exported)
	case "list":
		accounts, err := manager.List()
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		for _, id := range accounts {
			fmt.Println(id)
		}
	case "fund":
		funded, err := manager.Fund(ctx, *accountID)
		if err != nil {
			log.Fatalf("fund failed: %v", err)
		}
		printAccount(funded)
	case "get":
		got, err := manager.Get(ctx, *accountID)
		if err != nil {
			log.Fatalf("get failed: %v", err)
		}
		printAccount(got)
	case "transactions":
		transactions, err := manager.Transactions(ctx, *accountID, *count)
		if err != nil {
			log.Fatalf("transactions failed: %v", err)
		}
		for _, transaction := range transactions {
			fmt.Printf("%s ledger=%d ops=%d fee=%d successful=%t %s\n",
				transaction.Hash, transaction.Ledger, transaction.OperationCount,
				transaction.FeeCharged, transaction.Successful, transaction.CreatedAt)
		}
	case "trust":
		var trustLimit *decimal.Decimal
		if *limit != "" {
			parsed, err := decimal.NewFromString(*limit)
			if err != nil {
				log.Fatalf("limit %q: %v", *limit, err)
			}
			trustLimit = &parsed
		}
		printOutcome(trusts.Establish(ctx, *accountID, adapter.IssuedAsset(*assetCode, *assetIssuer), trustLimit, true))
	case "untrust":
		printOutcome(trusts.Remove(ctx, *accountID, adapter.IssuedAsset(*assetCode, *assetIssuer), true))
	default:
		log.Fatalf("unknown command %q", command)
	}
}

func printOutcome(outcome pipeline.Outcome) {
	if outcome.Err != nil {
		log.Fatalf("trustline change failed: %v", outcome.Err)
	}
	fmt.Printf("hash: %s\nledger: %d\n", outcome.Hash, outcome.Ledger)
}

func openKeystore(cfg ops.KeystoreConfig) (keystore.Store, error) {
	switch cfg.Backend {
	case "postgres":
		return keystore.OpenPgStore(cfg.Postgres)
	default:
		return keystore.OpenFileStore(cfg.Path)
	}
}

func printAccount(acc ledger.Account) {
	fmt.Printf("account: %s\nsequence: %d\n", acc.ID, acc.Sequence)
	for _, balance := range acc.Balances {
		fmt.Printf("balance: %s %s\n", balance.Amount, balance.Asset)
	}
}
