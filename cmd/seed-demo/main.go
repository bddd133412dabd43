// seed-demo creates a demo shop with a small product catalog plus a few
// days of stock and sales, so a fresh environment has data to report on.
// Safe to re-run: if the demo account already exists it exits without
// touching it.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/models"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"github.com/shopspring/decimal"
)

const (
	demoEmail    = "demo@duka.local"
	demoPassword = "Duka-Demo-1!"
	demoShopName = "Demo Duka"
)

type demoProduct struct {
	name string
	buy  string
	sell string
}

var demoCatalog = []demoProduct{
	{"Sugar 1kg", "10", "15"},
	{"Rice 2kg", "20", "25"},
	{"Cooking Oil 1L", "30", "42"},
	{"Tea Leaves 250g", "8", "12.5"},
}

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	user, err := models.RegisterShop(ctx, &models.NewShopAccount{
		Email:    demoEmail,
		Password: demoPassword,
		ShopName: demoShopName,
	})
	if err != nil {
		if errors.Is(err, utils.ErrorDuplicateAccount) {
			fmt.Printf("demo account %q already exists; nothing to do\n", demoEmail)
			return
		}
		fmt.Fprintf(os.Stderr, "failed to create demo account: %v\n", err)
		os.Exit(1)
	}

	// Domain writes read the shop id from context, same as the handlers.
	ctx = utils.SetShopIdInContext(ctx, user.ID)

	products := make([]*models.Product, 0, len(demoCatalog))
	for _, p := range demoCatalog {
		product, err := models.CreateProduct(ctx, &models.NewProduct{
			Name:         p.name,
			BuyingPrice:  decimal.RequireFromString(p.buy),
			SellingPrice: decimal.RequireFromString(p.sell),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create product %q: %v\n", p.name, err)
			os.Exit(1)
		}
		products = append(products, product)
	}

	// A week of activity: restock every product, then sell a staggered
	// quantity per day so the reports have uneven numbers to show.
	today := time.Now()
	for dayOffset := 6; dayOffset >= 0; dayOffset-- {
		date := models.DateString(today.AddDate(0, 0, -dayOffset))
		for i, product := range products {
			if _, err := models.RecordStock(ctx, &models.NewLedgerEntry{
				ProductId: product.ID,
				Quantity:  10,
				Date:      date,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "failed to record stock: %v\n", err)
				os.Exit(1)
			}
			qty := 1 + (dayOffset+i)%4
			if _, err := models.RecordSale(ctx, &models.NewLedgerEntry{
				ProductId: product.ID,
				Quantity:  qty,
				Date:      date,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "failed to record sale: %v\n", err)
				os.Exit(1)
			}
		}
	}

	// Sanity count across all shops, bypassing tenant scoping.
	adminCtx := utils.SetSkipShopScopeInContext(context.Background(), true)
	var saleCount int64
	if err := config.GetDB().WithContext(adminCtx).Model(&models.SaleEntry{}).Count(&saleCount).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to count sales: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded demo shop %q (email=%q, password=%q) with %d products and 7 days of ledger entries; %d sales rows total\n",
		demoShopName, demoEmail, demoPassword, len(products), saleCount)
}
