package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"github.com/google/uuid"
)

// The ledger is append-only: stock and sale rows are inserted once and
// never updated or deleted. Profit is always derived at query time.

type StockEntry struct {
	ID        string     `gorm:"primary_key;size:36" json:"id"`
	ShopId    string     `gorm:"index;size:36;not null" json:"shop_id"`
	ProductId string     `gorm:"index;size:36;not null" json:"product_id"`
	Quantity  int        `gorm:"not null" json:"quantity"`
	Date      DateString `gorm:"type:date;not null" json:"date"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (StockEntry) TableName() string { return "stock" }

type SaleEntry struct {
	ID        string     `gorm:"primary_key;size:36" json:"id"`
	ShopId    string     `gorm:"index;size:36;not null" json:"shop_id"`
	ProductId string     `gorm:"index;size:36;not null" json:"product_id"`
	Quantity  int        `gorm:"not null" json:"quantity"`
	Date      DateString `gorm:"type:date;not null" json:"date"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (SaleEntry) TableName() string { return "sales" }

type NewLedgerEntry struct {
	ProductId string     `json:"product_id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required"`
	Date      DateString `json:"date" binding:"required"`
}

// validateProductOwnership rejects writes whose product does not belong
// to the claimed shop. Quantity/price validation is the caller's job;
// referential integrity is the repository's.
func validateProductOwnership(ctx context.Context, shopId string, productId string) error {
	db := config.GetDB()

	var count int64
	if err := db.WithContext(ctx).Model(&Product{}).
		Where("id = ? AND shop_id = ?", productId, shopId).
		Count(&count).Error; err != nil {
		return utils.StoreUnavailable(err)
	}
	if count <= 0 {
		return utils.ErrorReferentialMismatch
	}
	return nil
}

// RecordStock appends one inventory-received entry.
func RecordStock(ctx context.Context, input *NewLedgerEntry) (*StockEntry, error) {
	db := config.GetDB()

	shopId, ok := utils.GetShopIdFromContext(ctx)
	if !ok || shopId == "" {
		return nil, ErrorNotAuthenticated
	}
	if err := validateProductOwnership(ctx, shopId, input.ProductId); err != nil {
		return nil, err
	}

	entry := StockEntry{
		ID:        uuid.NewString(),
		ShopId:    shopId,
		ProductId: input.ProductId,
		Quantity:  input.Quantity,
		Date:      input.Date,
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, utils.StoreUnavailable(err)
	}
	return &entry, nil
}

// RecordSale appends one sale transaction.
func RecordSale(ctx context.Context, input *NewLedgerEntry) (*SaleEntry, error) {
	db := config.GetDB()

	shopId, ok := utils.GetShopIdFromContext(ctx)
	if !ok || shopId == "" {
		return nil, ErrorNotAuthenticated
	}
	if err := validateProductOwnership(ctx, shopId, input.ProductId); err != nil {
		return nil, err
	}

	entry := SaleEntry{
		ID:        uuid.NewString(),
		ShopId:    shopId,
		ProductId: input.ProductId,
		Quantity:  input.Quantity,
		Date:      input.Date,
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, utils.StoreUnavailable(err)
	}
	return &entry, nil
}
