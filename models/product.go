package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID           string          `gorm:"primary_key;size:36" json:"id"`
	ShopId       string          `gorm:"index;size:36;not null" json:"shop_id"`
	Name         string          `gorm:"size:100;not null" json:"name" binding:"required"`
	BuyingPrice  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"buying_price"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"selling_price"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "products" }

type NewProduct struct {
	Name         string          `json:"name" binding:"required"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// CreateProduct inserts a product for the caller's shop. Price ordering
// (selling > buying) is the caller's check, per the write contract;
// the store only persists what it is given.
func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	db := config.GetDB()

	shopId, ok := utils.GetShopIdFromContext(ctx)
	if !ok || shopId == "" {
		return nil, ErrorNotAuthenticated
	}

	product := Product{
		ID:           uuid.NewString(),
		ShopId:       shopId,
		Name:         strings.TrimSpace(input.Name),
		BuyingPrice:  input.BuyingPrice,
		SellingPrice: input.SellingPrice,
	}
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, utils.StoreUnavailable(err)
	}
	return &product, nil
}

// GetProducts lists the shop's products, most recently created first.
func GetProducts(ctx context.Context) ([]*Product, error) {
	db := config.GetDB()

	shopId, ok := utils.GetShopIdFromContext(ctx)
	if !ok || shopId == "" {
		return nil, ErrorNotAuthenticated
	}

	var results []*Product
	if err := db.WithContext(ctx).
		Where("shop_id = ?", shopId).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, utils.StoreUnavailable(err)
	}
	return results, nil
}

func GetProduct(ctx context.Context, id string) (*Product, error) {
	db := config.GetDB()

	var result Product
	if err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, utils.StoreUnavailable(err)
	}
	return &result, nil
}
