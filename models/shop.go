package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"gorm.io/gorm"
)

// Shop shares its id with the owning user row (one shop per account).
type Shop struct {
	ID        string    `gorm:"primary_key;size:36" json:"id"`
	ShopName  string    `gorm:"size:100;not null" json:"shop_name" binding:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Shop) TableName() string { return "shops" }

// GetShop is cache-aside over redis: shop rows carry no secrets and
// have no update path, so a TTL cache is safe.
func GetShop(ctx context.Context, id string) (*Shop, error) {
	db := config.GetDB()

	var result Shop
	if exists, err := config.GetRedisObject("Shop:"+id, &result); err == nil && exists {
		return &result, nil
	}
	if err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, utils.StoreUnavailable(err)
	}
	if err := config.SetRedisObject("Shop:"+id, result, time.Hour); err != nil {
		return nil, err
	}
	return &result, nil
}
