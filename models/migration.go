package models

import (
	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
)

func MigrateTable() {
	db := config.GetDB()

	utils.ErrorPanic(db.AutoMigrate(
		&User{}, &Shop{},
		&Product{},
		&StockEntry{}, &SaleEntry{},
	))
}
