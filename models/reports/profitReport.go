package reports

import (
	"context"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/models"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"github.com/shopspring/decimal"
)

// ReportRow is one sale joined with its product's prices.
//
// NOTE: prices come from the products table at query time, so a later
// price change retroactively alters historical profit. There is no
// price history table to do better.
type ReportRow struct {
	Date         models.DateString `json:"date"`
	ProductName  string            `json:"name"`
	BuyingPrice  decimal.Decimal   `json:"buying_price"`
	SellingPrice decimal.Decimal   `json:"selling_price"`
	Quantity     int               `json:"quantity"`
	Profit       decimal.Decimal   `json:"profit"`
}

const reportRowColumns = `
    sales.date AS date,
    products.name AS product_name,
    products.buying_price AS buying_price,
    products.selling_price AS selling_price,
    sales.quantity AS quantity,
    (products.selling_price - products.buying_price) * sales.quantity AS profit`

// GetDailyProfit returns the summed profit and line items for one shop
// and one exact date. No matching sales is a zero result, not an error.
func GetDailyProfit(ctx context.Context, shopId string, date models.DateString) (decimal.Decimal, []*ReportRow, error) {
	sql := `
SELECT` + reportRowColumns + `
FROM
    sales
        JOIN
    products ON products.id = sales.product_id
WHERE
    sales.shop_id = @shopId
        AND sales.date = @date
ORDER BY sales.created_at, sales.id`

	db := config.GetDB()
	var rows []*ReportRow
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"shopId": shopId,
		"date":   date.String(),
	}).Scan(&rows).Error; err != nil {
		config.LogError(config.GetLogger(), "reports", "GetDailyProfit", "scan", nil, err)
		return decimal.Zero, nil, utils.StoreUnavailable(err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Profit)
	}
	if rows == nil {
		rows = []*ReportRow{}
	}
	return total, rows, nil
}

// GetRangeReport returns report rows for the inclusive window
// [fromDate, toDate], optionally filtered to one product name.
// A reversed window is the caller's mistake and is rejected, not swapped.
func GetRangeReport(ctx context.Context, shopId string, fromDate models.DateString, toDate models.DateString, productName *string) ([]*ReportRow, error) {
	if fromDate.Time().After(toDate.Time()) {
		return nil, utils.ErrorInvalidRange
	}

	sqlT := `
SELECT` + reportRowColumns + `
FROM
    sales
        JOIN
    products ON products.id = sales.product_id
WHERE
    sales.shop_id = @shopId
        AND sales.date BETWEEN @fromDate AND @toDate
        {{- if .productName }} AND products.name = @productName {{- end }}
ORDER BY sales.date, sales.created_at, sales.id`

	sql, err := utils.ExecTemplate(sqlT, map[string]interface{}{
		"productName": utils.DereferencePtr(productName, ""),
	})
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var rows []*ReportRow
	if err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"shopId":      shopId,
		"fromDate":    fromDate.String(),
		"toDate":      toDate.String(),
		"productName": utils.DereferencePtr(productName, ""),
	}).Scan(&rows).Error; err != nil {
		config.LogError(config.GetLogger(), "reports", "GetRangeReport", "scan", nil, err)
		return nil, utils.StoreUnavailable(err)
	}
	if rows == nil {
		rows = []*ReportRow{}
	}
	return rows, nil
}
