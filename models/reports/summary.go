package reports

import (
	"sort"

	"bitbucket.org/mmdatafocus/duka_backend/models"
	"github.com/shopspring/decimal"
)

type ReportSummary struct {
	TotalSales       int             `json:"total_sales"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	AvgProfitPerSale decimal.Decimal `json:"avg_profit_per_sale"`
	ProfitMarginPct  decimal.Decimal `json:"profit_margin_pct"`
}

type DayRollup struct {
	Date     models.DateString `json:"date"`
	Profit   decimal.Decimal   `json:"profit"`
	Quantity int               `json:"quantity"`
}

type ProductRollup struct {
	ProductName string          `json:"name"`
	Profit      decimal.Decimal `json:"profit"`
	Quantity    int             `json:"quantity"`
}

var oneHundred = decimal.NewFromInt(100)

// Summarize computes the headline metrics for a set of report rows.
// Empty input yields all-zero metrics; the zero denominators are guarded,
// never raised.
func Summarize(rows []*ReportRow) ReportSummary {
	summary := ReportSummary{
		TotalRevenue:     decimal.Zero,
		TotalCost:        decimal.Zero,
		TotalProfit:      decimal.Zero,
		AvgProfitPerSale: decimal.Zero,
		ProfitMarginPct:  decimal.Zero,
	}

	for _, row := range rows {
		qty := decimal.NewFromInt(int64(row.Quantity))
		summary.TotalRevenue = summary.TotalRevenue.Add(row.SellingPrice.Mul(qty))
		summary.TotalCost = summary.TotalCost.Add(row.BuyingPrice.Mul(qty))
	}
	summary.TotalSales = len(rows)
	// revenue - cost; identical to summing per-row profits since profit
	// is (sell - buy) * qty row by row
	summary.TotalProfit = summary.TotalRevenue.Sub(summary.TotalCost)

	if summary.TotalSales > 0 {
		summary.AvgProfitPerSale = summary.TotalProfit.DivRound(decimal.NewFromInt(int64(summary.TotalSales)), 2)
	}
	if !summary.TotalRevenue.IsZero() {
		summary.ProfitMarginPct = summary.TotalProfit.Mul(oneHundred).DivRound(summary.TotalRevenue, 2)
	}
	return summary
}

// GroupByDay sums profit and quantity per calendar date, ascending by
// date (the daily trend series).
func GroupByDay(rows []*ReportRow) []*DayRollup {
	byDay := make(map[string]*DayRollup)
	for _, row := range rows {
		key := row.Date.String()
		rollup := byDay[key]
		if rollup == nil {
			rollup = &DayRollup{Date: row.Date, Profit: decimal.Zero}
			byDay[key] = rollup
		}
		rollup.Profit = rollup.Profit.Add(row.Profit)
		rollup.Quantity += row.Quantity
	}

	results := make([]*DayRollup, 0, len(byDay))
	for _, rollup := range byDay {
		results = append(results, rollup)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Date.Time().Before(results[j].Date.Time())
	})
	return results
}

// GroupByProduct sums profit and quantity per product name, descending
// by profit ("top performers"); ties break on name for determinism.
func GroupByProduct(rows []*ReportRow) []*ProductRollup {
	byProduct := make(map[string]*ProductRollup)
	for _, row := range rows {
		rollup := byProduct[row.ProductName]
		if rollup == nil {
			rollup = &ProductRollup{ProductName: row.ProductName, Profit: decimal.Zero}
			byProduct[row.ProductName] = rollup
		}
		rollup.Profit = rollup.Profit.Add(row.Profit)
		rollup.Quantity += row.Quantity
	}

	results := make([]*ProductRollup, 0, len(byProduct))
	for _, rollup := range byProduct {
		results = append(results, rollup)
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].Profit.Equal(results[j].Profit) {
			return results[i].Profit.GreaterThan(results[j].Profit)
		}
		return results[i].ProductName < results[j].ProductName
	})
	return results
}
