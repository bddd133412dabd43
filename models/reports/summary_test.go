package reports

import (
	"testing"

	"bitbucket.org/mmdatafocus/duka_backend/models"
	"github.com/shopspring/decimal"
)

func mustDate(t *testing.T, s string) models.DateString {
	t.Helper()
	d, err := models.ParseDateString(s)
	if err != nil {
		t.Fatalf("ParseDateString(%q): %v", s, err)
	}
	return d
}

func row(t *testing.T, date, name, buy, sell string, qty int) *ReportRow {
	t.Helper()
	b := decimal.RequireFromString(buy)
	s := decimal.RequireFromString(sell)
	return &ReportRow{
		Date:         mustDate(t, date),
		ProductName:  name,
		BuyingPrice:  b,
		SellingPrice: s,
		Quantity:     qty,
		Profit:       s.Sub(b).Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestSummarize_WorkedExample(t *testing.T) {
	// Product A bought at 10 sold at 15, three units; product B bought
	// at 20 sold at 25, two units. Line profits 15 and 10, total 25.
	rows := []*ReportRow{
		row(t, "2026-08-01", "A", "10", "15", 3),
		row(t, "2026-08-01", "B", "20", "25", 2),
	}
	if rows[0].Profit.String() != "15" {
		t.Fatalf("line profit A: expected 15, got %s", rows[0].Profit)
	}
	if rows[1].Profit.String() != "10" {
		t.Fatalf("line profit B: expected 10, got %s", rows[1].Profit)
	}

	summary := Summarize(rows)
	if summary.TotalSales != 2 {
		t.Fatalf("total sales: expected 2, got %d", summary.TotalSales)
	}
	if summary.TotalRevenue.String() != "95" { // 15*3 + 25*2
		t.Fatalf("total revenue: expected 95, got %s", summary.TotalRevenue)
	}
	if summary.TotalCost.String() != "70" { // 10*3 + 20*2
		t.Fatalf("total cost: expected 70, got %s", summary.TotalCost)
	}
	if summary.TotalProfit.String() != "25" {
		t.Fatalf("total profit: expected 25, got %s", summary.TotalProfit)
	}
	if summary.AvgProfitPerSale.String() != "12.5" {
		t.Fatalf("avg profit per sale: expected 12.5, got %s", summary.AvgProfitPerSale)
	}
	// 25/95 * 100 rounded to 2dp
	if summary.ProfitMarginPct.String() != "26.32" {
		t.Fatalf("profit margin: expected 26.32, got %s", summary.ProfitMarginPct)
	}
}

func TestSummarize_EmptyIsAllZeros(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalSales != 0 {
		t.Fatalf("total sales: expected 0, got %d", summary.TotalSales)
	}
	for name, v := range map[string]decimal.Decimal{
		"total_revenue":       summary.TotalRevenue,
		"total_cost":          summary.TotalCost,
		"total_profit":        summary.TotalProfit,
		"avg_profit_per_sale": summary.AvgProfitPerSale,
		"profit_margin_pct":   summary.ProfitMarginPct,
	} {
		if !v.IsZero() {
			t.Fatalf("%s: expected zero, got %s", name, v)
		}
	}
}

func TestSummarize_TotalMatchesRowProfits(t *testing.T) {
	rows := []*ReportRow{
		row(t, "2026-08-01", "A", "10", "15", 3),
		row(t, "2026-08-02", "B", "20", "25", 2),
		row(t, "2026-08-03", "A", "10", "15", 7),
		row(t, "2026-08-03", "C", "1.25", "2.75", 4),
	}
	expected := decimal.Zero
	for _, r := range rows {
		expected = expected.Add(r.Profit)
	}
	summary := Summarize(rows)
	if !summary.TotalProfit.Equal(expected) {
		t.Fatalf("total profit %s does not equal sum of row profits %s", summary.TotalProfit, expected)
	}
}

func TestGroupByDay_AscendingDates(t *testing.T) {
	rows := []*ReportRow{
		row(t, "2026-08-03", "A", "10", "15", 1),
		row(t, "2026-08-01", "A", "10", "15", 2),
		row(t, "2026-08-01", "B", "20", "25", 1),
		row(t, "2026-08-02", "B", "20", "25", 3),
	}
	days := GroupByDay(rows)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	expectedDates := []string{"2026-08-01", "2026-08-02", "2026-08-03"}
	for i, d := range days {
		if d.Date.String() != expectedDates[i] {
			t.Fatalf("day %d: expected %s, got %s", i, expectedDates[i], d.Date)
		}
	}
	// 2026-08-01: A profit 10 + B profit 5, quantity 3
	if days[0].Profit.String() != "15" || days[0].Quantity != 3 {
		t.Fatalf("first day rollup: expected profit 15 qty 3, got %s/%d", days[0].Profit, days[0].Quantity)
	}
}

func TestGroupByProduct_ProfitDescending(t *testing.T) {
	rows := []*ReportRow{
		row(t, "2026-08-01", "Low", "10", "11", 1),
		row(t, "2026-08-01", "High", "10", "20", 5),
		row(t, "2026-08-02", "High", "10", "20", 1),
		row(t, "2026-08-02", "Mid", "10", "15", 2),
	}
	products := GroupByProduct(rows)
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	expectedOrder := []string{"High", "Mid", "Low"}
	for i, p := range products {
		if p.ProductName != expectedOrder[i] {
			t.Fatalf("position %d: expected %s, got %s", i, expectedOrder[i], p.ProductName)
		}
	}
	if products[0].Profit.String() != "60" || products[0].Quantity != 6 {
		t.Fatalf("High rollup: expected profit 60 qty 6, got %s/%d", products[0].Profit, products[0].Quantity)
	}
}

func TestGroupByProduct_TiesBreakOnName(t *testing.T) {
	rows := []*ReportRow{
		row(t, "2026-08-01", "Zeta", "10", "15", 2),
		row(t, "2026-08-01", "Alpha", "10", "15", 2),
	}
	products := GroupByProduct(rows)
	if products[0].ProductName != "Alpha" || products[1].ProductName != "Zeta" {
		t.Fatalf("expected name tiebreak Alpha before Zeta, got %s then %s",
			products[0].ProductName, products[1].ProductName)
	}
}
