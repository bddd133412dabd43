package main

import (
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/duka_backend/models"
	"bitbucket.org/mmdatafocus/duka_backend/models/reports"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"github.com/gin-gonic/gin"
)

// parseRangeQuery reads ?start=&end=&product=. The window defaults to
// the first of the current month through today.
func parseRangeQuery(c *gin.Context) (models.DateString, models.DateString, *string, bool) {
	monthStart, today := utils.GetThisMonthRange()
	start := models.DateString(monthStart)
	end := models.DateString(today)

	if v := c.Query("start"); v != "" {
		parsed, err := models.ParseDateString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return start, end, nil, false
		}
		start = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := models.ParseDateString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return start, end, nil, false
		}
		end = parsed
	}

	var product *string
	if v := c.Query("product"); v != "" {
		product = &v
	}
	return start, end, product, true
}

func dailyProfitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := requireShop(c)
		if !ok {
			return
		}

		date := models.DateString(time.Now())
		if v := c.Query("date"); v != "" {
			parsed, err := models.ParseDateString(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			date = parsed
		}

		total, lineItems, err := reports.GetDailyProfit(c.Request.Context(), shopId, date)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"date":         date,
			"total_profit": total,
			"line_items":   lineItems,
		})
	}
}

func rangeReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := requireShop(c)
		if !ok {
			return
		}
		start, end, product, ok := parseRangeQuery(c)
		if !ok {
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "range_report")
		defer span.End()

		rows, err := reports.GetRangeReport(ctx, shopId, start, end, product)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"start": start,
			"end":   end,
			"rows":  rows,
		})
	}
}

func summaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := requireShop(c)
		if !ok {
			return
		}
		start, end, product, ok := parseRangeQuery(c)
		if !ok {
			return
		}

		rows, err := reports.GetRangeReport(c.Request.Context(), shopId, start, end, product)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, reports.Summarize(rows))
	}
}

func byDayHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := requireShop(c)
		if !ok {
			return
		}
		start, end, product, ok := parseRangeQuery(c)
		if !ok {
			return
		}

		rows, err := reports.GetRangeReport(c.Request.Context(), shopId, start, end, product)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, reports.GroupByDay(rows))
	}
}

func byProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := requireShop(c)
		if !ok {
			return
		}
		start, end, product, ok := parseRangeQuery(c)
		if !ok {
			return
		}

		rows, err := reports.GetRangeReport(c.Request.Context(), shopId, start, end, product)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, reports.GroupByProduct(rows))
	}
}

func exportCSVHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := requireShop(c)
		if !ok {
			return
		}
		start, end, product, ok := parseRangeQuery(c)
		if !ok {
			return
		}

		rows, err := reports.GetRangeReport(c.Request.Context(), shopId, start, end, product)
		if err != nil {
			abortWithError(c, err)
			return
		}

		filename := "sales_report_" + start.String() + "_" + end.String() + ".csv"
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := reports.WriteReportCSV(c.Writer, rows); err != nil {
			c.Error(err)
		}
	}
}

func exportExcelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId, ok := requireShop(c)
		if !ok {
			return
		}
		start, end, product, ok := parseRangeQuery(c)
		if !ok {
			return
		}

		rows, err := reports.GetRangeReport(c.Request.Context(), shopId, start, end, product)
		if err != nil {
			abortWithError(c, err)
			return
		}

		f, err := reports.BuildReportExcel(rows)
		if err != nil {
			abortWithError(c, err)
			return
		}
		filename := "sales_report_" + start.String() + "_" + end.String() + ".xlsx"
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := f.Write(c.Writer); err != nil {
			c.Error(err)
		}
	}
}
