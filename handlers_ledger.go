package main

import (
	"net/http"

	"bitbucket.org/mmdatafocus/duka_backend/models"
	"github.com/gin-gonic/gin"
)

func createProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireShop(c); !ok {
			return
		}

		var req models.NewProduct
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBindError(c, err)
			return
		}
		// Price ordering is checked here, not in the store.
		if req.BuyingPrice.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "buying price must not be negative"})
			return
		}
		if !req.SellingPrice.GreaterThan(req.BuyingPrice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "selling price must be higher than buying price"})
			return
		}

		product, err := models.CreateProduct(c.Request.Context(), &req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func listProductsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireShop(c); !ok {
			return
		}
		products, err := models.GetProducts(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireShop(c); !ok {
			return
		}
		product, err := models.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func recordStockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireShop(c); !ok {
			return
		}

		var req models.NewLedgerEntry
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBindError(c, err)
			return
		}
		if req.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive whole number"})
			return
		}

		entry, err := models.RecordStock(c.Request.Context(), &req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func recordSaleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireShop(c); !ok {
			return
		}

		var req models.NewLedgerEntry
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBindError(c, err)
			return
		}
		if req.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive whole number"})
			return
		}

		entry, err := models.RecordSale(c.Request.Context(), &req)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}
