package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cedarmart-next/internal/http/response"
	"github.com/cedarmart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	CategoryID     uint     `json:"category_id" binding:"required"`
	SKU            string   `json:"sku" binding:"required"`
	Slug           string   `json:"slug"`
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	PriceAmount    string   `json:"price_amount" binding:"required"`
	CompareAtPrice string   `json:"compare_at_price"`
	Images         []string `json:"images"`
	Tags           []string `json:"tags"`
	Status         string   `json:"status"`
	StockQuantity  *int     `json:"stock_quantity"`
	AllowBackorder *bool    `json:"allow_backorder"`
	LowStockAlert  *int     `json:"low_stock_alert"`
	SortOrder      int      `json:"sort_order"`
}

func (r ProductRequest) toInput() (service.ProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.PriceAmount))
	if err != nil {
		return service.ProductInput{}, err
	}
	compareAt := decimal.Zero
	if strings.TrimSpace(r.CompareAtPrice) != "" {
		compareAt, err = decimal.NewFromString(strings.TrimSpace(r.CompareAtPrice))
		if err != nil {
			return service.ProductInput{}, err
		}
	}
	return service.ProductInput{
		CategoryID:     r.CategoryID,
		SKU:            r.SKU,
		Slug:           r.Slug,
		Name:           r.Name,
		Description:    r.Description,
		PriceAmount:    price,
		CompareAtPrice: compareAt,
		Images:         r.Images,
		Tags:           r.Tags,
		Status:         r.Status,
		StockQuantity:  r.StockQuantity,
		AllowBackorder: r.AllowBackorder,
		LowStockAlert:  r.LowStockAlert,
		SortOrder:      r.SortOrder,
	}, nil
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.product_not_found", nil)
		return 0, false
	}
	return uint(id), true
}

func respondProductWriteError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrProductSlugExists):
		respondError(c, response.CodeBadRequest, "error.product_slug_exists", nil)
	case errors.Is(err, service.ErrProductSKUExists):
		respondError(c, response.CodeBadRequest, "error.product_sku_exists", nil)
	case errors.Is(err, service.ErrProductPriceInvalid):
		respondError(c, response.CodeBadRequest, "error.product_price_invalid", nil)
	case errors.Is(err, service.ErrProductUnavailable):
		respondError(c, response.CodeBadRequest, "error.product_status_invalid", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categoryID := c.Query("category_id")
	status := c.Query("status")
	search := c.Query("search")

	products, total, err := h.ProductService.ListAdmin(categoryID, status, search, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrProductUnavailable) {
			respondError(c, response.CodeBadRequest, "error.product_status_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.product_price_invalid", err)
		return
	}

	product, err := h.ProductService.Create(input)
	if err != nil {
		respondProductWriteError(c, err, "error.product_create_failed")
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.product_price_invalid", err)
		return
	}

	product, err := h.ProductService.Update(id, input)
	if err != nil {
		respondProductWriteError(c, err, "error.product_update_failed")
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_delete_failed", err)
		return
	}

	response.Success(c, nil)
}
