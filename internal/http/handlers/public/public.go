package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cedarmart-next/internal/cache"
	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/http/response"
	"github.com/cedarmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	// 默认配置
	defaults := map[string]interface{}{
		"languages":                        constants.SupportedLocales,
		constants.SettingFieldSiteCurrency: constants.SiteCurrencyDefault,
		"brand":                            map[string]interface{}{},
		"contact":                          map[string]interface{}{},
	}

	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.SettingService.GetConfig(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}

	pricing, err := h.SettingService.GetOrderPricingConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	data["shipping"] = map[string]interface{}{
		"standard_fee":            pricing.StandardShippingFee.String(),
		"express_fee":             pricing.ExpressShippingFee.String(),
		"free_shipping_threshold": pricing.FreeShippingThreshold.String(),
		"methods":                 constants.ShippingMethods,
	}
	data["tax_rate"] = pricing.TaxRate.String()

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID := c.Query("category_id")
	search := strings.TrimSpace(c.Query("search"))
	inStockOnly := c.Query("in_stock") == "true"

	products, total, err := h.ProductService.ListPublic(categoryID, search, inStockOnly, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.ProductService.GetPublicBySlug(slug)
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

// GetCategories 获取分类树,仅含启用分类
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListTree(true)
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.Success(c, categories)
}

// GetCategoryBySlug 根据 slug 获取分类详情
func (h *Handler) GetCategoryBySlug(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.CategoryService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.Success(c, category)
}
