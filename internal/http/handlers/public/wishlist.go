package public

import (
	"strconv"

	"github.com/cedarmart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistAddRequest 添加心愿单请求
type WishlistAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// ListWishlist 分页获取当前用户心愿单
func (h *Handler) ListWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.WishlistService.List(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, items, pagination)
}

// AddWishlistItem 添加商品到心愿单
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.WishlistService.Add(uid, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "error.wishlist_update_failed")
		return
	}
	response.Success(c, item)
}

// RemoveWishlistItem 从心愿单移除商品
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.wishlist_not_found", nil)
		return
	}

	if err := h.WishlistService.Remove(uid, uint(productID)); err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
