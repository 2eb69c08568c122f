package admin

import (
	"errors"
	"strconv"

	"github.com/cedarmart-next/internal/http/response"
	"github.com/cedarmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	ParentID    *uint  `json:"parent_id"`
	Slug        string `json:"slug"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		ParentID:    r.ParentID,
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

func parseCategoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
		return 0, false
	}
	return uint(id), true
}

func respondCategoryWriteError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrCategoryParentNotFound):
		respondError(c, response.CodeBadRequest, "error.category_parent_not_found", nil)
	case errors.Is(err, service.ErrCategoryDepthExceeded):
		respondError(c, response.CodeBadRequest, "error.category_depth_exceeded", nil)
	case errors.Is(err, service.ErrCategorySlugExists):
		respondError(c, response.CodeBadRequest, "error.category_slug_exists", nil)
	case errors.Is(err, service.ErrCategoryNameExists):
		respondError(c, response.CodeBadRequest, "error.category_name_exists", nil)
	case errors.Is(err, service.ErrCategoryHasChildren):
		respondError(c, response.CodeBadRequest, "error.category_has_children", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, response.CodeBadRequest, "error.category_in_use", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// GetAdminCategories 获取分类列表 (Admin, 含未启用)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(false)
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.Success(c, categories)
}

// GetAdminCategory 获取分类详情 (Admin)
func (h *Handler) GetAdminCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	category, err := h.CategoryService.GetByID(id)
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

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondCategoryWriteError(c, err, "error.category_create_failed")
		return
	}

	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondCategoryWriteError(c, err, "error.category_update_failed")
		return
	}

	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		respondCategoryWriteError(c, err, "error.category_delete_failed")
		return
	}

	response.Success(c, nil)
}
