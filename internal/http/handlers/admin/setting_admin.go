package admin

import (
	"errors"

	"github.com/cedarmart-next/internal/cache"
	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/http/response"
	"github.com/cedarmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// publicConfigCacheKey 与公开配置接口使用的缓存键保持一致
const publicConfigCacheKey = "public:config"

// GetSettings 获取设置
func (h *Handler) GetSettings(c *gin.Context) {
	key := c.DefaultQuery("key", constants.SettingKeySiteConfig)

	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	if value == nil {
		response.Success(c, gin.H{})
		return
	}

	response.Success(c, value)
}

// UpdateSettingsRequest 更新设置请求
type UpdateSettingsRequest struct {
	Key   string                 `json:"key" binding:"required"`
	Value map[string]interface{} `json:"value" binding:"required"`
}

// UpdateSettings 更新设置
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	value, err := h.SettingService.Update(req.Key, req.Value)
	if err != nil {
		if errors.Is(err, service.ErrSettingInvalid) {
			respondError(c, response.CodeBadRequest, "error.setting_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.setting_update_failed", err)
		return
	}

	// 站点/订单配置会影响公开配置接口,更新后清理缓存
	if req.Key == constants.SettingKeySiteConfig || req.Key == constants.SettingKeyOrderConfig {
		_ = cache.Del(c.Request.Context(), publicConfigCacheKey)
	}
	response.Success(c, value)
}
