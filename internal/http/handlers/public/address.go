package public

import (
	"errors"
	"strconv"

	"github.com/cedarmart-next/internal/http/response"
	"github.com/cedarmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 收货地址请求
type AddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required"`
	Phone         string `json:"phone"`
	Line1         string `json:"line1" binding:"required"`
	Line2         string `json:"line2"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required"`
	IsDefault     bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		RecipientName: r.RecipientName,
		Phone:         r.Phone,
		Line1:         r.Line1,
		Line2:         r.Line2,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		IsDefault:     r.IsDefault,
	}
}

func parseAddressID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.address_not_found", nil)
		return 0, false
	}
	return uint(id), true
}

// ListAddresses 获取当前用户地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addresses, err := h.AddressService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.address_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": addresses})
}

// GetAddress 获取地址详情
func (h *Handler) GetAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseAddressID(c)
	if !ok {
		return
	}

	address, err := h.AddressService.GetByIDAndUser(id, uid)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "error.address_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.address_fetch_failed", err)
		return
	}
	response.Success(c, address)
}

// CreateAddress 新增收货地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	address, err := h.AddressService.Create(uid, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressWriteErrorRules, response.CodeInternal, "error.address_create_failed")
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新收货地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseAddressID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	address, err := h.AddressService.Update(id, uid, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressWriteErrorRules, response.CodeInternal, "error.address_update_failed")
		return
	}
	response.Success(c, address)
}

// SetDefaultAddress 设置默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseAddressID(c)
	if !ok {
		return
	}

	address, err := h.AddressService.SetDefault(id, uid)
	if err != nil {
		respondWithMappedError(c, err, addressWriteErrorRules, response.CodeInternal, "error.address_update_failed")
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除收货地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseAddressID(c)
	if !ok {
		return
	}

	if err := h.AddressService.Delete(id, uid); err != nil {
		respondWithMappedError(c, err, addressWriteErrorRules, response.CodeInternal, "error.address_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
