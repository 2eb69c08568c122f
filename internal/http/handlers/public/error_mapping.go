package public

import (
	"errors"

	"github.com/cedarmart-next/internal/http/response"
	"github.com/cedarmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// productAvailabilityErrorRules 购物车与下单共用的商品可售性校验错误。
var productAvailabilityErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, key: "error.insufficient_stock"},
}

var cartItemErrorRules = concatMappedHandlerErrors(productAvailabilityErrorRules, []mappedHandlerError{
	{target: service.ErrCartQuantityInvalid, code: response.CodeBadRequest, key: "error.cart_quantity_invalid"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
})

var orderCreateErrorRules = concatMappedHandlerErrors(productAvailabilityErrorRules, []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCartItemUnavailable, code: response.CodeBadRequest, key: "error.cart_item_unavailable"},
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, key: "error.order_item_invalid"},
	{target: service.ErrShippingMethodInvalid, code: response.CodeBadRequest, key: "error.shipping_method_invalid"},
	{target: service.ErrShippingAddressRequired, code: response.CodeBadRequest, key: "error.shipping_address_required"},
	{target: service.ErrAddressNotFound, code: response.CodeBadRequest, key: "error.address_not_found"},
})

var orderCancelErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, key: "error.order_cancel_not_allowed"},
	{target: service.ErrCancelReasonRequired, code: response.CodeBadRequest, key: "error.order_cancel_reason_required"},
}

var addressWriteErrorRules = []mappedHandlerError{
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, key: "error.address_not_found"},
	{target: service.ErrAddressInvalid, code: response.CodeBadRequest, key: "error.address_invalid"},
	{target: service.ErrAddressLimitExceeded, code: response.CodeBadRequest, key: "error.address_limit_exceeded"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrWishlistExists, code: response.CodeBadRequest, key: "error.wishlist_exists"},
	{target: service.ErrWishlistNotFound, code: response.CodeNotFound, key: "error.wishlist_not_found"},
}

func respondCartItemError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "error.order_create_failed")
}

func respondOrderCancelError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCancelErrorRules, response.CodeInternal, "error.order_update_failed")
}
