package service

import "errors"

// 通用错误
var (
	ErrNotFound         = errors.New("resource not found")
	ErrQueueUnavailable = errors.New("queue unavailable")
)

// 认证相关错误
var (
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrUserDisabled               = errors.New("user disabled")
	ErrUserNotFound               = errors.New("user not found")
	ErrEmailExists                = errors.New("email already exists")
	ErrInvalidEmail               = errors.New("invalid email")
	ErrInvalidPassword            = errors.New("invalid password")
	ErrWeakPassword               = errors.New("password too weak")
	ErrInvalidVerifyPurpose       = errors.New("invalid verify purpose")
	ErrVerifyCodeInvalid          = errors.New("verify code invalid")
	ErrVerifyCodeExpired          = errors.New("verify code expired")
	ErrVerifyCodeTooFrequent      = errors.New("verify code requested too frequently")
	ErrVerifyCodeAttemptsExceeded = errors.New("verify code attempts exceeded")
	ErrAdminUsernameExists        = errors.New("admin username already exists")
	ErrEmailNotVerified           = errors.New("email not verified")
	ErrAgreementRequired          = errors.New("agreement not accepted")
	ErrProfileEmpty               = errors.New("profile update empty")
)

// 邮件相关错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrEmailRecipientNotFound    = errors.New("email recipient not found")
)

// 分类相关错误
var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryParentNotFound = errors.New("parent category not found")
	ErrCategoryDepthExceeded  = errors.New("category depth exceeded")
	ErrCategorySlugExists     = errors.New("category slug already exists")
	ErrCategoryNameExists     = errors.New("category name already exists")
	ErrCategoryHasChildren    = errors.New("category has children")
	ErrCategoryInUse          = errors.New("category in use")
	ErrCategoryFetchFailed    = errors.New("category fetch failed")
	ErrCategoryCreateFailed   = errors.New("category create failed")
	ErrCategoryUpdateFailed   = errors.New("category update failed")
	ErrCategoryDeleteFailed   = errors.New("category delete failed")
)

// 商品相关错误
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductUnavailable  = errors.New("product unavailable")
	ErrProductSlugExists   = errors.New("product slug already exists")
	ErrProductSKUExists    = errors.New("product sku already exists")
	ErrProductPriceInvalid = errors.New("product price invalid")
	ErrProductFetchFailed  = errors.New("product fetch failed")
	ErrProductCreateFailed = errors.New("product create failed")
	ErrProductUpdateFailed = errors.New("product update failed")
	ErrProductDeleteFailed = errors.New("product delete failed")
)

// 购物车相关错误
var (
	ErrCartFetchFailed     = errors.New("cart fetch failed")
	ErrCartUpdateFailed    = errors.New("cart update failed")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartQuantityInvalid = errors.New("cart quantity invalid")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCartItemUnavailable = errors.New("cart item unavailable")
)

// 订单相关错误
var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderFetchFailed        = errors.New("order fetch failed")
	ErrOrderCreateFailed       = errors.New("order create failed")
	ErrOrderUpdateFailed       = errors.New("order update failed")
	ErrOrderStatusInvalid      = errors.New("order status invalid")
	ErrOrderTransitionInvalid  = errors.New("order status transition invalid")
	ErrOrderCancelNotAllowed   = errors.New("order cancel not allowed")
	ErrCancelReasonRequired    = errors.New("cancel reason required")
	ErrInvalidOrderItem        = errors.New("invalid order item")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrShippingMethodInvalid   = errors.New("shipping method invalid")
	ErrShippingAddressRequired = errors.New("shipping address required")
)

// 收货地址相关错误
var (
	ErrAddressNotFound      = errors.New("address not found")
	ErrAddressInvalid       = errors.New("address invalid")
	ErrAddressFetchFailed   = errors.New("address fetch failed")
	ErrAddressCreateFailed  = errors.New("address create failed")
	ErrAddressUpdateFailed  = errors.New("address update failed")
	ErrAddressDeleteFailed  = errors.New("address delete failed")
	ErrAddressLimitExceeded = errors.New("address limit exceeded")
)

// 心愿单相关错误
var (
	ErrWishlistExists      = errors.New("wishlist item already exists")
	ErrWishlistNotFound    = errors.New("wishlist item not found")
	ErrWishlistFetchFailed = errors.New("wishlist fetch failed")
)

// 设置相关错误
var (
	ErrSettingFetchFailed  = errors.New("setting fetch failed")
	ErrSettingUpdateFailed = errors.New("setting update failed")
	ErrSettingInvalid      = errors.New("setting invalid")
	ErrSMTPConfigInvalid   = errors.New("smtp config invalid")
)
