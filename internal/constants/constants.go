package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
	OrderStatusReturned   = "returned"
)

// 商品状态常量
const (
	ProductStatusDraft        = "draft"
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// 配送方式常量
const (
	ShippingMethodStandard = "standard"
	ShippingMethodExpress  = "express"
	ShippingMethodFree     = "free_shipping"
)

// 订单状态变更操作人角色常量
const (
	ActorRoleCustomer = "customer"
	ActorRoleAdmin    = "admin"
	ActorRoleSystem   = "system"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 购物车单项数量边界常量
const (
	CartItemQuantityMin = 1
	CartItemQuantityMax = 99
)

// 验证码用途常量
const (
	VerifyPurposeRegister = "register"
	VerifyPurposeReset    = "reset"
)

// 登录日志结果常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonInvalidEmail       = "invalid_email"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonEmailNotVerified   = "email_not_verified"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 登录日志来源常量
const (
	LoginLogSourceWeb = "web"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
	TaskOrderAutoCancel  = "order:auto_cancel"
	TaskLowStockNotify   = "product:low_stock_notify"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "cm"
)

// 设置键常量
const (
	SettingKeySiteConfig  = "site_config"
	SettingKeyOrderConfig = "order_config"
	SettingKeySMTPConfig  = "smtp_config"

	SettingFieldSiteCurrency          = "currency"
	SettingFieldTaxRate               = "tax_rate"
	SettingFieldStandardShippingFee   = "standard_shipping_fee"
	SettingFieldExpressShippingFee    = "express_shipping_fee"
	SettingFieldFreeShippingThreshold = "free_shipping_threshold"
	SettingFieldAutoCancelMinutes     = "auto_cancel_minutes"
)

// 币种常量
const (
	SiteCurrencyDefault = "USD"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleZhCN, LocaleEnUS}

// OrderStatuses 全部订单状态集合，用于过滤参数校验
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusRefunded,
	OrderStatusReturned,
}

// ProductStatuses 全部商品状态集合
var ProductStatuses = []string{
	ProductStatusDraft,
	ProductStatusActive,
	ProductStatusInactive,
	ProductStatusDiscontinued,
}

// ShippingMethods 全部配送方式集合
var ShippingMethods = []string{
	ShippingMethodStandard,
	ShippingMethodExpress,
	ShippingMethodFree,
}

// IsValidOrderStatus 判断给定值是否为合法订单状态
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidProductStatus 判断给定值是否为合法商品状态
func IsValidProductStatus(status string) bool {
	for _, s := range ProductStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidShippingMethod 判断给定值是否为合法配送方式
func IsValidShippingMethod(method string) bool {
	for _, m := range ShippingMethods {
		if m == method {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus 判断订单状态是否为终态
func IsTerminalOrderStatus(status string) bool {
	switch status {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded, OrderStatusReturned:
		return true
	}
	return false
}
