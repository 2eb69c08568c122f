package i18n

var enUS = map[string]string{
	"error.bad_request":         "Invalid request parameters",
	"error.unauthorized":        "Unauthorized",
	"error.forbidden":           "Forbidden",
	"error.not_found":           "Resource not found",
	"error.internal":            "Internal server error",
	"error.too_many_requests":   "Too many requests, please try again later",
	"error.auth_header_missing": "Missing authorization header",
	"error.auth_header_invalid": "Invalid authorization header",
	"error.token_invalid":       "Invalid or expired token",
	"error.token_revoked":       "Token has been revoked",
	"error.jwt_secret_missing":  "JWT secret not configured",

	"error.admin_login_invalid":   "Invalid username or password",
	"error.admin_username_exists": "Username already exists",
	"error.admin_username_invalid": "Invalid username",
	"error.admin_create_failed":   "Failed to create admin",
	"error.admin_update_failed":   "Failed to update admin",
	"error.admin_delete_failed":   "Failed to delete admin",
	"error.admin_delete_self_forbidden": "You cannot delete your own account",
	"error.admin_delete_last_forbidden": "Cannot delete the last admin account",
	"error.admin_delete_protected":      "This admin account is protected",
	"error.admin_id_invalid":            "Invalid admin ID",
	"error.admin_id_type_invalid":       "Invalid admin ID type",

	"error.rate_limited":           "Too many attempts, please retry in %d seconds",
	"error.rate_limit_unavailable": "Rate limiting is temporarily unavailable",
	"error.login_too_many":         "Too many login attempts, please retry in %d seconds",

	"error.password_weak":            "Password is too weak",
	"error.password_old_invalid":     "Current password is incorrect",
	"error.password_min_length":      "Password must be at least %d characters",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a number",
	"error.password_require_special": "Password must contain a special character",

	"error.email_invalid":                "Invalid email address",
	"error.email_exists":                 "Email is already registered",
	"error.invalid_credentials":          "Invalid email or password",
	"error.user_disabled":                "Account has been disabled",
	"error.user_not_found":               "User not found",
	"error.password_policy":              "Password does not meet the security policy",
	"error.password_incorrect":           "Current password is incorrect",
	"error.verify_code_invalid":          "Invalid verification code",
	"error.verify_code_expired":          "Verification code has expired",
	"error.verify_code_too_frequent":     "Verification code requested too frequently",
	"error.email_send_failed":            "Failed to send email",
	"error.email_service_not_configured": "Email service is not configured",
	"error.email_recipient_not_found":    "Recipient mailbox does not exist",
	"error.email_not_verified":           "Email is not verified",
	"error.verify_purpose_invalid":       "Invalid verification purpose",
	"error.verify_code_attempts_exceeded": "Too many failed attempts, please request a new code",
	"error.send_verify_code_failed":      "Failed to send verification code",
	"error.agreement_required":           "You must accept the terms of service",
	"error.register_failed":              "Registration failed",
	"error.login_failed":                 "Login failed",
	"error.reset_failed":                 "Failed to reset password",
	"error.profile_empty":                "Nothing to update",
	"error.user_fetch_failed":            "Failed to fetch users",
	"error.user_update_failed":           "Failed to update user",
	"error.user_id_invalid":              "Invalid user ID",
	"error.user_id_type_invalid":         "Invalid user ID type",
	"error.user_login_log_fetch_failed":  "Failed to fetch login logs",

	"error.category_not_found":        "Category not found",
	"error.category_parent_not_found": "Parent category not found",
	"error.category_depth_exceeded":   "Categories can only be nested one level deep",
	"error.category_slug_exists":      "Category slug already exists",
	"error.category_name_exists":      "Category name already exists",
	"error.category_has_children":     "Category still has subcategories",
	"error.category_in_use":           "Category is still referenced by products",
	"error.category_fetch_failed":     "Failed to fetch categories",
	"error.category_create_failed":    "Failed to create category",
	"error.category_update_failed":    "Failed to update category",
	"error.category_delete_failed":    "Failed to delete category",

	"error.product_not_found":     "Product not found",
	"error.product_unavailable":   "Product is not available for purchase",
	"error.product_slug_exists":   "Product slug already exists",
	"error.product_sku_exists":    "Product SKU already exists",
	"error.product_fetch_failed":  "Failed to fetch products",
	"error.product_create_failed": "Failed to create product",
	"error.product_update_failed": "Failed to update product",
	"error.product_delete_failed": "Failed to delete product",
	"error.product_price_invalid":  "Invalid product price",
	"error.product_status_invalid": "Invalid product status",
	"error.insufficient_stock":    "Insufficient stock for %s",

	"error.cart_fetch_failed":     "Failed to fetch cart",
	"error.cart_update_failed":    "Failed to update cart",
	"error.cart_item_not_found":   "Cart item not found",
	"error.cart_quantity_invalid": "Item quantity must be between 1 and 99",
	"error.cart_empty":            "Cart is empty",
	"error.cart_item_unavailable": "An item in your cart is no longer available",

	"error.order_not_found":              "Order not found",
	"error.order_fetch_failed":           "Failed to fetch orders",
	"error.order_create_failed":          "Failed to create order",
	"error.order_status_invalid":         "Invalid order status",
	"error.order_transition_invalid":     "Order status transition not allowed",
	"error.order_cancel_not_allowed":     "Order can no longer be cancelled",
	"error.order_cancel_reason_required": "Cancellation reason is required",
	"error.order_update_failed":          "Failed to update order",
	"error.order_item_invalid":           "Invalid order item",
	"error.shipping_method_invalid":      "Invalid shipping method",
	"error.shipping_address_required":    "Shipping address is required",

	"error.address_not_found":       "Address not found",
	"error.address_invalid":         "Invalid address",
	"error.address_limit_exceeded":  "Address limit reached",
	"error.address_fetch_failed":    "Failed to fetch addresses",
	"error.address_create_failed":   "Failed to create address",
	"error.address_update_failed":   "Failed to update address",
	"error.address_delete_failed":   "Failed to delete address",

	"error.wishlist_exists":        "Product is already in your wishlist",
	"error.wishlist_not_found":     "Wishlist item not found",
	"error.wishlist_fetch_failed":  "Failed to fetch wishlist",
	"error.wishlist_update_failed": "Failed to update wishlist",

	"error.setting_fetch_failed":  "Failed to fetch settings",
	"error.setting_update_failed": "Failed to update settings",
	"error.setting_invalid":       "Invalid setting value",

	"error.config_fetch_failed": "Failed to fetch site configuration",
	"error.file_missing":        "File is required",
	"error.upload_failed":       "Failed to upload file",
	"error.save_failed":         "Failed to save changes",

	"order.status.pending":    "Pending",
	"order.status.confirmed":  "Confirmed",
	"order.status.processing": "Processing",
	"order.status.shipped":    "Shipped",
	"order.status.delivered":  "Delivered",
	"order.status.cancelled":  "Cancelled",
	"order.status.refunded":   "Refunded",
	"order.status.returned":   "Returned",

	"email.order_status.subject":        "Your order is now %s",
	"email.order_status.body":           "Order %s is now %s.\nOrder total: %s %s.",
	"email.order_status.body_shipped":   "Order %s has been shipped (%s).\nOrder total: %s %s.\nTracking number: %s",
	"email.order_status.body_cancelled": "Order %s has been cancelled (%s).\nOrder total: %s %s.\nReason: %s",
}

var zhCN = map[string]string{
	"error.bad_request":         "请求参数错误",
	"error.unauthorized":        "未授权",
	"error.forbidden":           "无权限访问",
	"error.not_found":           "资源不存在",
	"error.internal":            "服务器内部错误",
	"error.too_many_requests":   "请求过于频繁，请稍后再试",
	"error.auth_header_missing": "缺少认证头",
	"error.auth_header_invalid": "认证头格式错误",
	"error.token_invalid":       "令牌无效或已过期",
	"error.token_revoked":       "令牌已失效",
	"error.jwt_secret_missing":  "未配置 JWT 密钥",

	"error.admin_login_invalid":   "用户名或密码错误",
	"error.admin_username_exists": "用户名已存在",
	"error.admin_username_invalid": "用户名不合法",
	"error.admin_create_failed":   "创建管理员失败",
	"error.admin_update_failed":   "更新管理员失败",
	"error.admin_delete_failed":   "删除管理员失败",
	"error.admin_delete_self_forbidden": "不能删除自己的账号",
	"error.admin_delete_last_forbidden": "不能删除最后一个管理员账号",
	"error.admin_delete_protected":      "该管理员账号受保护",
	"error.admin_id_invalid":            "管理员 ID 不合法",
	"error.admin_id_type_invalid":       "管理员 ID 类型不合法",

	"error.rate_limited":           "操作过于频繁，请 %d 秒后再试",
	"error.rate_limit_unavailable": "限流服务暂不可用",
	"error.login_too_many":         "登录尝试过于频繁，请 %d 秒后再试",

	"error.password_weak":            "密码强度不足",
	"error.password_old_invalid":     "当前密码错误",
	"error.password_min_length":      "密码长度至少为 %d 位",
	"error.password_require_upper":   "密码必须包含大写字母",
	"error.password_require_lower":   "密码必须包含小写字母",
	"error.password_require_number":  "密码必须包含数字",
	"error.password_require_special": "密码必须包含特殊字符",

	"error.email_invalid":                "邮箱格式错误",
	"error.email_exists":                 "邮箱已被注册",
	"error.invalid_credentials":          "邮箱或密码错误",
	"error.user_disabled":                "账号已被禁用",
	"error.user_not_found":               "用户不存在",
	"error.password_policy":              "密码不符合安全策略",
	"error.password_incorrect":           "当前密码错误",
	"error.verify_code_invalid":          "验证码错误",
	"error.verify_code_expired":          "验证码已过期",
	"error.verify_code_too_frequent":     "验证码发送过于频繁",
	"error.email_send_failed":            "邮件发送失败",
	"error.email_service_not_configured": "邮件服务未配置",
	"error.email_recipient_not_found":    "收件邮箱不存在",
	"error.email_not_verified":           "邮箱尚未验证",
	"error.verify_purpose_invalid":       "验证码用途不合法",
	"error.verify_code_attempts_exceeded": "验证码错误次数过多，请重新获取",
	"error.send_verify_code_failed":      "验证码发送失败",
	"error.agreement_required":           "请先同意服务条款",
	"error.register_failed":              "注册失败",
	"error.login_failed":                 "登录失败",
	"error.reset_failed":                 "重置密码失败",
	"error.profile_empty":                "没有需要更新的内容",
	"error.user_fetch_failed":            "获取用户失败",
	"error.user_update_failed":           "更新用户失败",
	"error.user_id_invalid":              "用户 ID 不合法",
	"error.user_id_type_invalid":         "用户 ID 类型不合法",
	"error.user_login_log_fetch_failed":  "获取登录日志失败",

	"error.category_not_found":        "分类不存在",
	"error.category_parent_not_found": "父级分类不存在",
	"error.category_depth_exceeded":   "分类最多支持两级",
	"error.category_slug_exists":      "分类标识已存在",
	"error.category_name_exists":      "分类名称已存在",
	"error.category_has_children":     "分类下仍有子分类",
	"error.category_in_use":           "分类下仍有商品",
	"error.category_fetch_failed":     "获取分类失败",
	"error.category_create_failed":    "创建分类失败",
	"error.category_update_failed":    "更新分类失败",
	"error.category_delete_failed":    "删除分类失败",

	"error.product_not_found":     "商品不存在",
	"error.product_unavailable":   "商品当前不可购买",
	"error.product_slug_exists":   "商品标识已存在",
	"error.product_sku_exists":    "商品 SKU 已存在",
	"error.product_fetch_failed":  "获取商品失败",
	"error.product_create_failed": "创建商品失败",
	"error.product_update_failed": "更新商品失败",
	"error.product_delete_failed": "删除商品失败",
	"error.product_price_invalid":  "商品价格不合法",
	"error.product_status_invalid": "商品状态不合法",
	"error.insufficient_stock":    "商品 %s 库存不足",

	"error.cart_fetch_failed":     "获取购物车失败",
	"error.cart_update_failed":    "更新购物车失败",
	"error.cart_item_not_found":   "购物车条目不存在",
	"error.cart_quantity_invalid": "单项数量须在 1 到 99 之间",
	"error.cart_empty":            "购物车为空",
	"error.cart_item_unavailable": "购物车中存在不可购买的商品",

	"error.order_not_found":              "订单不存在",
	"error.order_fetch_failed":           "获取订单失败",
	"error.order_create_failed":          "创建订单失败",
	"error.order_status_invalid":         "订单状态不合法",
	"error.order_transition_invalid":     "订单状态流转不允许",
	"error.order_cancel_not_allowed":     "订单当前不可取消",
	"error.order_cancel_reason_required": "取消订单必须填写原因",
	"error.order_update_failed":          "更新订单失败",
	"error.order_item_invalid":           "订单项不合法",
	"error.shipping_method_invalid":      "配送方式不合法",
	"error.shipping_address_required":    "必须填写收货地址",

	"error.address_not_found":       "地址不存在",
	"error.address_invalid":         "地址信息不合法",
	"error.address_limit_exceeded":  "地址数量已达上限",
	"error.address_fetch_failed":    "获取地址失败",
	"error.address_create_failed":   "创建地址失败",
	"error.address_update_failed":   "更新地址失败",
	"error.address_delete_failed":   "删除地址失败",

	"error.wishlist_exists":        "商品已在收藏夹中",
	"error.wishlist_not_found":     "收藏记录不存在",
	"error.wishlist_fetch_failed":  "获取收藏夹失败",
	"error.wishlist_update_failed": "更新收藏夹失败",

	"error.setting_fetch_failed":  "获取设置失败",
	"error.setting_update_failed": "更新设置失败",
	"error.setting_invalid":       "设置值不合法",

	"error.config_fetch_failed": "获取站点配置失败",
	"error.file_missing":        "请选择要上传的文件",
	"error.upload_failed":       "文件上传失败",
	"error.save_failed":         "保存失败",

	"order.status.pending":    "待确认",
	"order.status.confirmed":  "已确认",
	"order.status.processing": "处理中",
	"order.status.shipped":    "已发货",
	"order.status.delivered":  "已送达",
	"order.status.cancelled":  "已取消",
	"order.status.refunded":   "已退款",
	"order.status.returned":   "已退货",

	"email.order_status.subject":        "您的订单状态已更新为 %s",
	"email.order_status.body":           "订单 %s 当前状态：%s。\n订单金额：%s %s。",
	"email.order_status.body_shipped":   "订单 %s 已发货（%s）。\n订单金额：%s %s。\n物流单号：%s",
	"email.order_status.body_cancelled": "订单 %s 已取消（%s）。\n订单金额：%s %s。\n取消原因：%s",
}
