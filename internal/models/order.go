package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                           // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                           // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                                  // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                                   // 订单状态
	Currency        string         `gorm:"not null" json:"currency"`                                       // 币种
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`          // 商品小计
	TaxAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`        // 税费
	ShippingFee     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`      // 运费
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`   // 优惠金额
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`      // 实付金额
	ShippingMethod  string         `gorm:"type:varchar(30);not null" json:"shipping_method"`               // 配送方式
	ShippingAddress JSON           `gorm:"type:json;not null" json:"shipping_address"`                     // 收货地址快照
	TrackingNumber  string         `gorm:"type:varchar(100)" json:"tracking_number,omitempty"`             // 物流单号
	CustomerNote    string         `gorm:"type:varchar(500)" json:"customer_note,omitempty"`               // 买家备注
	CancelReason    string         `gorm:"type:varchar(500)" json:"cancel_reason,omitempty"`               // 取消原因
	ClientIP        string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                    // 下单客户端IP
	ConfirmedAt     *time.Time     `gorm:"index" json:"confirmed_at"`                                      // 确认时间
	ShippedAt       *time.Time     `gorm:"index" json:"shipped_at"`                                        // 发货时间
	DeliveredAt     *time.Time     `gorm:"index" json:"delivered_at"`                                      // 送达时间
	CancelledAt     *time.Time     `gorm:"index" json:"cancelled_at"`                                      // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                        // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间

	// 关联
	Items         []OrderItem          `gorm:"foreignKey:OrderID" json:"items,omitempty"`          // 订单项
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"` // 状态历史
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
