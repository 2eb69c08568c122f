package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`                            // 分类ID
	SKU            string         `gorm:"uniqueIndex;not null" json:"sku"`                              // 商品编码
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                             // 唯一标识
	Name           string         `gorm:"not null" json:"name"`                                         // 商品名称
	Description    string         `gorm:"type:text" json:"description"`                                 // 商品描述
	PriceAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`   // 价格金额
	CompareAtPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"compare_at_price"` // 划线价（0 表示不展示）
	Images         StringArray    `gorm:"type:json" json:"images"`                                      // 图片数组
	Tags           StringArray    `gorm:"type:json" json:"tags"`                                        // 标签数组
	Status         string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"` // 商品状态（draft/active/inactive/discontinued）
	StockQuantity  int            `gorm:"not null;default:0" json:"stock_quantity"`                     // 库存数量
	AllowBackorder bool           `gorm:"not null;default:false" json:"allow_backorder"`                // 是否允许缺货下单
	LowStockAlert  int            `gorm:"not null;default:0" json:"low_stock_alert"`                    // 低库存告警阈值（0 表示不启用）
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                            // 排序权重
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsPurchasable 是否可加入购物车并下单
func (p *Product) IsPurchasable() bool {
	return p.Status == "active"
}

// HasStock 判断给定数量是否有货（允许缺货下单时恒为真）
func (p *Product) HasStock(quantity int) bool {
	if p.AllowBackorder {
		return true
	}
	return p.StockQuantity >= quantity
}
