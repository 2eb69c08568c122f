package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
type Address struct {
	ID            uint           `gorm:"primarykey" json:"id"`                           // 主键
	UserID        uint           `gorm:"index;not null" json:"user_id"`                  // 用户ID
	RecipientName string         `gorm:"not null" json:"recipient_name"`                 // 收件人
	Phone         string         `gorm:"type:varchar(30)" json:"phone"`                  // 联系电话
	Line1         string         `gorm:"not null" json:"line1"`                          // 地址第一行
	Line2         string         `gorm:"type:varchar(200)" json:"line2,omitempty"`       // 地址第二行
	City          string         `gorm:"not null" json:"city"`                           // 城市
	State         string         `gorm:"type:varchar(100)" json:"state"`                 // 省/州
	PostalCode    string         `gorm:"type:varchar(20);not null" json:"postal_code"`   // 邮编
	Country       string         `gorm:"type:varchar(2);not null" json:"country"`        // 国家代码（ISO 3166-1 alpha-2）
	IsDefault     bool           `gorm:"not null;default:false;index" json:"is_default"` // 是否默认地址
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                     // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}

// Snapshot 生成订单用的地址快照
func (a *Address) Snapshot() JSON {
	return JSON{
		"recipient_name": a.RecipientName,
		"phone":          a.Phone,
		"line1":          a.Line1,
		"line2":          a.Line2,
		"city":           a.City,
		"state":          a.State,
		"postal_code":    a.PostalCode,
		"country":        a.Country,
	}
}
