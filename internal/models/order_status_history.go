package models

import (
	"time"
)

// OrderStatusHistory 订单状态历史表（只追加，不更新不删除）
type OrderStatusHistory struct {
	ID             uint      `gorm:"primarykey" json:"id"`                           // 主键
	OrderID        uint      `gorm:"index;not null" json:"order_id"`                 // 订单ID
	PreviousStatus *string   `gorm:"type:varchar(30)" json:"previous_status"`        // 变更前状态（首条为 null）
	NewStatus      string    `gorm:"type:varchar(30);not null" json:"new_status"`    // 变更后状态
	ActorRole      string    `gorm:"type:varchar(20);not null" json:"actor_role"`    // 操作人角色（customer/admin/system）
	ActorID        *uint     `gorm:"index" json:"actor_id,omitempty"`                // 操作人ID（system 时为 null）
	Note           string    `gorm:"type:varchar(500)" json:"note,omitempty"`        // 备注（取消原因等）
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                        // 变更时间
}

// TableName 指定表名
func (OrderStatusHistory) TableName() string {
	return "order_status_histories"
}
