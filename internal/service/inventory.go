package service

import (
	"fmt"

	"github.com/cedarmart-next/internal/models"
)

// 库存预检结果状态
const (
	StockStatusAvailable    = "available"
	StockStatusNotFound     = "not_found"
	StockStatusUnavailable  = "unavailable"
	StockStatusInsufficient = "insufficient_stock"
)

// StockRequest 单个商品的库存校验请求
type StockRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// StockReportItem 单个商品的库存预检结果
type StockReportItem struct {
	ProductID         uint   `json:"product_id"`
	Quantity          int    `json:"quantity"`
	Available         bool   `json:"available"`
	AvailableQuantity int    `json:"available_quantity"`
	AllowBackorder    bool   `json:"allow_backorder"`
	Status            string `json:"status"`
}

// CheckProductStock 只读校验单个商品对给定数量是否可售
func CheckProductStock(product *models.Product, quantity int) StockReportItem {
	item := StockReportItem{Quantity: quantity}
	if product == nil {
		item.Status = StockStatusNotFound
		return item
	}
	item.ProductID = product.ID
	item.AllowBackorder = product.AllowBackorder
	if product.StockQuantity > 0 {
		item.AvailableQuantity = product.StockQuantity
	}
	switch {
	case !product.IsPurchasable():
		item.Status = StockStatusUnavailable
	case !product.HasStock(quantity):
		item.Status = StockStatusInsufficient
	default:
		item.Available = true
		item.Status = StockStatusAvailable
	}
	return item
}

// CheckStock 逐项校验一组 (商品, 数量),返回每一项的可售性报告,不做任何写入
func CheckStock(productByID map[uint]*models.Product, requests []StockRequest) []StockReportItem {
	report := make([]StockReportItem, 0, len(requests))
	for _, req := range requests {
		item := CheckProductStock(productByID[req.ProductID], req.Quantity)
		if item.ProductID == 0 {
			item.ProductID = req.ProductID
		}
		report = append(report, item)
	}
	return report
}

// gateProductStock 阻断式校验:商品不可售时返回对应错误
func gateProductStock(product *models.Product, quantity int) error {
	switch CheckProductStock(product, quantity).Status {
	case StockStatusNotFound:
		return ErrProductNotFound
	case StockStatusUnavailable:
		return ErrProductUnavailable
	case StockStatusInsufficient:
		return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
	}
	return nil
}
