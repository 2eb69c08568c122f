package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ItemID         uint            `json:"item_id"`
	ProductID      uint            `json:"product_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      models.Money    `json:"unit_price"`
	CompareAtPrice models.Money    `json:"compare_at_price"`
	LineTotal      models.Money    `json:"line_total"`
	Variant        models.JSON     `json:"variant,omitempty"`
	Product        *models.Product `json:"product"`
}

// CartDetail 购物车详情
type CartDetail struct {
	CartID uint             `json:"cart_id"`
	Items  []CartItemDetail `json:"items"`
}

// CartSummary 购物车汇总,税额与总额为按当前配置的估算值
type CartSummary struct {
	ItemCount      int          `json:"item_count"`
	TotalQuantity  int          `json:"total_quantity"`
	Subtotal       models.Money `json:"subtotal"`
	EstimatedTax   models.Money `json:"estimated_tax"`
	EstimatedTotal models.Money `json:"estimated_total"`
}

// AddCartItemInput 添加购物车项输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
	Variant   models.JSON
}

// CartService 购物车服务
type CartService struct {
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	settingService *SettingService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, settingService *SettingService) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		settingService: settingService,
	}
}

// GetByUser 获取用户购物车详情,失效商品会被自动移除
func (s *CartService) GetByUser(userID uint) (*CartDetail, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartFetchFailed, err)
	}

	details := make([]CartItemDetail, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCartFetchFailed, err)
			}
			product = p
		}
		if product == nil || !product.IsPurchasable() {
			_ = s.cartRepo.DeleteItem(cart.ID, item.ID)
			continue
		}

		lineTotal := product.PriceAmount.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		details = append(details, CartItemDetail{
			ItemID:         item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      product.PriceAmount,
			CompareAtPrice: product.CompareAtPrice,
			LineTotal:      models.NewMoneyFromDecimal(lineTotal),
			Variant:        item.VariantJSON,
			Product:        product,
		})
	}
	return &CartDetail{CartID: cart.ID, Items: details}, nil
}

// Summarize 汇总购物车条目数、数量与金额估算
func (s *CartService) Summarize(userID uint) (*CartSummary, error) {
	detail, err := s.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{ItemCount: len(detail.Items)}
	subtotal := models.NewMoneyFromDecimal(decimal.Zero)
	for _, item := range detail.Items {
		summary.TotalQuantity += item.Quantity
		subtotal = models.NewMoneyFromDecimal(subtotal.Add(item.LineTotal.Decimal))
	}

	cfg, err := s.settingService.GetOrderPricingConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartFetchFailed, err)
	}
	tax := subtotal.Mul(cfg.TaxRate).Round(2)

	summary.Subtotal = subtotal
	summary.EstimatedTax = models.NewMoneyFromDecimal(tax)
	summary.EstimatedTotal = models.NewMoneyFromDecimal(subtotal.Add(tax))
	return summary, nil
}

// CheckAvailability 对购物车逐项做只读库存预检,不修改购物车内容
func (s *CartService) CheckAvailability(userID uint) ([]StockReportItem, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartFetchFailed, err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return []StockReportItem{}, nil
	}

	productIDs := make([]uint, 0, len(cart.Items))
	requests := make([]StockRequest, 0, len(cart.Items))
	for _, item := range cart.Items {
		productIDs = append(productIDs, item.ProductID)
		requests = append(requests, StockRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartFetchFailed, err)
	}
	productByID := make(map[uint]*models.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}
	return CheckStock(productByID, requests), nil
}

// AddItem 添加购物车项,已存在时累加数量
func (s *CartService) AddItem(input AddCartItemInput) (*CartDetail, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidOrderItem
	}
	if input.Quantity < constants.CartItemQuantityMin || input.Quantity > constants.CartItemQuantityMax {
		return nil, ErrCartQuantityInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	if err := gateProductStock(product, input.Quantity); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateByUser(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}

	existing, err := s.cartRepo.GetItem(cart.ID, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}

	quantity := input.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > constants.CartItemQuantityMax {
		return nil, ErrCartQuantityInvalid
	}
	if err := gateProductStock(product, quantity); err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(cart.ID, existing.ID, quantity); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
		}
	} else {
		item := &models.CartItem{
			CartID:      cart.ID,
			ProductID:   input.ProductID,
			Quantity:    quantity,
			VariantJSON: input.Variant,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
		}
	}
	return s.GetByUser(input.UserID)
}

// UpdateItemQuantity 更新购物车项数量
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*CartDetail, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrCartItemNotFound
	}
	if quantity < constants.CartItemQuantityMin || quantity > constants.CartItemQuantityMax {
		return nil, ErrCartQuantityInvalid
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	if err := gateProductStock(product, quantity); err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrProductUnavailable) {
			return nil, ErrCartItemUnavailable
		}
		return nil, err
	}

	if err := s.cartRepo.UpdateItemQuantity(cart.ID, item.ID, quantity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	return s.GetByUser(userID)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	if userID == 0 || itemID == 0 {
		return ErrCartItemNotFound
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	if cart == nil {
		return ErrCartItemNotFound
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(cart.ID, itemID); err != nil {
		return fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrUserNotFound
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	if cart == nil {
		return nil
	}
	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
	}
	return nil
}
