package repository

import (
	"errors"
	"time"

	"github.com/cedarmart-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	GetItem(cartID, productID uint) (*models.CartItem, error)
	GetItemByID(cartID, itemID uint) (*models.CartItem, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(cartID, itemID uint, quantity int) error
	DeleteItem(cartID, itemID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车（含条目与商品）
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("updated_at desc")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByUser 获取用户购物车，不存在则创建空车。
// 并发创建时依赖 user_id 唯一索引，冲突后回读既有记录。
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	created := &models.Cart{UserID: userID}
	if err := r.db.Create(created).Error; err != nil {
		existing, getErr := r.GetByUser(userID)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

// GetItem 按商品获取购物车条目
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByID 按条目 ID 获取购物车条目（校验归属）
func (r *GormCartRepository) GetItemByID(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND id = ?", cartID, itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListItems 获取购物车条目（含商品）
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem 新增购物车条目
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return err
	}
	return r.touchCart(item.CartID)
}

// UpdateItemQuantity 更新条目数量
func (r *GormCartRepository) UpdateItemQuantity(cartID, itemID uint, quantity int) error {
	err := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Update("quantity", quantity).Error
	if err != nil {
		return err
	}
	return r.touchCart(cartID)
}

// DeleteItem 删除购物车条目
func (r *GormCartRepository) DeleteItem(cartID, itemID uint) error {
	if err := r.db.Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.touchCart(cartID)
}

// ClearItems 清空购物车条目
func (r *GormCartRepository) ClearItems(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.touchCart(cartID)
}

// touchCart 条目变动时同步刷新购物车自身的更新时间
func (r *GormCartRepository) touchCart(cartID uint) error {
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Update("updated_at", time.Now()).Error
}
