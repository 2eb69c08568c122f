package repository

import (
	"github.com/cedarmart-next/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 收藏夹数据访问接口
type WishlistRepository interface {
	List(filter WishlistListFilter) ([]models.WishlistItem, int64, error)
	Exists(userID, productID uint) (bool, error)
	Create(item *models.WishlistItem) error
	DeleteByUserAndProduct(userID, productID uint) (int64, error)
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建收藏夹仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// List 获取用户收藏夹列表
func (r *GormWishlistRepository) List(filter WishlistListFilter) ([]models.WishlistItem, int64, error) {
	query := r.db.Model(&models.WishlistItem{}).Where("user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.WishlistItem
	if err := query.Preload("Product").Order("id desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Exists 判断是否已收藏
func (r *GormWishlistRepository) Exists(userID, productID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 新增收藏
func (r *GormWishlistRepository) Create(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// DeleteByUserAndProduct 取消收藏，返回删除行数
func (r *GormWishlistRepository) DeleteByUserAndProduct(userID, productID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
