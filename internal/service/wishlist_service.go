package service

import (
	"fmt"

	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"
)

// WishlistService 心愿单业务服务
type WishlistService struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(repo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{repo: repo, productRepo: productRepo}
}

// List 分页获取用户心愿单
func (s *WishlistService) List(userID uint, page, pageSize int) ([]models.WishlistItem, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUserNotFound
	}
	items, total, err := s.repo.List(repository.WishlistListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrWishlistFetchFailed, err)
	}
	return items, total, nil
}

// Add 添加商品到心愿单,重复添加返回冲突错误
func (s *WishlistService) Add(userID, productID uint) (*models.WishlistItem, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWishlistFetchFailed, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	exists, err := s.repo.Exists(userID, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWishlistFetchFailed, err)
	}
	if exists {
		return nil, ErrWishlistExists
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.repo.Create(item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWishlistFetchFailed, err)
	}
	item.Product = product
	return item, nil
}

// Remove 从心愿单移除商品
func (s *WishlistService) Remove(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrWishlistNotFound
	}
	affected, err := s.repo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWishlistFetchFailed, err)
	}
	if affected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}
