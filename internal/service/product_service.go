package service

import (
	"fmt"
	"strings"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID     uint
	SKU            string
	Slug           string
	Name           string
	Description    string
	PriceAmount    decimal.Decimal
	CompareAtPrice decimal.Decimal
	Images         []string
	Tags           []string
	Status         string
	StockQuantity  *int
	AllowBackorder *bool
	LowStockAlert  *int
	SortOrder      int
}

// ListPublic 获取公开商品列表(仅在售)
func (s *ProductService) ListPublic(categoryID, search string, inStockOnly bool, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		InStockOnly:  inStockOnly,
		OnlyActive:   true,
		WithCategory: true,
	}
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	return products, total, nil
}

// GetPublicBySlug 获取公开商品详情
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(categoryID, status, search string, page, pageSize int) ([]models.Product, int64, error) {
	status = strings.TrimSpace(status)
	if status != "" && !constants.IsValidProductStatus(status) {
		return nil, 0, ErrProductUnavailable
	}
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Status:       status,
		Search:       search,
		OnlyActive:   false,
		WithCategory: true,
	}
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	return products, total, nil
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if name == "" || sku == "" {
		return nil, ErrProductCreateFailed
	}
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	compareAt := input.CompareAtPrice.Round(2)
	if compareAt.Sign() < 0 {
		return nil, ErrProductPriceInvalid
	}

	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = normalizeSlug(name)
	}
	if slug == "" {
		return nil, ErrProductCreateFailed
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ProductStatusDraft
	}
	if !constants.IsValidProductStatus(status) {
		return nil, ErrProductUnavailable
	}

	if err := s.ensureCategoryUsable(input.CategoryID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountBySlug(slug, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductCreateFailed, err)
	}
	if count > 0 {
		return nil, ErrProductSlugExists
	}
	count, err = s.repo.CountBySKU(sku, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductCreateFailed, err)
	}
	if count > 0 {
		return nil, ErrProductSKUExists
	}

	stockQuantity := 0
	if input.StockQuantity != nil {
		stockQuantity = *input.StockQuantity
	}
	if stockQuantity < 0 {
		return nil, ErrProductCreateFailed
	}
	lowStockAlert := 0
	if input.LowStockAlert != nil {
		lowStockAlert = *input.LowStockAlert
	}
	if lowStockAlert < 0 {
		return nil, ErrProductCreateFailed
	}
	allowBackorder := false
	if input.AllowBackorder != nil {
		allowBackorder = *input.AllowBackorder
	}

	product := models.Product{
		CategoryID:     input.CategoryID,
		SKU:            sku,
		Slug:           slug,
		Name:           name,
		Description:    strings.TrimSpace(input.Description),
		PriceAmount:    models.NewMoneyFromDecimal(priceAmount),
		CompareAtPrice: models.NewMoneyFromDecimal(compareAt),
		Images:         models.StringArray(input.Images),
		Tags:           models.StringArray(input.Tags),
		Status:         status,
		StockQuantity:  stockQuantity,
		AllowBackorder: allowBackorder,
		LowStockAlert:  lowStockAlert,
		SortOrder:      input.SortOrder,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductCreateFailed, err)
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = product.Name
	}
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if sku == "" {
		sku = product.SKU
	}
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	compareAt := input.CompareAtPrice.Round(2)
	if compareAt.Sign() < 0 {
		return nil, ErrProductPriceInvalid
	}

	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = product.Slug
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = product.Status
	}
	if !constants.IsValidProductStatus(status) {
		return nil, ErrProductUnavailable
	}

	if err := s.ensureCategoryUsable(input.CategoryID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountBySlug(slug, &id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductUpdateFailed, err)
	}
	if count > 0 {
		return nil, ErrProductSlugExists
	}
	count, err = s.repo.CountBySKU(sku, &id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductUpdateFailed, err)
	}
	if count > 0 {
		return nil, ErrProductSKUExists
	}

	product.CategoryID = input.CategoryID
	product.SKU = sku
	product.Slug = slug
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.PriceAmount = models.NewMoneyFromDecimal(priceAmount)
	product.CompareAtPrice = models.NewMoneyFromDecimal(compareAt)
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	product.Status = status
	product.SortOrder = input.SortOrder
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, ErrProductUpdateFailed
		}
		product.StockQuantity = *input.StockQuantity
	}
	if input.AllowBackorder != nil {
		product.AllowBackorder = *input.AllowBackorder
	}
	if input.LowStockAlert != nil {
		if *input.LowStockAlert < 0 {
			return nil, ErrProductUpdateFailed
		}
		product.LowStockAlert = *input.LowStockAlert
	}

	if err := s.repo.Update(product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductUpdateFailed, err)
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProductFetchFailed, err)
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", ErrProductDeleteFailed, err)
	}
	return nil
}

// ensureCategoryUsable 校验商品归属分类存在
func (s *ProductService) ensureCategoryUsable(categoryID uint) error {
	if categoryID == 0 || s.categoryRepo == nil {
		return nil
	}
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}
