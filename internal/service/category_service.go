package service

import (
	"fmt"
	"strings"

	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"
)

// CategoryService 分类业务服务,维护两级分类树
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	ParentID    *uint
	Slug        string
	Name        string
	Description string
	Icon        string
	SortOrder   int
	IsActive    *bool
}

// ListTree 获取分类树(根分类含子分类)
func (s *CategoryService) ListTree(onlyActive bool) ([]models.Category, error) {
	roots, err := s.repo.ListRoots(onlyActive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	return roots, nil
}

// List 获取分类平铺列表
func (s *CategoryService) List(onlyActive bool) ([]models.Category, error) {
	categories, err := s.repo.List(onlyActive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	return categories, nil
}

// GetByID 获取分类详情
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetBySlug 获取分类详情
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类,仅允许两级层次
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryCreateFailed
	}
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = normalizeSlug(name)
	}
	if slug == "" {
		return nil, ErrCategoryCreateFailed
	}

	if err := s.validateParent(input.ParentID, 0); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByName(name, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryCreateFailed, err)
	}
	if count > 0 {
		return nil, ErrCategoryNameExists
	}
	count, err = s.repo.CountBySlug(slug, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryCreateFailed, err)
	}
	if count > 0 {
		return nil, ErrCategorySlugExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	category := models.Category{
		ParentID:    input.ParentID,
		Slug:        slug,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
		SortOrder:   input.SortOrder,
		IsActive:    isActive,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryCreateFailed, err)
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = category.Name
	}
	// 未显式指定 slug 时,改名会按新名称重新生成
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		if name != category.Name {
			slug = normalizeSlug(name)
		}
		if slug == "" {
			slug = category.Slug
		}
	}

	if err := s.validateParent(input.ParentID, id); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		// 已有子分类的根分类不能降级为子分类
		children, err := s.repo.CountChildren(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCategoryUpdateFailed, err)
		}
		if children > 0 {
			return nil, ErrCategoryDepthExceeded
		}
	}

	count, err := s.repo.CountByName(name, &id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryUpdateFailed, err)
	}
	if count > 0 {
		return nil, ErrCategoryNameExists
	}
	count, err = s.repo.CountBySlug(slug, &id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryUpdateFailed, err)
	}
	if count > 0 {
		return nil, ErrCategorySlugExists
	}

	category.ParentID = input.ParentID
	category.Slug = slug
	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.Icon = strings.TrimSpace(input.Icon)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.Update(category); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryUpdateFailed, err)
	}
	return category, nil
}

// Delete 删除分类,有子分类或仍有商品引用时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	children, err := s.repo.CountChildren(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCategoryDeleteFailed, err)
	}
	if children > 0 {
		return ErrCategoryHasChildren
	}

	products, err := s.repo.CountProducts(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCategoryDeleteFailed, err)
	}
	if products > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", ErrCategoryDeleteFailed, err)
	}
	return nil
}

// validateParent 校验父分类:必须存在、必须是根分类、不能是自身
func (s *CategoryService) validateParent(parentID *uint, selfID uint) error {
	if parentID == nil {
		return nil
	}
	if *parentID == 0 {
		return ErrCategoryParentNotFound
	}
	if selfID != 0 && *parentID == selfID {
		return ErrCategoryDepthExceeded
	}
	parent, err := s.repo.GetByID(*parentID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCategoryFetchFailed, err)
	}
	if parent == nil {
		return ErrCategoryParentNotFound
	}
	if !parent.IsRoot() {
		return ErrCategoryDepthExceeded
	}
	return nil
}
