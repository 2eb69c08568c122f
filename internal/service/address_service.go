package service

import (
	"fmt"
	"strings"

	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"
)

const addressMaxPerUser = 20

// AddressService 收货地址业务服务
type AddressService struct {
	repo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// AddressInput 创建/更新地址输入
type AddressInput struct {
	RecipientName string
	Phone         string
	Line1         string
	Line2         string
	City          string
	State         string
	PostalCode    string
	Country       string
	IsDefault     bool
}

// ListByUser 获取用户地址列表,默认地址在前
func (s *AddressService) ListByUser(userID uint) ([]models.Address, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	addresses, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressFetchFailed, err)
	}
	return addresses, nil
}

// GetByIDAndUser 获取用户地址详情
func (s *AddressService) GetByIDAndUser(id, userID uint) (*models.Address, error) {
	address, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressFetchFailed, err)
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// Create 创建地址,首条地址自动设为默认
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	address, err := buildAddress(userID, input)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressCreateFailed, err)
	}
	if count >= addressMaxPerUser {
		return nil, ErrAddressLimitExceeded
	}
	if count == 0 {
		address.IsDefault = true
	}

	if address.IsDefault {
		if err := s.repo.ClearDefault(userID, 0); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAddressCreateFailed, err)
		}
	}
	if err := s.repo.Create(address); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressCreateFailed, err)
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(id, userID uint, input AddressInput) (*models.Address, error) {
	existing, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressFetchFailed, err)
	}
	if existing == nil {
		return nil, ErrAddressNotFound
	}

	address, err := buildAddress(userID, input)
	if err != nil {
		return nil, err
	}
	address.ID = existing.ID
	address.CreatedAt = existing.CreatedAt

	if address.IsDefault {
		if err := s.repo.ClearDefault(userID, address.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAddressUpdateFailed, err)
		}
	}
	if err := s.repo.Update(address); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressUpdateFailed, err)
	}
	return address, nil
}

// SetDefault 设置默认地址
func (s *AddressService) SetDefault(id, userID uint) (*models.Address, error) {
	address, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressFetchFailed, err)
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	if err := s.repo.ClearDefault(userID, id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressUpdateFailed, err)
	}
	address.IsDefault = true
	if err := s.repo.Update(address); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressUpdateFailed, err)
	}
	return address, nil
}

// Delete 删除地址
func (s *AddressService) Delete(id, userID uint) error {
	address, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAddressFetchFailed, err)
	}
	if address == nil {
		return ErrAddressNotFound
	}
	if err := s.repo.Delete(id, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrAddressDeleteFailed, err)
	}
	return nil
}

// buildAddress 归一化并校验地址输入
func buildAddress(userID uint, input AddressInput) (*models.Address, error) {
	recipient := strings.TrimSpace(input.RecipientName)
	line1 := strings.TrimSpace(input.Line1)
	city := strings.TrimSpace(input.City)
	postalCode := strings.TrimSpace(input.PostalCode)
	country := strings.ToUpper(strings.TrimSpace(input.Country))
	if recipient == "" || line1 == "" || city == "" || postalCode == "" || len(country) != 2 {
		return nil, ErrAddressInvalid
	}
	return &models.Address{
		UserID:        userID,
		RecipientName: recipient,
		Phone:         strings.TrimSpace(input.Phone),
		Line1:         line1,
		Line2:         strings.TrimSpace(input.Line2),
		City:          city,
		State:         strings.TrimSpace(input.State),
		PostalCode:    postalCode,
		Country:       country,
		IsDefault:     input.IsDefault,
	}, nil
}
