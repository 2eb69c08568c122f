package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"
)

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetConfig 获取站点配置（合并默认值）
func (s *SettingService) GetConfig(defaults map[string]interface{}) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	for k, v := range defaults {
		data[k] = v
	}

	setting, err := s.repo.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}

	for k, v := range setting.ValueJSON {
		data[k] = v
	}
	return data, nil
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	normalized := normalizeSettingValueByKey(key, value)

	setting, err := s.repo.Upsert(key, normalized)
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetOrderAutoCancelMinutes 获取待支付订单自动取消分钟配置
func (s *SettingService) GetOrderAutoCancelMinutes(defaultValue int) (int, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}
	raw, ok := value[constants.SettingFieldAutoCancelMinutes]
	if !ok {
		return defaultValue, nil
	}
	minutes, err := parseSettingInt(raw)
	if err != nil {
		return defaultValue, err
	}
	if minutes <= 0 {
		return defaultValue, nil
	}
	return minutes, nil
}

// GetSiteCurrency 获取站点币种,未配置时回退默认值
func (s *SettingService) GetSiteCurrency() (string, error) {
	if s == nil {
		return constants.SiteCurrencyDefault, nil
	}
	value, err := s.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return constants.SiteCurrencyDefault, err
	}
	currency := normalizeSettingText(value[constants.SettingFieldSiteCurrency])
	if currency == "" {
		return constants.SiteCurrencyDefault, nil
	}
	return strings.ToUpper(currency), nil
}

// GetOrderPricingConfig 获取订单计价配置,缺失字段使用默认值
func (s *SettingService) GetOrderPricingConfig() (PricingConfig, error) {
	cfg := defaultPricingConfig()
	if s == nil {
		return cfg, nil
	}
	value, err := s.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil {
		return cfg, err
	}
	if value == nil {
		return cfg, nil
	}

	if raw, ok := value[constants.SettingFieldTaxRate]; ok {
		if rate, err := parseSettingDecimal(raw); err == nil && rate.Sign() >= 0 {
			cfg.TaxRate = rate
		}
	}
	if raw, ok := value[constants.SettingFieldStandardShippingFee]; ok {
		if fee, err := parseSettingDecimal(raw); err == nil && fee.Sign() >= 0 {
			cfg.StandardShippingFee = fee
		}
	}
	if raw, ok := value[constants.SettingFieldExpressShippingFee]; ok {
		if fee, err := parseSettingDecimal(raw); err == nil && fee.Sign() >= 0 {
			cfg.ExpressShippingFee = fee
		}
	}
	if raw, ok := value[constants.SettingFieldFreeShippingThreshold]; ok {
		if threshold, err := parseSettingDecimal(raw); err == nil && threshold.Sign() >= 0 {
			cfg.FreeShippingThreshold = threshold
		}
	}
	return cfg, nil
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}

func parseSettingDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero, fmt.Errorf("empty string")
		}
		return decimal.NewFromString(trimmed)
	default:
		return decimal.Zero, fmt.Errorf("unsupported value type")
	}
}
