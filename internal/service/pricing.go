package service

import (
	"github.com/shopspring/decimal"

	"github.com/cedarmart-next/internal/constants"
)

// PricingConfig 订单计价配置,来源于设置或默认值
type PricingConfig struct {
	TaxRate               decimal.Decimal
	StandardShippingFee   decimal.Decimal
	ExpressShippingFee    decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

func defaultPricingConfig() PricingConfig {
	return PricingConfig{
		TaxRate:               decimal.NewFromFloat(0.08),
		StandardShippingFee:   decimal.NewFromInt(10),
		ExpressShippingFee:    decimal.NewFromInt(25),
		FreeShippingThreshold: decimal.NewFromInt(99),
	}
}

// PricingLine 参与计价的订单行
type PricingLine struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// PricingResult 计价结果,各项均已按两位小数归一
type PricingResult struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingFee    decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// CalculateOrderTotals 按行项目与配送方式计算订单金额,纯函数无副作用
func CalculateOrderTotals(cfg PricingConfig, lines []PricingLine, shippingMethod string, discount decimal.Decimal) (PricingResult, error) {
	if !constants.IsValidShippingMethod(shippingMethod) {
		return PricingResult{}, ErrShippingMethodInvalid
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 || line.UnitPrice.Sign() < 0 {
			return PricingResult{}, ErrInvalidOrderItem
		}
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal)
	}
	subtotal = subtotal.Round(2)

	taxAmount := subtotal.Mul(cfg.TaxRate).Round(2)
	shippingFee := resolveShippingFee(cfg, shippingMethod, subtotal)
	discountAmount := normalizeOrderAmount(discount)

	total := subtotal.Add(taxAmount).Add(shippingFee).Sub(discountAmount)
	total = normalizeOrderAmount(total)

	return PricingResult{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		ShippingFee:    shippingFee,
		DiscountAmount: discountAmount,
		TotalAmount:    total,
	}, nil
}

// resolveShippingFee 计算运费,满足免邮门槛或选择免邮方式时为零
func resolveShippingFee(cfg PricingConfig, shippingMethod string, subtotal decimal.Decimal) decimal.Decimal {
	if shippingMethod == constants.ShippingMethodFree {
		return decimal.Zero
	}
	if cfg.FreeShippingThreshold.Sign() > 0 && subtotal.GreaterThanOrEqual(cfg.FreeShippingThreshold) {
		return decimal.Zero
	}
	switch shippingMethod {
	case constants.ShippingMethodExpress:
		return cfg.ExpressShippingFee.Round(2)
	default:
		return cfg.StandardShippingFee.Round(2)
	}
}

// normalizeOrderAmount 金额保留两位小数并抹除负值
func normalizeOrderAmount(amount decimal.Decimal) decimal.Decimal {
	normalized := amount.Round(2)
	if normalized.Sign() < 0 {
		return decimal.Zero
	}
	return normalized
}
