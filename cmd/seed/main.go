package main

import (
	"fmt"

	"github.com/cedarmart-next/internal/config"
	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/logger"
	"github.com/cedarmart-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加顶级分类
	rootCategories := []models.Category{
		{Slug: "electronics", Name: "Electronics", Description: "Phones, audio and smart devices", SortOrder: 10, IsActive: true},
		{Slug: "home-living", Name: "Home & Living", Description: "Everyday home essentials", SortOrder: 20, IsActive: true},
		{Slug: "outdoor", Name: "Outdoor", Description: "Gear for outdoor activities", SortOrder: 30, IsActive: true},
	}
	for _, cat := range rootCategories {
		ensureCategory(cat)
	}

	rootIDs := map[string]uint{}
	var roots []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "home-living", "outdoor"}).Find(&roots).Error; err != nil {
		stdLog.Printf("Failed to load root categories: %v", err)
	}
	for _, cat := range roots {
		rootIDs[cat.Slug] = cat.ID
	}

	// 添加二级分类
	childCategories := []models.Category{
		{ParentID: ptrUint(rootIDs["electronics"]), Slug: "audio", Name: "Audio", Description: "Earphones and speakers", SortOrder: 10, IsActive: true},
		{ParentID: ptrUint(rootIDs["electronics"]), Slug: "wearables", Name: "Wearables", Description: "Watches and fitness bands", SortOrder: 20, IsActive: true},
		{ParentID: ptrUint(rootIDs["home-living"]), Slug: "kitchen", Name: "Kitchen", Description: "Cookware and kitchen tools", SortOrder: 10, IsActive: true},
		{ParentID: ptrUint(rootIDs["outdoor"]), Slug: "camping", Name: "Camping", Description: "Tents, lamps and camp kitchen", SortOrder: 10, IsActive: true},
	}
	for _, cat := range childCategories {
		if cat.ParentID == nil || *cat.ParentID == 0 {
			stdLog.Printf("Skip child category %s: parent missing", cat.Slug)
			continue
		}
		ensureCategory(cat)
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"audio", "wearables", "kitchen", "camping"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品（含库存演示商品）
	products := []models.Product{
		{
			CategoryID:    categoryIDs["audio"],
			SKU:           "AUD-EARBUD-001",
			Slug:          "wireless-earbuds",
			Name:          "Wireless Earbuds",
			Description:   "Bluetooth 5.3 earbuds with active noise cancellation and a 24-hour charging case.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Images:        models.StringArray{"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800"},
			Tags:          models.StringArray{"audio", "wireless"},
			Status:        constants.ProductStatusActive,
			StockQuantity: 120,
			LowStockAlert: 10,
			SortOrder:     10,
		},
		{
			CategoryID:     categoryIDs["audio"],
			SKU:            "AUD-SPK-002",
			Slug:           "portable-speaker",
			Name:           "Portable Speaker",
			Description:    "Waterproof portable speaker with 12 hours of playtime.",
			PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(59.99)),
			CompareAtPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			Images:         models.StringArray{"https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=800"},
			Tags:           models.StringArray{"audio", "portable"},
			Status:         constants.ProductStatusActive,
			StockQuantity:  80,
			SortOrder:      20,
		},
		{
			CategoryID:    categoryIDs["wearables"],
			SKU:           "WEAR-WATCH-001",
			Slug:          "smart-watch",
			Name:          "Smart Watch",
			Description:   "Heart-rate monitoring, sleep tracking and message notifications.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			Images:        models.StringArray{"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800"},
			Tags:          models.StringArray{"wearable", "health"},
			Status:        constants.ProductStatusActive,
			StockQuantity: 45,
			LowStockAlert: 5,
			SortOrder:     10,
		},
		{
			// 低库存演示：库存低于告警阈值
			CategoryID:    categoryIDs["wearables"],
			SKU:           "WEAR-BAND-002",
			Slug:          "fitness-band",
			Name:          "Fitness Band",
			Description:   "Lightweight fitness band with step and calorie tracking.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(39.99)),
			Images:        models.StringArray{"https://images.unsplash.com/photo-1557438159-51eec7a6c9e8?w=800"},
			Tags:          models.StringArray{"wearable"},
			Status:        constants.ProductStatusActive,
			StockQuantity: 3,
			LowStockAlert: 10,
			SortOrder:     20,
		},
		{
			// 售罄演示：零库存且不允许缺货下单
			CategoryID:    categoryIDs["kitchen"],
			SKU:           "KIT-KETTLE-001",
			Slug:          "electric-kettle",
			Name:          "Electric Kettle",
			Description:   "1.7L stainless steel kettle with temperature control.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(34.99)),
			Images:        models.StringArray{"https://images.unsplash.com/photo-1565452344518-47faca79dc69?w=800"},
			Tags:          models.StringArray{"kitchen"},
			Status:        constants.ProductStatusActive,
			StockQuantity: 0,
			SortOrder:     10,
		},
		{
			// 缺货可下单演示
			CategoryID:     categoryIDs["kitchen"],
			SKU:            "KIT-PAN-002",
			Slug:           "cast-iron-pan",
			Name:           "Cast Iron Pan",
			Description:    "Pre-seasoned 26cm cast iron skillet.",
			PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(44.99)),
			Images:         models.StringArray{"https://images.unsplash.com/photo-1544233726-9f1d2b27be8b?w=800"},
			Tags:           models.StringArray{"kitchen", "cookware"},
			Status:         constants.ProductStatusActive,
			StockQuantity:  0,
			AllowBackorder: true,
			SortOrder:      20,
		},
		{
			CategoryID:    categoryIDs["camping"],
			SKU:           "CAMP-LAMP-001",
			Slug:          "camping-lantern",
			Name:          "Camping Lantern",
			Description:   "Rechargeable LED lantern with three brightness levels.",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(24.99)),
			Images:        models.StringArray{"https://images.unsplash.com/photo-1504280390367-361c6d9f38f4?w=800"},
			Tags:          models.StringArray{"outdoor", "camping"},
			Status:        constants.ProductStatusActive,
			StockQuantity: 200,
			SortOrder:     10,
		},
		{
			// 草稿演示：公开接口不可见
			CategoryID:  categoryIDs["camping"],
			SKU:         "CAMP-TENT-002",
			Slug:        "two-person-tent",
			Name:        "Two Person Tent",
			Description: "Lightweight waterproof tent for two.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(129.99)),
			Images:      models.StringArray{"https://images.unsplash.com/photo-1478131143081-80f7f84ca84d?w=800"},
			Tags:        models.StringArray{"outdoor", "camping"},
			Status:      constants.ProductStatusDraft,
			SortOrder:   20,
		},
	}

	for _, product := range products {
		if product.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category missing", product.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 站点配置
	ensureSetting(constants.SettingKeySiteConfig, map[string]interface{}{
		"brand": map[string]interface{}{
			"name":   "CedarMart",
			"slogan": "Everyday goods, delivered",
		},
		"contact": map[string]interface{}{
			"email": "support@cedarmart.example",
		},
		"currency":  "USD",
		"languages": []string{"zh-CN", "en-US"},
	})

	// 订单配置
	ensureSetting(constants.SettingKeyOrderConfig, map[string]interface{}{
		"auto_cancel_minutes":     30,
		"tax_rate":                "0.08",
		"standard_shipping_fee":   "5.00",
		"express_shipping_fee":    "15.00",
		"free_shipping_threshold": "99.00",
	})

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 root categories + 4 child categories")
	fmt.Println("- 8 products (含低库存/售罄/缺货可下单/草稿演示)")
	fmt.Println("- Site and order configuration")
}

func ptrUint(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}

func ensureCategory(cat models.Category) {
	stdLog := logger.StdLogger()
	var existing models.Category
	if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
		if err := models.DB.Create(&cat).Error; err != nil {
			stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
		} else {
			stdLog.Printf("Created category: %s", cat.Slug)
		}
	} else {
		stdLog.Printf("Category already exists: %s", cat.Slug)
	}
}

func ensureSetting(key string, value map[string]interface{}) {
	stdLog := logger.StdLogger()
	var setting models.Setting
	if err := models.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		setting = models.Setting{Key: key, ValueJSON: models.JSON(value)}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create setting %s: %v", key, err)
		} else {
			stdLog.Printf("Created setting: %s", key)
		}
		return
	}
	setting.ValueJSON = models.JSON(value)
	if err := models.DB.Save(&setting).Error; err != nil {
		stdLog.Printf("Failed to update setting %s: %v", key, err)
	} else {
		stdLog.Printf("Updated setting: %s", key)
	}
}
