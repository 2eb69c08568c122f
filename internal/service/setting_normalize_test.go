package service

import (
	"testing"

	"github.com/cedarmart-next/internal/constants"
)

func TestUpdateOrderSettingNormalized(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeyOrderConfig, map[string]interface{}{
		constants.SettingFieldAutoCancelMinutes:   "20000",
		constants.SettingFieldTaxRate:             "0.1",
		constants.SettingFieldStandardShippingFee: "-5",
		"extra": "keep",
	})
	if err != nil {
		t.Fatalf("update order config failed: %v", err)
	}

	minutes, err := parseSettingInt(result[constants.SettingFieldAutoCancelMinutes])
	if err != nil {
		t.Fatalf("parse auto_cancel_minutes failed: %v", err)
	}
	if minutes != 10080 {
		t.Fatalf("unexpected auto_cancel_minutes, expected 10080 got %d", minutes)
	}
	if result[constants.SettingFieldTaxRate] != "0.1" {
		t.Fatalf("unexpected tax_rate: %v", result[constants.SettingFieldTaxRate])
	}
	if _, ok := result[constants.SettingFieldStandardShippingFee]; ok {
		t.Fatalf("expected negative shipping fee to be dropped, got: %v", result[constants.SettingFieldStandardShippingFee])
	}
	if result["extra"] != "keep" {
		t.Fatalf("unexpected extra field: %v", result["extra"])
	}
}

func TestUpdateOrderSettingDefaults(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeyOrderConfig, map[string]interface{}{})
	if err != nil {
		t.Fatalf("update order config failed: %v", err)
	}

	minutes, err := parseSettingInt(result[constants.SettingFieldAutoCancelMinutes])
	if err != nil {
		t.Fatalf("parse auto_cancel_minutes failed: %v", err)
	}
	if minutes != 30 {
		t.Fatalf("expected default auto_cancel_minutes 30, got %d", minutes)
	}
}

func TestUpdateSiteSettingNormalized(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeySiteConfig, map[string]interface{}{
		"brand": map[string]interface{}{
			"site_name": "  CedarMart  ",
		},
		"contact": map[string]interface{}{
			"email": "  support@example.com  ",
			"phone": 123,
		},
		"seo": map[string]interface{}{
			"title": map[string]interface{}{
				"zh-CN": "  标题  ",
				"en-US": "  Title  ",
			},
		},
		"currency":  "usd",
		"languages": []interface{}{" zh-CN ", "en-US", "", "en-US"},
	})
	if err != nil {
		t.Fatalf("update site config failed: %v", err)
	}

	brand, ok := result["brand"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid brand payload type: %T", result["brand"])
	}
	if brand["site_name"] != "CedarMart" {
		t.Fatalf("unexpected brand.site_name: %v", brand["site_name"])
	}

	contact, ok := result["contact"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid contact payload type: %T", result["contact"])
	}
	if contact["email"] != "support@example.com" {
		t.Fatalf("unexpected contact.email: %v", contact["email"])
	}
	if contact["phone"] != "" {
		t.Fatalf("unexpected contact.phone: %v", contact["phone"])
	}

	seo, ok := result["seo"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid seo payload type: %T", result["seo"])
	}
	title, ok := seo["title"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid seo.title payload type: %T", seo["title"])
	}
	if title["zh-CN"] != "标题" {
		t.Fatalf("unexpected seo.title.zh-CN: %v", title["zh-CN"])
	}
	if title["en-US"] != "Title" {
		t.Fatalf("unexpected seo.title.en-US: %v", title["en-US"])
	}

	legal, ok := result["legal"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid legal payload type: %T", result["legal"])
	}
	privacy, ok := legal["privacy"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid legal.privacy payload type: %T", legal["privacy"])
	}
	if privacy["zh-CN"] != "" || privacy["en-US"] != "" {
		t.Fatalf("unexpected legal.privacy payload: %+v", privacy)
	}

	if result["currency"] != "USD" {
		t.Fatalf("expected currency uppercased, got: %v", result["currency"])
	}

	languages, ok := result["languages"].([]string)
	if !ok {
		t.Fatalf("invalid languages payload type: %T", result["languages"])
	}
	if len(languages) != 2 || languages[0] != "zh-CN" || languages[1] != "en-US" {
		t.Fatalf("unexpected languages: %+v", languages)
	}
}

func TestUpdateSiteSettingNormalizedDefaults(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeySiteConfig, map[string]interface{}{
		"currency": "dollars",
	})
	if err != nil {
		t.Fatalf("update site config failed: %v", err)
	}

	brand, ok := result["brand"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid brand payload type: %T", result["brand"])
	}
	if brand["site_name"] != "" {
		t.Fatalf("unexpected default brand payload: %+v", brand)
	}
	if result["currency"] != constants.SiteCurrencyDefault {
		t.Fatalf("expected invalid currency to fall back to default, got: %v", result["currency"])
	}
}
