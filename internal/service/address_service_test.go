package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newAddressTestService(t *testing.T, name string) *AddressService {
	t.Helper()
	dsn := fmt.Sprintf("file:address_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Address{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewAddressService(repository.NewAddressRepository(db))
}

func validAddressInput() AddressInput {
	return AddressInput{
		RecipientName: "张三",
		Phone:         "13800000000",
		Line1:         "人民路 1 号",
		City:          "上海",
		PostalCode:    "200000",
		Country:       "cn",
	}
}

func TestAddressCreateFirstBecomesDefault(t *testing.T) {
	svc := newAddressTestService(t, "default")

	first, err := svc.Create(1, validAddressInput())
	if err != nil {
		t.Fatalf("create first address failed: %v", err)
	}
	if !first.IsDefault {
		t.Fatalf("expected first address to be default")
	}
	if first.Country != "CN" {
		t.Fatalf("expected country uppercased, got %s", first.Country)
	}

	second, err := svc.Create(1, validAddressInput())
	if err != nil {
		t.Fatalf("create second address failed: %v", err)
	}
	if second.IsDefault {
		t.Fatalf("expected second address to not be default")
	}

	input := validAddressInput()
	input.IsDefault = true
	third, err := svc.Create(1, input)
	if err != nil {
		t.Fatalf("create third address failed: %v", err)
	}
	if !third.IsDefault {
		t.Fatalf("expected third address to be default")
	}
	reloaded, err := svc.GetByIDAndUser(first.ID, 1)
	if err != nil {
		t.Fatalf("reload first address failed: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("expected first address to lose default flag")
	}
}

func TestAddressCreateValidation(t *testing.T) {
	svc := newAddressTestService(t, "validation")

	input := validAddressInput()
	input.RecipientName = "  "
	if _, err := svc.Create(1, input); !errors.Is(err, ErrAddressInvalid) {
		t.Fatalf("expected missing recipient to fail, got: %v", err)
	}

	input = validAddressInput()
	input.Country = "CHN"
	if _, err := svc.Create(1, input); !errors.Is(err, ErrAddressInvalid) {
		t.Fatalf("expected 3-letter country to fail, got: %v", err)
	}

	input = validAddressInput()
	input.PostalCode = ""
	if _, err := svc.Create(1, input); !errors.Is(err, ErrAddressInvalid) {
		t.Fatalf("expected missing postal code to fail, got: %v", err)
	}
}

func TestAddressMaxPerUser(t *testing.T) {
	svc := newAddressTestService(t, "cap")

	for i := 0; i < addressMaxPerUser; i++ {
		if _, err := svc.Create(1, validAddressInput()); err != nil {
			t.Fatalf("create address %d failed: %v", i, err)
		}
	}
	if _, err := svc.Create(1, validAddressInput()); !errors.Is(err, ErrAddressLimitExceeded) {
		t.Fatalf("expected address limit exceeded, got: %v", err)
	}
	// 其他用户不受影响
	if _, err := svc.Create(2, validAddressInput()); err != nil {
		t.Fatalf("create address for other user failed: %v", err)
	}
}

func TestAddressSetDefaultAndDelete(t *testing.T) {
	svc := newAddressTestService(t, "set_default")

	first, err := svc.Create(1, validAddressInput())
	if err != nil {
		t.Fatalf("create first address failed: %v", err)
	}
	second, err := svc.Create(1, validAddressInput())
	if err != nil {
		t.Fatalf("create second address failed: %v", err)
	}

	updated, err := svc.SetDefault(second.ID, 1)
	if err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	if !updated.IsDefault {
		t.Fatalf("expected second address to become default")
	}
	reloaded, err := svc.GetByIDAndUser(first.ID, 1)
	if err != nil {
		t.Fatalf("reload first address failed: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("expected first address to lose default flag")
	}

	if _, err := svc.SetDefault(second.ID, 2); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected other user's set default to fail, got: %v", err)
	}

	if err := svc.Delete(second.ID, 1); err != nil {
		t.Fatalf("delete address failed: %v", err)
	}
	if _, err := svc.GetByIDAndUser(second.ID, 1); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected deleted address to be gone, got: %v", err)
	}
}
