package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cedarmart-next/internal/constants"
	"github.com/cedarmart-next/internal/http/response"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/provider"
	"github.com/cedarmart-next/internal/repository"
	"github.com/cedarmart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCartHandlerTest(t *testing.T, name string) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:cart_handler_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	settingService := service.NewSettingService(repository.NewSettingRepository(db))
	container := &provider.Container{
		CartService: service.NewCartService(
			repository.NewCartRepository(db),
			repository.NewProductRepository(db),
			settingService,
		),
	}
	return New(container), db
}

func createCartHandlerProduct(t *testing.T, db *gorm.DB, slug string, stock int) *models.Product {
	t.Helper()
	category := models.Category{Slug: "cat-" + slug, Name: "测试分类", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:    category.ID,
		SKU:           "SKU-" + slug,
		Slug:          slug,
		Name:          "Product " + slug,
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(25.50)),
		Status:        constants.ProductStatusActive,
		StockQuantity: stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func newCartTestContext(t *testing.T, userID uint, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return envelope
}

func TestAddCartItemSuccess(t *testing.T) {
	h, db := newCartHandlerTest(t, "add_ok")
	product := createCartHandlerProduct(t, db, "earbuds", 5)

	body := fmt.Sprintf(`{"product_id":%d,"quantity":2}`, product.ID)
	c, w := newCartTestContext(t, 1, http.MethodPost, "/api/v1/cart/items", body)
	h.AddCartItem(c)

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("status_code want 0, got %d msg=%s", envelope.StatusCode, envelope.Msg)
	}
}

func TestAddCartItemInsufficientStock(t *testing.T) {
	h, db := newCartHandlerTest(t, "add_no_stock")
	product := createCartHandlerProduct(t, db, "limited", 1)

	body := fmt.Sprintf(`{"product_id":%d,"quantity":3}`, product.ID)
	c, w := newCartTestContext(t, 1, http.MethodPost, "/api/v1/cart/items", body)
	h.AddCartItem(c)

	envelope := decodeEnvelope(t, w)
	if envelope.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want 400, got %d msg=%s", envelope.StatusCode, envelope.Msg)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	h, _ := newCartHandlerTest(t, "add_unknown")

	c, w := newCartTestContext(t, 1, http.MethodPost, "/api/v1/cart/items", `{"product_id":9999,"quantity":1}`)
	h.AddCartItem(c)

	envelope := decodeEnvelope(t, w)
	if envelope.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want 400, got %d msg=%s", envelope.StatusCode, envelope.Msg)
	}
}

func TestAddCartItemUnauthorized(t *testing.T) {
	h, _ := newCartHandlerTest(t, "add_unauth")

	c, w := newCartTestContext(t, 0, http.MethodPost, "/api/v1/cart/items", `{"product_id":1,"quantity":1}`)
	h.AddCartItem(c)

	envelope := decodeEnvelope(t, w)
	if envelope.StatusCode != response.CodeUnauthorized {
		t.Fatalf("status_code want 401, got %d", envelope.StatusCode)
	}
}

func TestUpdateCartItemInvalidID(t *testing.T) {
	h, _ := newCartHandlerTest(t, "update_bad_id")

	c, w := newCartTestContext(t, 1, http.MethodPut, "/api/v1/cart/items/abc", `{"quantity":2}`)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.UpdateCartItem(c)

	envelope := decodeEnvelope(t, w)
	if envelope.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want 400, got %d", envelope.StatusCode)
	}
}

func TestGetCartEmpty(t *testing.T) {
	h, _ := newCartHandlerTest(t, "get_empty")

	c, w := newCartTestContext(t, 1, http.MethodGet, "/api/v1/cart", "")
	h.GetCart(c)

	envelope := decodeEnvelope(t, w)
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("status_code want 0, got %d msg=%s", envelope.StatusCode, envelope.Msg)
	}
}
