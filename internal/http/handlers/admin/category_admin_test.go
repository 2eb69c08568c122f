package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cedarmart-next/internal/http/response"
	"github.com/cedarmart-next/internal/models"
	"github.com/cedarmart-next/internal/provider"
	"github.com/cedarmart-next/internal/repository"
	"github.com/cedarmart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newCategoryHandlerTest(t *testing.T, name string) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:category_handler_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	container := &provider.Container{
		CategoryService: service.NewCategoryService(repository.NewCategoryRepository(db)),
	}
	return New(container), db
}

func newCategoryTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeAdminEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return envelope
}

func TestCreateCategorySuccess(t *testing.T) {
	h, db := newCategoryHandlerTest(t, "create_ok")

	c, w := newCategoryTestContext(t, http.MethodPost, "/api/v1/admin/categories", `{"slug":"electronics","name":"Electronics"}`)
	h.CreateCategory(c)

	envelope := decodeAdminEnvelope(t, w)
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("status_code want 0, got %d msg=%s", envelope.StatusCode, envelope.Msg)
	}

	var count int64
	if err := db.Model(&models.Category{}).Where("slug = ?", "electronics").Count(&count).Error; err != nil {
		t.Fatalf("count categories failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("category row want 1, got %d", count)
	}
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	h, db := newCategoryHandlerTest(t, "create_dup")
	if err := db.Create(&models.Category{Slug: "dup", Name: "Existing", IsActive: true}).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}

	c, w := newCategoryTestContext(t, http.MethodPost, "/api/v1/admin/categories", `{"slug":"dup","name":"Duplicate"}`)
	h.CreateCategory(c)

	envelope := decodeAdminEnvelope(t, w)
	if envelope.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want 400, got %d msg=%s", envelope.StatusCode, envelope.Msg)
	}
}

func TestGetAdminCategoryNotFound(t *testing.T) {
	h, _ := newCategoryHandlerTest(t, "get_missing")

	c, w := newCategoryTestContext(t, http.MethodGet, "/api/v1/admin/categories/999", "")
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	h.GetAdminCategory(c)

	envelope := decodeAdminEnvelope(t, w)
	if envelope.StatusCode != response.CodeNotFound {
		t.Fatalf("status_code want 404, got %d msg=%s", envelope.StatusCode, envelope.Msg)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	h, db := newCategoryHandlerTest(t, "delete_in_use")
	category := models.Category{Slug: "busy", Name: "Busy", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	product := models.Product{CategoryID: category.ID, SKU: "SKU-1", Slug: "p-1", Name: "P1", Status: "active"}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	c, w := newCategoryTestContext(t, http.MethodDelete, "/api/v1/admin/categories/1", "")
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(category.ID)}}
	h.DeleteCategory(c)

	envelope := decodeAdminEnvelope(t, w)
	if envelope.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want 400, got %d msg=%s", envelope.StatusCode, envelope.Msg)
	}
}
