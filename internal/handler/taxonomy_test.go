package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"
	"github.com/esrickpics/ProyectoSSAPI/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Category{}, &models.Subcategory{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestListSubcategories_CategoriaFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)

	catA := models.Category{Name: "Tecnología"}
	catB := models.Category{Name: "Mobiliario"}
	if err := db.Create(&catA).Error; err != nil {
		t.Fatalf("seed category A: %v", err)
	}
	if err := db.Create(&catB).Error; err != nil {
		t.Fatalf("seed category B: %v", err)
	}
	if err := db.Create(&models.Subcategory{Name: "Computadoras", CategoryID: catA.ID}).Error; err != nil {
		t.Fatalf("seed subcategory A: %v", err)
	}
	if err := db.Create(&models.Subcategory{Name: "Sillas", CategoryID: catB.ID}).Error; err != nil {
		t.Fatalf("seed subcategory B: %v", err)
	}

	h := NewTaxonomyHandler(service.NewTaxonomyService(db))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/subcategories?categoria=%d", catA.ID), nil)

	h.ListSubcategories(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Code int `json:"code"`
		Data struct {
			Items []subcategoryResp `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Data.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(body.Data.Items))
	}
	if body.Data.Items[0].Name != "Computadoras" {
		t.Errorf("item = %q, want Computadoras", body.Data.Items[0].Name)
	}
}
