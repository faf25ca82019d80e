package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
)

func TestDecodeProductDefaults(t *testing.T) {
	raw := `{"$id": "p1", "name": "Bucket Hat", "price": -50}`
	var doc appwrite.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p := DecodeProduct(&doc)
	if p.ID != "p1" || p.Name != "Bucket Hat" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.Price != 0 {
		t.Fatalf("negative price should clamp to 0, got %d", p.Price)
	}
	if p.Images == nil || p.Colors == nil || p.Sizes == nil {
		t.Fatal("list fields should never be nil")
	}
	if p.InStock || p.IsBestSeller || p.IsNewArrival {
		t.Fatalf("absent flags should default to false: %+v", p)
	}
}

func TestSortProducts(t *testing.T) {
	base := []models.Product{
		{ID: "a", Price: 1200},
		{ID: "b", Price: 500},
		{ID: "c", Price: 2500},
	}

	asc := append([]models.Product{}, base...)
	SortProducts(asc, SortPriceAsc)
	if asc[0].ID != "b" || asc[1].ID != "a" || asc[2].ID != "c" {
		t.Fatalf("price-asc: %+v", asc)
	}

	desc := append([]models.Product{}, base...)
	SortProducts(desc, SortPriceDesc)
	if desc[0].ID != "c" || desc[2].ID != "b" {
		t.Fatalf("price-desc: %+v", desc)
	}

	featured := append([]models.Product{}, base...)
	SortProducts(featured, SortFeatured)
	for i := range base {
		if featured[i].ID != base[i].ID {
			t.Fatalf("featured should keep natural order: %+v", featured)
		}
	}
}

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := appwrite.NewClient(srv.URL, "proj", "")
	return NewService(appwrite.NewDatabases(client, "shopdb"), "products"), srv
}

func TestProductsPushesFilters(t *testing.T) {
	var gotQueries []string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQueries = r.URL.Query()["queries[]"]
		json.NewEncoder(w).Encode(map[string]interface{}{
			"total": 1,
			"documents": []map[string]interface{}{
				{"$id": "p1", "name": "Tote", "price": 2500, "category": "bags"},
			},
		})
	})

	products, err := svc.Products(context.Background(), "bags", true)
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("products: %+v", products)
	}
	if len(gotQueries) != 2 {
		t.Fatalf("expected category + new-arrival queries, got %v", gotQueries)
	}
	if gotQueries[0] != appwrite.QueryEqual("category", "bags") {
		t.Fatalf("category query: %s", gotQueries[0])
	}
	if gotQueries[1] != appwrite.QueryEqual("isNewArrival", true) {
		t.Fatalf("new-arrival query: %s", gotQueries[1])
	}
}

func TestProductsAllCategoriesSendsNoFilter(t *testing.T) {
	var gotQueries []string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQueries = r.URL.Query()["queries[]"]
		json.NewEncoder(w).Encode(map[string]interface{}{"total": 0, "documents": []map[string]interface{}{}})
	})

	if _, err := svc.Products(context.Background(), "all", false); err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(gotQueries) != 0 {
		t.Fatalf("expected no queries, got %v", gotQueries)
	}
}

func TestProductByIDAbsentIsNilNotError(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 404, "message": "Document not found", "type": "document_not_found",
		})
	})

	p, err := svc.ProductByID(context.Background(), "gone")
	if err != nil {
		t.Fatalf("absent product should not error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil product, got %+v", p)
	}
}
