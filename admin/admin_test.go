package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/globals"

	"github.com/julienschmidt/httprouter"
)

func newTestHandler(srv *httptest.Server) *Handler {
	client := appwrite.NewClient(srv.URL, "proj", "key")
	return NewHandler(appwrite.NewDatabases(client, "shopdb"), appwrite.NewStorage(client),
		"products", "orders", "users", "images")
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid status must be rejected before any store call")
	}))
	defer srv.Close()
	h := newTestHandler(srv)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/o1", strings.NewReader(`{"status":"teleported"}`))
	h.UpdateOrderStatus(w, r, httprouter.Params{{Key: "orderid", Value: "o1"}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateOrderStatusPatchesDocument(t *testing.T) {
	var gotPath, gotStatus string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		var body struct {
			Data map[string]interface{} `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotStatus, _ = body.Data["status"].(string)
		json.NewEncoder(w).Encode(map[string]interface{}{"$id": "o1", "status": gotStatus, "items": "[]"})
	}))
	defer srv.Close()
	h := newTestHandler(srv)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/o1", strings.NewReader(`{"status":"shipped"}`))
	h.UpdateOrderStatus(w, r, httprouter.Params{{Key: "orderid", Value: "o1"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotStatus != "shipped" {
		t.Fatalf("patched status: %q", gotStatus)
	}
	if !strings.HasSuffix(gotPath, "/collections/orders/documents/o1") {
		t.Fatalf("unexpected request: %s", gotPath)
	}
}

func TestDeleteProductRemovesImageFiles(t *testing.T) {
	var deletedFiles []string
	docDeleted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/documents/p1"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"$id":    "p1",
				"name":   "Market Tote",
				"images": []string{"f1", "f2"},
			})
		case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/documents/p1"):
			docDeleted = true
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete && strings.Contains(r.URL.Path, "/storage/buckets/images/files/"):
			deletedFiles = append(deletedFiles, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	h := newTestHandler(srv)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/admin/products/p1", nil)
	h.DeleteProduct(w, r, httprouter.Params{{Key: "productid", Value: "p1"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !docDeleted {
		t.Fatal("product document was not deleted")
	}
	if len(deletedFiles) != 2 || deletedFiles[0] != "f1" || deletedFiles[1] != "f2" {
		t.Fatalf("deleted files: %v", deletedFiles)
	}
}

func requestAs(userID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	return r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, userID))
}

func TestRequireAdminGatesOnProfileRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := "customer"
		if strings.Contains(r.URL.RawQuery, "u-admin") {
			role = "admin"
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"total": 1,
			"documents": []map[string]interface{}{
				{"$id": "prof1", "userId": "whoever", "role": role},
			},
		})
	}))
	defer srv.Close()
	h := newTestHandler(srv)

	called := false
	guarded := h.RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	guarded(w, requestAs("u-customer"), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("customer: expected 403, got %d", w.Code)
	}
	if called {
		t.Fatal("customer request must not reach the handler")
	}

	w = httptest.NewRecorder()
	guarded(w, requestAs("u-admin"), nil)
	if w.Code != http.StatusOK || !called {
		t.Fatalf("admin: expected pass-through, got %d (called=%v)", w.Code, called)
	}
}
