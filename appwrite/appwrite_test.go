package appwrite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDocumentUnmarshalSplitsSystemFields(t *testing.T) {
	raw := `{
		"$id": "doc1",
		"$createdAt": "2025-03-01T10:00:00.000+00:00",
		"$updatedAt": "2025-03-02T10:00:00.000+00:00",
		"$collectionId": "products",
		"$permissions": ["read(\"any\")"],
		"name": "Sunflower Tote",
		"price": 2500,
		"inStock": true,
		"colors": ["Natural", "Sage", 42]
	}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.ID != "doc1" {
		t.Fatalf("expected id doc1, got %q", doc.ID)
	}
	if doc.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to parse")
	}
	if _, ok := doc.Fields["$collectionId"]; ok {
		t.Fatal("system metadata should not leak into Fields")
	}
	if got := doc.Str("name"); got != "Sunflower Tote" {
		t.Fatalf("Str: got %q", got)
	}
	if got := doc.Int("price"); got != 2500 {
		t.Fatalf("Int: got %d", got)
	}
	if !doc.Bool("inStock") {
		t.Fatal("Bool: expected true")
	}
	// non-string elements are dropped, absent keys default
	if got := doc.Strs("colors"); len(got) != 2 || got[0] != "Natural" || got[1] != "Sage" {
		t.Fatalf("Strs: got %v", got)
	}
	if got := doc.Strs("sizes"); got == nil || len(got) != 0 {
		t.Fatalf("absent list should be empty, got %v", got)
	}
	if got := doc.Str("missing"); got != "" {
		t.Fatalf("absent string should be empty, got %q", got)
	}
}

func TestQueryEncoding(t *testing.T) {
	if got := QueryEqual("category", "bags"); got != `{"method":"equal","attribute":"category","values":["bags"]}` {
		t.Fatalf("QueryEqual: %s", got)
	}
	if got := QueryOrderDesc("$createdAt"); got != `{"method":"orderDesc","attribute":"$createdAt"}` {
		t.Fatalf("QueryOrderDesc: %s", got)
	}
}

func TestListDocumentsSendsQueriesAndHeaders(t *testing.T) {
	var gotPath string
	var gotQueries []string
	var gotProject, gotSession string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQueries = r.URL.Query()["queries[]"]
		gotProject = r.Header.Get("X-Appwrite-Project")
		gotSession = r.Header.Get("X-Appwrite-Session")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"total": 1,
			"documents": []map[string]interface{}{
				{"$id": "p1", "name": "Tote", "price": 2500},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "proj", "")
	db := NewDatabases(client, "shopdb")

	docs, err := db.ListDocuments(context.Background(), "secret", "products", QueryEqual("category", "bags"))
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if gotPath != "/databases/shopdb/collections/products/documents" {
		t.Fatalf("path: %s", gotPath)
	}
	if len(gotQueries) != 1 || gotQueries[0] != QueryEqual("category", "bags") {
		t.Fatalf("queries: %v", gotQueries)
	}
	if gotProject != "proj" || gotSession != "secret" {
		t.Fatalf("headers: project=%q session=%q", gotProject, gotSession)
	}
	if len(docs) != 1 || docs[0].ID != "p1" {
		t.Fatalf("docs: %+v", docs)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 404, "message": "Document not found", "type": "document_not_found",
		})
	}))
	defer srv.Close()

	db := NewDatabases(NewClient(srv.URL, "proj", ""), "shopdb")
	_, err := db.GetDocument(context.Background(), "", "products", "gone")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCreateDocumentBody(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"$id": "o1", "status": "pending"})
	}))
	defer srv.Close()

	db := NewDatabases(NewClient(srv.URL, "proj", "key"), "shopdb")
	doc, err := db.CreateDocument(context.Background(), "", "orders", "o1",
		map[string]interface{}{"status": "pending"}, nil)
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if body["documentId"] != "o1" {
		t.Fatalf("documentId: %v", body["documentId"])
	}
	data, _ := body["data"].(map[string]interface{})
	if data["status"] != "pending" {
		t.Fatalf("data: %v", body["data"])
	}
	if doc.Str("status") != "pending" {
		t.Fatalf("doc: %+v", doc)
	}
}

func TestDownloadURLShape(t *testing.T) {
	storage := NewStorage(NewClient("https://cloud.example.com/v1", "proj123", ""))
	got := storage.DownloadURL("shopmedia", "file42")
	want := "https://cloud.example.com/v1/storage/buckets/shopmedia/files/file42/download?project=proj123"
	if got != want {
		t.Fatalf("DownloadURL:\n got %s\nwant %s", got, want)
	}
}

func TestCreateFileMultipart(t *testing.T) {
	var fileID, fileName string
	var perms []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		fileID = r.FormValue("fileId")
		perms = r.MultipartForm.Value["permissions[]"]
		if headers := r.MultipartForm.File["file"]; len(headers) == 1 {
			fileName = headers[0].Filename
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"$id": fileID})
	}))
	defer srv.Close()

	storage := NewStorage(NewClient(srv.URL, "proj", ""))
	id, err := storage.CreateFile(context.Background(), "", "shopmedia", "f1", "tote.jpg",
		[]byte("fake-image"), []string{PermissionReadAny()})
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if id != "f1" || fileID != "f1" || fileName != "tote.jpg" {
		t.Fatalf("id=%q fileID=%q fileName=%q", id, fileID, fileName)
	}
	if len(perms) != 1 || perms[0] != `read("any")` {
		t.Fatalf("permissions: %v", perms)
	}
}
