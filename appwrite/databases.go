package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Databases is the document-store service scoped to one database.
type Databases struct {
	client     *Client
	DatabaseID string
}

func NewDatabases(client *Client, databaseID string) *Databases {
	return &Databases{client: client, DatabaseID: databaseID}
}

// Document is a raw document as returned by the store: system fields
// plus an untyped attribute map. Consumers decode Fields through the
// typed accessors instead of trusting the shape.
type Document struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    map[string]interface{}
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Fields = make(map[string]interface{}, len(raw))
	for k, v := range raw {
		switch k {
		case "$id":
			d.ID, _ = v.(string)
		case "$createdAt":
			if s, ok := v.(string); ok {
				d.CreatedAt, _ = time.Parse(time.RFC3339Nano, s)
			}
		case "$updatedAt":
			if s, ok := v.(string); ok {
				d.UpdatedAt, _ = time.Parse(time.RFC3339Nano, s)
			}
		case "$collectionId", "$databaseId", "$permissions", "$sequence":
			// system metadata the storefront never reads
		default:
			d.Fields[k] = v
		}
	}
	return nil
}

// Str returns the named attribute as a string, or "" when absent or of
// another type.
func (d *Document) Str(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

// Int returns the named attribute as an int, defaulting to 0. JSON
// numbers arrive as float64.
func (d *Document) Int(key string) int {
	f, _ := d.Fields[key].(float64)
	return int(f)
}

func (d *Document) Bool(key string) bool {
	b, _ := d.Fields[key].(bool)
	return b
}

// Strs returns a string-array attribute, always non-nil. Non-string
// elements are dropped.
func (d *Document) Strs(key string) []string {
	out := []string{}
	raw, _ := d.Fields[key].([]interface{})
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

type documentList struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}

// ListDocuments fetches documents matching the given queries, in the
// store's order. An empty query set lists everything.
func (db *Databases) ListDocuments(ctx context.Context, session, collectionID string, queries ...string) ([]Document, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", db.DatabaseID, collectionID)
	if len(queries) > 0 {
		values := url.Values{}
		for _, q := range queries {
			values.Add("queries[]", q)
		}
		path += "?" + values.Encode()
	}

	var list documentList
	if err := db.client.do(ctx, http.MethodGet, path, session, nil, &list); err != nil {
		return nil, err
	}
	return list.Documents, nil
}

// GetDocument fetches one document. Callers use IsNotFound to treat a
// missing document as a normal outcome.
func (db *Databases) GetDocument(ctx context.Context, session, collectionID, documentID string) (*Document, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", db.DatabaseID, collectionID, documentID)
	var doc Document
	if err := db.client.do(ctx, http.MethodGet, path, session, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Databases) CreateDocument(ctx context.Context, session, collectionID, documentID string, data map[string]interface{}, permissions []string) (*Document, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", db.DatabaseID, collectionID)
	body := map[string]interface{}{
		"documentId": documentID,
		"data":       data,
	}
	if len(permissions) > 0 {
		body["permissions"] = permissions
	}
	var doc Document
	if err := db.client.do(ctx, http.MethodPost, path, session, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Databases) UpdateDocument(ctx context.Context, session, collectionID, documentID string, data map[string]interface{}) (*Document, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", db.DatabaseID, collectionID, documentID)
	body := map[string]interface{}{"data": data}
	var doc Document
	if err := db.client.do(ctx, http.MethodPatch, path, session, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Databases) DeleteDocument(ctx context.Context, session, collectionID, documentID string) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", db.DatabaseID, collectionID, documentID)
	return db.client.do(ctx, http.MethodDelete, path, session, nil, nil)
}
