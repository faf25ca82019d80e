package catalog

import (
	"context"
	"sort"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
)

// Service is a thin read-only wrapper over the products collection. No
// caching and no pagination: every call is a fresh round trip.
type Service struct {
	DB         *appwrite.Databases
	Collection string
}

func NewService(db *appwrite.Databases, collection string) *Service {
	return &Service{DB: db, Collection: collection}
}

// Products lists the catalog, optionally narrowed by category and/or
// the new-arrival flag. Filters are pushed down as equality queries.
func (s *Service) Products(ctx context.Context, category string, newOnly bool) ([]models.Product, error) {
	var queries []string
	if category != "" && category != "all" {
		queries = append(queries, appwrite.QueryEqual("category", category))
	}
	if newOnly {
		queries = append(queries, appwrite.QueryEqual("isNewArrival", true))
	}

	docs, err := s.DB.ListDocuments(ctx, "", s.Collection, queries...)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(docs))
	for i := range docs {
		products = append(products, DecodeProduct(&docs[i]))
	}
	return products, nil
}

// ProductByID fetches one product; a missing document returns
// (nil, nil) rather than an error.
func (s *Service) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	doc, err := s.DB.GetDocument(ctx, "", s.Collection, id)
	if err != nil {
		if appwrite.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	p := DecodeProduct(doc)
	return &p, nil
}

// DecodeProduct is the deserialization boundary between the untyped
// document and the typed record: absent fields default, list fields are
// never nil, and a negative price clamps to zero.
func DecodeProduct(doc *appwrite.Document) models.Product {
	p := models.Product{
		ID:           doc.ID,
		Name:         doc.Str("name"),
		Price:        doc.Int("price"),
		Category:     doc.Str("category"),
		Description:  doc.Str("description"),
		Materials:    doc.Str("materials"),
		Images:       doc.Strs("images"),
		InStock:      doc.Bool("inStock"),
		IsBestSeller: doc.Bool("isBestSeller"),
		IsNewArrival: doc.Bool("isNewArrival"),
		Colors:       doc.Strs("colors"),
		Sizes:        doc.Strs("sizes"),
	}
	if p.Price < 0 {
		p.Price = 0
	}
	return p
}

// Sort orders get applied client-side after the fetch; "featured" keeps
// the store's natural order.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

func SortProducts(products []models.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	}
}
