package models

// Product is a catalog item as stored in the products collection.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        int      `json:"price"` // whole KSh, never negative
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Materials    string   `json:"materials"`
	Images       []string `json:"images"` // object-store file IDs, in display order
	InStock      bool     `json:"inStock"`
	IsBestSeller bool     `json:"isBestSeller"`
	IsNewArrival bool     `json:"isNewArrival"`
	Colors       []string `json:"colors"`
	Sizes        []string `json:"sizes"`
}

// Category is one of the fixed shop sections.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var Categories = []Category{
	{ID: "bags", Name: "Bags", Description: "Handcrafted totes, crossbodies & more"},
	{ID: "tops", Name: "Tops", Description: "Boho tops, cardigans & cover-ups"},
	{ID: "accessories", Name: "Accessories", Description: "Hats, scrunchies & jewelry"},
	{ID: "home", Name: "Home", Description: "Pillows, plant hangers & décor"},
}

func ValidCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
