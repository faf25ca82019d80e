package catalog

import (
	"log"
	"net/http"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the public catalog endpoints.
type Handler struct {
	Svc     *Service
	Storage *appwrite.Storage
	Bucket  string
}

func NewHandler(svc *Service, storage *appwrite.Storage, bucket string) *Handler {
	return &Handler{Svc: svc, Storage: storage, Bucket: bucket}
}

// productView is a product plus resolved image download URLs.
type productView struct {
	models.Product
	ImageURLs []string `json:"imageUrls"`
}

func (h *Handler) view(p models.Product) productView {
	urls := make([]string, 0, len(p.Images))
	for _, id := range p.Images {
		urls = append(urls, h.Storage.DownloadURL(h.Bucket, id))
	}
	return productView{Product: p, ImageURLs: urls}
}

// GetProducts handles GET /api/products?category=&filter=new&sort=
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	category := q.Get("category")
	newOnly := q.Get("filter") == "new"

	products, err := h.Svc.Products(r.Context(), category, newOnly)
	if err != nil {
		log.Println("GetProducts list error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load products")
		return
	}

	sortBy := q.Get("sort")
	if sortBy == "" {
		sortBy = SortFeatured
	}
	SortProducts(products, sortBy)

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, h.view(p))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": views})
}

// GetProduct handles GET /api/products/:productid
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	p, err := h.Svc.ProductByID(r.Context(), ps.ByName("productid"))
	if err != nil {
		log.Println("GetProduct fetch error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load product")
		return
	}
	if p == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.view(*p))
}

// GetCategories handles GET /api/categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"categories": models.Categories})
}
