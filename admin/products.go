package admin

import (
	"log"
	"net/http"
	"strconv"

	"github.com/clevercapitalinsights/marciah-crochet-closet/appwrite"
	"github.com/clevercapitalinsights/marciah-crochet-closet/catalog"
	"github.com/clevercapitalinsights/marciah-crochet-closet/filemgr"
	"github.com/clevercapitalinsights/marciah-crochet-closet/middleware"
	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
	"github.com/clevercapitalinsights/marciah-crochet-closet/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// productForm is the multipart product payload shared by create and
// update. existingImages carries file IDs to keep when editing.
type productForm struct {
	data     map[string]interface{}
	imageIDs []string
}

func (h *Handler) parseProductForm(r *http.Request) (*productForm, string) {
	if err := r.ParseMultipartForm(filemgr.MaxUploadSize); err != nil {
		return nil, "Invalid multipart form"
	}

	name := r.FormValue("name")
	if name == "" {
		return nil, "Name is required"
	}
	price, err := strconv.Atoi(r.FormValue("price"))
	if err != nil || price < 0 {
		return nil, "Price must be a non-negative number"
	}
	category := r.FormValue("category")
	if !models.ValidCategory(category) {
		return nil, "Unknown category"
	}

	// Keep the file IDs the admin chose to retain, then upload any new
	// images. An upload failure after earlier uploads can leave
	// orphaned files; there is no transaction spanning the two stores.
	imageIDs := append([]string{}, r.MultipartForm.Value["existingImages"]...)
	session := middleware.SessionSecret(r)
	for _, header := range r.MultipartForm.File["images"] {
		f, err := header.Open()
		if err != nil {
			return nil, "Could not read uploaded image"
		}
		content, filename, err := filemgr.PrepareImage(f, header)
		f.Close()
		if err != nil {
			log.Println("parseProductForm image error:", err)
			return nil, "Invalid image: " + header.Filename
		}

		fileID, err := h.Storage.CreateFile(r.Context(), session, h.Bucket, uuid.NewString(), filename, content,
			[]string{appwrite.PermissionReadAny()})
		if err != nil {
			log.Println("parseProductForm upload error:", err)
			return nil, "Image upload failed"
		}
		imageIDs = append(imageIDs, fileID)
	}

	return &productForm{
		data: map[string]interface{}{
			"name":         name,
			"price":        price,
			"category":     category,
			"description":  r.FormValue("description"),
			"materials":    r.FormValue("materials"),
			"inStock":      r.FormValue("inStock") == "true",
			"isBestSeller": r.FormValue("isBestSeller") == "true",
			"isNewArrival": r.FormValue("isNewArrival") == "true",
			"colors":       utils.SplitCSV(r.FormValue("colors")),
			"sizes":        utils.SplitCSV(r.FormValue("sizes")),
			"images":       imageIDs,
		},
		imageIDs: imageIDs,
	}, ""
}

// ListProducts handles GET /api/admin/products, newest first.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	docs, err := h.DB.ListDocuments(r.Context(), "", h.ProductsCollection, appwrite.QueryOrderDesc("$createdAt"))
	if err != nil {
		log.Println("ListProducts error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to load products")
		return
	}

	products := make([]models.Product, 0, len(docs))
	for i := range docs {
		products = append(products, catalog.DecodeProduct(&docs[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": products})
}

// CreateProduct handles POST /api/admin/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	form, msg := h.parseProductForm(r)
	if msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	doc, err := h.DB.CreateDocument(r.Context(), middleware.SessionSecret(r), h.ProductsCollection, uuid.NewString(), form.data, nil)
	if err != nil {
		log.Println("CreateProduct error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Error saving product")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, catalog.DecodeProduct(doc))
}

// UpdateProduct handles PUT /api/admin/products/:productid. Freshly
// uploaded images are appended to whatever existingImages kept.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	form, msg := h.parseProductForm(r)
	if msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	doc, err := h.DB.UpdateDocument(r.Context(), middleware.SessionSecret(r), h.ProductsCollection, ps.ByName("productid"), form.data)
	if err != nil {
		if appwrite.IsNotFound(err) {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Println("UpdateProduct error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Error saving product")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, catalog.DecodeProduct(doc))
}

// DeleteProduct handles DELETE /api/admin/products/:productid. The
// product's image files are removed after the document; a file delete
// failure leaves an orphan in the bucket and is only logged.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session := middleware.SessionSecret(r)
	id := ps.ByName("productid")

	doc, err := h.DB.GetDocument(r.Context(), "", h.ProductsCollection, id)
	if err != nil && !appwrite.IsNotFound(err) {
		log.Println("DeleteProduct fetch error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Error deleting product")
		return
	}

	if err := h.DB.DeleteDocument(r.Context(), session, h.ProductsCollection, id); err != nil && !appwrite.IsNotFound(err) {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Error deleting product")
		return
	}

	if doc != nil {
		for _, fileID := range doc.Strs("images") {
			if err := h.Storage.DeleteFile(r.Context(), session, h.Bucket, fileID); err != nil {
				log.Println("DeleteProduct image cleanup error:", err)
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}
