package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/resource"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// maxUploadBytes caps a product form including its three image files.
const maxUploadBytes = 32 << 20 // 32 MB

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List returns active products, optionally filtered by ?title= substring.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.List(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not list products")
		return
	}
	resource.CollectionOf(resources.ProductResource{}, products).
		WithMeta(resource.Map{"count": len(products)}).
		Respond(w)
}

// Get returns one product with its images.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := c.products.GetByID(r.Context(), uint(id))
	if errors.Is(err, services.ErrProductNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}
	resource.New(resources.ProductResource{}, product).Respond(w)
}

// Create saves a new product from a multipart form with fields title,
// description, price and files file1..file3.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	form, files, err := parseProductForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	product := &models.Product{
		Title:       form.title,
		Description: form.description,
		Price:       form.price,
	}
	if err := c.products.Save(r.Context(), email, product, files); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Unauthorized(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not save product")
		return
	}
	response.Created(w, product)
}

// Update edits a product's fields and replaces image slots that carry a
// new file.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	form, files, err := parseProductForm(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err = c.products.Update(r.Context(), uint(id), email, form.title, form.description, form.price, files)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrNotOwner):
		response.Forbidden(w)
	case errors.Is(err, services.ErrUserNotFound):
		response.Unauthorized(w)
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not update product")
	default:
		response.Success(w, map[string]string{"message": "Product updated"})
	}
}

// Delete deactivates a product.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	err = c.products.Delete(r.Context(), email, uint(id))
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrNotOwner):
		response.Forbidden(w)
	case errors.Is(err, services.ErrUserNotFound):
		response.Unauthorized(w)
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
	default:
		response.Success(w, map[string]string{"message": "Product deleted"})
	}
}

// Image streams an image payload with its stored content type.
func (c *ProductController) Image(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image id")
		return
	}

	img, err := c.products.GetImage(r.Context(), uint(id))
	if errors.Is(err, services.ErrImageNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load image")
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(img.Size, 10))
	w.Write(img.Bytes) //nolint:errcheck
}

type productForm struct {
	title       string
	description string
	price       int
}

// parseProductForm buffers the whole form, including all three file slots,
// before the caller mutates anything. A failed file read aborts the request
// here, with no state touched.
func parseProductForm(r *http.Request) (productForm, [models.MaxImages]*services.ImageUpload, error) {
	var files [models.MaxImages]*services.ImageUpload

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return productForm{}, files, fmt.Errorf("invalid multipart form: %w", err)
	}

	price, err := strconv.Atoi(r.FormValue("price"))
	if err != nil || price < 0 {
		return productForm{}, files, errors.New("price must be a non-negative integer")
	}

	form := productForm{
		title:       r.FormValue("title"),
		description: r.FormValue("description"),
		price:       price,
	}
	if form.title == "" {
		return productForm{}, files, errors.New("title is required")
	}

	for slot := 0; slot < models.MaxImages; slot++ {
		field := fmt.Sprintf("file%d", slot+1)
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return productForm{}, files, fmt.Errorf("read %s: %w", field, err)
		}

		upload, err := services.ReadImageUpload(field, header.Filename,
			header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			return productForm{}, files, err
		}
		files[slot] = upload
	}

	return form, files, nil
}
