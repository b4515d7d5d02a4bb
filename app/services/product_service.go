package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// ImageUpload is a fully buffered uploaded file. Buffering happens before
// any product mutation, so a failed read can never leave partial state
// behind — see ReadImageUpload.
type ImageUpload struct {
	Name             string
	OriginalFileName string
	ContentType      string
	Size             int64
	Data             []byte
}

func (u *ImageUpload) empty() bool { return u == nil || len(u.Data) == 0 }

func (u *ImageUpload) toImage() models.Image {
	return models.Image{
		Name:             u.Name,
		OriginalFileName: u.OriginalFileName,
		ContentType:      u.ContentType,
		Size:             u.Size,
		Bytes:            u.Data,
	}
}

// ReadImageUpload drains r into an ImageUpload. Callers must invoke this
// for every slot before touching the product.
func ReadImageUpload(name, originalName, contentType string, r io.Reader) (*ImageUpload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", originalName, err)
	}
	return &ImageUpload{
		Name:             name,
		OriginalFileName: originalName,
		ContentType:      contentType,
		Size:             int64(len(data)),
		Data:             data,
	}, nil
}

// ProductService owns the product lifecycle, including the three image
// slots. Slots fill left to right; the first non-empty upload becomes the
// preview image.
type ProductService struct {
	products ProductStore
	users    UserStore
	images   ImageStore
	archive  ImageArchive
}

func NewProductService(products ProductStore, users UserStore, images ImageStore, archive ImageArchive) *ProductService {
	return &ProductService{products: products, users: users, images: images, archive: archive}
}

// List returns active products, filtered by a title substring when one is
// given.
// catalogTTL bounds how stale a cached listing can get.
const catalogTTL = 30 * time.Second

func catalogKey(title string) string { return "products:list:" + title }

func (s *ProductService) List(ctx context.Context, title string) ([]models.Product, error) {
	key := catalogKey(title)
	var cached []models.Product
	if cache.Get(key, &cached) {
		return cached, nil
	}

	var (
		products []models.Product
		err      error
	)
	if title != "" {
		products, err = s.products.FindActiveByTitle(title)
	} else {
		products, err = s.products.AllActive()
	}
	if err != nil {
		return nil, err
	}

	if err := cache.Set(key, products, catalogTTL); err != nil {
		logger.WithCtx(ctx).Error("product: cache listing", "error", err)
	}
	return products, nil
}

// invalidateCatalog drops the unfiltered listing. Title-filtered keys are
// left to expire on their own.
func invalidateCatalog() {
	if err := cache.Del(catalogKey("")); err != nil {
		logger.Error("product: invalidate catalog cache", "error", err)
	}
}

// GetByID returns one product or ErrProductNotFound.
func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("product: find: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Save creates a product for the given owner with up to three image
// uploads. Non-empty uploads attach in arrival order and the first becomes
// the preview. The preview image id can only be recorded after the first
// save has assigned storage identity, so a product with images always takes
// a second write.
func (s *ProductService) Save(ctx context.Context, ownerEmail string, product *models.Product, files [models.MaxImages]*ImageUpload) error {
	log := logger.WithCtx(ctx)

	owner, err := s.users.FindByEmail(ownerEmail)
	if err != nil {
		return fmt.Errorf("product: find owner: %w", err)
	}
	if owner == nil {
		return ErrUserNotFound
	}
	product.UserID = owner.ID
	product.Active = true

	preview := true
	for _, f := range files {
		if f.empty() {
			continue
		}
		img := f.toImage()
		if preview {
			img.IsPreview = true
			preview = false
		}
		product.AttachImage(img)
	}

	log.Info("product: saving", "title", product.Title, "owner", owner.Email)
	if err := s.products.Save(product); err != nil {
		return fmt.Errorf("product: save: %w", err)
	}

	if product.PreviewImageID == nil && len(product.Images) > 0 {
		id := product.Images[0].ID
		product.PreviewImageID = &id
		if err := s.products.Save(product); err != nil {
			return fmt.Errorf("product: save preview id: %w", err)
		}
	}

	s.archiveImages(ctx, product)
	invalidateCatalog()
	return nil
}

// Update edits title, description and price unconditionally and handles
// each image slot independently: a non-empty upload for an occupied slot
// deletes the old image from the store and appends the replacement; slots
// without an upload keep whatever they held.
//
// Replacement is by position in the current list. Removing a middle slot
// shifts later images one position left before the new image is appended —
// this mirrors the storefront's historical behaviour and the UI relies on
// it.
func (s *ProductService) Update(ctx context.Context, id uint, ownerEmail, title, description string, price int, files [models.MaxImages]*ImageUpload) error {
	log := logger.WithCtx(ctx)

	product, err := s.products.FindByID(id)
	if err != nil {
		return fmt.Errorf("product: find: %w", err)
	}
	if product == nil {
		log.Error("product: not found", "product_id", id)
		return ErrProductNotFound
	}

	owner, err := s.users.FindByEmail(ownerEmail)
	if err != nil {
		return fmt.Errorf("product: find owner: %w", err)
	}
	if owner == nil {
		return ErrUserNotFound
	}
	if product.UserID != owner.ID {
		log.Error("product: edit denied", "product_id", id, "user", owner.Email)
		return ErrNotOwner
	}

	product.Title = title
	product.Description = description
	product.Price = price

	for slot, f := range files {
		if f.empty() {
			continue
		}
		if len(product.Images) > slot {
			old := product.Images[slot]
			if err := s.images.Delete(&old); err != nil {
				return fmt.Errorf("product: delete image %d: %w", old.ID, err)
			}
			s.unarchive(ctx, &old)
			product.Images = append(product.Images[:slot], product.Images[slot+1:]...)
		}
		img := f.toImage()
		if slot == 0 {
			img.IsPreview = true
			product.PreviewImageID = nil // reassigned after save
		}
		product.AttachImage(img)
	}

	if err := s.products.Save(product); err != nil {
		return fmt.Errorf("product: save: %w", err)
	}

	if product.PreviewImageID == nil && len(product.Images) > 0 {
		pid := product.Images[0].ID
		product.PreviewImageID = &pid
		if err := s.products.Save(product); err != nil {
			return fmt.Errorf("product: save preview id: %w", err)
		}
	}

	s.archiveImages(ctx, product)
	invalidateCatalog()
	log.Info("product: updated", "product_id", id)
	return nil
}

// Delete deactivates a product. Only the owner may do it; the record stays
// in storage so carts and orders keep a valid reference.
func (s *ProductService) Delete(ctx context.Context, ownerEmail string, id uint) error {
	log := logger.WithCtx(ctx)

	product, err := s.products.FindByID(id)
	if err != nil {
		return fmt.Errorf("product: find: %w", err)
	}
	if product == nil {
		log.Error("product: not found", "product_id", id)
		return ErrProductNotFound
	}

	owner, err := s.users.FindByEmail(ownerEmail)
	if err != nil {
		return fmt.Errorf("product: find owner: %w", err)
	}
	if owner == nil {
		return ErrUserNotFound
	}
	if product.UserID != owner.ID {
		log.Error("product: delete denied", "product_id", id, "user", owner.Email)
		return ErrNotOwner
	}

	product.Active = false
	if err := s.products.Save(product); err != nil {
		return fmt.Errorf("product: deactivate: %w", err)
	}
	invalidateCatalog()
	log.Info("product: deactivated", "product_id", id, "user", owner.Email)
	return nil
}

// GetImage returns one image payload or ErrImageNotFound.
func (s *ProductService) GetImage(ctx context.Context, id uint) (*models.Image, error) {
	img, err := s.images.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("product: find image: %w", err)
	}
	if img == nil {
		return nil, ErrImageNotFound
	}
	return img, nil
}

// archiveImages writes a copy of every image payload that does not yet have
// one to the storage disk. Archive failures are logged, never fatal.
func (s *ProductService) archiveImages(ctx context.Context, product *models.Product) {
	if s.archive == nil {
		return
	}
	log := logger.WithCtx(ctx)
	for i := range product.Images {
		img := &product.Images[i]
		if img.DiskPath != "" || len(img.Bytes) == 0 {
			continue
		}
		path := fmt.Sprintf("products/%d/images/%d", product.ID, img.ID)
		if err := s.archive.Put(path, img.Bytes); err != nil {
			log.Warn("product: image archive failed", "image_id", img.ID, "error", err)
			continue
		}
		img.DiskPath = path
		if err := s.images.Save(img); err != nil {
			log.Warn("product: record archive path failed", "image_id", img.ID, "error", err)
		}
	}
}

func (s *ProductService) unarchive(ctx context.Context, img *models.Image) {
	if s.archive == nil || img.DiskPath == "" {
		return
	}
	if err := s.archive.Delete(img.DiskPath); err != nil {
		logger.WithCtx(ctx).Warn("product: image archive delete failed",
			"image_id", img.ID, "error", err)
	}
}
