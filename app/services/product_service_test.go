package services_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
)

func upload(name, content string) *services.ImageUpload {
	u, _ := services.ReadImageUpload(name, name+".jpg", "image/jpeg", strings.NewReader(content))
	return u
}

func TestSaveAttachesImagesAndSetsPreview(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")

	product := &models.Product{Title: "Mug", Price: 500}
	files := [models.MaxImages]*services.ImageUpload{
		upload("file1", "aaa"),
		upload("file2", "bbb"),
		upload("file3", "ccc"),
	}

	svc := w.productService()
	require.NoError(t, svc.Save(context.Background(), owner.Email, product, files))

	require.Len(t, product.Images, 3)
	assert.True(t, product.Images[0].IsPreview)
	assert.False(t, product.Images[1].IsPreview)
	assert.False(t, product.Images[2].IsPreview)

	// The preview id can only be recorded once the first save assigned ids,
	// so a product with images always takes two writes.
	require.NotNil(t, product.PreviewImageID)
	assert.Equal(t, product.Images[0].ID, *product.PreviewImageID)
	assert.Equal(t, 2, w.products.saves)

	assert.Equal(t, owner.ID, product.UserID)
	assert.True(t, product.Active)
}

func TestSaveFirstNonEmptyUploadBecomesPreview(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")

	product := &models.Product{Title: "Mug", Price: 500}
	files := [models.MaxImages]*services.ImageUpload{nil, upload("file2", "bbb"), nil}

	svc := w.productService()
	require.NoError(t, svc.Save(context.Background(), owner.Email, product, files))

	require.Len(t, product.Images, 1)
	assert.True(t, product.Images[0].IsPreview)
	require.NotNil(t, product.PreviewImageID)
	assert.Equal(t, product.Images[0].ID, *product.PreviewImageID)
}

func TestSaveWithoutImagesTakesOneWrite(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")

	product := &models.Product{Title: "Mug", Price: 500}
	svc := w.productService()
	require.NoError(t, svc.Save(context.Background(), owner.Email, product, [models.MaxImages]*services.ImageUpload{}))

	assert.Nil(t, product.PreviewImageID)
	assert.Equal(t, 1, w.products.saves)
}

func TestSaveArchivesImagePayloads(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")

	product := &models.Product{Title: "Mug", Price: 500}
	files := [models.MaxImages]*services.ImageUpload{upload("file1", "aaa"), nil, nil}

	svc := w.productService()
	require.NoError(t, svc.Save(context.Background(), owner.Email, product, files))

	path := fmt.Sprintf("products/%d/images/%d", product.ID, product.Images[0].ID)
	assert.Equal(t, []byte("aaa"), w.archive.puts[path])
	assert.Equal(t, path, product.Images[0].DiskPath)
}

func TestSaveSurvivesArchiveOutage(t *testing.T) {
	w := newWorld()
	w.archive.failing = true
	owner := w.seedUser("seller@example.com")

	product := &models.Product{Title: "Mug", Price: 500}
	files := [models.MaxImages]*services.ImageUpload{upload("file1", "aaa"), nil, nil}

	require.NoError(t, w.productService().Save(context.Background(), owner.Email, product, files))
	assert.Empty(t, product.Images[0].DiskPath)
}

func TestUpdateEditsFieldsWithoutUploads(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")
	product := w.seedProduct(owner, "Mug", 500)

	svc := w.productService()
	err := svc.Update(context.Background(), product.ID, owner.Email,
		"Better mug", "Now with handle", 700, [models.MaxImages]*services.ImageUpload{})
	require.NoError(t, err)

	assert.Equal(t, "Better mug", product.Title)
	assert.Equal(t, "Now with handle", product.Description)
	assert.Equal(t, 700, product.Price)
}

func TestUpdateReplacesOccupiedSlot(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")

	product := &models.Product{Title: "Mug", Price: 500}
	svc := w.productService()
	ctx := context.Background()
	require.NoError(t, svc.Save(ctx, owner.Email, product, [models.MaxImages]*services.ImageUpload{
		upload("file1", "aaa"),
		upload("file2", "bbb"),
	}))
	oldFirst := product.Images[0]
	second := product.Images[1]

	err := svc.Update(ctx, product.ID, owner.Email, product.Title, product.Description, product.Price,
		[models.MaxImages]*services.ImageUpload{upload("file1", "zzz")})
	require.NoError(t, err)

	// The replaced image is gone from the store and the archive; later
	// images shift left and the replacement lands at the end.
	assert.Contains(t, w.images.deleted, oldFirst.ID)
	assert.Contains(t, w.archive.deletes, oldFirst.DiskPath)
	require.Len(t, product.Images, 2)
	assert.Equal(t, second.ID, product.Images[0].ID)
	assert.Equal(t, "zzz", string(product.Images[1].Bytes))

	// The preview id follows whatever now sits first.
	require.NotNil(t, product.PreviewImageID)
	assert.Equal(t, product.Images[0].ID, *product.PreviewImageID)
}

func TestUpdateFillsEmptySlotWithoutDeleting(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")

	product := &models.Product{Title: "Mug", Price: 500}
	svc := w.productService()
	ctx := context.Background()
	require.NoError(t, svc.Save(ctx, owner.Email, product, [models.MaxImages]*services.ImageUpload{
		upload("file1", "aaa"),
	}))

	err := svc.Update(ctx, product.ID, owner.Email, product.Title, product.Description, product.Price,
		[models.MaxImages]*services.ImageUpload{nil, upload("file2", "bbb")})
	require.NoError(t, err)

	assert.Empty(t, w.images.deleted)
	require.Len(t, product.Images, 2)
	assert.Equal(t, "bbb", string(product.Images[1].Bytes))
}

func TestUpdateDeniedForNonOwner(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")
	intruder := w.seedUser("intruder@example.com")
	product := w.seedProduct(owner, "Mug", 500)

	err := w.productService().Update(context.Background(), product.ID, intruder.Email,
		"Hijacked", "", 1, [models.MaxImages]*services.ImageUpload{})
	assert.ErrorIs(t, err, services.ErrNotOwner)
	assert.Equal(t, "Mug", product.Title)
}

func TestUpdateUnknownProduct(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")

	err := w.productService().Update(context.Background(), 404, owner.Email,
		"x", "", 1, [models.MaxImages]*services.ImageUpload{})
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestDeleteDeactivates(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")
	product := w.seedProduct(owner, "Mug", 500)

	require.NoError(t, w.productService().Delete(context.Background(), owner.Email, product.ID))

	// Soft delete: the row stays so carts and orders keep a valid reference.
	stored, _ := w.products.FindByID(product.ID)
	require.NotNil(t, stored)
	assert.False(t, stored.Active)
}

func TestDeleteDeniedForNonOwner(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")
	intruder := w.seedUser("intruder@example.com")
	product := w.seedProduct(owner, "Mug", 500)

	err := w.productService().Delete(context.Background(), intruder.Email, product.ID)
	assert.ErrorIs(t, err, services.ErrNotOwner)
	assert.True(t, product.Active)
}

func TestListFiltersInactive(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")
	w.seedProduct(owner, "Mug", 500)
	dead := w.seedProduct(owner, "Old mug", 100)
	dead.Active = false

	products, err := w.productService().List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mug", products[0].Title)
}

func TestGetImage(t *testing.T) {
	w := newWorld()
	img := &models.Image{ContentType: "image/png", Bytes: []byte("png")}
	img.ID = 7
	require.NoError(t, w.images.Save(img))

	got, err := w.productService().GetImage(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.ContentType)

	_, err = w.productService().GetImage(context.Background(), 8)
	assert.ErrorIs(t, err, services.ErrImageNotFound)
}

func TestUploadReadFailureAbortsWithNoPartialState(t *testing.T) {
	w := newWorld()
	owner := w.seedUser("seller@example.com")
	svc := w.productService()

	product := &models.Product{Title: "Lamp", Price: 900}
	files := [models.MaxImages]*services.ImageUpload{upload("front", "front-bytes")}
	require.NoError(t, svc.Save(context.Background(), owner.Email, product, files))

	savesBefore := w.products.saves
	imageSavesBefore := w.images.saves

	// The replacement payload dies mid-read; buffering happens before any
	// mutation, so the slot operation never starts.
	readErr := errors.New("connection reset")
	src := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(readErr))

	replacement, err := services.ReadImageUpload("front2", "front2.jpg", "image/jpeg", src)
	require.ErrorIs(t, err, readErr)
	require.Nil(t, replacement)

	assert.Equal(t, savesBefore, w.products.saves)
	assert.Equal(t, imageSavesBefore, w.images.saves)
	assert.Empty(t, w.images.deleted)
	assert.Empty(t, w.archive.deletes)

	got, err := w.products.FindByID(product.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "front", got.Images[0].Name)
}
