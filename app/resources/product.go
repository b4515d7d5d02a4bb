// Package resources holds the JSON transformers for API responses.
package resources

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

// ProductResource shapes a product for the public catalogue endpoints.
// Image payloads are stripped down to metadata; the raw bytes are only
// reachable through the dedicated image endpoint.
type ProductResource struct {
	resource.Base
}

// ToArray accepts either a typed product (single-resource path) or the
// JSON round-trip map that resource.Collection feeds back in.
func (ProductResource) ToArray(v interface{}) resource.Map {
	switch p := v.(type) {
	case *models.Product:
		return productMap(*p)
	case models.Product:
		return productMap(p)
	case map[string]interface{}:
		return productFromDecoded(p)
	default:
		return resource.Map{}
	}
}

func productMap(p models.Product) resource.Map {
	return resource.Map{
		"id":               p.ID,
		"title":            p.Title,
		"description":      p.Description,
		"price":            p.Price,
		"active":           p.Active,
		"user_id":          p.UserID,
		"preview_image_id": p.PreviewImageID,
		"images": collection.Map(p.Images, func(img models.Image) resource.Map {
			return resource.Map{
				"id":           img.ID,
				"name":         img.Name,
				"content_type": img.ContentType,
				"size":         img.Size,
				"is_preview":   img.IsPreview,
			}
		}),
	}
}

func productFromDecoded(p map[string]interface{}) resource.Map {
	out := resource.Map{
		"id":               p["ID"],
		"title":            p["title"],
		"description":      p["description"],
		"price":            p["price"],
		"active":           p["active"],
		"user_id":          p["user_id"],
		"preview_image_id": p["preview_image_id"],
	}

	raw, _ := p["images"].([]interface{})
	out["images"] = collection.Map(raw, func(item interface{}) resource.Map {
		img, _ := item.(map[string]interface{})
		return resource.Map{
			"id":           img["ID"],
			"name":         img["name"],
			"content_type": img["content_type"],
			"size":         img["size"],
			"is_preview":   img["is_preview"],
		}
	})
	return out
}
