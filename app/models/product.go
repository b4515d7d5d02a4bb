package models

import "gorm.io/gorm"

// MaxImages is the number of image slots a product carries.
const MaxImages = 3

// Product represents a product in the catalogue. Products are never hard
// deleted: "deleting" one clears the Active flag so existing cart lines and
// orders keep a valid reference.
type Product struct {
	gorm.Model
	Title          string  `gorm:"size:255;not null;index" json:"title"`
	Description    string  `gorm:"type:text"               json:"description"`
	Price          int     `gorm:"not null;default:0"      json:"price"` // smallest currency unit
	Active         bool    `gorm:"not null;default:true"   json:"active"`
	UserID         uint    `gorm:"not null;index"          json:"user_id"`
	Images         []Image `json:"images,omitempty"`
	PreviewImageID *uint   `json:"preview_image_id,omitempty"`
}

// AttachImage appends an image to the product's slot list.
// The caller is responsible for keeping the list within MaxImages.
func (p *Product) AttachImage(img Image) {
	p.Images = append(p.Images, img)
}

// Image is a single image slot payload. A product exclusively owns its
// images: detaching one from the product deletes it from the store.
type Image struct {
	gorm.Model
	Name             string `gorm:"size:255"       json:"name"`
	OriginalFileName string `gorm:"size:255"       json:"original_file_name"`
	ContentType      string `gorm:"size:100"       json:"content_type"`
	Size             int64  `json:"size"`
	Bytes            []byte `gorm:"type:blob"      json:"-"`
	IsPreview        bool   `gorm:"not null;default:false" json:"is_preview"`
	ProductID        uint   `gorm:"not null;index" json:"product_id"`
	DiskPath         string `gorm:"size:512"       json:"-"` // archived copy on the storage disk
}
