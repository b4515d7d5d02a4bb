package repositories

import (
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// DiskArchive mirrors image payloads onto the configured storage disk
// (local or s3) so the blobs survive outside the database.
type DiskArchive struct {
	disk string
}

func NewDiskArchive() *DiskArchive {
	return &DiskArchive{disk: config.Get("IMAGE_ARCHIVE_DISK", config.Get("STORAGE_DISK", "local"))}
}

func (a *DiskArchive) Put(path string, data []byte) error {
	return storage.Use(a.disk).Put(path, data)
}

func (a *DiskArchive) Delete(path string) error {
	return storage.Use(a.disk).Delete(path)
}
