// Package tasks holds the periodic maintenance work run by
// `storefront schedule:run`.
package tasks

import (
	"encoding/json"
	"sync/atomic"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/notifications"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/queue"
	"github.com/shashiranjanraj/storefront/pkg/schedule"
	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shashiranjanraj/storefront/pkg/workerpool"
)

// Register wires all periodic tasks into the scheduler. Call once before
// schedule.Start.
func Register() {
	schedule.Every(15).Minutes().
		Name("requeue-failed-confirmations").
		WithoutOverlapping().
		Run(RequeueFailedConfirmations)

	schedule.Daily().
		Name("sweep-orphaned-archives").
		WithoutOverlapping().
		Run(SweepOrphanedArchives)
}

// RequeueFailedConfirmations puts purchase confirmations that exhausted
// their retries back on the queue and clears their dead-letter rows.
func RequeueFailedConfirmations() {
	if database.DB == nil {
		return
	}

	var records []queue.FailedJobRecord
	err := database.DB.
		Where("job_type = ?", "notifications.PurchaseConfirmationJob").
		Find(&records).Error
	if err != nil {
		logger.Error("tasks: load failed confirmations", "error", err)
		return
	}

	for _, rec := range records {
		var job notifications.PurchaseConfirmationJob
		if err := json.Unmarshal([]byte(rec.Payload), &job); err != nil {
			logger.Error("tasks: bad confirmation payload", "id", rec.ID, "error", err)
			continue
		}
		if err := queue.Dispatch(job); err != nil {
			logger.Error("tasks: requeue confirmation", "id", rec.ID, "error", err)
			continue
		}
		if err := database.DB.Delete(&queue.FailedJobRecord{}, rec.ID).Error; err != nil {
			logger.Error("tasks: clear dead letter", "id", rec.ID, "error", err)
		}
	}

	if len(records) > 0 {
		logger.Info("tasks: requeued failed confirmations", "count", len(records))
	}
}

// SweepOrphanedArchives deletes archived image files whose database row is
// gone, e.g. after an image slot was replaced while the disk was unreachable.
func SweepOrphanedArchives() {
	if database.DB == nil {
		return
	}

	disk := storage.Use(config.Get("IMAGE_ARCHIVE_DISK", config.StorageDefault()))
	files, err := disk.AllFiles("products")
	if err != nil {
		logger.Error("tasks: list archive", "error", err)
		return
	}

	// Deletes hit the disk backend (possibly S3), so fan them out but keep
	// the concurrency bounded.
	pool := workerpool.New(4)
	var removed atomic.Int64

	for _, path := range files {
		var count int64
		err := database.DB.Model(&models.Image{}).Where("disk_path = ?", path).Count(&count).Error
		if err != nil {
			logger.Error("tasks: check archive row", "path", path, "error", err)
			continue
		}
		if count > 0 {
			continue
		}

		path := path
		if err := pool.SubmitWait(func() {
			if err := disk.Delete(path); err != nil {
				logger.Error("tasks: delete orphaned archive", "path", path, "error", err)
				return
			}
			removed.Add(1)
		}); err != nil {
			logger.Error("tasks: submit archive delete", "path", path, "error", err)
		}
	}
	pool.Shutdown()

	if n := removed.Load(); n > 0 {
		logger.Info("tasks: swept orphaned archives", "count", n)
	}
}
