package notifications

import (
	"errors"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/notification"
	"github.com/shashiranjanraj/storefront/pkg/queue"
)

// MailNotifier delivers purchase confirmations through the notification
// channels. It satisfies the checkout workflow's Notifier port.
type MailNotifier struct{}

func NewMailNotifier() *MailNotifier {
	return &MailNotifier{}
}

func (MailNotifier) SendPurchaseConfirmation(email, productTitle string, quantity int) error {
	errs := notification.Send(email, &PurchaseConfirmation{
		Email:        email,
		ProductTitle: productTitle,
		Quantity:     quantity,
	})
	return errors.Join(errs...)
}

// RetryingNotifier wraps a notifier and re-queues failed sends as
// background jobs. The original error is still returned so the caller can
// observe and count the failure.
type RetryingNotifier struct {
	next interface {
		SendPurchaseConfirmation(email, productTitle string, quantity int) error
	}
}

func WithRetry(next interface {
	SendPurchaseConfirmation(email, productTitle string, quantity int) error
}) *RetryingNotifier {
	return &RetryingNotifier{next: next}
}

func (r *RetryingNotifier) SendPurchaseConfirmation(email, productTitle string, quantity int) error {
	err := r.next.SendPurchaseConfirmation(email, productTitle, quantity)
	if err == nil {
		return nil
	}

	if qerr := queue.Dispatch(PurchaseConfirmationJob{
		Email:        email,
		ProductTitle: productTitle,
		Quantity:     quantity,
	}); qerr != nil {
		logger.Error("notifications: retry dispatch failed", "error", qerr)
	}
	return err
}

// PurchaseConfirmationJob retries a confirmation that failed to send during
// checkout. Workers pick it up via `storefront queue:work`.
type PurchaseConfirmationJob struct {
	Email        string `json:"email"`
	ProductTitle string `json:"product_title"`
	Quantity     int    `json:"quantity"`
}

func (j PurchaseConfirmationJob) Handle() error {
	return NewMailNotifier().SendPurchaseConfirmation(j.Email, j.ProductTitle, j.Quantity)
}
