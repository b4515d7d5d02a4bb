package notifications

import (
	"fmt"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/notification"
)

// PurchaseConfirmation is the message a buyer receives for each checked-out
// line: product title, quantity, addressed to the buyer's email.
type PurchaseConfirmation struct {
	Email        string
	ProductTitle string
	Quantity     int
}

// Via sends mail always, slack only when an ops webhook is configured.
func (n *PurchaseConfirmation) Via() []string {
	if config.Get("SLACK_ORDERS_WEBHOOK", "") != "" {
		return []string{"mail", "slack"}
	}
	return []string{"mail"}
}

func (n *PurchaseConfirmation) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "Purchase confirmation",
		Body: fmt.Sprintf(
			"<p>Thank you for your purchase!</p>"+
				"<p>You bought: <strong>%s</strong><br>Quantity: %d</p>"+
				"<p>— the shop team</p>",
			n.ProductTitle, n.Quantity),
		Text: fmt.Sprintf(
			"Thank you for your purchase!\n\nYou bought: %s\nQuantity: %d\n\n— the shop team",
			n.ProductTitle, n.Quantity),
	}
}

func (n *PurchaseConfirmation) ToSlack() notification.SlackData {
	return notification.SlackData{
		WebhookURL: config.Get("SLACK_ORDERS_WEBHOOK", ""),
		Text:       fmt.Sprintf("Order placed: %d × %s (%s)", n.Quantity, n.ProductTitle, n.Email),
	}
}
