package sendgrid

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dwikikusuma/marketplace/internal/checkout/domain"
)

// EmailLookup resolves the address confirmations are sent to.
type EmailLookup interface {
	Email(ctx context.Context, userID int64) (string, error)
}

const sendTimeout = 10 * time.Second

// Notifier mails an order confirmation through SendGrid. Without an API key it
// does nothing.
type Notifier struct {
	apiKey  string
	host    string
	timeout time.Duration
	from    string
	emails  EmailLookup
	log     *slog.Logger
}

func NewNotifier(apiKey, from string, emails EmailLookup, log *slog.Logger) *Notifier {
	return &Notifier{
		apiKey:  apiKey,
		timeout: sendTimeout,
		from:    from,
		emails:  emails,
		log:     log,
	}
}

func (n *Notifier) Enabled() bool { return n.apiKey != "" }

// client returns a fresh send client. sendgrid.Client stores the request body
// on itself, so one instance cannot serve concurrent checkouts.
func (n *Notifier) client() *sendgrid.Client {
	req := sendgrid.GetRequest(n.apiKey, "/v3/mail/send", n.host)
	req.Method = "POST"
	return &sendgrid.Client{Request: req}
}

// OrderPlaced mails the receipt. Lookup and delivery share one timeout so a
// slow provider cannot hold the checkout response.
func (n *Notifier) OrderPlaced(ctx context.Context, r domain.Receipt) error {
	if !n.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	to, err := n.emails.Email(ctx, r.UserID)
	if err != nil {
		return fmt.Errorf("lookup email for user %d: %w", r.UserID, err)
	}
	if to == "" {
		return nil
	}

	resp, err := n.client().SendWithContext(ctx, confirmation(n.from, to, r))
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}

	n.log.Info("order confirmation sent",
		slog.Int64("order_id", r.OrderID),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}

func confirmation(from, to string, r domain.Receipt) *mail.SGMailV3 {
	subject := fmt.Sprintf("Order #%d confirmed", r.OrderID)

	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order #%d.\n\n", r.OrderID)
	for _, l := range r.Quote.Lines {
		fmt.Fprintf(&b, "%d x %s @ %s = %s\n", l.Quantity, l.ListingName, l.UnitPrice.StringFixed(2), l.Total().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nItems: %s\n", r.Quote.ItemsTotal.StringFixed(2))
	fmt.Fprintf(&b, "Shipping: %s\n", r.Quote.ShippingCost.StringFixed(2))
	fmt.Fprintf(&b, "Total: %s\n", r.Quote.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Payment: %s\n", r.PaymentMethod)
	fmt.Fprintf(&b, "Ship to: %s\n", r.Address)
	body := b.String()

	return mail.NewSingleEmail(
		mail.NewEmail("Marketplace", from),
		subject,
		mail.NewEmail("", to),
		body,
		"<pre>"+html.EscapeString(body)+"</pre>",
	)
}
