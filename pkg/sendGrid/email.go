package sendGrid

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService mails customers about their orders.
type EmailService interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
	OrderStatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// OrderPlaced sends the order confirmation.
func (e *emailService) OrderPlaced(ctx context.Context, order *models.Order) error {
	subject := fmt.Sprintf("Your order %s has been received", shortID(order))
	text, htmlBody := confirmationBody(order)

	return e.send(ctx, plainCustomer(order.Customer), subject, text, htmlBody)
}

// OrderStatusChanged only mails the customer when the order is completed.
func (e *emailService) OrderStatusChanged(ctx context.Context, order *models.Order, _ models.OrderStatus) error {
	if order.Status != models.OrderStatusCompleted {
		return nil
	}

	subject := fmt.Sprintf("Your order %s is ready", shortID(order))
	customer := plainCustomer(order.Customer)
	text := fmt.Sprintf("Hi %s,\n\nyour order %s is ready.\n", customer.Name, shortID(order))
	htmlBody := fmt.Sprintf("<p>Hi %s,</p><p>your order <strong>%s</strong> is ready.</p>",
		template.HTMLEscapeString(customer.Name), shortID(order))

	return e.send(ctx, customer, subject, text, htmlBody)
}

func (e *emailService) send(ctx context.Context, customer models.CustomerInfo, subject, text, htmlBody string) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(customer.Name, customer.Email)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", text))
	message.AddContent(mail.NewContent("text/html", htmlBody))

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

// GetSendGridClient provides access to the internal sendgrid.Client.
func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}

func shortID(order *models.Order) string {
	return strings.ToUpper(order.ID.String()[:8])
}

// plainCustomer decodes the entity-escaped text orders are stored with, so
// each body applies its own escaping exactly once.
func plainCustomer(c models.CustomerInfo) models.CustomerInfo {
	c.Name = html.UnescapeString(c.Name)
	c.Address = html.UnescapeString(c.Address)
	c.City = html.UnescapeString(c.City)
	c.ZipCode = html.UnescapeString(c.ZipCode)
	return c
}

func confirmationBody(order *models.Order) (string, string) {
	var text, htmlBody strings.Builder
	customer := plainCustomer(order.Customer)

	fmt.Fprintf(&text, "Hi %s,\n\nthanks for your order %s.\n\n", customer.Name, shortID(order))
	fmt.Fprintf(&htmlBody, "<p>Hi %s,</p><p>thanks for your order <strong>%s</strong>.</p><ul>",
		template.HTMLEscapeString(customer.Name), shortID(order))

	for _, item := range order.Items {
		line := lineLabel(item)
		fmt.Fprintf(&text, "%d x %s  $%s\n", item.Quantity, line, item.LineTotal().StringFixed(2))
		fmt.Fprintf(&htmlBody, "<li>%d &times; %s <span>$%s</span></li>",
			item.Quantity, template.HTMLEscapeString(line), item.LineTotal().StringFixed(2))
	}

	fmt.Fprintf(&text, "\nTotal: $%s\nDelivering to: %s, %s %s\n",
		order.Total.StringFixed(2), customer.Address, customer.City, customer.ZipCode)
	fmt.Fprintf(&htmlBody, "</ul><p>Total: <strong>$%s</strong></p><p>Delivering to: %s, %s %s</p>",
		order.Total.StringFixed(2),
		template.HTMLEscapeString(customer.Address),
		template.HTMLEscapeString(customer.City),
		template.HTMLEscapeString(customer.ZipCode))

	return text.String(), htmlBody.String()
}

func lineLabel(item models.CartItem) string {
	label := item.Name
	if item.Size != "" {
		label = item.Size + " " + label
	}

	var extras []string
	for _, t := range item.Toppings {
		switch {
		case t.Added:
			extras = append(extras, "+"+t.Name)
		case t.Removed:
			extras = append(extras, "no "+t.Name)
		}
	}

	if len(extras) > 0 {
		label += " (" + strings.Join(extras, ", ") + ")"
	}

	return label
}
