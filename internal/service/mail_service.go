package service

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"
	"time"

	"github.com/anayaorganic/shop-backend/internal/model"
	"github.com/jordan-wright/email"
)

// 沒帶deadline時的寄信上限
const defaultMailTimeout = 30 * time.Second

type IMailService interface {
	SendOrderConfirmation(ctx context.Context, to string, order *model.Order) error
}

type MailService struct {
	smtpHost     string
	smtpPort     string
	emailAccount string
	authKey      string
}

func NewMailService(smtpHost, smtpPort, emailAccount, authKey string) *MailService {
	return &MailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		emailAccount: emailAccount,
		authKey:      authKey,
	}
}

const orderConfirmationTemplate = `Your order {{.OrderID}} has been placed successfully.

Order Details:
- Total Amount: PKR {{.TotalAmount}}
- Shipping Address: {{.Address}}, {{.City}} {{.PostalCode}}

Thank you for shopping with us!`

type orderConfirmationData struct {
	OrderID     string
	TotalAmount string
	Address     string
	City        string
	PostalCode  string
}

func (m *MailService) SendOrderConfirmation(ctx context.Context, to string, order *model.Order) error {
	tmpl, err := template.New("order_confirmation").Parse(orderConfirmationTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse mail template: %w", err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, orderConfirmationData{
		OrderID:     order.OrderID,
		TotalAmount: order.TotalAmount.StringFixed(2),
		Address:     order.ShippingAddress.Address,
		City:        order.ShippingAddress.City,
		PostalCode:  order.ShippingAddress.PostalCode,
	})
	if err != nil {
		return fmt.Errorf("failed to render mail template: %w", err)
	}

	e := email.NewEmail()
	e.From = m.emailAccount
	e.To = []string{to}
	e.Subject = "Order Confirmation"
	e.Text = body.Bytes()

	auth := smtp.PlainAuth("", m.emailAccount, m.authKey, m.smtpHost)

	// Email.Send沒有timeout，走Pool.Send才吃得到ctx的deadline
	pool, err := email.NewPool(fmt.Sprintf("%s:%s", m.smtpHost, m.smtpPort), 1, auth)
	if err != nil {
		return fmt.Errorf("failed to create mail pool: %w", err)
	}
	defer pool.Close()

	timeout := defaultMailTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	return pool.Send(e, timeout)
}

var _ IMailService = (*MailService)(nil)
