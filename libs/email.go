package libs

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"fashion-store/models"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(host string, port int, user, pass, from string) (*EmailService, error) {
	if host == "" || user == "" || pass == "" {
		return nil, errors.New("SMTP configuration missing")
	}
	if from == "" {
		from = user
	}
	return &EmailService{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}, nil
}

func (s *EmailService) SendOrderConfirmation(order *models.Order) error {
	if order.CustomerEmail == "" {
		return errors.New("order has no customer email")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", order.CustomerEmail)
	m.SetHeader("Subject", confirmationSubject(order))
	m.SetBody("text/html", confirmationBody(order))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func confirmationSubject(order *models.Order) string {
	if order.Locale == "en" {
		return fmt.Sprintf("Order confirmation #%d", order.ID)
	}
	return fmt.Sprintf("تأكيد الطلب رقم %d", order.ID)
}

func confirmationBody(order *models.Order) string {
	name := html.EscapeString(order.CustomerName)
	amount := fmt.Sprintf("%.2f %s", order.AmountTotal, strings.ToUpper(order.Currency))

	if order.Locale == "en" {
		return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en" dir="ltr">
<body style="font-family: Arial, sans-serif;">
    <h2>Thank you for your order%s!</h2>
    <p><strong>Order number:</strong> %d</p>
    <p><strong>Total paid:</strong> %s</p>
    <p>We will email you again with tracking details once your order ships.</p>
</body>
</html>`, greetingSuffix(name, ", "), order.ID, amount)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<body style="font-family: Tahoma, Arial, sans-serif;">
    <h2>شكراً لطلبك%s!</h2>
    <p><strong>رقم الطلب:</strong> %d</p>
    <p><strong>المبلغ المدفوع:</strong> %s</p>
    <p>سنرسل لك رسالة أخرى تتضمن تفاصيل التتبع عند شحن طلبك.</p>
</body>
</html>`, greetingSuffix(name, "، "), order.ID, amount)
}

func greetingSuffix(name, sep string) string {
	if name == "" {
		return ""
	}
	return sep + name
}
