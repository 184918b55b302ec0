package utils

import (
	"finlit/config"
	"fmt"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends one transactional email through SendGrid
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendgridAPIKey == "" {
		log.Println("[EMAIL] SENDGRID_API_KEY not set, skipping email to", toEmail)
		return nil
	}

	from := mail.NewEmail("FinLit", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected email to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid rejected email, code: %d", response.StatusCode)
	}

	log.Println("[EMAIL] Email sent successfully to", toEmail)
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
			<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
				<h2 style="color: #333333; text-align: center;">%s</h2>
				%s
				<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">FinLit, financial literacy for your new home.</p>
			</div>
		</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a user after signup
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Welcome to FinLit! Your learning journey starts now. Pick a path and take the first lesson.</p>`, name)
	if err := SendEmail(email, name, "Welcome to FinLit", emailTemplate("Welcome!", body)); err != nil {
		log.Printf("[EMAIL] Failed to send welcome email: %v", err)
	}
}

// SendPaymentReceiptEmail confirms a completed checkout
func SendPaymentReceiptEmail(email, name string, amountCents int64) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>We received your payment of $%.2f. Premium content is now unlocked on your account.</p>`, name, float64(amountCents)/100)
	if err := SendEmail(email, name, "Your FinLit payment receipt", emailTemplate("Payment received", body)); err != nil {
		log.Printf("[EMAIL] Failed to send receipt email: %v", err)
	}
}

// SendPremiumExpiryReminder warns a user before premium access lapses
func SendPremiumExpiryReminder(email, name string, expiresAt *time.Time) {
	when := "soon"
	if expiresAt != nil {
		when = expiresAt.Format("January 2, 2006")
	}
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your premium access expires on %s. Renew to keep your full journey library.</p>`, name, when)
	if err := SendEmail(email, name, "Your FinLit premium access is expiring", emailTemplate("Premium expiring", body)); err != nil {
		log.Printf("[EMAIL] Failed to send expiry reminder: %v", err)
	}
}

// SendPremiumExpiredEmail notifies a user after premium access ends
func SendPremiumExpiredEmail(email, name string) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Your premium access has ended. Free lessons stay available, and you can resubscribe any time.</p>`, name)
	if err := SendEmail(email, name, "Your FinLit premium access has ended", emailTemplate("Premium ended", body)); err != nil {
		log.Printf("[EMAIL] Failed to send expiry email: %v", err)
	}
}
