package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCostAlert(toEmail, kind, model string, amount, threshold float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendCostAlert(toEmail, kind, model string, amount, threshold float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("LLM spend alert: %s threshold crossed", kind))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Spend threshold crossed</h2>
			<p>The <b>%s</b> spend threshold was crossed by model <b>%s</b>.</p>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px;">Amount</td><td style="padding: 4px 12px;">$%.4f</td></tr>
				<tr><td style="padding: 4px 12px;">Threshold</td><td style="padding: 4px 12px;">$%.2f</td></tr>
			</table>
			<p>Generation keeps running unless the emergency stop is engaged from the admin surface.</p>
		</div>
	`, kind, model, amount, threshold)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send cost alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Cost alert sent to %s\n", toEmail)
	return nil
}
