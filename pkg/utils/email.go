package utils

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "Shereheni Limited"
	baseURL       = os.Getenv("BASE_URL")
)

// Attachment is a file sent along with an email
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #E67E22; margin: 0;">Shereheni</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2025 Shereheni Limited. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	return sendEmailWithAttachments(to, subject, body, nil)
}

func sendEmailWithAttachments(to []string, subject, body string, attachments []Attachment) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	boundary := fmt.Sprintf("shereheni-%d", time.Now().UnixNano())

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["X-Mailer"] = "Shereheni-Mailer"
	if len(attachments) == 0 {
		headers["Content-Type"] = "text/html; charset=UTF-8"
	} else {
		headers["Content-Type"] = fmt.Sprintf("multipart/mixed; boundary=%q", boundary)
	}

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n"

	if len(attachments) == 0 {
		message += body
	} else {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n\r\n"
		message += body + "\r\n"

		for _, att := range attachments {
			contentType := att.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			message += fmt.Sprintf("--%s\r\n", boundary)
			message += fmt.Sprintf("Content-Type: %s; name=%q\r\n", contentType, att.Filename)
			message += "Content-Transfer-Encoding: base64\r\n"
			message += fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n\r\n", att.Filename)

			encoded := base64.StdEncoding.EncodeToString(att.Content)
			// RFC 2045 line length limit
			for len(encoded) > 76 {
				message += encoded[:76] + "\r\n"
				encoded = encoded[76:]
			}
			message += encoded + "\r\n"
		}
		message += fmt.Sprintf("--%s--\r\n", boundary)
	}

	// Authentication
	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	// Send email
	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// SendBookingRequestEmailToProvider tells the listing vendor a new booking
// request is waiting, and when the approval window closes.
func SendBookingRequestEmailToProvider(providerEmail, productName, requesterName string, finalAmount float64, expiresAt time.Time) error {
	subject := "New Booking Request - Shereheni"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Booking Request</h1>
					<p>Hello,</p>
					<p><strong>%s</strong> has requested to book <strong>%s</strong> for KES %.2f.</p>
					<p>Please log in to your Shereheni account to approve or reject this request before <strong>%s</strong>, after which it will expire automatically.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/login" style="background-color: #E67E22; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Login to Shereheni</a>
					</div>
					<p>Best regards,<br>The Shereheni Team</p>
				</div>`+emailFooter,
		requesterName, productName, finalAmount, expiresAt.Format("02 Jan 2006 15:04"), baseURL)

	return sendEmail([]string{providerEmail}, subject, body)
}

// SendBookingRequestConfirmationEmail confirms to the requester that their
// request went out.
func SendBookingRequestConfirmationEmail(requesterEmail, productName string, finalAmount float64) error {
	subject := "Booking Request Sent - Shereheni"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Request Sent</h1>
					<p>Hello,</p>
					<p>Your booking request for <strong>%s</strong> (KES %.2f) has been sent to the vendor.</p>
					<p>You will be notified as soon as the vendor responds. Requests not answered within 3 hours expire automatically.</p>
					<p>Best regards,<br>The Shereheni Team</p>
				</div>`+emailFooter,
		productName, finalAmount)

	return sendEmail([]string{requesterEmail}, subject, body)
}

// SendBookingDecisionEmail tells the requester the vendor's decision.
func SendBookingDecisionEmail(requesterEmail, productName string, approved bool) error {
	if approved {
		subject := "Booking Approved - Shereheni"
		body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Approved</h1>
					<p>Hello,</p>
					<p>Great news! Your booking for <strong>%s</strong> has been approved.</p>
					<p>Please log in and pay the advance amount to confirm your booking.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/bookings" style="background-color: #E67E22; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Pay Advance</a>
					</div>
					<p>Best regards,<br>The Shereheni Team</p>
				</div>`+emailFooter,
			productName, baseURL)
		return sendEmail([]string{requesterEmail}, subject, body)
	}

	subject := "Booking Rejected - Shereheni"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Rejected</h1>
					<p>Hello,</p>
					<p>Unfortunately, your booking request for <strong>%s</strong> was rejected by the vendor.</p>
					<p>Don't worry! You can browse other vendors offering similar services.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/products" style="background-color: #E67E22; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Browse Services</a>
					</div>
					<p>Best regards,<br>The Shereheni Team</p>
				</div>`+emailFooter,
		productName, baseURL)
	return sendEmail([]string{requesterEmail}, subject, body)
}

// SendAdvancePaidEmails notifies both parties that the advance payment
// cleared and the booking is confirmed.
func SendAdvancePaidEmails(providerEmail, requesterEmail, productName string, advanceAmount, remainingAmount float64) error {
	providerSubject := "Advance Payment Received - Shereheni"
	providerBody := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Advance Payment Received</h1>
					<p>Hello,</p>
					<p>The advance of <strong>KES %.2f</strong> for the booking of <strong>%s</strong> has been received. The booking is now confirmed.</p>
					<p>The remaining KES %.2f is due after the event.</p>
					<p>Best regards,<br>The Shereheni Team</p>
				</div>`+emailFooter,
		advanceAmount, productName, remainingAmount)

	if err := sendEmail([]string{providerEmail}, providerSubject, providerBody); err != nil {
		return fmt.Errorf("failed to send email to provider: %v", err)
	}

	requesterSubject := "Booking Confirmed - Shereheni"
	requesterBody := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Confirmed</h1>
					<p>Hello,</p>
					<p>Your advance payment of <strong>KES %.2f</strong> for <strong>%s</strong> has been verified. Your booking is confirmed.</p>
					<p>The remaining balance of KES %.2f is payable once the service has been delivered.</p>
					<p>Best regards,<br>The Shereheni Team</p>
				</div>`+emailFooter,
		advanceAmount, productName, remainingAmount)

	if err := sendEmail([]string{requesterEmail}, requesterSubject, requesterBody); err != nil {
		return fmt.Errorf("failed to send email to requester: %v", err)
	}

	return nil
}

// SendSettlementEmailToProvider sends the provider the settlement notice
// with the invoice attached.
func SendSettlementEmailToProvider(providerEmail, providerName, productName string, totalPaid float64, invoice Attachment) error {
	subject := "Booking Settled - Shereheni"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Settled</h1>
					<p>Hello %s,</p>
					<p>The booking for <strong>%s</strong> has been fully paid and marked complete. Total received: <strong>KES %.2f</strong>.</p>
					<p>The invoice for this booking is attached.</p>
					<p>Best regards,<br>The Shereheni Team</p>
				</div>`+emailFooter,
		providerName, productName, totalPaid)

	return sendEmailWithAttachments([]string{providerEmail}, subject, body, []Attachment{invoice})
}

// SendCompletionEmailToRequester sends the requester the invoice and a
// prompt to review the product.
func SendCompletionEmailToRequester(requesterEmail, requesterName, productName, productPublicID string, invoice Attachment) error {
	subject := "Booking Complete - Shereheni"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Complete</h1>
					<p>Hello %s,</p>
					<p>Your booking for <strong>%s</strong> is complete. Your invoice is attached.</p>
					<p>We would love to hear how it went. Please rate this vendor.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/products/%s/review" style="background-color: #E67E22; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Leave a Review</a>
					</div>
					<p>Best regards,<br>The Shereheni Team</p>
				</div>`+emailFooter,
		requesterName, productName, baseURL, productPublicID)

	return sendEmailWithAttachments([]string{requesterEmail}, subject, body, []Attachment{invoice})
}
