package email

import (
	"fmt"
	"log"
	"net/mail"
	"net/smtp"
	"os"
	"strconv"
	"strings"
)

// SendMagicLink mails a sign-in link to the given address. When SMTP_HOST is
// unset the link is logged instead, so local development works without a mail
// server.
func SendMagicLink(to, token, playerName string) error {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	magicLink := fmt.Sprintf("%s/#/verify?token=%s", appURL, token)

	expiryMinutes, err := strconv.Atoi(os.Getenv("MAGIC_LINK_EXPIRY_MINUTES"))
	if err != nil || expiryMinutes <= 0 {
		expiryMinutes = 15
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logMagicLink(to, playerName, magicLink, expiryMinutes)
		return nil
	}

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "Cocktails & Cards <noreply@example.com>"
	}
	// The SMTP envelope needs the bare address, the header keeps the name
	envelopeFrom := from
	if parsed, err := mail.ParseAddress(from); err == nil {
		envelopeFrom = parsed.Address
	}

	greeting := "Hello!"
	if playerName != "" {
		greeting = fmt.Sprintf("Hello %s!", playerName)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString("Subject: Sign in to Cocktails & Cards\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf(`%s

Click this link to sign in to Cocktails & Cards:
%s

This link expires in %d minutes and can only be used once.

If you didn't request this email, you can safely ignore it.
`, greeting, magicLink, expiryMinutes))

	auth := smtp.PlainAuth("", os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"), host)
	addr := host + ":" + port

	if err := smtp.SendMail(addr, auth, envelopeFrom, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send magic link email: %w", err)
	}
	return nil
}

func logMagicLink(to, playerName, magicLink string, expiryMinutes int) {
	if playerName == "" {
		playerName = "New user"
	}
	log.Println("========================================")
	log.Println("MAGIC LINK EMAIL (SMTP not configured)")
	log.Printf("To: %s", to)
	log.Printf("Player: %s", playerName)
	log.Printf("Link: %s", magicLink)
	log.Printf("Expires in: %d minutes", expiryMinutes)
	log.Println("========================================")
}
