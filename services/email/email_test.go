package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendMagicLinkWithoutSMTP(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("APP_URL", "http://localhost:8080")

	// Without SMTP configured the link is logged, never an error
	err := SendMagicLink("someone@example.com", "token123", "Dave")
	assert.NoError(t, err)

	err = SendMagicLink("new@example.com", "token456", "")
	assert.NoError(t, err)
}
