package domain

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/random"
)

// DefaultSubject is used when a contact submission carries no subject line.
const DefaultSubject = "Contact Form Submission"

// Message is a contact-form submission, one object-store document each.
type Message struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
	Replied   bool   `json:"replied"`
}

// NewMessageID returns an id of the form msg-<unix-millis>-<random>.
// Historical data also carries submission-<ts>-<rand> ids; those are accepted
// on read but never generated.
func NewMessageID() string {
	return fmt.Sprintf("msg-%d-%s", time.Now().UnixMilli(),
		random.String(7, random.Lowercase+random.Numeric))
}
