package domain

import (
	"context"
	"time"
)

// TicketEmailData is the data needed to send a registration confirmation.
type TicketEmailData struct {
	Email      string
	FullName   string
	EventName  string
	TicketCode string
	StartTime  time.Time
}

// Mailer sends transactional email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendTicketConfirmation(ctx context.Context, data *TicketEmailData) error
}
