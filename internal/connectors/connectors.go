package connectors

import "scorelink/internal"

// MailConnector fetches scorecard export messages from the data
// provider's delivery mailbox.
type MailConnector interface {
	FetchInbox(label string, max int) ([]internal.FetchedMailMessage, error)
}
