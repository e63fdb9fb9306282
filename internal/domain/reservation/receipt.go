package reservation

import (
	"context"

	"github.com/example/traillend-client/internal/domain/inventory"
)

// Receipt is the server-confirmed record of a created reservation. It is
// read-only once built; the renderer and archive only consume it.
type Receipt struct {
	TransactionID string
	Item          inventory.ItemRef
	Window        Window
	Fee           string
}

// QRPayload is the content of the receipt's scannable code: the transaction
// id as a string.
func (r Receipt) QRPayload() string { return r.TransactionID }

// Submitter sends a completed submission to the backend. The one
// implementation talks HTTP; tests substitute fakes.
type Submitter interface {
	Submit(ctx context.Context, item inventory.ItemRef, sub Submission) (Receipt, error)
}
