package usecases

import (
	"context"
	"fmt"

	"github.com/example/traillend-client/internal/domain/reservation"
)

// SubmitDraft sends a completed reservation draft to the backend and turns
// the echoed record into a receipt.
type SubmitDraft struct {
	Submitter reservation.Submitter
	// Token is the cached bearer credential. Its presence is checked here,
	// before any network I/O; issuing and refreshing tokens is not this
	// client's job.
	Token string
}

func (u SubmitDraft) Execute(ctx context.Context, d *reservation.Draft) (reservation.Receipt, error) {
	if u.Submitter == nil {
		return reservation.Receipt{}, fmt.Errorf("submitter is nil")
	}
	if d == nil {
		return reservation.Receipt{}, fmt.Errorf("draft is nil")
	}

	sub, err := d.Submission()
	if err != nil {
		return reservation.Receipt{}, err
	}
	if u.Token == "" {
		return reservation.Receipt{}, reservation.ErrAuthenticationRequired
	}

	receipt, err := u.Submitter.Submit(ctx, d.Item, sub)
	if err != nil {
		// The draft stays complete; the user may retry the same draft.
		return reservation.Receipt{}, err
	}
	if err := d.MarkSubmitted(); err != nil {
		return reservation.Receipt{}, err
	}
	return receipt, nil
}
