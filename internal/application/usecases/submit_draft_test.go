package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/traillend-client/internal/domain/inventory"
	"github.com/example/traillend-client/internal/domain/reservation"
)

var manila = time.FixedZone("Asia/Manila", 8*60*60)

type fakeSubmitter struct {
	calls   int
	lastSub reservation.Submission
	receipt reservation.Receipt
	err     error
}

func (f *fakeSubmitter) Submit(ctx context.Context, item inventory.ItemRef, sub reservation.Submission) (reservation.Receipt, error) {
	f.calls++
	f.lastSub = sub
	if f.err != nil {
		return reservation.Receipt{}, f.err
	}
	return f.receipt, nil
}

func completeDraft(t *testing.T) *reservation.Draft {
	t.Helper()
	d := reservation.NewDraft(inventory.ItemRef{ID: 7, Name: "DSLR Camera"}, manila)
	if err := d.SelectDate("2025-07-22"); err != nil {
		t.Fatal(err)
	}
	if err := d.SelectSlot("2:00 PM - 3:30 PM"); err != nil {
		t.Fatal(err)
	}
	if err := d.Complete(true, []byte("sig")); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestSubmitDraftSuccess(t *testing.T) {
	fake := &fakeSubmitter{receipt: reservation.Receipt{TransactionID: "T1", Fee: "₱50.00"}}
	d := completeDraft(t)

	receipt, err := SubmitDraft{Submitter: fake, Token: "jwt"}.Execute(context.Background(), d)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if receipt.TransactionID != "T1" {
		t.Errorf("transaction id = %q", receipt.TransactionID)
	}
	if d.State() != reservation.StateSubmitted {
		t.Errorf("draft state = %s, want submitted", d.State())
	}
	if fake.lastSub.StartDate != "2025-07-22 14:00:00" {
		t.Errorf("wire start = %q", fake.lastSub.StartDate)
	}
}

func TestSubmitDraftWithoutTokenNeverTouchesNetwork(t *testing.T) {
	fake := &fakeSubmitter{}
	d := completeDraft(t)

	_, err := SubmitDraft{Submitter: fake}.Execute(context.Background(), d)
	if !errors.Is(err, reservation.ErrAuthenticationRequired) {
		t.Fatalf("got %v, want ErrAuthenticationRequired", err)
	}
	if fake.calls != 0 {
		t.Errorf("submitter called %d times, want 0", fake.calls)
	}
	if d.State() != reservation.StateComplete {
		t.Errorf("draft state = %s", d.State())
	}
}

func TestSubmitDraftFailureAllowsResubmission(t *testing.T) {
	fake := &fakeSubmitter{err: &reservation.SubmissionError{Status: 502, Message: "upstream down"}}
	d := completeDraft(t)

	_, err := SubmitDraft{Submitter: fake, Token: "jwt"}.Execute(context.Background(), d)
	var subErr *reservation.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("got %v, want SubmissionError", err)
	}
	if subErr.Message != "upstream down" {
		t.Errorf("server message lost: %q", subErr.Message)
	}
	if d.State() != reservation.StateComplete {
		t.Fatalf("failed submission moved draft to %s", d.State())
	}

	// Same draft, second attempt, now succeeding.
	fake.err = nil
	fake.receipt = reservation.Receipt{TransactionID: "T2"}
	receipt, err := SubmitDraft{Submitter: fake, Token: "jwt"}.Execute(context.Background(), d)
	if err != nil {
		t.Fatalf("resubmission: %v", err)
	}
	if receipt.TransactionID != "T2" {
		t.Errorf("transaction id = %q", receipt.TransactionID)
	}
	if d.State() != reservation.StateSubmitted {
		t.Errorf("draft state = %s", d.State())
	}
}

func TestSubmitDraftRequiresCompleteDraft(t *testing.T) {
	fake := &fakeSubmitter{}
	d := reservation.NewDraft(inventory.ItemRef{ID: 7}, manila)

	_, err := SubmitDraft{Submitter: fake, Token: "jwt"}.Execute(context.Background(), d)
	if !errors.Is(err, reservation.ErrIncompleteDraft) {
		t.Fatalf("got %v, want ErrIncompleteDraft", err)
	}
	if fake.calls != 0 {
		t.Errorf("submitter called for incomplete draft")
	}
}
