package reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/traillend-client/internal/domain/inventory"
)

// State tags how far a draft has advanced through the reservation flow.
type State int

const (
	StateEmpty State = iota
	StateDateSelected
	StateWindowSelected
	StateComplete // terms accepted and signature captured
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDateSelected:
		return "date-selected"
	case StateWindowSelected:
		return "window-selected"
	case StateComplete:
		return "complete"
	case StateSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Draft is the in-progress, unsubmitted reservation. One draft exists per
// flow session and is mutated only by that session's sequential steps, so
// it carries no lock. It is discarded after submission or abandonment,
// never persisted.
type Draft struct {
	ID   string
	Item inventory.ItemRef

	loc *time.Location

	date          string // YYYY-MM-DD, set once a day is picked
	slotLabel     string
	window        Window
	termsAccepted bool
	signature     []byte

	state State
}

// NewDraft opens a fresh draft for an item. loc is the zone the composer
// will build windows in; nil means device-local.
func NewDraft(item inventory.ItemRef, loc *time.Location) *Draft {
	return &Draft{ID: uuid.NewString(), Item: item, loc: loc}
}

func (d *Draft) State() State   { return d.state }
func (d *Draft) Date() string   { return d.date }
func (d *Draft) Window() Window { return d.window }
func (d *Draft) Slot() string   { return d.slotLabel }

// SelectDate records the picked calendar day. Picking a day always clears a
// previously chosen slot: slots are date-relative in the flow even though
// the catalog itself is date-independent.
func (d *Draft) SelectDate(isoDate string) error {
	if d.state == StateSubmitted {
		return fmt.Errorf("%w: draft already submitted", ErrIncompleteDraft)
	}
	if _, err := time.Parse(isoDateLayout, isoDate); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, isoDate)
	}
	d.date = isoDate
	d.slotLabel = ""
	d.window = Window{}
	d.termsAccepted = false
	d.signature = nil
	d.state = StateDateSelected
	return nil
}

// SelectSlot composes the reservation window from the picked date and slot.
// On composer failure the draft stays date-selected and the error surfaces
// to the caller.
func (d *Draft) SelectSlot(slotLabel string) error {
	if d.state != StateDateSelected && d.state != StateWindowSelected {
		return fmt.Errorf("%w: pick a date first", ErrIncompleteDraft)
	}
	w, err := ComposeWindow(d.date, slotLabel, d.loc)
	if err != nil {
		return err
	}
	d.slotLabel = slotLabel
	d.window = w
	d.state = StateWindowSelected
	return nil
}

// Complete records terms acceptance and the captured signature. Both are
// required; the draft stays window-selected until both are present.
func (d *Draft) Complete(termsAccepted bool, signature []byte) error {
	if d.state != StateWindowSelected && d.state != StateComplete {
		return fmt.Errorf("%w: no reservation window selected", ErrIncompleteDraft)
	}
	if !termsAccepted {
		return fmt.Errorf("%w: terms not accepted", ErrIncompleteDraft)
	}
	if len(signature) == 0 {
		return fmt.Errorf("%w: signature missing", ErrIncompleteDraft)
	}
	d.termsAccepted = true
	d.signature = signature
	d.state = StateComplete
	return nil
}

// Submission serializes a complete draft into the reservation endpoint's
// body shape. Datetimes use the wire format, not the display format.
func (d *Draft) Submission() (Submission, error) {
	if d.state != StateComplete {
		return Submission{}, fmt.Errorf("%w: draft is %s", ErrIncompleteDraft, d.state)
	}
	return Submission{
		ItemID:    d.Item.ID,
		StartDate: FormatWire(d.window.Start),
		EndDate:   FormatWire(d.window.End),
		Signature: string(d.signature),
	}, nil
}

// MarkSubmitted advances the draft after a successful backend call. A failed
// submission leaves the draft complete so the same draft can be resubmitted;
// idempotency is the backend's concern.
func (d *Draft) MarkSubmitted() error {
	if d.state != StateComplete {
		return fmt.Errorf("%w: draft is %s", ErrIncompleteDraft, d.state)
	}
	d.state = StateSubmitted
	return nil
}

// Submission is the wire body of POST /reserve/.
type Submission struct {
	ItemID    int64  `json:"item_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Signature string `json:"signature"`
}
