// Package forms holds the state of one payment form for the lifetime of the
// front end that owns it.
package forms

import (
	"errors"
	"log"
	"strconv"
	"sync"

	"github.com/CorrelAid/student_payment_form/models"
	"github.com/CorrelAid/student_payment_form/validators"
)

var (
	ErrUnknownField       = errors.New("unknown form field")
	ErrSubmissionInFlight = errors.New("submission already in progress")
)

// Phase is the submission lifecycle position of a form.
// A successful submission goes straight from Submitting back to Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is a copy of the form state handed to observers.
type Snapshot struct {
	Record     models.FormRecord
	Succeeded  bool
	Error      string
	Phase      Phase
	UTRMessage string
}

type Observer func(Snapshot)

type subscription struct {
	id       int
	observer Observer
}

type Holder struct {
	mu        sync.Mutex
	record    models.FormRecord
	succeeded bool
	err       string
	phase     Phase

	nextID    int
	observers []subscription
}

func New() *Holder {
	return &Holder{record: models.NewFormRecord()}
}

// Subscribe registers an observer called after every state change. The
// returned function removes it.
func (h *Holder) Subscribe(o Observer) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.observers = append(h.observers, subscription{id: id, observer: o})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.observers {
			if s.id == id {
				h.observers = append(h.observers[:i:i], h.observers[i+1:]...)
				return
			}
		}
	}
}

func (h *Holder) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked()
}

func (h *Holder) Record() models.FormRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.record
}

// UpdateField replaces one field. Invalid values are kept; the UTR message in
// the snapshot reports them.
func (h *Holder) UpdateField(field, value string) error {
	h.mu.Lock()
	if !h.record.Set(field, value) {
		h.mu.Unlock()
		return ErrUnknownField
	}
	h.notifyAndUnlock()
	return nil
}

// ResetAfterSuccess blanks every field except studentId, which advances by one.
func (h *Holder) ResetAfterSuccess() {
	h.mu.Lock()
	next := 1
	if id, err := strconv.Atoi(h.record.StudentID); err == nil {
		next = id + 1
	} else {
		log.Printf("Student id not numeric, restarting at 1: studentId=%q", h.record.StudentID)
	}
	h.record = models.FormRecord{StudentID: strconv.Itoa(next)}
	h.succeeded = true
	h.err = ""
	h.phase = PhaseIdle
	h.notifyAndUnlock()
}

// FailSubmission stores a user-facing error and leaves the record untouched.
func (h *Holder) FailSubmission(message string) {
	h.mu.Lock()
	h.err = message
	h.succeeded = false
	h.phase = PhaseFailed
	h.notifyAndUnlock()
}

// AcknowledgeFeedback dismisses the current notification.
func (h *Holder) AcknowledgeFeedback() {
	h.mu.Lock()
	h.succeeded = false
	h.err = ""
	if h.phase == PhaseFailed {
		h.phase = PhaseIdle
	}
	h.notifyAndUnlock()
}

// BeginSubmit moves the form into Submitting and returns the record to send.
// A failed form may be resubmitted without acknowledging first.
func (h *Holder) BeginSubmit() (models.FormRecord, error) {
	h.mu.Lock()
	if h.phase == PhaseSubmitting {
		h.mu.Unlock()
		return models.FormRecord{}, ErrSubmissionInFlight
	}
	h.phase = PhaseSubmitting
	h.succeeded = false
	h.err = ""
	record := h.record
	h.notifyAndUnlock()
	return record, nil
}

func (h *Holder) snapshotLocked() Snapshot {
	return Snapshot{
		Record:     h.record,
		Succeeded:  h.succeeded,
		Error:      h.err,
		Phase:      h.phase,
		UTRMessage: validators.UTRMessage(h.record.UTR),
	}
}

// notifyAndUnlock must be called with h.mu held. Observers run unlocked so they
// may read the holder again.
func (h *Holder) notifyAndUnlock() {
	snap := h.snapshotLocked()
	observers := make([]Observer, 0, len(h.observers))
	for _, s := range h.observers {
		observers = append(observers, s.observer)
	}
	h.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}
