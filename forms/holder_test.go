package forms

import (
	"strconv"
	"testing"

	"github.com/CorrelAid/student_payment_form/models"
	"github.com/CorrelAid/student_payment_form/validators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, h *Holder) {
	t.Helper()
	values := map[string]string{
		models.FieldName:         "Alice",
		models.FieldCourseName:   "CS101",
		models.FieldEmail:        "a@x.com",
		models.FieldCollegeName:  "XYZ",
		models.FieldMobileNumber: "9876543210",
		models.FieldUTR:          "ABC123456789",
	}
	for field, value := range values {
		require.NoError(t, h.UpdateField(field, value))
	}
}

func TestNew_Defaults(t *testing.T) {
	snap := New().Snapshot()
	assert.Equal(t, models.FormRecord{StudentID: "1"}, snap.Record)
	assert.False(t, snap.Succeeded)
	assert.Empty(t, snap.Error)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, validators.UTRLengthMessage, snap.UTRMessage)
}

func TestUpdateField_OnlyTouchesNamedField(t *testing.T) {
	h := New()
	fill(t, h)
	before := h.Record()

	require.NoError(t, h.UpdateField(models.FieldEmail, "b@y.org"))

	after := h.Record()
	assert.Equal(t, "b@y.org", after.Email)
	after.Email = before.Email
	assert.Equal(t, before, after)
}

func TestUpdateField_Unknown(t *testing.T) {
	h := New()
	assert.ErrorIs(t, h.UpdateField("nickname", "x"), ErrUnknownField)
	assert.Equal(t, models.NewFormRecord(), h.Record())
}

func TestUpdateField_KeepsInvalidUTR(t *testing.T) {
	h := New()
	require.NoError(t, h.UpdateField(models.FieldUTR, "ABC"))

	snap := h.Snapshot()
	assert.Equal(t, "ABC", snap.Record.UTR)
	assert.Equal(t, "UTR must be exactly 12 characters", snap.UTRMessage)

	require.NoError(t, h.UpdateField(models.FieldUTR, "ABC123456789"))
	assert.Empty(t, h.Snapshot().UTRMessage)
}

func TestResetAfterSuccess(t *testing.T) {
	h := New()
	for i := 1; i <= 5; i++ {
		fill(t, h)
		h.ResetAfterSuccess()

		snap := h.Snapshot()
		assert.True(t, snap.Succeeded)
		assert.Equal(t, PhaseIdle, snap.Phase)
		assert.Equal(t, models.FormRecord{StudentID: strconv.Itoa(i + 1)}, snap.Record)
	}
}

func TestResetAfterSuccess_NonNumericID(t *testing.T) {
	h := New()
	require.NoError(t, h.UpdateField(models.FieldStudentID, "abc"))
	h.ResetAfterSuccess()
	assert.Equal(t, "1", h.Record().StudentID)
}

func TestFailSubmission_KeepsRecord(t *testing.T) {
	h := New()
	fill(t, h)
	before := h.Record()

	_, err := h.BeginSubmit()
	require.NoError(t, err)
	h.FailSubmission("duplicate utr")

	snap := h.Snapshot()
	assert.Equal(t, before, snap.Record)
	assert.Equal(t, "duplicate utr", snap.Error)
	assert.Equal(t, PhaseFailed, snap.Phase)
}

func TestAcknowledgeFeedback(t *testing.T) {
	h := New()
	h.FailSubmission("boom")
	h.AcknowledgeFeedback()

	snap := h.Snapshot()
	assert.Empty(t, snap.Error)
	assert.False(t, snap.Succeeded)
	assert.Equal(t, PhaseIdle, snap.Phase)

	h.ResetAfterSuccess()
	h.AcknowledgeFeedback()
	assert.False(t, h.Snapshot().Succeeded)
}

func TestBeginSubmit_RejectsWhileInFlight(t *testing.T) {
	h := New()
	fill(t, h)

	record, err := h.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "Alice", record.Name)
	assert.Equal(t, PhaseSubmitting, h.Snapshot().Phase)

	_, err = h.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	h.FailSubmission("boom")
	_, err = h.BeginSubmit()
	assert.NoError(t, err)
	assert.Empty(t, h.Snapshot().Error)
}

func TestSubscribe(t *testing.T) {
	h := New()
	var seen []Snapshot
	cancel := h.Subscribe(func(s Snapshot) {
		seen = append(seen, s)
		// observers run unlocked
		_ = h.Record()
	})

	require.NoError(t, h.UpdateField(models.FieldName, "Alice"))
	h.FailSubmission("boom")
	require.Len(t, seen, 2)
	assert.Equal(t, "Alice", seen[0].Record.Name)
	assert.Equal(t, "boom", seen[1].Error)

	cancel()
	h.AcknowledgeFeedback()
	assert.Len(t, seen, 2)
}

func TestSubscribe_CancelKeepsOthers(t *testing.T) {
	h := New()
	var a, b int
	cancelA := h.Subscribe(func(Snapshot) { a++ })
	h.Subscribe(func(Snapshot) { b++ })

	cancelA()
	h.AcknowledgeFeedback()
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "submitting", PhaseSubmitting.String())
	assert.Equal(t, "failed", PhaseFailed.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
