package submission

import (
	"context"
	"errors"
	"log"

	"github.com/CorrelAid/student_payment_form/forms"
	"github.com/CorrelAid/student_payment_form/models"
	"github.com/CorrelAid/student_payment_form/monitoring"
	"github.com/CorrelAid/student_payment_form/validators"
)

type Submitter interface {
	Submit(ctx context.Context, record models.FormRecord) error
}

// Coordinator owns the submit action of one form.
type Coordinator struct {
	holder    *forms.Holder
	submitter Submitter
	gate      bool
}

// NewCoordinator wires holder to submitter. With gate set, records failing
// validators.ValidateRecord are not sent.
func NewCoordinator(holder *forms.Holder, submitter Submitter, gate bool) *Coordinator {
	return &Coordinator{holder: holder, submitter: submitter, gate: gate}
}

// Submit sends the current record once and applies the outcome to the form.
// The returned error mirrors what the form now shows; forms.ErrSubmissionInFlight
// means nothing was sent and the form is unchanged.
func (c *Coordinator) Submit(ctx context.Context) error {
	record, err := c.holder.BeginSubmit()
	if err != nil {
		return err
	}

	if c.gate {
		if err := validators.ValidateRecord(record); err != nil {
			var verrs validators.ValidationErrors
			msg := err.Error()
			if errors.As(err, &verrs) {
				msg = verrs.First()
			}
			c.holder.FailSubmission(msg)
			monitoring.TrackSubmission(monitoring.OutcomeRejected)
			return err
		}
	}

	if err := c.submitter.Submit(ctx, record); err != nil {
		msg := FallbackMessage
		var serr *SubmitError
		if errors.As(err, &serr) {
			msg = serr.Message
		}
		log.Printf("Submission failed: studentId=%s err=%v", record.StudentID, err)
		c.holder.FailSubmission(msg)
		monitoring.TrackSubmission(monitoring.OutcomeFailed)
		return err
	}

	log.Printf("Submitted student: studentId=%s utr=%s", record.StudentID, record.UTR)
	c.holder.ResetAfterSuccess()
	monitoring.TrackSubmission(monitoring.OutcomeSucceeded)
	return nil
}
