package validators

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/CorrelAid/student_payment_form/models"
)

const (
	UTRLength = 12

	UTRLengthMessage    = "UTR must be exactly 12 characters"
	MobileNumberMessage = "Mobile number must be 10 digits"
)

var (
	ErrInvalidRecord = errors.New("invalid form record")

	mobileNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// requiredFields are checked for presence only. studentId is owned by the form.
var requiredFields = []struct {
	field string
	label string
}{
	{models.FieldName, "Name"},
	{models.FieldCourseName, "Course Name"},
	{models.FieldEmail, "Email"},
	{models.FieldCollegeName, "College Name"},
	{models.FieldMobileNumber, "Mobile Number"},
	{models.FieldUTR, "UTR"},
}

// UTRMessage returns the inline message for a UTR value, or "" when it is valid.
func UTRMessage(utr string) string {
	if utf8.RuneCountInString(utr) == UTRLength {
		return ""
	}
	return UTRLengthMessage
}

func ValidUTR(utr string) bool {
	return UTRMessage(utr) == ""
}

// MobileNumberHint is advisory: an empty value gets no hint, it is caught by
// the required check instead.
func MobileNumberHint(mobile string) string {
	if mobile == "" || mobileNumberPattern.MatchString(mobile) {
		return ""
	}
	return MobileNumberMessage
}

// FieldMessage returns the inline message shown under a field after an edit.
func FieldMessage(field, value string) string {
	switch field {
	case models.FieldUTR:
		return UTRMessage(value)
	case models.FieldMobileNumber:
		return MobileNumberHint(value)
	}
	return ""
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidRecord
}

// First returns the message of the first failure.
func (v ValidationErrors) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Message
}

// ValidateRecord runs the pre-submit pass: required presence for every field
// and the UTR length. The mobile number pattern stays advisory.
func ValidateRecord(record models.FormRecord) error {
	var errs ValidationErrors
	for _, rf := range requiredFields {
		value, _ := record.Get(rf.field)
		if strings.TrimSpace(value) == "" {
			errs = append(errs, FieldError{Field: rf.field, Message: rf.label + " is required"})
		}
	}
	if record.UTR != "" {
		if msg := UTRMessage(record.UTR); msg != "" {
			errs = append(errs, FieldError{Field: models.FieldUTR, Message: msg})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
