package validators

import (
	"errors"
	"strings"
	"testing"

	"github.com/CorrelAid/student_payment_form/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() models.FormRecord {
	return models.FormRecord{
		StudentID:    "1",
		Name:         "Alice",
		CourseName:   "CS101",
		Email:        "a@x.com",
		CollegeName:  "XYZ",
		MobileNumber: "9876543210",
		UTR:          "ABC123456789",
	}
}

func TestUTRMessage(t *testing.T) {
	for n := 0; n <= 20; n++ {
		utr := strings.Repeat("A", n)
		if n == UTRLength {
			assert.Empty(t, UTRMessage(utr), "length %d", n)
			continue
		}
		assert.Equal(t, "UTR must be exactly 12 characters", UTRMessage(utr), "length %d", n)
	}
}

func TestUTRMessage_CountsCharacters(t *testing.T) {
	assert.Empty(t, UTRMessage("éééééééééééé"))
	assert.NotEmpty(t, UTRMessage("éééééé"))
}

func TestMobileNumberHint(t *testing.T) {
	assert.Empty(t, MobileNumberHint(""))
	assert.Empty(t, MobileNumberHint("9876543210"))
	assert.Equal(t, MobileNumberMessage, MobileNumberHint("98765"))
	assert.Equal(t, MobileNumberMessage, MobileNumberHint("98765abcde"))
}

func TestFieldMessage(t *testing.T) {
	assert.Equal(t, UTRLengthMessage, FieldMessage(models.FieldUTR, "short"))
	assert.Equal(t, MobileNumberMessage, FieldMessage(models.FieldMobileNumber, "12"))
	assert.Empty(t, FieldMessage(models.FieldName, ""))
}

func TestValidateRecord_Valid(t *testing.T) {
	assert.NoError(t, ValidateRecord(validRecord()))
}

func TestValidateRecord_AdvisoryMobileDoesNotFail(t *testing.T) {
	r := validRecord()
	r.MobileNumber = "123"
	assert.NoError(t, ValidateRecord(r))
}

func TestValidateRecord_Failures(t *testing.T) {
	r := validRecord()
	r.Name = "  "
	r.UTR = "SHORT"

	err := ValidateRecord(r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRecord))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, models.FieldName, verrs[0].Field)
	assert.Equal(t, "Name is required", verrs.First())
	assert.Equal(t, UTRLengthMessage, verrs[1].Message)
}

func TestValidateRecord_EmptyUTRReportedOnce(t *testing.T) {
	r := validRecord()
	r.UTR = ""

	var verrs ValidationErrors
	require.True(t, errors.As(ValidateRecord(r), &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "UTR is required", verrs.First())
}
