package models

// Field names double as the JSON keys the collaborator expects.
const (
	FieldStudentID    = "studentId"
	FieldName         = "name"
	FieldCourseName   = "courseName"
	FieldEmail        = "email"
	FieldCollegeName  = "collegename"
	FieldMobileNumber = "mobilenumber"
	FieldUTR          = "utr"
)

// Fields lists every form field in display order.
var Fields = []string{
	FieldStudentID,
	FieldName,
	FieldCourseName,
	FieldEmail,
	FieldCollegeName,
	FieldMobileNumber,
	FieldUTR,
}

// FormRecord is the single record a payment form edits and submits.
type FormRecord struct {
	StudentID    string `json:"studentId"`
	Name         string `json:"name"`
	CourseName   string `json:"courseName"`
	Email        string `json:"email"`
	CollegeName  string `json:"collegename"`
	MobileNumber string `json:"mobilenumber"`
	UTR          string `json:"utr"`
}

func NewFormRecord() FormRecord {
	return FormRecord{StudentID: "1"}
}

// Get returns the value of the named field and whether the name is known.
func (r *FormRecord) Get(field string) (string, bool) {
	p := r.ref(field)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set replaces the named field. It reports false for unknown names.
func (r *FormRecord) Set(field, value string) bool {
	p := r.ref(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (r *FormRecord) ref(field string) *string {
	switch field {
	case FieldStudentID:
		return &r.StudentID
	case FieldName:
		return &r.Name
	case FieldCourseName:
		return &r.CourseName
	case FieldEmail:
		return &r.Email
	case FieldCollegeName:
		return &r.CollegeName
	case FieldMobileNumber:
		return &r.MobileNumber
	case FieldUTR:
		return &r.UTR
	}
	return nil
}

// Message is the body shape the collaborator uses for errors and acks.
type Message struct {
	Message string `json:"message"`
}
