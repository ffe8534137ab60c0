package models

// StudentRecord is a submitted form as kept by the local collaborator.
type StudentRecord struct {
	ID         string
	Form       FormRecord
	UTR        string
	ReceivedAt string
	Expiry     string
}
