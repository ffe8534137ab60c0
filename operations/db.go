package operations

import (
	"errors"
	"log"
	"time"

	"github.com/CorrelAid/student_payment_form/inits"
	"github.com/CorrelAid/student_payment_form/models"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

var (
	ErrDuplicateUTR    = errors.New("duplicate utr")
	ErrStudentNotFound = errors.New("student not found")
)

// InsertStudent stores form unless its UTR is already registered.
func InsertStudent(db *memdb.MemDB, form models.FormRecord, now time.Time, retention time.Duration) (*models.StudentRecord, error) {
	txn := db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(inits.StudentTable, "id", form.UTR)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUTR
	}

	record := &models.StudentRecord{
		ID:         uuid.NewString(),
		Form:       form,
		UTR:        form.UTR,
		ReceivedAt: now.Format(time.RFC1123),
		Expiry:     now.Add(retention).Format(time.RFC1123),
	}
	if err := txn.Insert(inits.StudentTable, record); err != nil {
		return nil, err
	}

	txn.Commit()

	log.Printf("Inserted student: studentId=%s utr=%s", form.StudentID, form.UTR)

	return record, nil
}

func FindStudentByUTR(db *memdb.MemDB, utr string) (*models.StudentRecord, error) {
	txn := db.Txn(false)
	defer txn.Abort()

	obj, err := txn.First(inits.StudentTable, "id", utr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrStudentNotFound
	}
	return obj.(*models.StudentRecord), nil
}

func CountStudents(db *memdb.MemDB) (int, error) {
	txn := db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(inits.StudentTable, "id")
	if err != nil {
		return 0, err
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}
