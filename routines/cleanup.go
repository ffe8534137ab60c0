package routines

import (
	"context"
	"log"
	"time"

	"github.com/CorrelAid/student_payment_form/inits"
	"github.com/CorrelAid/student_payment_form/models"
	"github.com/CorrelAid/student_payment_form/monitoring"
	"github.com/hashicorp/go-memdb"
)

const DefaultCleanupInterval = 24 * time.Hour

// StartCleanupRoutine removes expired student records now and then every
// interval until ctx is done. A non-positive interval uses DefaultCleanupInterval.
func StartCleanupRoutine(ctx context.Context, db *memdb.MemDB, interval time.Duration) {
	if interval <= 0 {
		log.Printf("Bad cleanup interval, using default: interval=%s default=%s", interval, DefaultCleanupInterval)
		interval = DefaultCleanupInterval
	}
	cleanupRoutine(db)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupRoutine(db)
		}
	}
}

func cleanupRoutine(db *memdb.MemDB) {
	removed, remaining, err := CleanupExpired(db, time.Now())
	if err != nil {
		log.Printf("Cleanup failed: err=%v", err)
		return
	}
	if removed > 0 {
		log.Printf("Cleanup done: removed=%d remaining=%d", removed, remaining)
	}
	monitoring.SetStoredStudents(remaining)
}

// CleanupExpired deletes records whose expiry is before now. Records with an
// unreadable expiry are kept and logged.
func CleanupExpired(db *memdb.MemDB, now time.Time) (removed, remaining int, err error) {
	txn := db.Txn(true)
	defer txn.Abort()

	studentTable, err := txn.Get(inits.StudentTable, "expiry")
	if err != nil {
		return 0, 0, err
	}

	var expired []*models.StudentRecord
	for obj := studentTable.Next(); obj != nil; obj = studentTable.Next() {
		student := obj.(*models.StudentRecord)
		expiryTime, err := time.Parse(time.RFC1123, student.Expiry)
		if err != nil {
			log.Printf("Bad expiry on student: utr=%s expiry=%q", student.UTR, student.Expiry)
			remaining++
			continue
		}
		if expiryTime.Before(now) {
			expired = append(expired, student)
			continue
		}
		remaining++
	}

	for _, student := range expired {
		if err := txn.Delete(inits.StudentTable, student); err != nil {
			return 0, 0, err
		}
		log.Printf("Deleted expired student: utr=%s", student.UTR)
	}

	txn.Commit()
	return len(expired), remaining, nil
}
