package routines

import (
	"context"
	"testing"
	"time"

	"github.com/CorrelAid/student_payment_form/inits"
	"github.com/CorrelAid/student_payment_form/models"
	"github.com/CorrelAid/student_payment_form/operations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpired(t *testing.T) {
	db, err := inits.NewDB()
	require.NoError(t, err)

	now := time.Now()
	_, err = operations.InsertStudent(db, models.FormRecord{UTR: "OLD000000001"}, now.Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = operations.InsertStudent(db, models.FormRecord{UTR: "NEW000000001"}, now, time.Hour)
	require.NoError(t, err)

	removed, remaining, err := CleanupExpired(db, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, remaining)

	_, err = operations.FindStudentByUTR(db, "OLD000000001")
	assert.ErrorIs(t, err, operations.ErrStudentNotFound)
	_, err = operations.FindStudentByUTR(db, "NEW000000001")
	assert.NoError(t, err)
}

func TestCleanupExpired_KeepsUnparseable(t *testing.T) {
	db, err := inits.NewDB()
	require.NoError(t, err)

	txn := db.Txn(true)
	require.NoError(t, txn.Insert(inits.StudentTable, &models.StudentRecord{ID: "x", UTR: "BAD000000001", ReceivedAt: "t", Expiry: "someday"}))
	txn.Commit()

	removed, remaining, err := CleanupExpired(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, remaining)
}

func TestStartCleanupRoutine_StopsOnCancel(t *testing.T) {
	db, err := inits.NewDB()
	require.NoError(t, err)
	_, err = operations.InsertStudent(db, models.FormRecord{UTR: "OLD000000001"}, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		StartCleanupRoutine(ctx, db, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		n, err := operations.CountStudents(db)
		return err == nil && n == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup routine did not stop")
	}
}

func TestStartCleanupRoutine_NonPositiveInterval(t *testing.T) {
	db, err := inits.NewDB()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		StartCleanupRoutine(ctx, db, 0)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup routine did not stop")
	}
}
