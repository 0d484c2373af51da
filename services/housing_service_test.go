package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"sykli-college-api/models"
)

func TestHasBlockingApplication(t *testing.T) {
	tests := []struct {
		name     string
		existing []models.HousingApplication
		want     bool
	}{
		{"no prior applications", nil, false},
		{"pending blocks", []models.HousingApplication{{Status: models.HousingPending}}, true},
		{"approved blocks", []models.HousingApplication{{Status: models.HousingApproved}}, true},
		{"rejected does not block", []models.HousingApplication{{Status: models.HousingRejected}}, false},
		{
			"rejected plus pending still blocks",
			[]models.HousingApplication{{Status: models.HousingRejected}, {Status: models.HousingPending}},
			true,
		},
		{
			"several rejections allow re-application",
			[]models.HousingApplication{{Status: models.HousingRejected}, {Status: models.HousingRejected}},
			false,
		},
	}

	for _, tt := range tests {
		if got := HasBlockingApplication(tt.existing); got != tt.want {
			t.Errorf("%s: HasBlockingApplication() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSubmitRequiresActiveEnrollment(t *testing.T) {
	for _, status := range []string{models.EnrollmentOnLeave, models.EnrollmentGraduated, models.EnrollmentWithdrawn, ""} {
		student := models.Student{StudentID: 1, EnrollmentStatus: status}
		_, err := SubmitHousingApplication(nil, &student, HousingApplicationInput{SemesterID: 1})
		if err != ErrStudentNotActive {
			t.Errorf("enrollment %q: err = %v, want ErrStudentNotActive", status, err)
		}
	}
}

func TestAllocateRequiresApprovedApplication(t *testing.T) {
	for _, status := range []string{models.HousingPending, models.HousingRejected} {
		app := models.HousingApplication{HousingApplicationID: 1, Status: status}
		_, err := AllocateRoom(nil, &app, 101, 1)
		if err != ErrApplicationNotApproved {
			t.Errorf("status %q: err = %v, want ErrApplicationNotApproved", status, err)
		}
	}
}

func activeStudent() *models.Student {
	return &models.Student{StudentID: 7, UserID: 3, EnrollmentStatus: models.EnrollmentActive, YearOfStudy: 2}
}

func TestSubmitLocksExistingApplicationsCheck(t *testing.T) {
	// The existence check must lock the rows it examined (FOR UPDATE);
	// a snapshot read would let two concurrent submissions both pass the
	// duplicate guard and commit.
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .housing_applications. WHERE student_id = \? AND semester_id = \? FOR UPDATE`),
			args:    []driver.Value{int64(7), int64(1)},
			columns: []string{"housing_application_id", "status"},
			rows:    [][]driver.Value{},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .housing_applications.`),
			result:  scriptedResult{lastInsertID: 41, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .housing_audit_logs.`),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	application, err := SubmitHousingApplication(gormDB, activeStudent(), HousingApplicationInput{SemesterID: 1})
	if err != nil {
		t.Fatalf("SubmitHousingApplication: %v", err)
	}
	if application.HousingApplicationID != 41 {
		t.Errorf("HousingApplicationID = %d, want 41", application.HousingApplicationID)
	}
	if application.Status != models.HousingPending {
		t.Errorf("Status = %q, want %q", application.Status, models.HousingPending)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestSubmitStopsAtExistingPendingApplication(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .housing_applications. WHERE student_id = \? AND semester_id = \? FOR UPDATE`),
			columns: []string{"housing_application_id", "status"},
			rows:    [][]driver.Value{{int64(12), models.HousingPending}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := SubmitHousingApplication(gormDB, activeStudent(), HousingApplicationInput{SemesterID: 1})
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("err = %v, want ErrDuplicateApplication", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestProcessDepositApprovesApplication(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .housing_deposits. WHERE housing_application_id = \? AND status = \?`),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .housing_deposits.`),
			result:  scriptedResult{lastInsertID: 11, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE .housing_applications. SET .* WHERE housing_application_id = \? AND status = \?`),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .housing_audit_logs.`),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	deposit, err := ProcessDeposit(gormDB, 5, 3, 250)
	if err != nil {
		t.Fatalf("ProcessDeposit: %v", err)
	}
	if deposit.Status != models.DepositPaid {
		t.Errorf("deposit status = %q, want %q", deposit.Status, models.DepositPaid)
	}
	if deposit.TransactionID == "" {
		t.Error("deposit transaction id is empty")
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestProcessDepositRejectsSecondAttempt(t *testing.T) {
	// A PAID deposit already exists: the guard fires before any write.
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .housing_deposits. WHERE housing_application_id = \? AND status = \?`),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := ProcessDeposit(gormDB, 5, 3, 250)
	if !errors.Is(err, ErrDepositAlreadyPaid) {
		t.Fatalf("err = %v, want ErrDepositAlreadyPaid", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestProcessDepositRollsBackWhenNotPending(t *testing.T) {
	// The conditional status flip misses (application no longer PENDING):
	// the transaction aborts after the deposit insert, so no audit row is
	// written and the insert is rolled back with it.
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .housing_deposits.`),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`INSERT INTO .housing_deposits.`),
			result:  scriptedResult{lastInsertID: 11, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE .housing_applications. SET .* WHERE housing_application_id = \? AND status = \?`),
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := ProcessDeposit(gormDB, 5, 3, 250)
	if !errors.Is(err, ErrApplicationNotPending) {
		t.Fatalf("err = %v, want ErrApplicationNotPending", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestAllocateRoomConditionalFlip(t *testing.T) {
	approved := func() *models.HousingApplication {
		return &models.HousingApplication{HousingApplicationID: 5, StudentID: 7, Status: models.HousingApproved}
	}

	t.Run("loser of the race sees room not available", func(t *testing.T) {
		// The AVAILABLE -> OCCUPIED flip matched zero rows: someone else
		// took the room first. No assignment row may be written.
		steps := []*queryStep{
			{
				kind:    kindExec,
				pattern: regexp.MustCompile(`UPDATE .housing_rooms. SET .* WHERE room_id = \? AND status = \?`),
				result:  scriptedResult{rowsAffected: 0},
			},
		}

		gormDB, state, cleanup := newScriptedGormDB(t, steps)
		defer cleanup()

		_, err := AllocateRoom(gormDB, approved(), 9, 3)
		if !errors.Is(err, ErrRoomNotAvailable) {
			t.Fatalf("err = %v, want ErrRoomNotAvailable", err)
		}
		if err := state.verifyComplete(); err != nil {
			t.Error(err)
		}
	})

	t.Run("winner writes exactly one assignment", func(t *testing.T) {
		steps := []*queryStep{
			{
				kind:    kindExec,
				pattern: regexp.MustCompile(`UPDATE .housing_rooms. SET .* WHERE room_id = \? AND status = \?`),
				result:  scriptedResult{rowsAffected: 1},
			},
			{
				kind:    kindExec,
				pattern: regexp.MustCompile(`INSERT INTO .housing_assignments.`),
				result:  scriptedResult{lastInsertID: 21, rowsAffected: 1},
			},
			{
				kind:    kindExec,
				pattern: regexp.MustCompile(`INSERT INTO .housing_audit_logs.`),
				result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
			},
		}

		gormDB, state, cleanup := newScriptedGormDB(t, steps)
		defer cleanup()

		assignment, err := AllocateRoom(gormDB, approved(), 9, 3)
		if err != nil {
			t.Fatalf("AllocateRoom: %v", err)
		}
		if assignment.AssignmentID != 21 {
			t.Errorf("AssignmentID = %d, want 21", assignment.AssignmentID)
		}
		if assignment.RoomID != 9 {
			t.Errorf("RoomID = %d, want 9", assignment.RoomID)
		}
		if err := state.verifyComplete(); err != nil {
			t.Error(err)
		}
	})
}

func TestCascadeDeleteRemovesDependentsAndFreesRoom(t *testing.T) {
	// One invoice, one assignment occupying room 9: every dependent table
	// is cleared in dependency order and the room goes back to AVAILABLE
	// before the application row itself is deleted.
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .housing_applications. WHERE housing_application_id = \?`),
			columns: []string{"housing_application_id", "student_id", "semester_id", "status"},
			rows:    [][]driver.Value{{int64(5), int64(7), int64(1), models.HousingApproved}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT .invoice_id. FROM .housing_invoices. WHERE housing_application_id = \?`),
			columns: []string{"invoice_id"},
			rows:    [][]driver.Value{{int64(31)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`DELETE FROM .housing_payments. WHERE invoice_id IN`),
			result:  scriptedResult{rowsAffected: 2},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`DELETE FROM .housing_invoice_items. WHERE invoice_id IN`),
			result:  scriptedResult{rowsAffected: 3},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`DELETE FROM .housing_invoices. WHERE invoice_id IN`),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`DELETE FROM .housing_deposits. WHERE housing_application_id = \?`),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .housing_assignments. WHERE housing_application_id = \?`),
			columns: []string{"assignment_id", "housing_application_id", "room_id"},
			rows:    [][]driver.Value{{int64(21), int64(5), int64(9)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`UPDATE .housing_rooms. SET .* WHERE room_id = \?`),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`DELETE FROM .housing_assignments. WHERE housing_application_id = \?`),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`DELETE FROM .housing_audit_logs. WHERE housing_application_id = \?`),
			result:  scriptedResult{rowsAffected: 4},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`DELETE FROM .housing_applications. WHERE housing_application_id = \?`),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if err := DeleteHousingApplicationCascade(gormDB, 5); err != nil {
		t.Fatalf("DeleteHousingApplicationCascade: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}
