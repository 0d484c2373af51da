package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sykli-college-api/models"
)

// Business-rule failures surfaced to the caller before (or instead of) any
// write. Controllers map these to 4xx responses.
var (
	ErrStudentNotActive       = errors.New("student is not actively enrolled")
	ErrDuplicateApplication   = errors.New("an open housing application already exists for this semester")
	ErrApplicationNotPending  = errors.New("housing application is not pending")
	ErrApplicationNotApproved = errors.New("housing application is not approved")
	ErrDepositAlreadyPaid     = errors.New("a deposit has already been paid for this application")
	ErrRoomNotAvailable       = errors.New("room not available")
	ErrRoomHasAssignments     = errors.New("room has assignment history and cannot be deleted")
	ErrBuildingHasRooms       = errors.New("building still has rooms and cannot be deleted")
)

// HousingApplicationInput carries the student-entered fields of a new
// housing application.
type HousingApplicationInput struct {
	SemesterID          int
	PreferredBuildingID *int
	MoveInDate          time.Time
	MoveOutDate         time.Time
	Notes               string
}

// HasBlockingApplication reports whether any existing application blocks a
// new one for the same semester. REJECTED applications never block;
// re-application after rejection is allowed.
func HasBlockingApplication(existing []models.HousingApplication) bool {
	for _, app := range existing {
		if app.Status != models.HousingRejected {
			return true
		}
	}
	return false
}

func writeAuditLog(tx *gorm.DB, applicationID, actorUserID int, action, detail string) error {
	now := time.Now()
	entry := models.HousingAuditLog{
		HousingApplicationID: applicationID,
		Action:               action,
		Detail:               detail,
		ActorUserID:          actorUserID,
		CreateAt:             &now,
	}
	return tx.Create(&entry).Error
}

// SubmitHousingApplication creates a PENDING application for an actively
// enrolled student. The uniqueness guard is a SELECT ... FOR UPDATE inside
// the insert transaction: under REPEATABLE READ a plain read would let two
// concurrent submissions both see zero blocking rows, so the existence
// check must lock the (student, semester) rows it examined until commit.
func SubmitHousingApplication(db *gorm.DB, student *models.Student, input HousingApplicationInput) (*models.HousingApplication, error) {
	if student.EnrollmentStatus != models.EnrollmentActive {
		return nil, ErrStudentNotActive
	}

	now := time.Now()
	application := models.HousingApplication{
		StudentID:           student.StudentID,
		SemesterID:          input.SemesterID,
		PreferredBuildingID: input.PreferredBuildingID,
		MoveInDate:          input.MoveInDate,
		MoveOutDate:         input.MoveOutDate,
		Notes:               input.Notes,
		PriorityScore:       PriorityScore(student),
		Status:              models.HousingPending,
		CreateAt:            &now,
		UpdateAt:            &now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing []models.HousingApplication
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_id = ? AND semester_id = ?", student.StudentID, input.SemesterID).
			Find(&existing).Error; err != nil {
			return err
		}
		if HasBlockingApplication(existing) {
			return ErrDuplicateApplication
		}

		if err := tx.Create(&application).Error; err != nil {
			return err
		}

		return writeAuditLog(tx, application.HousingApplicationID, student.UserID,
			"SUBMIT", fmt.Sprintf("application submitted for semester %d", input.SemesterID))
	})
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// RejectHousingApplication moves a PENDING application to REJECTED with a
// reason. The status flip is conditional so a concurrent deposit cannot
// race it.
func RejectHousingApplication(db *gorm.DB, applicationID, actorUserID int, reason string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.HousingApplication{}).
			Where("housing_application_id = ? AND status = ?", applicationID, models.HousingPending).
			Updates(map[string]interface{}{
				"status":           models.HousingRejected,
				"rejection_reason": reason,
				"update_at":        time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrApplicationNotPending
		}
		return writeAuditLog(tx, applicationID, actorUserID, "REJECT", reason)
	})
}

// ProcessDeposit records a simulated deposit payment and approves the
// application. Both writes run in one transaction; the status flip is a
// conditional update checked by affected rows, so a second deposit attempt
// (or a concurrent rejection) fails cleanly with no deposit row left behind.
func ProcessDeposit(db *gorm.DB, applicationID, actorUserID int, amount float64) (*models.HousingDeposit, error) {
	now := time.Now()
	deposit := models.HousingDeposit{
		HousingApplicationID: applicationID,
		Amount:               amount,
		Status:               models.DepositPaid,
		TransactionID:        uuid.NewString(),
		PaidAt:               &now,
		CreateAt:             &now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var paidCount int64
		if err := tx.Model(&models.HousingDeposit{}).
			Where("housing_application_id = ? AND status = ?", applicationID, models.DepositPaid).
			Count(&paidCount).Error; err != nil {
			return err
		}
		if paidCount > 0 {
			return ErrDepositAlreadyPaid
		}

		if err := tx.Create(&deposit).Error; err != nil {
			return err
		}

		res := tx.Model(&models.HousingApplication{}).
			Where("housing_application_id = ? AND status = ?", applicationID, models.HousingPending).
			Updates(map[string]interface{}{
				"status":    models.HousingApproved,
				"update_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrApplicationNotPending
		}

		return writeAuditLog(tx, applicationID, actorUserID,
			"DEPOSIT", fmt.Sprintf("deposit %s paid, application approved", deposit.TransactionID))
	})
	if err != nil {
		return nil, err
	}
	return &deposit, nil
}

// AllocateRoom assigns an APPROVED application to a room. The room flip
// AVAILABLE -> OCCUPIED is a conditional update checked by affected rows
// inside the transaction: of two concurrent allocations of the same room,
// exactly one succeeds and the other sees ErrRoomNotAvailable.
func AllocateRoom(db *gorm.DB, application *models.HousingApplication, roomID, actorUserID int) (*models.HousingAssignment, error) {
	if application.Status != models.HousingApproved {
		return nil, ErrApplicationNotApproved
	}

	now := time.Now()
	assignment := models.HousingAssignment{
		HousingApplicationID: application.HousingApplicationID,
		StudentID:            application.StudentID,
		RoomID:               roomID,
		StartDate:            application.MoveInDate,
		EndDate:              application.MoveOutDate,
		CreateAt:             &now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.HousingRoom{}).
			Where("room_id = ? AND status = ?", roomID, models.RoomAvailable).
			Updates(map[string]interface{}{
				"status":    models.RoomOccupied,
				"update_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotAvailable
		}

		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		return writeAuditLog(tx, application.HousingApplicationID, actorUserID,
			"ALLOCATE", fmt.Sprintf("room %d assigned", roomID))
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UnassignRoom removes an assignment and frees its room in one transaction.
func UnassignRoom(db *gorm.DB, assignmentID, actorUserID int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var assignment models.HousingAssignment
		if err := tx.Where("assignment_id = ?", assignmentID).First(&assignment).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.HousingRoom{}).
			Where("room_id = ?", assignment.RoomID).
			Updates(map[string]interface{}{
				"status":    models.RoomAvailable,
				"update_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.HousingAssignment{}, "assignment_id = ?", assignmentID).Error; err != nil {
			return err
		}

		return writeAuditLog(tx, assignment.HousingApplicationID, actorUserID,
			"UNASSIGN", fmt.Sprintf("room %d freed", assignment.RoomID))
	})
}

// DeleteHousingApplicationCascade removes an application and every row that
// references it, in dependency order, inside one transaction: invoice
// payments, invoice items, invoices, deposits, assignments (freeing each
// referenced room first), audit logs, then the application itself. A
// failure anywhere rolls the whole sequence back.
func DeleteHousingApplicationCascade(db *gorm.DB, applicationID int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var application models.HousingApplication
		if err := tx.Where("housing_application_id = ?", applicationID).First(&application).Error; err != nil {
			return err
		}

		var invoiceIDs []int
		if err := tx.Model(&models.HousingInvoice{}).
			Where("housing_application_id = ?", applicationID).
			Pluck("invoice_id", &invoiceIDs).Error; err != nil {
			return err
		}

		if len(invoiceIDs) > 0 {
			if err := tx.Delete(&models.HousingPayment{}, "invoice_id IN ?", invoiceIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.HousingInvoiceItem{}, "invoice_id IN ?", invoiceIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.HousingInvoice{}, "invoice_id IN ?", invoiceIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.HousingDeposit{}, "housing_application_id = ?", applicationID).Error; err != nil {
			return err
		}

		var assignments []models.HousingAssignment
		if err := tx.Where("housing_application_id = ?", applicationID).Find(&assignments).Error; err != nil {
			return err
		}
		for _, assignment := range assignments {
			if err := tx.Model(&models.HousingRoom{}).
				Where("room_id = ?", assignment.RoomID).
				Updates(map[string]interface{}{
					"status":    models.RoomAvailable,
					"update_at": time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.HousingAssignment{}, "housing_application_id = ?", applicationID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.HousingAuditLog{}, "housing_application_id = ?", applicationID).Error; err != nil {
			return err
		}

		return tx.Delete(&models.HousingApplication{}, "housing_application_id = ?", applicationID).Error
	})
}

// DeleteRoom refuses to delete a room with any assignment history, past or
// present.
func DeleteRoom(db *gorm.DB, roomID int) error {
	var count int64
	if err := db.Model(&models.HousingAssignment{}).
		Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrRoomHasAssignments
	}
	return db.Delete(&models.HousingRoom{}, "room_id = ?", roomID).Error
}

// DeleteBuilding refuses to delete a building that still has rooms.
func DeleteBuilding(db *gorm.DB, buildingID int) error {
	var count int64
	if err := db.Model(&models.HousingRoom{}).
		Where("building_id = ?", buildingID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrBuildingHasRooms
	}
	return db.Delete(&models.HousingBuilding{}, "building_id = ?", buildingID).Error
}
