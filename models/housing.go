package models

import (
	"time"
)

// Housing application statuses.
const (
	HousingPending  = "PENDING"
	HousingApproved = "APPROVED"
	HousingRejected = "REJECTED"
)

// Housing room statuses.
const (
	RoomAvailable = "AVAILABLE"
	RoomOccupied  = "OCCUPIED"
)

// Deposit statuses.
const (
	DepositPaid     = "PAID"
	DepositRefunded = "REFUNDED"
)

type HousingSemester struct {
	SemesterID int        `gorm:"primaryKey;column:semester_id" json:"semester_id"`
	Name       string     `gorm:"column:name" json:"name"`
	Code       string     `gorm:"column:code;unique" json:"code"` // e.g. 2026-AUTUMN
	StartsOn   time.Time  `gorm:"column:starts_on" json:"starts_on"`
	EndsOn     time.Time  `gorm:"column:ends_on" json:"ends_on"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
}

type HousingBuilding struct {
	BuildingID int        `gorm:"primaryKey;column:building_id" json:"building_id"`
	Name       string     `gorm:"column:name" json:"name"`
	Address    string     `gorm:"column:address" json:"address"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Rooms []HousingRoom `gorm:"foreignKey:BuildingID" json:"rooms,omitempty"`
}

type HousingRoom struct {
	RoomID      int        `gorm:"primaryKey;column:room_id" json:"room_id"`
	BuildingID  int        `gorm:"column:building_id" json:"building_id"`
	RoomNumber  string     `gorm:"column:room_number" json:"room_number"`
	Capacity    int        `gorm:"column:capacity" json:"capacity"`
	MonthlyRate float64    `gorm:"column:monthly_rate" json:"monthly_rate"`
	Amenities   string     `gorm:"column:amenities" json:"amenities"`
	Status      string     `gorm:"column:status" json:"status"` // AVAILABLE, OCCUPIED
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Building HousingBuilding `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

// HousingApplication is a student's request for a room in one semester.
// At most one non-REJECTED application may exist per (student, semester).
type HousingApplication struct {
	HousingApplicationID int        `gorm:"primaryKey;column:housing_application_id" json:"housing_application_id"`
	StudentID            int        `gorm:"column:student_id" json:"student_id"`
	SemesterID           int        `gorm:"column:semester_id" json:"semester_id"`
	PreferredBuildingID  *int       `gorm:"column:preferred_building_id" json:"preferred_building_id,omitempty"`
	MoveInDate           time.Time  `gorm:"column:move_in_date" json:"move_in_date"`
	MoveOutDate          time.Time  `gorm:"column:move_out_date" json:"move_out_date"`
	Notes                string     `gorm:"column:notes" json:"notes"`
	PriorityScore        int        `gorm:"column:priority_score" json:"priority_score"`
	Status               string     `gorm:"column:status" json:"status"` // PENDING, APPROVED, REJECTED
	RejectionReason      string     `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Student  Student         `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Semester HousingSemester `gorm:"foreignKey:SemesterID" json:"semester,omitempty"`
}

type HousingDeposit struct {
	DepositID            int        `gorm:"primaryKey;column:deposit_id" json:"deposit_id"`
	HousingApplicationID int        `gorm:"column:housing_application_id" json:"housing_application_id"`
	Amount               float64    `gorm:"column:amount" json:"amount"`
	Status               string     `gorm:"column:status" json:"status"` // PAID, REFUNDED
	TransactionID        string     `gorm:"column:transaction_id;unique" json:"transaction_id"`
	PaidAt               *time.Time `gorm:"column:paid_at" json:"paid_at"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
}

// HousingAssignment binds an approved application to one room for a date
// range. Creating one flips the room to OCCUPIED; deleting it frees the
// room again.
type HousingAssignment struct {
	AssignmentID         int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	HousingApplicationID int        `gorm:"column:housing_application_id" json:"housing_application_id"`
	StudentID            int        `gorm:"column:student_id" json:"student_id"`
	RoomID               int        `gorm:"column:room_id" json:"room_id"`
	StartDate            time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate              time.Time  `gorm:"column:end_date" json:"end_date"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	Room HousingRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

type HousingInvoice struct {
	InvoiceID            int        `gorm:"primaryKey;column:invoice_id" json:"invoice_id"`
	HousingApplicationID int        `gorm:"column:housing_application_id" json:"housing_application_id"`
	InvoiceNumber        string     `gorm:"column:invoice_number;unique" json:"invoice_number"`
	TotalAmount          float64    `gorm:"column:total_amount" json:"total_amount"`
	DueDate              time.Time  `gorm:"column:due_date" json:"due_date"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	Items    []HousingInvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments []HousingPayment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

type HousingInvoiceItem struct {
	InvoiceItemID int     `gorm:"primaryKey;column:invoice_item_id" json:"invoice_item_id"`
	InvoiceID     int     `gorm:"column:invoice_id" json:"invoice_id"`
	Description   string  `gorm:"column:description" json:"description"`
	Amount        float64 `gorm:"column:amount" json:"amount"`
}

type HousingPayment struct {
	PaymentID     int        `gorm:"primaryKey;column:payment_id" json:"payment_id"`
	InvoiceID     int        `gorm:"column:invoice_id" json:"invoice_id"`
	Amount        float64    `gorm:"column:amount" json:"amount"`
	TransactionID string     `gorm:"column:transaction_id" json:"transaction_id"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at"`
}

type HousingAuditLog struct {
	AuditLogID           int        `gorm:"primaryKey;column:audit_log_id" json:"audit_log_id"`
	HousingApplicationID int        `gorm:"column:housing_application_id" json:"housing_application_id"`
	Action               string     `gorm:"column:action" json:"action"`
	Detail               string     `gorm:"column:detail" json:"detail"`
	ActorUserID          int        `gorm:"column:actor_user_id" json:"actor_user_id"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (HousingSemester) TableName() string    { return "housing_semesters" }
func (HousingBuilding) TableName() string    { return "housing_buildings" }
func (HousingRoom) TableName() string        { return "housing_rooms" }
func (HousingApplication) TableName() string { return "housing_applications" }
func (HousingDeposit) TableName() string     { return "housing_deposits" }
func (HousingAssignment) TableName() string  { return "housing_assignments" }
func (HousingInvoice) TableName() string     { return "housing_invoices" }
func (HousingInvoiceItem) TableName() string { return "housing_invoice_items" }
func (HousingPayment) TableName() string     { return "housing_payments" }
func (HousingAuditLog) TableName() string    { return "housing_audit_logs" }
