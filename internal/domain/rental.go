package domain

type ReturnCondition string

const (
	ReturnConditionUnreturned     ReturnCondition = "Chưa trả"
	ReturnConditionReturnedNormal ReturnCondition = "Đã trả - Bình thường"
	ReturnConditionReturnedDamage ReturnCondition = "Đã trả - Có lỗi"
)

// Returned reports whether c is one of the two returned states.
func (c ReturnCondition) Returned() bool {
	return c == ReturnConditionReturnedNormal || c == ReturnConditionReturnedDamage
}

type PaymentMethod string

const (
	PaymentMethodNone     PaymentMethod = ""
	PaymentMethodCash     PaymentMethod = "TM"
	PaymentMethodTransfer PaymentMethod = "CK"
)

// Rental is a single rental transaction. Amounts are whole VND.
// RemainingAmount is derived from RentalFee and PaidAmount and is never set on its own.
type Rental struct {
	ID              int32           `json:"id"`
	CustomerName    string          `json:"customer_name" validate:"required"`
	Phone           string          `json:"phone"`
	RentalDate      string          `json:"rental_date" validate:"omitempty,datetime=2006-01-02"`
	PickupTime      string          `json:"pickup_time"`
	ReturnDate      string          `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
	ReturnTime      string          `json:"return_time"`
	Duration        string          `json:"duration"`
	RentalFee       int64           `json:"rental_fee" validate:"min=0"`
	Deposit         int64           `json:"deposit" validate:"min=0"`
	PaidAmount      int64           `json:"paid_amount" validate:"min=0"`
	RemainingAmount int64           `json:"remaining_amount"`
	PaymentMethod   PaymentMethod   `json:"payment_method" validate:"omitempty,oneof=TM CK"`
	ReturnCondition ReturnCondition `json:"return_condition" validate:"omitempty,return_condition"`
	Notes           string          `json:"notes"`
	CameraID        *int32          `json:"camera_id"`
	LensID          *int32          `json:"lens_id"`

	// Joined from the inventory tables on reads; never written.
	CameraName string `json:"camera_name,omitempty"`
	LensName   string `json:"lens_name,omitempty"`
}

// RentalPatch carries a partial update. Nil fields are left untouched.
// There is no RemainingAmount field: it follows RentalFee and PaidAmount.
type RentalPatch struct {
	CustomerName    *string
	Phone           *string
	RentalDate      *string
	PickupTime      *string
	ReturnDate      *string
	ReturnTime      *string
	Duration        *string
	RentalFee       *int64
	Deposit         *int64
	PaidAmount      *int64
	PaymentMethod   *PaymentMethod
	ReturnCondition *ReturnCondition
	Notes           *string
	CameraID        **int32
	LensID          **int32
}

type RentalStatusFilter string

const (
	RentalStatusAll      RentalStatusFilter = ""
	RentalStatusActive   RentalStatusFilter = "active"
	RentalStatusReturned RentalStatusFilter = "returned"
)

// RentalFilter mirrors the search box, date picker and pager of the rentals table.
type RentalFilter struct {
	Search     string
	// PhoneSearch is Search in E.164 form when it parses as a phone number.
	// Phones are stored normalised, so both forms are matched.
	PhoneSearch string
	RentalDate string
	Status     RentalStatusFilter
	Page       int
	PageSize   int
}
