package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ConversationTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// BookingIntent is the argument set of a createRental function call.
// All fields are free text exactly as the model produced them.
type BookingIntent struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	CameraName   string `json:"camera_name"`
	LensName     string `json:"lens_name"`
	RentalDate   string `json:"rental_date"`
	ReturnDate   string `json:"return_date"`
	Duration     string `json:"duration"`
}

type ExtractionKind string

const (
	ExtractionText   ExtractionKind = "text"
	ExtractionIntent ExtractionKind = "intent"
)

// Extraction is what the intent extractor returns for one user turn:
// either a free-text reply or a structured booking intent.
type Extraction struct {
	Kind   ExtractionKind
	Text   string
	Intent *BookingIntent
}

// Grounding is the shop state handed to the extractor alongside the history.
type Grounding struct {
	Cameras       []Device
	Lenses        []Device
	ActiveRentals []Rental
}
