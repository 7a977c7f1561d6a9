package domain

type DeviceKind string

const (
	DeviceKindCamera DeviceKind = "camera"
	DeviceKindLens   DeviceKind = "lens"
)

// Valid reports whether k names one of the inventory tables.
func (k DeviceKind) Valid() bool {
	return k == DeviceKindCamera || k == DeviceKindLens
}

const DeviceStatusAvailable = "available"

// Device is a rentable camera or lens. IDs are assigned by storage.
type Device struct {
	ID     int32      `json:"id"`
	Kind   DeviceKind `json:"kind"`
	Name   string     `json:"name"`
	Brand  string     `json:"brand"`
	Status string     `json:"status"`
}
