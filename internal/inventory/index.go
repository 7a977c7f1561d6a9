// Package inventory holds the in-memory view of cameras or lenses used to
// resolve the device names a customer mentions in chat.
package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bomne-rental-backend/internal/domain"
)

// Index is a read-only snapshot of one device list in store order.
type Index struct {
	devices []domain.Device
	lowered []string
}

// NewIndex copies devices so later edits to the caller's slice do not leak in.
func NewIndex(devices []domain.Device) *Index {
	lower := cases.Lower(language.Und)
	idx := &Index{
		devices: make([]domain.Device, len(devices)),
		lowered: make([]string, len(devices)),
	}
	copy(idx.devices, devices)
	for i, d := range idx.devices {
		idx.lowered[i] = lower.String(d.Name)
	}
	return idx
}

// Devices returns a copy of the indexed devices.
func (idx *Index) Devices() []domain.Device {
	if idx == nil {
		return nil
	}
	out := make([]domain.Device, len(idx.devices))
	copy(out, idx.devices)
	return out
}

// Len returns the number of indexed devices.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.devices)
}

// FindByApproxName returns the first device whose name contains query, ignoring case.
// A blank query never matches.
func (idx *Index) FindByApproxName(query string) (domain.Device, bool) {
	if idx == nil {
		return domain.Device{}, false
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.Device{}, false
	}
	q = cases.Lower(language.Und).String(q)
	for i, name := range idx.lowered {
		if strings.Contains(name, q) {
			return idx.devices[i], true
		}
	}
	return domain.Device{}, false
}

// FindByApproxName is the functional form over a plain ordered device list.
func FindByApproxName(devices []domain.Device, query string) (domain.Device, bool) {
	return NewIndex(devices).FindByApproxName(query)
}
