// Package artwork models the fixed set of image slots a title carries and
// the resize provider that fills them. Image decoding and scaling are
// external collaborators; the default provider copies source bytes through
// unchanged.
package artwork

import (
	"context"
	"fmt"
)

// Slot identifies one of the four canonical image slots.
type Slot int

const (
	SlotSmall Slot = iota
	SlotMedium
	SlotLarge
	SlotBanner
)

// slotSpec carries the per-slot sizing and naming data. Keeping it in one
// table avoids scattering slot conditionals across call sites.
type slotSpec struct {
	suffix string
	width  int
	height int
}

var slotSpecs = map[Slot]slotSpec{
	SlotSmall:  {suffix: "0", width: 59, height: 87},
	SlotMedium: {suffix: "1", width: 92, height: 128},
	SlotLarge:  {suffix: "2", width: 170, height: 230},
	SlotBanner: {suffix: "_banner", width: 185, height: 80},
}

// BoxSlots are the slots populated from box art, in fill order.
var BoxSlots = []Slot{SlotSmall, SlotMedium, SlotLarge}

// FileName returns the canonical image filename for a title in this slot.
func (s Slot) FileName(titleID string) string {
	return titleID + slotSpecs[s].suffix + ".png"
}

// Dimensions returns the slot's target pixel size.
func (s Slot) Dimensions() (width, height int) {
	spec := slotSpecs[s]
	return spec.width, spec.height
}

func (s Slot) String() string {
	switch s {
	case SlotSmall:
		return "small"
	case SlotMedium:
		return "medium"
	case SlotLarge:
		return "large"
	case SlotBanner:
		return "banner"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Target pairs a slot with the local path its image is written to.
type Target struct {
	Slot Slot
	Path string
}

// Resizer writes a resized copy of the source image into each target slot
// path.
type Resizer interface {
	Resize(ctx context.Context, sourceURL, ownerTitle string, targets []Target) error
}
