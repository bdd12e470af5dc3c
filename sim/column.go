// Implements the Column, the finite-capacity FIFO volume stack used for both
// the drill string and the annulus. Index 0 is always the inflow end: the
// string column is ordered shallow-first (index 0 = surface) and the annulus
// column deep-first (index 0 = bit/zone boundary), so pushing pumped fluid is
// the same head-insert in both orientations.

package sim

import (
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

// Column is an ordered sequence of parcels with a fixed capacity determined
// by wellbore geometry over a fixed depth interval. Columns are owned by a
// single simulation pass and rebuilt from scratch on every recompute.
type Column struct {
	Capacity float64  // m^3
	Parcels  []Parcel // index 0 = inflow end
}

// NewColumn returns a column of the given capacity filled entirely with fill.
// Non-positive capacities yield an empty column.
func NewColumn(capacity float64, fill Parcel) *Column {
	c := &Column{Capacity: capacity}
	if capacity > EpsParcel {
		c.Parcels = []Parcel{fill.WithVolume(capacity)}
	}
	return c
}

// TotalVolume returns the summed volume of all parcels in the column.
func (c *Column) TotalVolume() float64 {
	return TotalVolume(c.Parcels)
}

// IsFull reports whether the column holds its full capacity within tolerance.
func (c *Column) IsFull() bool {
	return scalar.EqualWithinAbs(c.TotalVolume(), c.Capacity, EpsVolume)
}

// PushAtInflowEnd inserts incoming at index 0 and, if the resulting total
// volume exceeds the capacity, removes parcels from the outflow end (the
// tail) until the excess is exhausted. The last parcel removed is split so
// that exactly the excess volume leaves; the remainder stays on the column.
// Overflowed parcels are returned in the order they left, oldest-displaced
// first. Parcels below the insertion threshold are no-ops.
func (c *Column) PushAtInflowEnd(incoming Parcel) []Parcel {
	if incoming.IsEmpty() {
		return nil
	}
	c.Parcels = append([]Parcel{incoming}, c.Parcels...)
	overflow := c.TotalVolume() - c.Capacity
	if overflow <= EpsVolume {
		return nil
	}
	return c.takeEnd(overflow, true)
}

// PushTop appends a parcel at the outflow (tail) end without displacing
// anything. Used by reconciliation to put returned fluid back onto the
// surface end of the above-zone column.
func (c *Column) PushTop(p Parcel) {
	if p.IsEmpty() {
		return
	}
	c.Parcels = append(c.Parcels, p)
}

// PushBottom prepends a parcel at the inflow (head) end without displacing
// anything. Mirror of PushTop for the opposite reconciliation direction.
func (c *Column) PushBottom(p Parcel) {
	if p.IsEmpty() {
		return
	}
	c.Parcels = append([]Parcel{p}, c.Parcels...)
}

// TakeTop removes up to v volume from the outflow (tail) end, splitting the
// last parcel as needed. Removed parcels are returned in the order they left.
func (c *Column) TakeTop(v float64) []Parcel {
	return c.takeEnd(v, true)
}

// TakeBottom removes up to v volume from the inflow (head) end, splitting as
// needed. Removed parcels are returned in the order they left.
func (c *Column) TakeBottom(v float64) []Parcel {
	return c.takeEnd(v, false)
}

// takeEnd removes up to v volume from one end of the column. fromTail selects
// the tail (outflow) end; otherwise the head. Fluid identity is preserved
// through every split.
func (c *Column) takeEnd(v float64, fromTail bool) []Parcel {
	var removed []Parcel
	for v > EpsVolume && len(c.Parcels) > 0 {
		idx := 0
		if fromTail {
			idx = len(c.Parcels) - 1
		}
		p := c.Parcels[idx]
		if p.Volume <= v+EpsVolume {
			// Whole parcel leaves.
			removed = append(removed, p)
			if fromTail {
				c.Parcels = c.Parcels[:idx]
			} else {
				c.Parcels = c.Parcels[1:]
			}
			v -= p.Volume
			continue
		}
		// Split: exactly v leaves, the remainder stays.
		leaving, staying := p.Split(v)
		c.Parcels[idx] = staying
		removed = append(removed, leaving)
		v = 0
	}
	return removed
}

func (c *Column) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range c.Parcels {
		sb.WriteString(p.String())
		if i < len(c.Parcels)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
