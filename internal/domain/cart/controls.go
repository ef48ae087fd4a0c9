// internal/domain/cart/controls.go
package cart

// QuantityControl is one quantity-changing control: the quantity it would
// submit and whether it is currently usable
type QuantityControl struct {
	Candidate int  `json:"candidate"`
	Disabled  bool `json:"disabled"`
}

// RemoveControl is the line removal control
type RemoveControl struct {
	Disabled bool `json:"disabled"`
}

// ControlCluster describes the quantity control state of one line
type ControlCluster struct {
	Decrease QuantityControl `json:"decrease"`
	Increase QuantityControl `json:"increase"`
	Remove   RemoveControl   `json:"remove"`
}

// ControlsFor computes the control cluster for a line.
//
// Decrease submits quantity-1 and locks at quantity 1 or while the line is
// pending; removal is the only way to zero. Increase submits quantity+1,
// bounded by the variant's known available quantity; when availability is
// unknown the pending flag decides. Remove locks only while pending. A line
// with no quantity yields no cluster at all.
func ControlsFor(line *Line) *ControlCluster {
	if line == nil || line.Quantity == 0 {
		return nil
	}

	quantity := line.Quantity

	decrease := QuantityControl{
		Candidate: max(0, quantity-1),
		Disabled:  quantity <= 1 || line.Optimistic,
	}

	increase := QuantityControl{Candidate: quantity + 1}
	if available := line.Merchandise.QuantityAvailable; available != nil && *available > 0 {
		increase.Disabled = increase.Candidate > *available
	} else {
		increase.Disabled = line.Optimistic
	}

	remove := RemoveControl{Disabled: line.Optimistic}

	return &ControlCluster{
		Decrease: decrease,
		Increase: increase,
		Remove:   remove,
	}
}
