package enums

// CartEventType is the canonical event name emitted to the analytics sink.
type CartEventType string

const (
	CartEventItemAdded   CartEventType = "cart_item_added"
	CartEventItemRemoved CartEventType = "cart_item_removed"
	CartEventCleared     CartEventType = "cart_cleared"
)

var validCartEventTypes = []CartEventType{
	CartEventItemAdded,
	CartEventItemRemoved,
	CartEventCleared,
}

// String implements fmt.Stringer.
func (e CartEventType) String() string {
	return string(e)
}

// IsValid reports whether the value matches the canonical cart event enum.
func (e CartEventType) IsValid() bool {
	for _, candidate := range validCartEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}
