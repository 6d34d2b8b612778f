// internal/domain/cart/command.go
package cart

// CommandType identifies a cart mutation
type CommandType string

const (
	CommandAddItem     CommandType = "add_item"
	CommandSetQuantity CommandType = "set_quantity"
	CommandRemoveItem  CommandType = "remove_item"
	CommandClear       CommandType = "clear"
)

// Command is a tagged cart mutation. Line is set for add_item; Key and
// Quantity for set_quantity; Key for remove_item.
type Command struct {
	Type     CommandType `json:"type"`
	Line     Line        `json:"line,omitempty"`
	Key      LineKey     `json:"key,omitempty"`
	Quantity int         `json:"quantity,omitempty"`
}

// apply is the pure transition function over snapshots. It never mutates its
// input; callers own persistence and locking.
func apply(s Snapshot, cmd Command) Snapshot {
	switch cmd.Type {
	case CommandAddItem:
		if i := s.find(cmd.Line.LineKey); i >= 0 {
			// Merge with the existing line by summing quantity. The stored
			// unit price stays as captured at the original add.
			next := cloneSnapshot(s)
			next[i].Quantity += cmd.Line.Quantity
			return next
		}
		next := cloneSnapshot(s)
		return append(next, cmd.Line)

	case CommandSetQuantity:
		if cmd.Quantity <= 0 {
			return apply(s, Command{Type: CommandRemoveItem, Key: cmd.Key})
		}
		i := s.find(cmd.Key)
		if i < 0 {
			return s
		}
		next := cloneSnapshot(s)
		next[i].Quantity = cmd.Quantity
		return next

	case CommandRemoveItem:
		i := s.find(cmd.Key)
		if i < 0 {
			return s
		}
		next := make(Snapshot, 0, len(s)-1)
		next = append(next, s[:i]...)
		next = append(next, s[i+1:]...)
		return next

	case CommandClear:
		return Snapshot{}

	default:
		return s
	}
}

func cloneSnapshot(s Snapshot) Snapshot {
	next := make(Snapshot, len(s))
	copy(next, s)
	return next
}
