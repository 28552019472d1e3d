// Package status tracks active fault and activity codes and renders the one
// message a dashboard shows for them.
package status

import (
	"github.com/iancoleman/orderedmap"
)

// Code identifies an active condition.
type Code string

const (
	Nominal Code = "nominal" // Reserved; shown when nothing is active
	Speed   Code = "speed"
	Boost   Code = "boost"
	Brake   Code = "brake"
	Power   Code = "power"
)

// DefaultMessages maps every known code to its display text.
var DefaultMessages = map[Code]string{
	Nominal: "Systems operating nominally",
	Speed:   "Correcting speed deviation",
	Power:   "Power outage",
	Boost:   "Manual boost engaged",
	Brake:   "Manual brake engaged",
}

// Registry is an insertion-ordered set of active codes. The oldest active
// code wins the display. Not safe for concurrent use.
type Registry struct {
	active   *orderedmap.OrderedMap
	messages map[Code]string
}

// NewRegistry creates an empty registry using DefaultMessages.
func NewRegistry() *Registry {
	return NewRegistryWithMessages(DefaultMessages)
}

// NewRegistryWithMessages creates an empty registry with a custom message
// table. The table should contain Nominal.
func NewRegistryWithMessages(messages map[Code]string) *Registry {
	table := make(map[Code]string, len(messages))
	for code, msg := range messages {
		table[code] = msg
	}
	return &Registry{
		active:   orderedmap.New(),
		messages: table,
	}
}

// Raise appends code to the active set. Already active codes keep their place.
func (r *Registry) Raise(code Code) {
	if _, ok := r.active.Get(string(code)); ok {
		return
	}
	r.active.Set(string(code), struct{}{})
}

// Clear removes code from the active set if present.
func (r *Registry) Clear(code Code) {
	if _, ok := r.active.Get(string(code)); !ok {
		return
	}
	r.active.Delete(string(code))
}

// Has reports whether code is active.
func (r *Registry) Has(code Code) bool {
	_, ok := r.active.Get(string(code))
	return ok
}

// Len returns the number of active codes.
func (r *Registry) Len() int {
	return len(r.active.Keys())
}

// Active returns the active codes, oldest first.
func (r *Registry) Active() []Code {
	keys := r.active.Keys()
	codes := make([]Code, len(keys))
	for i, k := range keys {
		codes[i] = Code(k)
	}
	return codes
}

// Head returns the oldest active code, or Nominal when nothing is active.
func (r *Registry) Head() Code {
	keys := r.active.Keys()
	if len(keys) == 0 {
		return Nominal
	}
	return Code(keys[0])
}

// Message returns the text for the oldest active code, or the nominal text.
// A code missing from the table renders as itself.
func (r *Registry) Message() string {
	return r.MessageFor(r.Head())
}

// MessageFor returns the display text of a single code.
func (r *Registry) MessageFor(code Code) string {
	if msg, ok := r.messages[code]; ok {
		return msg
	}
	return string(code)
}
