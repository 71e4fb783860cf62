package nlu

import (
	"math"
	"strconv"
)

// Slot names as they appear in context maps and persisted turn data.
const (
	SlotColor     = "color"
	SlotCategory  = "category"
	SlotMaxPrice  = "max_price"
	SlotRecipient = "recipient"
	SlotAge       = "age"
	SlotOccasion  = "occasion"
)

// SlotNames lists every slot in a stable order.
var SlotNames = []string{SlotColor, SlotCategory, SlotMaxPrice, SlotRecipient, SlotAge, SlotOccasion}

// Slots holds the structured values extracted from a message. A nil field means
// the slot is absent.
type Slots struct {
	Color     *string  `json:"color,omitempty"`
	Category  *string  `json:"category,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	Recipient *string  `json:"recipient,omitempty"`
	Age       *int     `json:"age,omitempty"`
	Occasion  *string  `json:"occasion,omitempty"`
}

func String(v string) *string { return &v }

func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

// Merge returns a copy of s overwritten by every non-nil field of other.
func (s Slots) Merge(other Slots) Slots {
	out := s
	if other.Color != nil {
		out.Color = other.Color
	}
	if other.Category != nil {
		out.Category = other.Category
	}
	if other.MaxPrice != nil {
		out.MaxPrice = other.MaxPrice
	}
	if other.Recipient != nil {
		out.Recipient = other.Recipient
	}
	if other.Age != nil {
		out.Age = other.Age
	}
	if other.Occasion != nil {
		out.Occasion = other.Occasion
	}
	return out
}

// FillMissing sets every nil field of s from other, keeping existing values.
func (s Slots) FillMissing(other Slots) Slots {
	return other.Merge(s)
}

func (s Slots) Count() int {
	n := 0
	s.Each(func(string, interface{}) { n++ })
	return n
}

func (s Slots) IsEmpty() bool {
	return s.Count() == 0
}

// Each calls fn for every filled slot in SlotNames order.
func (s Slots) Each(fn func(name string, value interface{})) {
	if s.Color != nil {
		fn(SlotColor, *s.Color)
	}
	if s.Category != nil {
		fn(SlotCategory, *s.Category)
	}
	if s.MaxPrice != nil {
		fn(SlotMaxPrice, *s.MaxPrice)
	}
	if s.Recipient != nil {
		fn(SlotRecipient, *s.Recipient)
	}
	if s.Age != nil {
		fn(SlotAge, *s.Age)
	}
	if s.Occasion != nil {
		fn(SlotOccasion, *s.Occasion)
	}
}

// ToMap never returns nil.
func (s Slots) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, 6)
	s.Each(func(name string, value interface{}) { out[name] = value })
	return out
}

// Only keeps the named slots.
func (s Slots) Only(names ...string) Slots {
	var out Slots
	for _, name := range names {
		switch name {
		case SlotColor:
			out.Color = s.Color
		case SlotCategory:
			out.Category = s.Category
		case SlotMaxPrice:
			out.MaxPrice = s.MaxPrice
		case SlotRecipient:
			out.Recipient = s.Recipient
		case SlotAge:
			out.Age = s.Age
		case SlotOccasion:
			out.Occasion = s.Occasion
		}
	}
	return out
}

// Set assigns a loosely typed value, as found in decoded JSON, to the named slot.
// Values of the wrong type and unknown slot names are ignored.
func (s *Slots) Set(name string, value interface{}) {
	switch name {
	case SlotColor:
		s.Color = asString(value)
	case SlotCategory:
		s.Category = asString(value)
	case SlotRecipient:
		s.Recipient = asString(value)
	case SlotOccasion:
		s.Occasion = asString(value)
	case SlotMaxPrice:
		if f, ok := asFloat(value); ok {
			s.MaxPrice = &f
		}
	case SlotAge:
		if f, ok := asFloat(value); ok {
			age := int(math.Floor(f))
			s.Age = &age
		}
	}
}

// SlotsFromMap is the inverse of ToMap.
func SlotsFromMap(m map[string]interface{}) Slots {
	var s Slots
	for k, v := range m {
		s.Set(k, v)
	}
	return s
}

func asString(v interface{}) *string {
	if str, ok := v.(string); ok && str != "" {
		return &str
	}
	return nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
