// Package command maps inbound coordinator messages to device actions.
// Dispatch validates the topic and payload, presses exactly one IR "button"
// or reads the temperature sensor, and reports the outcome. It never
// panics and never stops the loop.
package command

import "strings"

// Category is the routing class of an inbound topic.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryCommand
	CategoryRequest
)

// String returns the topic segment spelling of the category.
func (c Category) String() string {
	switch c {
	case CategoryCommand:
		return "command"
	case CategoryRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Topic is the parsed form of an inbound topic: the second-to-last segment
// is the category, the last segment is the action.
type Topic struct {
	Category Category
	Action   string
}

// ParseTopic extracts the category and action segments. It fails closed:
// a topic without at least two segments, or with an empty category or
// action, is not a Topic.
func ParseTopic(raw string) (Topic, bool) {
	segs := strings.Split(raw, "/")
	if len(segs) < 2 {
		return Topic{}, false
	}
	category := segs[len(segs)-2]
	action := segs[len(segs)-1]
	if category == "" || action == "" {
		return Topic{}, false
	}

	t := Topic{Action: action}
	switch category {
	case "command":
		t.Category = CategoryCommand
	case "request":
		t.Category = CategoryRequest
	default:
		t.Category = CategoryUnknown
	}
	return t, true
}
