package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTopic(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		ok       bool
		category Category
		action   string
	}{
		{"command topic", "acnode/command/power", true, CategoryCommand, "power"},
		{"request topic", "acnode/request/temp", true, CategoryRequest, "temp"},
		{"deep prefix", "home/upstairs/acnode/command/mode", true, CategoryCommand, "mode"},
		{"two segments only", "command/power", true, CategoryCommand, "power"},
		{"unknown category", "acnode/notice/temp", true, CategoryUnknown, "temp"},
		{"no separator", "power", false, CategoryUnknown, ""},
		{"empty string", "", false, CategoryUnknown, ""},
		{"empty action", "acnode/command/", false, CategoryUnknown, ""},
		{"empty category", "acnode//power", false, CategoryUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, ok := ParseTopic(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.category, topic.Category)
				assert.Equal(t, tt.action, topic.Action)
			}
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "command", CategoryCommand.String())
	assert.Equal(t, "request", CategoryRequest.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
}
