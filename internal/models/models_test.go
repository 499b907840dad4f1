package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		middle string
		last   string
		want   string
	}{
		{name: "no middle name", first: "Anna", middle: "", last: "Ivanova", want: "Anna Ivanova"},
		{name: "with middle name", first: "Anna", middle: "Petrovna", last: "Ivanova", want: "Anna Petrovna Ivanova"},
		{name: "surrounding whitespace trimmed", first: "  Anna ", middle: " Petrovna ", last: " Ivanova  ", want: "Anna Petrovna Ivanova"},
		{name: "blank middle name", first: "Anna", middle: "   ", last: "Ivanova", want: "Anna Ivanova"},
		{name: "everything empty", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FullName(tt.first, tt.middle, tt.last))
		})
	}
}

func TestTaskAssignee(t *testing.T) {
	task := Task{ID: 1, Name: "Fix router"}
	assert.False(t, task.Assigned())
	assert.Equal(t, "", task.Assignee())

	name := "Anna Ivanova"
	task.AssignedTo = &name
	assert.True(t, task.Assigned())
	assert.Equal(t, "Anna Ivanova", task.Assignee())
}
