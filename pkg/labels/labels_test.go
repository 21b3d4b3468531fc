package labels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/people360/pkg/labels"
)

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"in_progress":   "In Progress",
		"full_time":     "Full Time",
		"support_agent": "Support Agent",
		"hr_manager":    "HR Manager",
		"new":           "Initial Contact",
		"won":           "Closed Won",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, labels.Humanize(in), "entrada %q", in)
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "Jane Doe", labels.Name("  jane   DOE "))
}
