package shares

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielcastillo/dealerdesk-backend/pkg/enums"
)

func statusPtr(s enums.SharedStatus) *enums.SharedStatus {
	return &s
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from *enums.SharedStatus
		to   enums.SharedStatus
		want bool
	}{
		{"unshared to pending", nil, enums.SharedStatusPending, true},
		{"unshared to accepted", nil, enums.SharedStatusAccepted, false},
		{"unshared to rejected", nil, enums.SharedStatusRejected, false},
		{"pending to accepted", statusPtr(enums.SharedStatusPending), enums.SharedStatusAccepted, true},
		{"pending to rejected", statusPtr(enums.SharedStatusPending), enums.SharedStatusRejected, true},
		{"pending to pending", statusPtr(enums.SharedStatusPending), enums.SharedStatusPending, false},
		{"accepted is terminal", statusPtr(enums.SharedStatusAccepted), enums.SharedStatusRejected, false},
		{"accepted to pending", statusPtr(enums.SharedStatusAccepted), enums.SharedStatusPending, false},
		{"rejected is terminal", statusPtr(enums.SharedStatusRejected), enums.SharedStatusAccepted, false},
		{"unknown target", statusPtr(enums.SharedStatusPending), enums.SharedStatus("bogus"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}
