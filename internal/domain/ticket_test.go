package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketStatusValid(t *testing.T) {
	tests := []struct {
		status TicketStatus
		want   bool
	}{
		{TicketStatusOpen, true},
		{TicketStatusInProgress, true},
		{TicketStatusResolved, true},
		{TicketStatusClosed, true},
		{TicketStatus(""), false},
		{TicketStatus("OPEN"), false},
		{TicketStatus("cancelled"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Valid(), "status %q", tt.status)
	}
}

func TestTicketPriorityValid(t *testing.T) {
	tests := []struct {
		priority TicketPriority
		want     bool
	}{
		{TicketPriorityLow, true},
		{TicketPriorityMedium, true},
		{TicketPriorityHigh, true},
		{TicketPriorityCritical, true},
		{TicketPriority(""), false},
		{TicketPriority("urgent"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.priority.Valid(), "priority %q", tt.priority)
	}
}

func TestUserRoleCanBeAssignee(t *testing.T) {
	assert.True(t, UserRoleAdmin.CanBeAssignee())
	assert.True(t, UserRoleSupport.CanBeAssignee())
	assert.False(t, UserRoleUser.CanBeAssignee())
	assert.False(t, UserRole("manager").CanBeAssignee())
}
