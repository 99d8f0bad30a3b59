package permissions_test

import (
	"testing"

	"labdesk/permissions"
	"labdesk/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestCanConfirm(t *testing.T) {
	tests := []struct {
		name    string
		actor   permissions.Actor
		ownerID string
		want    bool
	}{
		{
			name:    "admin confirms another user's reservation",
			actor:   permissions.Actor{ID: "admin-1", Role: constant.RoleAdmin},
			ownerID: "student-1",
			want:    true,
		},
		{
			name:    "admin confirms their own reservation",
			actor:   permissions.Actor{ID: "admin-1", Role: constant.RoleAdmin},
			ownerID: "admin-1",
			want:    true,
		},
		{
			name:    "instructor confirms another user's reservation",
			actor:   permissions.Actor{ID: "instructor-1", Role: constant.RoleInstructor},
			ownerID: "student-1",
			want:    true,
		},
		{
			name:    "instructor cannot confirm their own reservation",
			actor:   permissions.Actor{ID: "instructor-1", Role: constant.RoleInstructor},
			ownerID: "instructor-1",
			want:    false,
		},
		{
			name:    "student cannot confirm",
			actor:   permissions.Actor{ID: "student-1", Role: constant.RoleStudent},
			ownerID: "student-2",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permissions.CanConfirm(tt.actor, tt.ownerID))
		})
	}
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name    string
		actor   permissions.Actor
		ownerID string
		want    bool
	}{
		{
			name:    "owner cancels their own reservation",
			actor:   permissions.Actor{ID: "student-1", Role: constant.RoleStudent},
			ownerID: "student-1",
			want:    true,
		},
		{
			name:    "admin cancels another user's reservation",
			actor:   permissions.Actor{ID: "admin-1", Role: constant.RoleAdmin},
			ownerID: "student-1",
			want:    true,
		},
		{
			name:    "instructor cancels another user's reservation",
			actor:   permissions.Actor{ID: "instructor-1", Role: constant.RoleInstructor},
			ownerID: "student-1",
			want:    true,
		},
		{
			name:    "instructor cancels their own reservation",
			actor:   permissions.Actor{ID: "instructor-1", Role: constant.RoleInstructor},
			ownerID: "instructor-1",
			want:    true,
		},
		{
			name:    "student cannot cancel someone else's reservation",
			actor:   permissions.Actor{ID: "student-1", Role: constant.RoleStudent},
			ownerID: "student-2",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permissions.CanCancel(tt.actor, tt.ownerID))
		})
	}
}

func TestCanEditReservation(t *testing.T) {
	owner := permissions.Actor{ID: "student-1", Role: constant.RoleStudent}
	admin := permissions.Actor{ID: "admin-1", Role: constant.RoleAdmin}
	instructor := permissions.Actor{ID: "instructor-1", Role: constant.RoleInstructor}

	assert.True(t, permissions.CanEditReservation(owner, "student-1"))
	assert.True(t, permissions.CanEditReservation(admin, "student-1"))
	assert.False(t, permissions.CanEditReservation(instructor, "student-1"))
}

func TestStaffCapabilities(t *testing.T) {
	admin := permissions.Actor{Role: constant.RoleAdmin}
	instructor := permissions.Actor{Role: constant.RoleInstructor}
	student := permissions.Actor{Role: constant.RoleStudent}

	assert.True(t, permissions.CanSetEquipmentStatus(admin))
	assert.True(t, permissions.CanSetEquipmentStatus(instructor))
	assert.False(t, permissions.CanSetEquipmentStatus(student))

	assert.True(t, permissions.CanManageCatalog(admin))
	assert.True(t, permissions.CanManageCatalog(instructor))
	assert.False(t, permissions.CanManageCatalog(student))
}
