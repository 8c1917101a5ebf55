package domain

import "testing"

func TestUser_CanModify(t *testing.T) {
	admin := &User{ID: "u1", Role: RoleAdmin}
	owner := &User{ID: "u2", Role: RoleUser}
	other := &User{ID: "u3", Role: RoleUser}

	cases := []struct {
		name    string
		actor   *User
		ownerID string
		want    bool
	}{
		{"admin modifies anything", admin, "u2", true},
		{"admin modifies ownerless resource", admin, "", true},
		{"owner modifies own resource", owner, "u2", true},
		{"non-owner denied", other, "u2", false},
		{"non-admin denied on ownerless resource", owner, "", false},
		{"nil actor denied", nil, "u2", false},
		{"nil actor denied on ownerless resource", nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.actor.CanModify(tc.ownerID); got != tc.want {
				t.Errorf("CanModify(%q) = %v, want %v", tc.ownerID, got, tc.want)
			}
		})
	}
}
