package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole(t *testing.T) {
	cases := []struct {
		name string
		user User
		want Role
	}{
		{"no flags", User{}, RoleParent},
		{"teacher flag", User{IsTeacher: true}, RoleTeacher},
		{"admin flag", User{IsAdmin: true}, RoleAdmin},
		{"admin wins over teacher", User{IsAdmin: true, IsTeacher: true}, RoleAdmin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.Role())
		})
	}
}
