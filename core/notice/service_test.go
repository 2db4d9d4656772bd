package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidyasetu/backend/core/user"
)

func TestAudience(t *testing.T) {
	tests := []struct {
		role user.Role
		want []string
	}{
		{role: user.RolePrincipal, want: nil},
		{role: user.RoleAdmin, want: nil},
		{role: user.RoleTeacher, want: []string{"all", "teacher"}},
		{role: user.RoleDriver, want: []string{"all", "driver"}},
		{role: user.RoleParent, want: []string{"all", "parent"}},
		{role: user.RoleStudent, want: []string{"all", "parent"}},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Audience(tt.role))
		})
	}
}
