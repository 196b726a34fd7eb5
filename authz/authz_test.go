package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campus-events-backend/authz"
	"campus-events-backend/models"
)

func user(role models.UserRole, branch *string) *models.User {
	return &models.User{ID: 1, Role: role, Branch: branch}
}

func strptr(s string) *string { return &s }

func TestCanReviewBranch(t *testing.T) {
	tests := []struct {
		name   string
		user   *models.User
		branch string
		want   bool
	}{
		{"admin any branch", user(models.UserRoleAdmin, nil), "IT", true},
		{"admin with branch still unrestricted", user(models.UserRoleAdmin, strptr("CS")), "IT", true},
		{"faculty matching branch", user(models.UserRoleFaculty, strptr("CS")), "CS", true},
		{"faculty branch mismatch", user(models.UserRoleFaculty, strptr("CS")), "IT", false},
		{"faculty without branch is college-wide", user(models.UserRoleFaculty, nil), "IT", true},
		{"branch comparison is case-sensitive", user(models.UserRoleFaculty, strptr("cs")), "CS", false},
		{"student never reviews", user(models.UserRoleStudent, strptr("CS")), "CS", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, authz.CanReviewBranch(tt.user, tt.branch))
		})
	}
}

func TestScopeFor(t *testing.T) {
	t.Run("admin sees all", func(t *testing.T) {
		s := authz.ScopeFor(user(models.UserRoleAdmin, nil))
		assert.True(t, s.All)
		assert.False(t, s.None)
	})

	t.Run("faculty with branch sees only that branch", func(t *testing.T) {
		s := authz.ScopeFor(user(models.UserRoleFaculty, strptr("CS")))
		assert.False(t, s.All)
		assert.False(t, s.None)
		assert.Equal(t, "CS", s.Branch)
	})

	// A branchless faculty member can review any branch but lists nothing.
	// The asymmetry with CanReviewBranch is intentional.
	t.Run("faculty without branch sees nothing", func(t *testing.T) {
		u := user(models.UserRoleFaculty, nil)
		assert.True(t, authz.ScopeFor(u).None)
		assert.True(t, authz.CanReviewBranch(u, "IT"))
	})

	t.Run("student sees nothing", func(t *testing.T) {
		assert.True(t, authz.ScopeFor(user(models.UserRoleStudent, nil)).None)
	})
}
