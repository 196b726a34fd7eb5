// Package authz holds the role/branch scoping rules for reviewer operations.
//
// Two deliberately different rules apply to faculty without a branch:
// for writes (approve/reject) an unset branch means college-wide authority,
// while for listing requests an unset branch means nothing is visible.
package authz

import "campus-events-backend/models"

// CanReviewBranch reports whether u may approve or reject a request scoped to
// resourceBranch. Admins always may; faculty may when they have no branch
// (college-wide staff) or when their branch matches exactly. Branch strings
// are free-form and compared case-sensitively.
func CanReviewBranch(u *models.User, resourceBranch string) bool {
	switch u.Role {
	case models.UserRoleAdmin:
		return true
	case models.UserRoleFaculty:
		return u.Branch == nil || *u.Branch == resourceBranch
	case models.UserRoleStudent:
		return false
	}
	return false
}

// RequestScope describes which event requests a reviewer can list.
type RequestScope struct {
	// All means no branch restriction (admins).
	All bool
	// Branch restricts visibility to a single branch (faculty with a branch).
	Branch string
	// None means no requests are visible (faculty without a branch).
	None bool
}

// ScopeFor returns the listing scope for u. Note the asymmetry with
// CanReviewBranch: a branchless faculty member can review anything but
// lists nothing.
func ScopeFor(u *models.User) RequestScope {
	switch u.Role {
	case models.UserRoleAdmin:
		return RequestScope{All: true}
	case models.UserRoleFaculty:
		if u.Branch != nil {
			return RequestScope{Branch: *u.Branch}
		}
		return RequestScope{None: true}
	case models.UserRoleStudent:
		return RequestScope{None: true}
	}
	return RequestScope{None: true}
}
