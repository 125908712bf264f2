// Package rbac decides which console areas a staff member may open.
package rbac

import (
	"strings"
)

// Role is a console role name as carried in identity-token claims.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleEditor      Role = "editor"
	RoleContributor Role = "contributor"
	RoleModerator   Role = "moderator"
)

// Capability names one area of the console.
type Capability string

const (
	CapArticles    Capability = "article.manage"
	CapWebpages    Capability = "webpage.manage"
	CapWikis       Capability = "wiki.manage"
	CapDiscuss     Capability = "discuss.manage"
	CapAttachments Capability = "attachment.manage"
	CapUsers       Capability = "user.manage"
	CapNavigation  Capability = "navigation.manage"
	CapSettings    Capability = "setting.manage"
)

// All lists every console capability in sidebar order.
var All = []Capability{
	CapArticles, CapWebpages, CapWikis, CapDiscuss,
	CapAttachments, CapUsers, CapNavigation, CapSettings,
}

// grants is what each non-admin role may manage. Admin is granted everything.
var grants = map[Role][]Capability{
	RoleEditor:      {CapArticles, CapWebpages, CapWikis, CapDiscuss, CapAttachments, CapNavigation},
	RoleContributor: {CapArticles, CapAttachments},
	RoleModerator:   {CapDiscuss},
}

// ParseRole canonicalises a claim value. Unknown names yield "" and false.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if role == RoleAdmin {
		return role, true
	}
	if _, ok := grants[role]; ok {
		return role, true
	}
	return "", false
}

// Roles is a de-duplicated set of known roles.
type Roles []Role

// NormaliseRoles parses raw claim values, dropping unknown and repeated names.
func NormaliseRoles(raw []string) Roles {
	var roles Roles
	for _, val := range raw {
		role, ok := ParseRole(val)
		if !ok || roles.Has(role) {
			continue
		}
		roles = append(roles, role)
	}
	return roles
}

// Has reports whether role is in the set.
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Can reports whether any role in the set grants capability.
func (rs Roles) Can(capability Capability) bool {
	if rs.Has(RoleAdmin) {
		return known(capability)
	}
	for _, role := range rs {
		for _, c := range grants[role] {
			if c == capability {
				return true
			}
		}
	}
	return false
}

func known(capability Capability) bool {
	for _, c := range All {
		if c == capability {
			return true
		}
	}
	return false
}

// HasCapability reports whether userRoles may open the area guarded by capability.
// An empty capability guards nothing.
func HasCapability(userRoles []string, capability Capability) bool {
	if capability == "" {
		return true
	}
	return NormaliseRoles(userRoles).Can(capability)
}

// CapabilitiesForRoles returns the set of capabilities userRoles grant.
func CapabilitiesForRoles(userRoles []string) map[Capability]bool {
	roles := NormaliseRoles(userRoles)
	caps := make(map[Capability]bool, len(All))
	for _, c := range All {
		if roles.Can(c) {
			caps[c] = true
		}
	}
	return caps
}
