package auth

import "fmt"

// Role is the closed three-level privilege enum. All role gates go through
// the methods below; handlers never compare raw strings.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
	RoleUser      Role = "user"
)

// ParseRole rejects anything outside the enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSuperuser, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanUploadMaterial reports whether the role may create materials.
func (r Role) CanUploadMaterial() bool {
	return r == RoleAdmin || r == RoleSuperuser
}

// CanModifyMaterial reports whether a user with this role may update or
// delete a material uploaded by uploaderID. Admins may touch anything,
// superusers only their own uploads, plain users nothing.
func (r Role) CanModifyMaterial(uploaderID, userID int64) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleSuperuser:
		return uploaderID == userID
	}
	return false
}
