package domain

// Role is the access role carried by an authenticated caller.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Caller is the authenticated identity threaded explicitly into each
// operation, never held as ambient state.
type Caller struct {
	ID   string
	Role Role
}

// CanModify reports whether the caller may edit or delete the product
// owned by ownerID.
func (c Caller) CanModify(ownerID string) bool {
	return c.Role == RoleSeller && c.ID == ownerID
}
