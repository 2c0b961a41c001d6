package service

// Authorizer answers privilege questions from the configured admin ids.
type Authorizer struct {
	admins map[uint]struct{}
}

// NewAuthorizer creates an Authorizer for the given admin user ids.
func NewAuthorizer(adminIDs []uint) *Authorizer {
	a := &Authorizer{admins: make(map[uint]struct{}, len(adminIDs))}
	for _, id := range adminIDs {
		a.admins[id] = struct{}{}
	}
	return a
}

// IsAdmin reports whether userID is privileged.
func (a *Authorizer) IsAdmin(userID uint) bool {
	_, ok := a.admins[userID]
	return ok
}

// CanModify reports whether caller may change a row owned by owner.
// Rows without an owner are admin only.
func (a *Authorizer) CanModify(caller uint, owner *uint) bool {
	if a.IsAdmin(caller) {
		return true
	}
	return owner != nil && *owner == caller
}
