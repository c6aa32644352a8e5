package domain

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleCompany UserRole = "company"
)

type User struct {
	ID        uint64
	Login     string
	Password  string
	Role      UserRole
	CompanyID *uint64
}

// Actor is the verified identity behind an operation. It is passed
// explicitly into every core operation; the core holds no ambient
// session state.
type Actor struct {
	UserID      uint64   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Role        UserRole `json:"role"`
	CompanyID   *uint64  `json:"company_id,omitempty"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == UserRoleAdmin
}

// OwnsCompany reports whether the actor is a company actor scoped to
// the given company.
func (a Actor) OwnsCompany(companyID uint64) bool {
	return a.CompanyID != nil && *a.CompanyID == companyID
}
