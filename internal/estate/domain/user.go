package domain

import "time"

type Role string

const (
	RoleBuyer            Role = "buyer"
	RoleSeller           Role = "seller"
	RoleAgent            Role = "agent"
	RoleAdmin            Role = "admin"
	RoleManagementClient Role = "management_client"
)

// ParseRole maps a raw role tag onto the fixed set. Unknown or empty tags
// fall back to RoleBuyer rather than being rejected.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleBuyer, RoleSeller, RoleAgent, RoleAdmin, RoleManagementClient:
		return Role(raw)
	default:
		return RoleBuyer
	}
}

type Profile struct {
	Address            string
	EmailNotifications bool
	SMSNotifications   bool
	PriceMin           float64
	PriceMax           float64
	PreferredLocations []string
	PreferredTypes     []string
}

type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	Verified  bool
	Profile   *Profile
}

func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Session is the current-user state. A zero Session is anonymous; it is
// replaced wholesale on every login/register/refresh and cleared on logout
// or any authentication failure.
type Session struct {
	User      *User
	ExpiresAt time.Time
}

func (s Session) Authenticated() bool {
	return s.User != nil
}
