package user

import "context"

// Role is the privilege level stored on a user record.
type Role int

const (
	RoleAdmin       Role = 0
	RoleEditor      Role = 10
	RoleContributor Role = 100
	RoleSubscriber  Role = 1000
	RoleGuest       Role = 10000000
)

// String returns the console label for the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleEditor:
		return "Editor"
	case RoleContributor:
		return "Contributor"
	case RoleSubscriber:
		return "Subscriber"
	default:
		return "Guest"
	}
}

// User is the public profile attached to discussion content. LockedUntil is in Unix milliseconds.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Role        Role   `json:"role"`
	LockedUntil int64  `json:"locked_until,omitempty"`
}

// Bindable is a record that references a user by identifier and can hold the hydrated user.
type Bindable interface {
	BoundUserID() string
	BindUser(*User)
}

// Service hydrates user references on records.
type Service interface {
	// BindUsers resolves the user of every record and attaches it in place.
	// Records whose user cannot be found are bound to nil.
	BindUsers(ctx context.Context, records []Bindable) error
}

func distinctIDs(records []Bindable) []string {
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		id := record.BoundUserID()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func bindAll(records []Bindable, users map[string]*User) {
	for _, record := range records {
		if record == nil {
			continue
		}
		record.BindUser(users[record.BoundUserID()])
	}
}
