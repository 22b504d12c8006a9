package model

import "sort"

const (
	// AdminUsername is the only account with write access to records and accounts.
	AdminUsername = "admin"

	DefaultAdminPassword = "admin123"
	DefaultAdminFullName = "Admin User"
)

// Account is a single entry of the credentials document
type Account struct {
	PasswordHash string `json:"password_hash"`
	FullName     string `json:"full_name"`
}

// Users maps a case-sensitive username to its account
type Users map[string]Account

// Usernames returns all usernames in a stable order.
func (u Users) Usernames() []string {
	names := make([]string, 0, len(u))
	for name := range u {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemovableUsernames returns every username except the admin account.
func (u Users) RemovableUsernames() []string {
	var names []string
	for _, name := range u.Usernames() {
		if name != AdminUsername {
			names = append(names, name)
		}
	}
	return names
}

// Clone returns a shallow copy so callers can mutate the map freely.
func (u Users) Clone() Users {
	out := make(Users, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}
