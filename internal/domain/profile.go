package domain

import "strings"

// DefaultProfileName seeds the registry on first launch.
const DefaultProfileName = "Default User"

// Profile is a named container for one dispatcher's tasks. Its name is its
// identity.
type Profile struct {
	Name string `json:"name"`
}

// NewProfile creates a profile with a trimmed name.
func NewProfile(name string) Profile {
	return Profile{Name: strings.TrimSpace(name)}
}

// String returns the profile name for display purposes.
func (p Profile) String() string {
	return p.Name
}

// IndexOf returns the position of the profile named name, or -1.
func IndexOf(profiles []Profile, name string) int {
	for i, p := range profiles {
		if p.Name == name {
			return i
		}
	}
	return -1
}
