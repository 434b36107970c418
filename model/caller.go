package model

import "strings"

type AccessLevel string

const (
	AccessLevelAdmin  AccessLevel = "ADMIN"
	AccessLevelMember AccessLevel = "MEMBER"
)

// Caller identifies the authenticated user a query runs on behalf of.
type Caller struct {
	UserID int64         `json:"userId"`
	Handle string        `json:"handle,omitempty"`
	Roles  []AccessLevel `json:"roles"`
}

// HasAnyAccess reports whether the caller holds at least one of the given levels.
// Role names are compared case-insensitively.
func (c Caller) HasAnyAccess(levels ...AccessLevel) bool {
	for _, role := range c.Roles {
		for _, level := range levels {
			if strings.EqualFold(string(role), string(level)) {
				return true
			}
		}
	}
	return false
}
