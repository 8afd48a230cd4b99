// Package identity keeps the session's user projection eventually
// consistent with the backend's authoritative account record, without
// ever blocking a caller that can render from cache.
package identity

import (
	"strconv"

	"github.com/schoolctl/schoolctl/internal/api"
	"github.com/schoolctl/schoolctl/internal/session"
)

// Project narrows a backend account record into the session's user
// shape: numeric id rendered as a string, role taken from the first
// nested role, avatar from the profile image reference.
func Project(account *api.Account) *session.User {
	if account == nil {
		return nil
	}
	user := &session.User{
		ID:     strconv.FormatInt(account.ID, 10),
		Email:  account.Email,
		Name:   account.Name,
		Avatar: account.ProfileImage,
	}
	if len(account.Roles) > 0 {
		user.Role = account.Roles[0].Name
	}
	return user
}

// Synthetic rebuilds a minimal account record from a cached projection
// so callers can render before the first fetch completes. The status
// defaults to "active" and the role shape is re-derived from the cached
// role label; a suspended account therefore renders as active until the
// real record arrives.
func Synthetic(user *session.User) *api.Account {
	if user == nil {
		return nil
	}
	id, _ := strconv.ParseInt(user.ID, 10, 64)
	account := &api.Account{
		ID:           id,
		Email:        user.Email,
		Name:         user.Name,
		Status:       api.AccountStatusActive,
		ProfileImage: user.Avatar,
	}
	if user.Role != "" {
		account.Roles = []api.AccountRole{{Name: user.Role}}
	}
	return account
}
