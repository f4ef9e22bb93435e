/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

// AmbiguousSlugError is a fatal configuration error: two configured users
// normalize to the same slug, so slug lookups cannot be trusted.
type AmbiguousSlugError struct {
	Slug  string
	Users []string
}

func (e *AmbiguousSlugError) Error() string {
	return fmt.Sprintf("ambiguous config: users %s all slugify to %q; fix config.json before running", strings.Join(e.Users, ", "), e.Slug)
}

// User resolves a free-form identifier (username, email, slug, or display
// name) to a configured user record. Lookup order: exact username, exact
// email, slugified name, case-insensitive full name. A slug collision between
// two configured users is fatal rather than silently picking one.
func User(users []domain.User, identifier string) (domain.User, error) {
	id := strings.TrimSpace(identifier)
	if id == "" { return domain.User{}, fmt.Errorf("%w: empty identifier", ErrUserNotFound) }

	if err := checkSlugCollisions(users); err != nil { return domain.User{}, err }

	for _, u := range users {
		if u.Username == id { return u, nil }
	}
	lower := strings.ToLower(id)
	for _, u := range users {
		if u.Email != "" && strings.ToLower(u.Email) == lower { return u, nil }
	}
	slug := Slugify(id)
	if slug != "" {
		for _, u := range users {
			if Slugify(u.Name) == slug || Slugify(u.Username) == slug { return u, nil }
		}
	}
	for _, u := range users {
		if strings.EqualFold(u.Name, id) { return u, nil }
	}
	return domain.User{}, fmt.Errorf("%w: %q is not a username, email, or name in config.json", ErrUserNotFound, identifier)
}

func checkSlugCollisions(users []domain.User) error {
	seen := map[string][]string{}
	for _, u := range users {
		s := Slugify(u.Name)
		if s == "" { continue }
		seen[s] = append(seen[s], u.Name)
	}
	for slug, names := range seen {
		if len(names) > 1 {
			return &AmbiguousSlugError{Slug: slug, Users: names}
		}
	}
	return nil
}

// Slug returns the stable path component for a user: the slugified display
// name, or the slugified username when no name is configured.
func Slug(u domain.User) string {
	if u.Name != "" { return Slugify(u.Name) }
	return Slugify(u.Username)
}

// FetchLogin picks the identity a fetcher should query by. JIRA queries
// prefer the email; GitHub queries prefer the username.
func FetchLogin(u domain.User, preferEmail bool) string {
	if preferEmail {
		if u.Email != "" { return u.Email }
		return u.Username
	}
	if u.Username != "" { return u.Username }
	return u.Email
}
