package api

import (
	"strconv"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

// NormalizeUser collapses the known server envelope shapes for user/session
// data into one canonical User. Shapes are tried in a fixed order:
//
//	(a) { "user": {...} }
//	(b) a bare object carrying an identifier field directly
//	(c) { "success": true, "user": {...} }
//
// Shape (a) is checked before the looser bare-object heuristic (b) so that
// non-user payloads that happen to carry an id are not misread as users.
// A payload matching none of the shapes yields nil, which callers treat as
// "no session", never as an error.
func NormalizeUser(raw any) *domain.User {
	body, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	if nested, ok := body["user"].(map[string]any); ok && stringID(nested) != "" {
		return parseUser(nested)
	}
	if stringID(body) != "" {
		return parseUser(body)
	}
	if success, ok := body["success"].(bool); ok && success {
		if nested, ok := body["user"].(map[string]any); ok {
			return parseUser(nested)
		}
	}
	return nil
}

func parseUser(m map[string]any) *domain.User {
	user := &domain.User{
		ID:        stringID(m),
		Email:     stringField(m, "email"),
		FirstName: stringField(m, "first_name"),
		LastName:  stringField(m, "last_name"),
		Role:      domain.ParseRole(stringField(m, "role")),
		Verified:  boolField(m, "is_verified") || boolField(m, "verified"),
	}
	if user.FirstName == "" {
		user.FirstName = stringField(m, "name")
	}
	if profile, ok := m["profile"].(map[string]any); ok {
		user.Profile = parseProfile(profile)
	}
	return user
}

func parseProfile(m map[string]any) *domain.Profile {
	return &domain.Profile{
		Address:            stringField(m, "address"),
		EmailNotifications: boolField(m, "email_notifications"),
		SMSNotifications:   boolField(m, "sms_notifications"),
		PriceMin:           floatField(m, "price_min"),
		PriceMax:           floatField(m, "price_max"),
		PreferredLocations: stringSlice(m, "preferred_locations"),
		PreferredTypes:     stringSlice(m, "preferred_property_types"),
	}
}

// UnwrapObject digs a nested object out of an envelope, trying the given
// keys in order; a body that is already a bare object is returned as-is.
func UnwrapObject(raw any, keys ...string) map[string]any {
	body, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range keys {
		if nested, ok := body[key].(map[string]any); ok {
			return nested
		}
	}
	return body
}

// UnwrapList digs a list out of an envelope, trying the given keys in
// order; a body that is already a bare array is returned as-is.
func UnwrapList(raw any, keys ...string) []any {
	if list, ok := raw.([]any); ok {
		return list
	}
	body, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range keys {
		if list, ok := body[key].([]any); ok {
			return list
		}
	}
	return nil
}

// stringID reads an identifier that may arrive as a string or a number.
func stringID(m map[string]any) string {
	switch v := m["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func floatField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func stringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
