package fixtures

import (
	"fmt"
	"time"
)

// Special users carry activation or reset keys the public registration
// endpoint cannot set, so bootstrap seeds them straight into the database.
// Each exists once per browser category; keys are consumed by the flows
// under test and must not be shared across browser projects.

// kind is one of "pending-activation", "pending-reset", "expired-reset".
var specialKeys = map[BrowserCategory]map[string]string{
	BrowserDefault: {
		"pending-activation": "8472619305",
		"pending-reset":      "1938475062",
		"expired-reset":      "5061728394",
	},
	BrowserFirefox: {
		"pending-activation": "2847193650",
		"pending-reset":      "7361905284",
		"expired-reset":      "9205817463",
	},
	BrowserMobile: {
		"pending-activation": "6193805247",
		"pending-reset":      "4829561370",
		"expired-reset":      "3574902816",
	},
}

func specialUser(kind string, cat BrowserCategory) TestUser {
	suffix := cat.String()
	key := specialKeys[cat][kind]
	u := TestUser{
		ID:          fmt.Sprintf("fixture-user-%s-%s", kind, suffix),
		Login:       fmt.Sprintf("e2e-%s-%s", kind, suffix),
		Email:       fmt.Sprintf("e2e-%s-%s@zenithbioscience.test", kind, suffix),
		Password:    "SpecialPassw0rd!e2e",
		FirstName:   "Sam",
		LastName:    "Special",
		Authorities: []string{RoleUser},
		LangKey:     "en",
	}
	now := time.Now().UTC()
	switch kind {
	case "pending-activation":
		u.Activated = false
		u.ActivationKey = key
	case "pending-reset":
		u.Activated = true
		u.ResetKey = key
		d := now.Add(-5 * time.Minute)
		u.ResetDate = &d
	case "expired-reset":
		u.Activated = true
		u.ResetKey = key
		// well past the backend's 24h reset window
		d := now.Add(-48 * time.Hour)
		u.ResetDate = &d
	}
	return u
}

// PendingActivationUser returns the not-yet-activated account for a browser
// category. Its activation key is pre-baked so the activation page can be
// driven without an email round trip.
func PendingActivationUser(cat BrowserCategory) TestUser {
	return specialUser("pending-activation", cat)
}

// PendingResetUser returns the account with a fresh, usable reset key.
func PendingResetUser(cat BrowserCategory) TestUser {
	return specialUser("pending-reset", cat)
}

// ExpiredResetUser returns the account whose reset key is past the window.
func ExpiredResetUser(cat BrowserCategory) TestUser {
	return specialUser("expired-reset", cat)
}

// SpecialUsers returns every key-bearing account across all browser
// categories, in a stable order.
func SpecialUsers() []TestUser {
	cats := []BrowserCategory{BrowserDefault, BrowserFirefox, BrowserMobile}
	kinds := []string{"pending-activation", "pending-reset", "expired-reset"}
	out := make([]TestUser, 0, len(cats)*len(kinds))
	for _, cat := range cats {
		for _, kind := range kinds {
			out = append(out, specialUser(kind, cat))
		}
	}
	return out
}

// SpecialUserKey returns the pre-baked key for a kind and browser category,
// failing fast on an unknown kind.
func SpecialUserKey(kind string, cat BrowserCategory) (string, error) {
	keys, ok := specialKeys[cat]
	if !ok {
		return "", fmt.Errorf("fixtures: no keys for browser category %s", cat)
	}
	k, ok := keys[kind]
	if !ok {
		return "", fmt.Errorf("fixtures: no special user kind %q", kind)
	}
	return k, nil
}
