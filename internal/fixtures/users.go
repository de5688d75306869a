package fixtures

import (
	"fmt"
	"time"
)

// Authority strings as the backend stores them.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// TestUser is a plain record describing a storefront account. Passwords are
// plaintext on purpose: the harness logs in through the real endpoints.
//
// ActivationKey and ResetKey are mutually exclusive in practice: one marks a
// not-yet-activated account, the other a password-reset in progress.
type TestUser struct {
	ID            string
	Login         string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Authorities   []string
	Activated     bool
	LangKey       string
	ActivationKey string
	ResetKey      string
	ResetDate     *time.Time
}

// Clone returns a deep copy.
func (u TestUser) Clone() TestUser {
	out := u
	out.Authorities = append([]string(nil), u.Authorities...)
	if u.ResetDate != nil {
		d := *u.ResetDate
		out.ResetDate = &d
	}
	return out
}

var adminUser = TestUser{
	ID:          "fixture-user-admin",
	Login:       "e2e-admin",
	Email:       "e2e-admin@zenithbioscience.test",
	Password:    "AdminPassw0rd!e2e",
	FirstName:   "Ada",
	LastName:    "Admin",
	Authorities: []string{RoleUser, RoleAdmin},
	Activated:   true,
	LangKey:     "en",
}

var customerUser = TestUser{
	ID:          "fixture-user-customer",
	Login:       "e2e-customer",
	Email:       "e2e-customer@zenithbioscience.test",
	Password:    "CustomerPassw0rd!e2e",
	FirstName:   "Casey",
	LastName:    "Customer",
	Authorities: []string{RoleUser},
	Activated:   true,
	LangKey:     "en",
}

// isolatedUsers are one-per-spec-file accounts. Test workers run in
// parallel against the shared database, so each spec file owns its user
// (and its order id range) outright instead of taking locks.
var isolatedUsers = []TestUser{
	{ID: "fixture-user-checkout", Login: "e2e-checkout", Email: "e2e-checkout@zenithbioscience.test", Password: "CheckoutPassw0rd!e2e", FirstName: "Chris", LastName: "Checkout", Authorities: []string{RoleUser}, Activated: true, LangKey: "en"},
	{ID: "fixture-user-coupons", Login: "e2e-coupons", Email: "e2e-coupons@zenithbioscience.test", Password: "CouponsPassw0rd!e2e", FirstName: "Corey", LastName: "Coupons", Authorities: []string{RoleUser}, Activated: true, LangKey: "en"},
	{ID: "fixture-user-orders", Login: "e2e-orders", Email: "e2e-orders@zenithbioscience.test", Password: "OrdersPassw0rd!e2e", FirstName: "Olive", LastName: "Orders", Authorities: []string{RoleUser}, Activated: true, LangKey: "en"},
	{ID: "fixture-user-payments", Login: "e2e-payments", Email: "e2e-payments@zenithbioscience.test", Password: "PaymentsPassw0rd!e2e", FirstName: "Pat", LastName: "Payments", Authorities: []string{RoleUser}, Activated: true, LangKey: "en"},
	{ID: "fixture-user-profile", Login: "e2e-profile", Email: "e2e-profile@zenithbioscience.test", Password: "ProfilePassw0rd!e2e", FirstName: "Parker", LastName: "Profile", Authorities: []string{RoleUser}, Activated: true, LangKey: "en"},
	{ID: "fixture-user-address", Login: "e2e-address", Email: "e2e-address@zenithbioscience.test", Password: "AddressPassw0rd!e2e", FirstName: "Avery", LastName: "Address", Authorities: []string{RoleUser}, Activated: true, LangKey: "en"},
}

// AdminUser returns the admin account used for authenticated management calls.
func AdminUser() TestUser { return adminUser.Clone() }

// CustomerUser returns the primary storefront customer.
func CustomerUser() TestUser { return customerUser.Clone() }

// IsolatedUsers returns every per-spec-file account.
func IsolatedUsers() []TestUser {
	out := make([]TestUser, len(isolatedUsers))
	for i, u := range isolatedUsers {
		out[i] = u.Clone()
	}
	return out
}

// IsolatedUser looks up a per-spec-file account by its short name
// ("checkout", "orders", ...).
func IsolatedUser(name string) (TestUser, error) {
	id := "fixture-user-" + name
	for _, u := range isolatedUsers {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return TestUser{}, fmt.Errorf("fixtures: no isolated user %q", name)
}

// RegisterableUsers returns every account created through the public
// registration endpoint during bootstrap: admin, customer, and all isolated
// users. Special key-bearing users are excluded; they are seeded directly.
func RegisterableUsers() []TestUser {
	out := make([]TestUser, 0, 2+len(isolatedUsers))
	out = append(out, adminUser.Clone(), customerUser.Clone())
	for _, u := range isolatedUsers {
		out = append(out, u.Clone())
	}
	return out
}

// UserByEmail looks up any catalog user (registerable or special) by email.
func UserByEmail(email string) (TestUser, error) {
	for _, u := range RegisterableUsers() {
		if u.Email == email {
			return u, nil
		}
	}
	for _, u := range SpecialUsers() {
		if u.Email == email {
			return u, nil
		}
	}
	return TestUser{}, fmt.Errorf("fixtures: no user with email %q", email)
}

// UserByRole returns the first catalog user carrying the given authority.
func UserByRole(role string) (TestUser, error) {
	for _, u := range RegisterableUsers() {
		for _, a := range u.Authorities {
			if a == role {
				return u, nil
			}
		}
	}
	return TestUser{}, fmt.Errorf("fixtures: no user with role %q", role)
}

// OrderOwners maps email to fixture user id for the accounts whose orders
// get reconciled after registration: the primary customer plus the two
// isolated users that own seeded order history.
func OrderOwners() map[string]string {
	return map[string]string{
		customerUser.Email:                   customerUser.ID,
		"e2e-orders@zenithbioscience.test":   "fixture-user-orders",
		"e2e-payments@zenithbioscience.test": "fixture-user-payments",
	}
}

// Known backend issue: the reset-password init endpoint returns an error
// for unknown emails, leaking whether an account exists. The specs document
// the discrepancy rather than asserting either behavior; nothing in the
// catalog or seeder compensates for it.
