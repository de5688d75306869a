package fixtures

import "fmt"

// TestAddress is a shipping address attached to users and orders.
type TestAddress struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Clone returns a copy. Addresses are flat value records.
func (a TestAddress) Clone() TestAddress { return a }

var addresses = map[string]TestAddress{
	"default": {
		Street:     "2847 Larkspur Lane",
		City:       "Boulder",
		State:      "CO",
		PostalCode: "80301",
		Country:    "US",
	},
	"billing": {
		Street:     "501 Mercantile Row, Suite 4",
		City:       "Denver",
		State:      "CO",
		PostalCode: "80202",
		Country:    "US",
	},
	"international": {
		Street:     "14 Rue des Lilas",
		City:       "Lyon",
		State:      "",
		PostalCode: "69003",
		Country:    "FR",
	},
}

// Address looks up a named address ("default", "billing", "international").
func Address(name string) (TestAddress, error) {
	a, ok := addresses[name]
	if !ok {
		return TestAddress{}, fmt.Errorf("fixtures: no address named %q", name)
	}
	return a.Clone(), nil
}

// DefaultAddress returns the address used when a spec has no preference.
func DefaultAddress() TestAddress {
	return addresses["default"].Clone()
}
