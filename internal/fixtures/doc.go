// Package fixtures is the canonical catalog of hand-authored test data for
// the storefront e2e suite: users, products, coupons, orders, Bitcoin
// payments, addresses and payment-method configurations.
//
// Two rules hold for every accessor in this package:
//
//   - Returned entities are deep copies. A test mutating what it got back
//     can never corrupt the canonical catalog.
//   - Lookups by key fail fast with an error when the key is absent. A typo
//     in a test becomes an immediate failure instead of a zero value
//     propagating into assertions three files away.
//
// Cross-references (order → user, order → product, payment → order) use the
// fixture-authored ids. User ids are rewritten to the backend-assigned ids
// during bootstrap reconciliation; everything else keeps its authored id.
package fixtures
