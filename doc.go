// Package moneymetrics keeps personal finance datasets, such as a 401(k)
// contribution schedule, and the description of the screens used to look at
// them.
//
// The package is made of three independent parts:
//   - Store: named datasets, held as private copies of their JSON encoding.
//   - Ledger: an ordered list of monthly entries whose balances are
//     recomputed after every change.
//   - Profile: a snapshot of datasets and screens persisted as a single JSON
//     file.
//
// A Workspace ties them together for an interactive shell: it owns a Store,
// the list of open screens, and can be converted to and from a Profile.
//
// This package is the foundation of the `mm` command-line tool.
package moneymetrics
