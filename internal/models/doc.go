// Package models defines the core domain models for ByteBank.
//
// # Models
//
//   - User: a registered account (username + bcrypt password hash)
//   - Transaction: one recorded income or expense event
//   - Summary: aggregate totals derived from a user's ledger
//
// A ledger is simply an insertion-ordered []Transaction scoped to one
// username; there is no separate Ledger type.
//
// # Design Principles
//
//  1. **Flat-file compatibility**: Transaction JSON tags match the file
//     format of the original desktop application, so an existing data
//     directory remains readable.
//  2. **Exact money arithmetic**: amounts are shopspring decimals, never
//     floats, so summaries add up to the cent.
//  3. **Closed UI sets, open store**: categories and payment methods are
//     exported as canonical lists for clients to present; the store only
//     requires the fields to be non-empty.
package models
