// Package users persists accounts and their profiles.
//
// # Data Model
//
// A users row holds the username (unique, case-sensitive), the one-way login
// digest and the account status. A user_profiles row (1:1, optional columns)
// carries the registration details. Rows are never deleted.
//
// Status writes come in two flavours: SetStatus overwrites unconditionally and
// CompareAndSetStatus only moves a row that is still in the expected state, in
// a single UPDATE, so a transition can never be half-applied.
package users
