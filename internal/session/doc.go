// Package session tracks the single active identity.
//
// The manager holds a copy of the directory record for the logged-in
// identity and persists it in the "active-session" slot. Roles are never
// stored: Current recomputes them from the configured Policy on every call,
// so changing the policy takes effect without a new login.
//
// Logging in goes through the identity directory first and writes the
// session slot afterwards. The two writes are independent; a failure of one
// does not undo the other. Avatar updates are the exception and write both
// slots in one records.Store batch.
package session
