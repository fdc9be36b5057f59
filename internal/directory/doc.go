// Package directory is the identity directory: the email-keyed set of
// registered accounts, persisted as one slot.
//
// The directory owns its records. Everything it hands out is a copy; changes
// made by callers only take effect through Upsert and UpdateAvatar. Each
// mutation rewrites the whole slot (write-through). When that write fails the
// in-memory change stands and the error is returned so the caller can log it.
//
// Email matching is exact: "Ana@x.com" and "ana@x.com" are different
// identities, and surrounding whitespace is significant.
package directory
