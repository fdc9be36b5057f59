// Package records is the durable record store: named slots, each holding one
// serialized aggregate, kept in a local SQLite database.
//
// # Contract
//
//   - Read returns (nil, nil) for a missing slot; it never fails because a
//     slot does not exist.
//   - Every value is stored next to a BLAKE2b-256 checksum. A value whose
//     checksum does not match (torn write, manual tampering) is erased and
//     reported as common.ErrorCorrupted, which callers treat as "empty".
//   - Load decodes JSON into the caller's value; an undecodable blob is
//     erased the same way.
//   - Batch groups writes from several aggregates into one transaction.
//
// # Slots
//
//	identity-directory    JSON array of directory.Identity
//	active-session        JSON object of directory.Identity
//	favorites-collection  JSON array of catalog item ids
//
// Slots are independent: corruption of one never affects another.
package records
