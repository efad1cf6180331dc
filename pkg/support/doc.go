// Package support builds resin-print support legs for keycaps.
//
// A [Leg] hangs from a contact point on the model: a tapered tip, a short
// angled knee, and a vertical shin down to the build plate, where a
// flared foot is added. Diagonal bars can brace a shin toward its
// neighbours.
//
// Leg parts are memoised in a [Bank] keyed by their canonical parameters,
// so a batch that places many identical legs builds each part once. A bank
// is owned by a single batch run and is safe for concurrent use.
package support
