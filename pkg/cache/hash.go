package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// digestLen is the number of hex digits kept from each hash in a key. Keys
// stay readable in redis listings and 64 bits is ample for a local store.
const digestLen = 16

// artifactKey builds "<kind>:<subject>:<options>", where subject is a spec or
// set hash and options is the digest of the JSON-encoded export options.
func artifactKey(kind, subject string, opts any) string {
	data, _ := json.Marshal(opts)
	return strings.Join([]string{kind, short(subject), short(Hash(data))}, ":")
}

func short(h string) string {
	if len(h) > digestLen {
		return h[:digestLen]
	}
	return h
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SetHash hashes a set of strings independent of their order, for keys
// over a group of specs such as an assembly layout.
func SetHash(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	data, _ := json.Marshal(sorted)
	return Hash(data)
}
