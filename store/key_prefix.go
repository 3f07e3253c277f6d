package store

// Key prefixes namespace the record kinds inside one shared key-value
// backend. Both record kinds are addressed purely by derived location.
const (
	PrefixPool    = "pool:"
	PrefixStake   = "stake:"
	PrefixAccount = "account:"
)
