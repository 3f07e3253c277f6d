package types

// PoolBumps stores the disambiguation values found when the pool and custody
// addresses were derived, kept for reuse on later derivations.
type PoolBumps struct {
	Pool    uint8 `json:"pool"`
	Custody uint8 `json:"custody"`
}

// PoolRecord is the singleton protocol-wide record. Exactly one exists per
// deployment, at the address derived from the protocol name alone.
type PoolRecord struct {
	ProtocolName   string    `json:"protocol_name"`
	Authority      string    `json:"authority"`
	CustodyAccount string    `json:"custody_account"`
	AssetMint      string    `json:"asset_mint"`
	Bumps          PoolBumps `json:"bumps"`
}
