package config

// PoolConfig is the deployment-wide configuration loaded once at startup and
// threaded into every component. It mirrors the on-ledger PoolRecord: the
// record is authoritative after initialization, this file seeds it.
type PoolConfig struct {
	ProtocolName string           `yaml:"protocol_name"`
	Authority    string           `yaml:"authority"`
	AssetMint    string           `yaml:"asset_mint"`
	Decimals     uint32           `yaml:"decimals"`
	Genesis      []GenesisAccount `yaml:"genesis_accounts"`
}

// GenesisAccount funds a token account at pool bootstrap time.
type GenesisAccount struct {
	Address string `yaml:"address"`
	Amount  string `yaml:"amount"`
}

// PoolConfigFile wraps PoolConfig for YAML decoding
type PoolConfigFile struct {
	Pool PoolConfig `yaml:"pool"`
}

// RPCConfig configures the JSON-RPC listener
type RPCConfig struct {
	ListenAddr string `ini:"listen_addr"`
}

// StorageConfig selects and locates the database backend
type StorageConfig struct {
	Backend   string `ini:"backend"` // leveldb | bolt | redis | memory
	Directory string `ini:"directory"`
	RedisAddr string `ini:"redis_addr"`
}
