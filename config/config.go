package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadPoolConfig reads and parses the pool.yml file
func LoadPoolConfig(path string) (*PoolConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open pool config %s: %w", path, err)
	}
	defer file.Close()

	var cfgFile PoolConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, fmt.Errorf("could not decode pool config %s: %w", path, err)
	}

	cfg := &cfgFile.Pool
	if cfg.ProtocolName == "" {
		cfg.ProtocolName = ProtocolName
	}
	if len(cfg.ProtocolName) > MaxSeedLen {
		return nil, fmt.Errorf("protocol name %q exceeds max seed length %d", cfg.ProtocolName, MaxSeedLen)
	}
	if cfg.Decimals == 0 {
		cfg.Decimals = Decimals
	}
	if cfg.Authority == "" {
		return nil, fmt.Errorf("pool config %s is missing authority", path)
	}
	if cfg.AssetMint == "" {
		return nil, fmt.Errorf("pool config %s is missing asset_mint", path)
	}
	return cfg, nil
}

// LoadRPCConfig reads RPC config from an .ini file
func LoadRPCConfig(path string) (*RPCConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	rpcSection := cfg.Section("rpc")
	rpcCfg := &RPCConfig{ListenAddr: ":8899"}
	if err := rpcSection.MapTo(rpcCfg); err != nil {
		return nil, err
	}
	return rpcCfg, nil
}

// LoadStorageConfig reads storage config from an .ini file
func LoadStorageConfig(path string) (*StorageConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	storageSection := cfg.Section("storage")
	storageCfg := &StorageConfig{Backend: "leveldb", Directory: "data"}
	if err := storageSection.MapTo(storageCfg); err != nil {
		return nil, err
	}
	return storageCfg, nil
}
