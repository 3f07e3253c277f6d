package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("could not write %s: %v", name, err)
	}
	return path
}

func TestLoadPoolConfig(t *testing.T) {
	path := writeTempFile(t, "pool.yml", `
pool:
  protocol_name: staking_05
  authority: Pauthr1tyAdm1n333333333333333333333333333333
  asset_mint: SeededM1nt4444444444444444444444444444444444
  decimals: 9
  genesis_accounts:
    - address: A1iceStakerWa11et111111111111111111111111111
      amount: 2_000_000_000
`)

	cfg, err := LoadPoolConfig(path)
	if err != nil {
		t.Fatalf("LoadPoolConfig failed: %v", err)
	}
	if cfg.ProtocolName != "staking_05" {
		t.Errorf("Expected protocol staking_05, got %s", cfg.ProtocolName)
	}
	if cfg.Decimals != 9 {
		t.Errorf("Expected decimals 9, got %d", cfg.Decimals)
	}
	if len(cfg.Genesis) != 1 || cfg.Genesis[0].Amount != "2_000_000_000" {
		t.Errorf("Genesis accounts not parsed: %+v", cfg.Genesis)
	}
}

func TestLoadPoolConfigDefaults(t *testing.T) {
	path := writeTempFile(t, "pool.yml", `
pool:
  authority: Pauthr1tyAdm1n333333333333333333333333333333
  asset_mint: SeededM1nt4444444444444444444444444444444444
`)

	cfg, err := LoadPoolConfig(path)
	if err != nil {
		t.Fatalf("LoadPoolConfig failed: %v", err)
	}
	if cfg.ProtocolName != ProtocolName {
		t.Errorf("Expected default protocol name, got %s", cfg.ProtocolName)
	}
	if cfg.Decimals != Decimals {
		t.Errorf("Expected default decimals, got %d", cfg.Decimals)
	}
}

func TestLoadPoolConfigMissingAuthority(t *testing.T) {
	path := writeTempFile(t, "pool.yml", `
pool:
  asset_mint: SeededM1nt4444444444444444444444444444444444
`)
	if _, err := LoadPoolConfig(path); err == nil {
		t.Fatal("Expected error for missing authority")
	}
}

func TestLoadPoolConfigOversizedProtocolName(t *testing.T) {
	path := writeTempFile(t, "pool.yml", `
pool:
  protocol_name: this_protocol_name_is_far_too_long_for_a_seed
  authority: Pauthr1tyAdm1n333333333333333333333333333333
  asset_mint: SeededM1nt4444444444444444444444444444444444
`)
	if _, err := LoadPoolConfig(path); err == nil {
		t.Fatal("Expected error for oversized protocol name")
	}
}

func TestLoadNodeConfig(t *testing.T) {
	path := writeTempFile(t, "node.ini", `
[rpc]
listen_addr = :9099

[storage]
backend = memory
directory = /tmp/seedpool
`)

	rpcCfg, err := LoadRPCConfig(path)
	if err != nil {
		t.Fatalf("LoadRPCConfig failed: %v", err)
	}
	if rpcCfg.ListenAddr != ":9099" {
		t.Errorf("Expected :9099, got %s", rpcCfg.ListenAddr)
	}

	storageCfg, err := LoadStorageConfig(path)
	if err != nil {
		t.Fatalf("LoadStorageConfig failed: %v", err)
	}
	if storageCfg.Backend != "memory" || storageCfg.Directory != "/tmp/seedpool" {
		t.Errorf("Storage config not parsed: %+v", storageCfg)
	}
}

func TestLoadNodeConfigDefaults(t *testing.T) {
	path := writeTempFile(t, "node.ini", "")

	rpcCfg, err := LoadRPCConfig(path)
	if err != nil {
		t.Fatalf("LoadRPCConfig failed: %v", err)
	}
	if rpcCfg.ListenAddr != ":8899" {
		t.Errorf("Expected default :8899, got %s", rpcCfg.ListenAddr)
	}

	storageCfg, err := LoadStorageConfig(path)
	if err != nil {
		t.Fatalf("LoadStorageConfig failed: %v", err)
	}
	if storageCfg.Backend != "leveldb" {
		t.Errorf("Expected default leveldb backend, got %s", storageCfg.Backend)
	}
}
