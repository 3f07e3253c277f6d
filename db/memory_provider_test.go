package db

import (
	"fmt"
	"testing"
)

func TestMemoryProviderRoundtrip(t *testing.T) {
	provider := NewMemoryProvider()
	defer provider.Close()

	if err := provider.Put([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := provider.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != "v1" {
		t.Errorf("Expected v1, got %s", value)
	}

	ok, err := provider.Has([]byte("k1"))
	if err != nil || !ok {
		t.Errorf("Expected key to exist, ok=%v err=%v", ok, err)
	}

	if err := provider.Delete([]byte("k1")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	value, err = provider.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if value != nil {
		t.Errorf("Expected nil for deleted key, got %s", value)
	}
}

func TestMemoryProviderMissingKeyIsNil(t *testing.T) {
	provider := NewMemoryProvider()
	defer provider.Close()

	value, err := provider.Get([]byte("missing"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != nil {
		t.Errorf("Missing key must yield nil, got %v", value)
	}
}

func TestMemoryBatchAtomicVisibility(t *testing.T) {
	provider := NewMemoryProvider()
	defer provider.Close()

	batch := provider.Batch()
	batch.Put([]byte("a"), []byte("1"))
	batch.Put([]byte("b"), []byte("2"))

	if ok, _ := provider.Has([]byte("a")); ok {
		t.Error("Batch contents visible before Write")
	}

	if err := batch.Write(); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	for _, k := range []string{"a", "b"} {
		if ok, _ := provider.Has([]byte(k)); !ok {
			t.Errorf("Key %s missing after batch write", k)
		}
	}
}

func TestMemoryBatchReset(t *testing.T) {
	provider := NewMemoryProvider()
	defer provider.Close()

	batch := provider.Batch()
	batch.Put([]byte("a"), []byte("1"))
	batch.Reset()
	if err := batch.Write(); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if ok, _ := provider.Has([]byte("a")); ok {
		t.Error("Reset batch still wrote its operations")
	}
}

func TestMemoryIteratePrefix(t *testing.T) {
	provider := NewMemoryProvider()
	defer provider.Close()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("stake:%d", i)
		if err := provider.Put([]byte(key), []byte{byte(i)}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	if err := provider.Put([]byte("pool:x"), []byte("p")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	iterable, ok := provider.(IterableProvider)
	if !ok {
		t.Fatal("MemoryProvider must support iteration")
	}

	var keys []string
	err := iterable.IteratePrefix([]byte("stake:"), func(key, value []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	if err != nil {
		t.Fatalf("IteratePrefix failed: %v", err)
	}

	want := []string{"stake:0", "stake:1", "stake:2"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d keys, got %d: %v", len(want), len(keys), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Expected key %s at %d, got %s", k, i, keys[i])
		}
	}
}
