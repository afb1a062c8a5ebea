package config

import (
	"path/filepath"
	"sync"
	"testing"
)

func resetGlobal() {
	SetConfig(nil)
	initOnce = *new(sync.Once)
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, "service:\n  name: \"init-test\"\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("GetConfig() returned nil after Initialize")
	}
	if cfg.Service.Name != "init-test" {
		t.Errorf("service name = %q, want init-test", cfg.Service.Name)
	}
}

func TestInitialize_MultipleCallsIgnored(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	first := writeConfig(t, "service:\n  name: \"first\"\n")
	second := writeConfig(t, "service:\n  name: \"second\"\n")

	if err := Initialize(first); err != nil {
		t.Fatalf("first Initialize() error = %v", err)
	}
	if err := Initialize(second); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}

	if got := GetConfig().Service.Name; got != "first" {
		t.Errorf("service name = %q, want first", got)
	}
}

func TestInitialize_Error(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	if err := Initialize(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if GetConfig() != nil {
		t.Error("expected no config after failed Initialize")
	}
}

func TestGetConfig_BeforeInitialize(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	if cfg := GetConfig(); cfg != nil {
		t.Errorf("expected nil config before Initialize, got %+v", cfg)
	}
}

func TestSetConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	cfg := NewDefaultConfig()
	cfg.Service.Name = "injected"
	SetConfig(cfg)

	if got := GetConfig(); got != cfg {
		t.Error("GetConfig() did not return the injected config")
	}
}

func TestGetConfig_Concurrent(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	SetConfig(NewDefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = GetConfig()
		}()
		go func() {
			defer wg.Done()
			SetConfig(NewDefaultConfig())
		}()
	}
	wg.Wait()
}
