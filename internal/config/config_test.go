package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Human() != ttt.CrossTurn {
		t.Errorf("Human()=%v, want=%v", cfg.Human(), ttt.CrossTurn)
	}

	limits := cfg.Limits()
	if !limits.Infinite || !limits.Memoize || limits.NThreads != 1 {
		t.Errorf("Limits()=%v", limits)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"side", func(c *Config) { c.HumanSide = "z" }},
		{"threads", func(c *Config) { c.Engine.Threads = 0 }},
		{"nodes", func(c *Config) { c.Engine.Nodes = -1 }},
		{"nodes overflow", func(c *Config) {
			nodes := int64(math.MaxUint32)
			c.Engine.Nodes = int(nodes + 1)
		}},
		{"addr", func(c *Config) { c.Server.Addr = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig
			tc.modify(&cfg)

			var invalid *InvalidConfig
			if err := cfg.Validate(); !errors.As(err, &invalid) {
				t.Errorf("Validate()=%v, want *InvalidConfig", err)
			}
		})
	}
}

func TestLimits(t *testing.T) {
	cfg := DefaultConfig
	cfg.Engine = EngineConfig{Movetime: 500, Nodes: 1000, Threads: 4}

	limits := cfg.Limits()
	if limits.Infinite || limits.Movetime != 500 || limits.Nodes != 1000 || limits.NThreads != 4 || limits.Memoize {
		t.Errorf("Limits()=%v", limits)
	}
}

func TestSaveAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig
	cfg.HumanSide = "o"
	cfg.Server.Addr = "127.0.0.1:9000"
	if err := saveCfgFile(path, &cfg, 0664); err != nil {
		t.Fatal(err)
	}

	read := DefaultConfig
	if err := readCfgFile(path, &read); err != nil {
		t.Fatal(err)
	}
	if read != cfg {
		t.Errorf("read %+v, want %+v", read, cfg)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0664); err != nil {
		t.Fatal(err)
	}
	var invalid *InvalidConfig
	if err := readCfgFile(path, &read); !errors.As(err, &invalid) {
		t.Errorf("readCfgFile()=%v, want *InvalidConfig", err)
	}

	// found, but can't be read
	if err := readCfgFile(t.TempDir(), &read); !errors.As(err, &invalid) {
		t.Errorf("readCfgFile(dir)=%v, want *InvalidConfig", err)
	}
}

func TestLimitsMaxNodes(t *testing.T) {
	if math.MaxInt < math.MaxUint32 {
		t.Skip("int can't hold the node limit")
	}

	nodes := int64(math.MaxUint32)
	cfg := DefaultConfig
	cfg.Engine.Nodes = int(nodes)
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := cfg.Limits().Nodes; got != math.MaxUint32 {
		t.Errorf("Limits().Nodes=%d, want=%d", got, uint32(math.MaxUint32))
	}
}
