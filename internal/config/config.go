package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/adrg/xdg"

	"github.com/IlikeChooros/go-tictactoe/pkg/minimax"
	"github.com/IlikeChooros/go-tictactoe/pkg/ttt"
)

var (
	cfgFile = "go-tictactoe/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	Cross       string `json:"cross"`
	Circle      string `json:"circle"`
	Grid        string `json:"grid"`
	WinningLine string `json:"winning_line"`
}

type EngineConfig struct {
	Movetime int  `json:"movetime"`
	Nodes    int  `json:"nodes"`
	Threads  int  `json:"threads"`
	Memoize  bool `json:"memoize"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

type Config struct {
	// Side of the human player in 'play' mode, "x" or "o"
	HumanSide string       `json:"human_side"`
	Colors    ConfigColors `json:"colors"`
	Engine    EngineConfig `json:"engine"`
	Server    ServerConfig `json:"server"`
}

// Load the config file from the XDG config directories, falling back to the defaults
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err = readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if _, err := ttt.TurnFromString(c.HumanSide); err != nil {
		return &InvalidConfig{fmt.Sprintf("human_side must be x or o, got %q", c.HumanSide)}
	}
	if c.Engine.Threads < 1 {
		return &InvalidConfig{"engine.threads must be at least 1"}
	}
	if c.Engine.Nodes < 0 {
		return &InvalidConfig{"engine.nodes can't be negative"}
	}
	if int64(c.Engine.Nodes) > math.MaxUint32 {
		return &InvalidConfig{fmt.Sprintf("engine.nodes can't exceed %d", uint32(math.MaxUint32))}
	}
	if c.Server.Addr == "" {
		return &InvalidConfig{"server.addr can't be empty"}
	}
	return nil
}

// Side of the human player, valid after Validate
func (c *Config) Human() ttt.TurnType {
	turn, _ := ttt.TurnFromString(c.HumanSide)
	return turn
}

// Engine limits described by the config, non-positive movetime and nodes mean no limit
func (c *Config) Limits() *minimax.Limits {
	limits := minimax.DefaultLimits().
		SetThreads(c.Engine.Threads).
		SetMemoize(c.Engine.Memoize)

	if c.Engine.Movetime > 0 {
		limits.SetMovetime(c.Engine.Movetime)
	}
	if c.Engine.Nodes > 0 {
		limits.SetNodes(uint32(c.Engine.Nodes))
	}
	return limits
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	if err = json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
