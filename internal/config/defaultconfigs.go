package config

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		HumanSide: "x",
		Colors: ConfigColors{
			Cross:       "#E88388",
			Circle:      "#71BEF2",
			Grid:        "240",
			WinningLine: "#A8CC8C",
		},
		Engine: EngineConfig{
			Movetime: 0,
			Nodes:    0,
			Threads:  1,
			Memoize:  true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
