package config

// ApplicationConfiguration config specific to the tool.
type ApplicationConfiguration struct {
	// Environment is the name of the arithmetic environment of literals.
	Environment string `yaml:"Environment"`
	LogLevel    string `yaml:"LogLevel"`
	LogPath     string `yaml:"LogPath"`
	// MaxInstructions limits the number of instructions in decoded programs.
	MaxInstructions int     `yaml:"MaxInstructions"`
	Console         Console `yaml:"Console"`
}

// Console contains interactive console settings.
type Console struct {
	Prompt      string `yaml:"Prompt"`
	HistoryFile string `yaml:"HistoryFile"`
}
