package config

// Config represents the qrlabel configuration file
type Config struct {
	Version string       `yaml:"version"`
	Store   StoreConfig  `yaml:"store"`
	Server  ServerConfig `yaml:"server"`
	Label   LabelConfig  `yaml:"label"`
	MCP     MCPConfig    `yaml:"mcp"`
}

// StoreConfig selects the sequence store backend
type StoreConfig struct {
	// Driver is one of file, bolt, sqlite, memory
	Driver string `yaml:"driver"`
	// Path is resolved relative to the .qrlabel directory unless absolute
	Path string `yaml:"path,omitempty"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// MaxCount caps the labels per batch, 0 disables the cap
	MaxCount int `yaml:"maxCount"`
}

// LabelConfig describes the physical label and its raster size
type LabelConfig struct {
	WidthMM  float64 `yaml:"widthMM"`
	HeightMM float64 `yaml:"heightMM"`
	WidthPx  int     `yaml:"widthPx"`
	HeightPx int     `yaml:"heightPx"`
	// FontSize is the starting point for fitting the caption
	FontSize float64 `yaml:"fontSize"`
	// PDFFontSize is the starting caption size for PDF pages
	PDFFontSize float64 `yaml:"pdfFontSize"`
}

// MCPConfig represents MCP server configuration
type MCPConfig struct {
	Transport TransportConfig `yaml:"transport"`
}

// TransportConfig represents MCP transport configuration
type TransportConfig struct {
	Type string     `yaml:"type"`
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig represents HTTP transport configuration
type HTTPConfig struct {
	Port int        `yaml:"port"`
	Auth AuthConfig `yaml:"auth,omitempty"`
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Type   string    `yaml:"type"`
	Bearer string    `yaml:"bearer,omitempty"`
	Basic  BasicAuth `yaml:"basic,omitempty"`
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Store: StoreConfig{
			Driver: "file",
			Path:   "last_numbers.json",
		},
		Server: ServerConfig{
			Addr:     ":5000",
			MaxCount: 1000,
		},
		Label: LabelConfig{
			WidthMM:     50,
			HeightMM:    60,
			WidthPx:     500,
			HeightPx:    600,
			FontSize:    80,
			PDFFontSize: 55,
		},
		MCP: MCPConfig{
			Transport: TransportConfig{
				Type: "stdio",
			},
		},
	}
}
