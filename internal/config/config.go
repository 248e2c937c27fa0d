// Package config loads the pipeline's process configuration from a
// vasset.toml file using go-toml/v2.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the knobs a CLI invocation or host application needs
// beyond what's passed on the command line.
type Config struct {
	AssetRoot      string        `toml:"asset_root"`
	ImportedFolder string        `toml:"imported_folder"`
	ZstdLevel      int           `toml:"zstd_level"`
	Texture        TextureConfig `toml:"texture"`
	Mesh           MeshConfig    `toml:"mesh"`
	Log            LogConfig     `toml:"log"`
}

type TextureConfig struct {
	GenerateMipmaps  bool `toml:"generate_mipmaps"`
	FlipY            bool `toml:"flip_y"`
	QualityLevel     int  `toml:"quality_level"`
	CompressionLevel int  `toml:"compression_level"`
}

type MeshConfig struct {
	GenerateMeshlets bool `toml:"generate_meshlets"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

// Default returns the configuration used when no vasset.toml is
// present.
func Default() Config {
	return Config{
		ImportedFolder: "imported",
		ZstdLevel:      3,
		Texture: TextureConfig{
			QualityLevel:     128,
			CompressionLevel: 2,
		},
	}
}

// Load reads path and overlays it on Default(). A missing file is not
// an error: callers get the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
