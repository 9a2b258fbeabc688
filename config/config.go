package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soocke/viewfinder-go/domain/geometry"
)

// Camera access modes.
const (
	AccessGranted = "granted"
	AccessDenied  = "denied"
	AccessAsk     = "ask"
)

// EnvPrefix prefixes environment overrides, e.g. VIEWFINDER_DEBUG=true.
const EnvPrefix = "VIEWFINDER"

// Config holds runtime configuration for the viewfinder window, capture
// output and the mock device capabilities. Values come from defaults, an
// optional JSON file, VIEWFINDER_* environment variables and flags, in that
// order of precedence (lowest first).
type Config struct {
	Debug bool `json:"debug" mapstructure:"debug"`

	// Viewport, read once at mount
	WindowWidth  int      `json:"window_width" mapstructure:"window_width"`
	WindowHeight int      `json:"window_height" mapstructure:"window_height"`
	AspectRatios []string `json:"aspect_ratios" mapstructure:"aspect_ratios"`
	DarkMode     bool     `json:"dark_mode" mapstructure:"dark_mode"`

	// Output
	OutputDir   string `json:"output_dir" mapstructure:"output_dir"`
	JournalPath string `json:"journal_path" mapstructure:"journal_path"`
	JPEGQuality int    `json:"jpeg_quality" mapstructure:"jpeg_quality"`

	// Frames and recording
	FrameIntervalMillis int `json:"frame_interval_ms" mapstructure:"frame_interval_ms"`
	RecordFPS           int `json:"record_fps" mapstructure:"record_fps"`
	MaxRecordFrames     int `json:"max_record_frames" mapstructure:"max_record_frames"`
	RecordMaxWidth      int `json:"record_max_width" mapstructure:"record_max_width"`

	// Interaction
	LongPressMillis  int `json:"long_press_ms" mapstructure:"long_press_ms"`
	PreviewCacheSize int `json:"preview_cache_size" mapstructure:"preview_cache_size"`

	// Mock capabilities
	UserComment   string  `json:"user_comment" mapstructure:"user_comment"`
	MockLatitude  float64 `json:"mock_latitude" mapstructure:"mock_latitude"`
	MockLongitude float64 `json:"mock_longitude" mapstructure:"mock_longitude"`
	MockSeed      uint64  `json:"mock_seed" mapstructure:"mock_seed"`
	CameraAccess  string  `json:"camera_access" mapstructure:"camera_access"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		WindowWidth:         390,
		WindowHeight:        844,
		AspectRatios:        []string{"9:16", "3:4"},
		DarkMode:            true,
		OutputDir:           filepath.Join(xdg.UserDirs.Pictures, "viewfinder"),
		JournalPath:         filepath.Join(xdg.DataHome, "viewfinder", "journal.db"),
		JPEGQuality:         90,
		FrameIntervalMillis: 33,
		RecordFPS:           10,
		MaxRecordFrames:     300,
		RecordMaxWidth:      480,
		LongPressMillis:     500,
		PreviewCacheSize:    8,
		UserComment:         "Captured with viewfinder-go",
		MockLatitude:        52.520008,
		MockLongitude:       13.404954,
		MockSeed:            1,
		CameraAccess:        AccessAsk,
	}
}

// DefaultPath is the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "viewfinder", "config.json")
}

// Validate clamps/normalizes values to safe ranges. Unparseable aspect
// ratios are dropped and reported.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.WindowWidth < 200 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight < 200 {
		c.WindowHeight = d.WindowHeight
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = d.JPEGQuality
	}
	if c.FrameIntervalMillis <= 0 {
		c.FrameIntervalMillis = d.FrameIntervalMillis
	}
	if c.RecordFPS <= 0 || c.RecordFPS > 50 {
		c.RecordFPS = d.RecordFPS
	}
	if c.MaxRecordFrames <= 0 {
		c.MaxRecordFrames = d.MaxRecordFrames
	}
	if c.RecordMaxWidth < 16 {
		c.RecordMaxWidth = d.RecordMaxWidth
	}
	if c.LongPressMillis < 100 {
		c.LongPressMillis = d.LongPressMillis
	}
	if c.PreviewCacheSize <= 0 {
		c.PreviewCacheSize = d.PreviewCacheSize
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.JournalPath == "" {
		c.JournalPath = d.JournalPath
	}
	if c.MockLatitude < -90 || c.MockLatitude > 90 {
		c.MockLatitude = d.MockLatitude
	}
	if c.MockLongitude < -180 || c.MockLongitude > 180 {
		c.MockLongitude = d.MockLongitude
	}
	switch strings.ToLower(strings.TrimSpace(c.CameraAccess)) {
	case AccessGranted:
		c.CameraAccess = AccessGranted
	case AccessDenied:
		c.CameraAccess = AccessDenied
	default:
		c.CameraAccess = AccessAsk
	}

	var errs []error
	kept := c.AspectRatios[:0:0]
	for _, s := range c.AspectRatios {
		if _, err := geometry.ParseAspectRatio(s); err != nil {
			errs = append(errs, err)
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		kept = d.AspectRatios
	}
	c.AspectRatios = kept
	return errors.Join(errs...)
}

// Ratios returns the parsed candidate aspect ratios in preference order.
func (c *Config) Ratios() []geometry.AspectRatio {
	out := make([]geometry.AspectRatio, 0, len(c.AspectRatios))
	for _, s := range c.AspectRatios {
		if r, err := geometry.ParseAspectRatio(s); err == nil {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return geometry.DefaultRatios()
	}
	return out
}

// LongPress returns the long-press threshold as a duration.
func (c *Config) LongPress() time.Duration {
	return time.Duration(c.LongPressMillis) * time.Millisecond
}

// FrameInterval returns the capture loop period.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMillis) * time.Millisecond
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"debug":         "debug",
	"width":         "window_width",
	"height":        "window_height",
	"aspect":        "aspect_ratios",
	"output":        "output_dir",
	"journal":       "journal_path",
	"fps":           "record_fps",
	"camera-access": "camera_access",
	"seed":          "mock_seed",
}

// RegisterFlags defines the command-line overrides on fs. Load binds them.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.Bool("debug", d.Debug, "enable debug logging and runtime metrics")
	fs.Int("width", d.WindowWidth, "viewport width in pixels")
	fs.Int("height", d.WindowHeight, "viewport height in pixels")
	fs.StringSlice("aspect", d.AspectRatios, "candidate aspect ratios in preference order, e.g. 9:16,3:4")
	fs.String("output", d.OutputDir, "directory for photos and recordings")
	fs.String("journal", d.JournalPath, "sqlite capture journal path")
	fs.Int("fps", d.RecordFPS, "recording frame rate")
	fs.String("camera-access", d.CameraAccess, "camera permission: granted, denied or ask")
	fs.Uint64("seed", d.MockSeed, "seed for the mock geolocation jitter")
}

// Load reads configuration from the JSON file at path (missing file means
// defaults), then applies VIEWFINDER_* environment variables and any flags
// in fs that were set. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return DefaultConfig(), fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return DefaultConfig(), fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return DefaultConfig(), fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config: decode: %w", err)
	}
	verr := cfg.Validate()
	return cfg, verr
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("debug", d.Debug)
	v.SetDefault("window_width", d.WindowWidth)
	v.SetDefault("window_height", d.WindowHeight)
	v.SetDefault("aspect_ratios", d.AspectRatios)
	v.SetDefault("dark_mode", d.DarkMode)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("journal_path", d.JournalPath)
	v.SetDefault("jpeg_quality", d.JPEGQuality)
	v.SetDefault("frame_interval_ms", d.FrameIntervalMillis)
	v.SetDefault("record_fps", d.RecordFPS)
	v.SetDefault("max_record_frames", d.MaxRecordFrames)
	v.SetDefault("record_max_width", d.RecordMaxWidth)
	v.SetDefault("long_press_ms", d.LongPressMillis)
	v.SetDefault("preview_cache_size", d.PreviewCacheSize)
	v.SetDefault("user_comment", d.UserComment)
	v.SetDefault("mock_latitude", d.MockLatitude)
	v.SetDefault("mock_longitude", d.MockLongitude)
	v.SetDefault("mock_seed", d.MockSeed)
	v.SetDefault("camera_access", d.CameraAccess)
}

// Save validates the configuration and writes it to path as indented JSON.
// A configuration that fails validation is not written.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: not saved: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("config: close %s: %w", path, err)
	}
	return nil
}
