// Package config loads ls-cosmos tunables from .ls-cosmos.toml, LS_COSMOS_*
// environment variables and CLI flags through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/litescript/ls-cosmos/internal/hover"
	"github.com/litescript/ls-cosmos/internal/navigation"
	"github.com/litescript/ls-cosmos/internal/orbit"
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix is the environment variable prefix.
const EnvPrefix = "LS_COSMOS"

// NavigationConfig mirrors navigation.Config.
type NavigationConfig struct {
	GalaxyBand        float64 `mapstructure:"galaxy_band"`
	SunBand           float64 `mapstructure:"sun_band"`
	PlanetBand        float64 `mapstructure:"planet_band"`
	PickRadiusFactor  float64 `mapstructure:"pick_radius_factor"`
	GalaxyZoom        float64 `mapstructure:"galaxy_zoom"`
	SunZoom           float64 `mapstructure:"sun_zoom"`
	PlanetZoom        float64 `mapstructure:"planet_zoom"`
	SpecialZoom       float64 `mapstructure:"special_zoom"`
	AutoZoom          bool    `mapstructure:"auto_zoom"`
	HoverZoomInDelay  float64 `mapstructure:"hover_zoom_in_delay"`
	HoverZoomOutDelay float64 `mapstructure:"hover_zoom_out_delay"`
	Easing            string  `mapstructure:"easing"`
	Smoothing         float64 `mapstructure:"smoothing"`
	ZoomConvergence   float64 `mapstructure:"zoom_convergence"`
	TweenDuration     float64 `mapstructure:"tween_duration"`
}

// OrbitConfig mirrors the user-facing part of orbit.Config.
type OrbitConfig struct {
	Mode         string  `mapstructure:"mode"`
	Seed         int64   `mapstructure:"seed"`
	RadiusFactor float64 `mapstructure:"radius_factor"`
	RadiusStep   float64 `mapstructure:"radius_step"`
	PixelScale   float64 `mapstructure:"pixel_scale"`
	SpeedScale   float64 `mapstructure:"speed_scale"`
}

// HoverConfig holds the sun and body hover tunables.
type HoverConfig struct {
	HideDelay     float64 `mapstructure:"hide_delay"`
	SunMinSize    float64 `mapstructure:"sun_min_size"`
	SunSizeFactor float64 `mapstructure:"sun_size_factor"`
	SunHitMargin  float64 `mapstructure:"sun_hit_margin"`
	BodyBaseSize  float64 `mapstructure:"body_base_size"`
	BodyHitMargin float64 `mapstructure:"body_hit_margin"`
}

// Config holds all runtime configuration for an ls-cosmos session.
type Config struct {
	LogLevel     string           `mapstructure:"log_level"`
	UniverseFile string           `mapstructure:"universe_file"`
	Watch        bool             `mapstructure:"watch"`
	FPS          int              `mapstructure:"fps"`
	Nav          NavigationConfig `mapstructure:"navigation"`
	Orb          OrbitConfig      `mapstructure:"orbit"`
	Hov          HoverConfig      `mapstructure:"hover"`
}

// SetDefaults registers a default for every key on v. The values come from
// each package's DefaultConfig so there is a single source of truth.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("universe_file", "")
	v.SetDefault("watch", false)
	v.SetDefault("fps", 30)

	n := navigation.DefaultConfig()
	v.SetDefault("navigation.galaxy_band", n.GalaxyBand)
	v.SetDefault("navigation.sun_band", n.SunBand)
	v.SetDefault("navigation.planet_band", n.PlanetBand)
	v.SetDefault("navigation.pick_radius_factor", n.PickRadiusFactor)
	v.SetDefault("navigation.galaxy_zoom", n.GalaxyZoom)
	v.SetDefault("navigation.sun_zoom", n.SunZoom)
	v.SetDefault("navigation.planet_zoom", n.PlanetZoom)
	v.SetDefault("navigation.special_zoom", n.SpecialZoom)
	v.SetDefault("navigation.auto_zoom", n.AutoZoom)
	v.SetDefault("navigation.hover_zoom_in_delay", n.HoverZoomInDelay)
	v.SetDefault("navigation.hover_zoom_out_delay", n.HoverZoomOutDelay)
	v.SetDefault("navigation.easing", string(n.Easing))
	v.SetDefault("navigation.smoothing", n.Smoothing)
	v.SetDefault("navigation.zoom_convergence", n.ZoomConvergence)
	v.SetDefault("navigation.tween_duration", n.TweenDuration)

	o := orbit.DefaultConfig()
	v.SetDefault("orbit.mode", o.Mode.String())
	v.SetDefault("orbit.seed", o.Seed)
	v.SetDefault("orbit.radius_factor", o.RadiusFactor)
	v.SetDefault("orbit.radius_step", o.RadiusStep)
	v.SetDefault("orbit.pixel_scale", o.PixelScale)
	v.SetDefault("orbit.speed_scale", o.SpeedScale)

	s, b := hover.DefaultSunConfig(), hover.DefaultBodyConfig()
	v.SetDefault("hover.hide_delay", s.HideDelay)
	v.SetDefault("hover.sun_min_size", s.MinSize)
	v.SetDefault("hover.sun_size_factor", s.SizeFactor)
	v.SetDefault("hover.sun_hit_margin", s.HitMargin)
	v.SetDefault("hover.body_base_size", b.BaseSize)
	v.SetDefault("hover.body_hit_margin", b.HitMargin)
}

// BindEnv makes every key overridable as LS_COSMOS_<SECTION>_<KEY>.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from v, applying built-in defaults for any
// values not set by config file, environment, or flags, and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with nothing overridden.
func Default() Config {
	cfg, _ := Load(viper.New())
	return cfg
}

// Validate rejects geometry and timing values the core cannot work with.
func (c Config) Validate() error {
	var errs []error
	bad := func(key string, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s %s", ErrInvalid, key, fmt.Sprintf(format, args...)))
	}
	positive := func(key string, v float64) {
		if v <= 0 {
			bad(key, "must be > 0, got %v", v)
		}
	}

	if c.FPS <= 0 || c.FPS > 240 {
		bad("fps", "must be in 1..240, got %d", c.FPS)
	}

	n := c.Nav
	positive("navigation.galaxy_band", n.GalaxyBand)
	if !(n.GalaxyBand < n.SunBand && n.SunBand < n.PlanetBand) {
		bad("navigation", "zoom bands must increase: %v < %v < %v", n.GalaxyBand, n.SunBand, n.PlanetBand)
	}
	positive("navigation.pick_radius_factor", n.PickRadiusFactor)
	positive("navigation.galaxy_zoom", n.GalaxyZoom)
	positive("navigation.sun_zoom", n.SunZoom)
	positive("navigation.planet_zoom", n.PlanetZoom)
	positive("navigation.special_zoom", n.SpecialZoom)
	positive("navigation.hover_zoom_in_delay", n.HoverZoomInDelay)
	positive("navigation.hover_zoom_out_delay", n.HoverZoomOutDelay)
	switch navigation.Easing(strings.ToLower(n.Easing)) {
	case navigation.EasingLerp, navigation.EasingTween:
	default:
		bad("navigation.easing", "must be lerp or tween, got %q", n.Easing)
	}
	if n.Smoothing <= 0 || n.Smoothing > 1 {
		bad("navigation.smoothing", "must be in (0, 1], got %v", n.Smoothing)
	}
	positive("navigation.zoom_convergence", n.ZoomConvergence)
	positive("navigation.tween_duration", n.TweenDuration)

	if _, ok := orbit.ParseMode(strings.ToLower(c.Orb.Mode)); !ok {
		bad("orbit.mode", "must be full or simple, got %q", c.Orb.Mode)
	}
	positive("orbit.radius_factor", c.Orb.RadiusFactor)
	if c.Orb.RadiusStep < 0 {
		bad("orbit.radius_step", "must be >= 0, got %v", c.Orb.RadiusStep)
	}

	h := c.Hov
	positive("hover.hide_delay", h.HideDelay)
	positive("hover.sun_min_size", h.SunMinSize)
	positive("hover.sun_size_factor", h.SunSizeFactor)
	positive("hover.sun_hit_margin", h.SunHitMargin)
	positive("hover.body_base_size", h.BodyBaseSize)
	positive("hover.body_hit_margin", h.BodyHitMargin)

	return errors.Join(errs...)
}

// Navigation converts to the navigation package config.
func (c Config) Navigation() navigation.Config {
	n := navigation.DefaultConfig()
	n.GalaxyBand = c.Nav.GalaxyBand
	n.SunBand = c.Nav.SunBand
	n.PlanetBand = c.Nav.PlanetBand
	n.PickRadiusFactor = c.Nav.PickRadiusFactor
	n.GalaxyZoom = c.Nav.GalaxyZoom
	n.SunZoom = c.Nav.SunZoom
	n.PlanetZoom = c.Nav.PlanetZoom
	n.SpecialZoom = c.Nav.SpecialZoom
	n.AutoZoom = c.Nav.AutoZoom
	n.HoverZoomInDelay = c.Nav.HoverZoomInDelay
	n.HoverZoomOutDelay = c.Nav.HoverZoomOutDelay
	n.Easing = navigation.Easing(strings.ToLower(c.Nav.Easing))
	n.Smoothing = c.Nav.Smoothing
	n.ZoomConvergence = c.Nav.ZoomConvergence
	n.TweenDuration = c.Nav.TweenDuration
	return n
}

// Orbit converts to the orbit package config. Scale factors that are not
// positive fall back to 1.
func (c Config) Orbit() orbit.Config {
	o := orbit.DefaultConfig()
	o.Mode, _ = orbit.ParseMode(strings.ToLower(c.Orb.Mode))
	o.Seed = c.Orb.Seed
	o.RadiusFactor = c.Orb.RadiusFactor
	o.RadiusStep = c.Orb.RadiusStep
	o.PixelScale = positiveOr(c.Orb.PixelScale, 1)
	o.SpeedScale = positiveOr(c.Orb.SpeedScale, 1)
	return o
}

// Hover converts to the hover package configs.
func (c Config) Hover() (hover.SunConfig, hover.BodyConfig) {
	sun := hover.SunConfig{
		HideDelay:  c.Hov.HideDelay,
		MinSize:    c.Hov.SunMinSize,
		SizeFactor: c.Hov.SunSizeFactor,
		HitMargin:  c.Hov.SunHitMargin,
	}
	body := hover.BodyConfig{
		HideDelay: c.Hov.HideDelay,
		BaseSize:  c.Hov.BodyBaseSize,
		HitMargin: c.Hov.BodyHitMargin,
	}
	return sun, body
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
