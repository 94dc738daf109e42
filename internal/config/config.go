// Package config loads the daemon configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/sweeney/plant-monitor/internal/gpio"
	"github.com/sweeney/plant-monitor/internal/logic"
	"github.com/sweeney/plant-monitor/internal/sensor"
	"github.com/sweeney/plant-monitor/internal/status"
)

// Config represents the daemon configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"` // empty = stderr

	// SkipSetup starts in IDLE instead of waiting for a button press.
	SkipSetup bool `yaml:"skip_setup"`

	Buttons  ButtonsConfig  `yaml:"buttons"`
	LED      LEDConfig      `yaml:"led"`
	Serial   SerialConfig   `yaml:"serial"`
	Timing   TimingConfig   `yaml:"timing"`
	Schedule ScheduleConfig `yaml:"schedule"`
	ADC      ADCConfig      `yaml:"adc"`
	Channels ChannelsConfig `yaml:"channels"`
}

// ButtonsConfig contains the button GPIO lines (BCM numbering).
type ButtonsConfig struct {
	Chip     string `yaml:"chip"`
	LeftPin  int    `yaml:"left_pin"`
	RightPin int    `yaml:"right_pin"`
}

// LEDConfig contains the status LED line.
type LEDConfig struct {
	Pin int `yaml:"pin"`
}

// SerialConfig contains the ADC board serial port.
type SerialConfig struct {
	Port   string        `yaml:"port"`
	Baud   int           `yaml:"baud"`
	MaxAge time.Duration `yaml:"max_age"` // readings older than this are ignored
}

// TimingConfig contains loop and gesture timings.
type TimingConfig struct {
	Poll              time.Duration `yaml:"poll"`
	CoincidenceWindow time.Duration `yaml:"coincidence_window"`
	LongPress         time.Duration `yaml:"long_press"`
	SensorInterval    time.Duration `yaml:"sensor_interval"`
	ErrorInterval     time.Duration `yaml:"error_interval"`
}

// ScheduleConfig splits the day for the status LED.
type ScheduleConfig struct {
	DayStartHour   int `yaml:"day_start_hour"`
	NightStartHour int `yaml:"night_start_hour"`
}

// ADCConfig describes the thermistor divider on the ADC board.
type ADCConfig struct {
	VDD             float64 `yaml:"vdd"`
	Resolution      int     `yaml:"resolution"`
	DividerResistor float64 `yaml:"divider_resistor"`
}

// ChannelsConfig holds one entry per sensor channel.
type ChannelsConfig struct {
	Moisture    ChannelConfig `yaml:"moisture"`
	Light       ChannelConfig `yaml:"light"`
	Temperature ChannelConfig `yaml:"temperature"`
}

// ChannelConfig selects the comfort level and bound table of a channel.
type ChannelConfig struct {
	Level    string    `yaml:"level"`
	Bounds   []float64 `yaml:"bounds"`
	Polarity string    `yaml:"polarity"` // "inverse" or "direct"
	Convert  string    `yaml:"convert"`  // "identity" or "resistance"
}

// Converter names.
const (
	ConvertIdentity   = "identity"
	ConvertResistance = "resistance"
)

func (c *ChannelsConfig) byChannel() [logic.NumChannels]*ChannelConfig {
	return [logic.NumChannels]*ChannelConfig{
		logic.ChannelMoisture:    &c.Moisture,
		logic.ChannelLight:       &c.Light,
		logic.ChannelTemperature: &c.Temperature,
	}
}

// Default returns the stock configuration.
func Default() *Config {
	mon := logic.DefaultConfig()

	channel := func(ch logic.Channel, convert string) ChannelConfig {
		spec := mon.Channels[ch]
		return ChannelConfig{
			Level:    mon.Levels[ch].String(),
			Bounds:   append([]float64(nil), spec.Bounds[:]...),
			Polarity: spec.Polarity.String(),
			Convert:  convert,
		}
	}

	return &Config{
		LogLevel: "info",
		Buttons: ButtonsConfig{
			Chip:     gpio.DefaultChip,
			LeftPin:  gpio.DefaultPinLeft,
			RightPin: gpio.DefaultPinRight,
		},
		LED: LEDConfig{Pin: gpio.DefaultPinLED},
		Serial: SerialConfig{
			Port:   "/dev/ttyUSB0",
			Baud:   sensor.DefaultBaudRate,
			MaxAge: 30 * time.Second,
		},
		Timing: TimingConfig{
			Poll:              20 * time.Millisecond,
			CoincidenceWindow: mon.CoincidenceWindow,
			LongPress:         mon.LongPress,
			SensorInterval:    mon.SensorInterval,
			ErrorInterval:     mon.ErrorInterval,
		},
		Schedule: ScheduleConfig{
			DayStartHour:   status.DefaultSchedule.DayStartHour,
			NightStartHour: status.DefaultSchedule.NightStartHour,
		},
		ADC: ADCConfig{
			VDD:             logic.DefaultDivider.VDD,
			Resolution:      logic.DefaultDivider.Resolution,
			DividerResistor: logic.DefaultDivider.Resistor,
		},
		Channels: ChannelsConfig{
			Moisture:    channel(logic.ChannelMoisture, ConvertIdentity),
			Light:       channel(logic.ChannelLight, ConvertIdentity),
			Temperature: channel(logic.ChannelTemperature, ConvertResistance),
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// ensureDefaults fills fields that were explicitly left empty.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Buttons.Chip == "" {
		c.Buttons.Chip = def.Buttons.Chip
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}

	if c.Timing.Poll == 0 {
		c.Timing.Poll = def.Timing.Poll
	}
	if c.Timing.CoincidenceWindow == 0 {
		c.Timing.CoincidenceWindow = def.Timing.CoincidenceWindow
	}
	if c.Timing.LongPress == 0 {
		c.Timing.LongPress = def.Timing.LongPress
	}
	if c.Timing.SensorInterval == 0 {
		c.Timing.SensorInterval = def.Timing.SensorInterval
	}
	if c.Timing.ErrorInterval == 0 {
		c.Timing.ErrorInterval = def.Timing.ErrorInterval
	}

	if c.ADC.VDD == 0 {
		c.ADC.VDD = def.ADC.VDD
	}
	if c.ADC.Resolution == 0 {
		c.ADC.Resolution = def.ADC.Resolution
	}
	if c.ADC.DividerResistor == 0 {
		c.ADC.DividerResistor = def.ADC.DividerResistor
	}

	defs := def.Channels.byChannel()
	for ch, cc := range c.Channels.byChannel() {
		d := defs[ch]
		if cc.Level == "" {
			cc.Level = d.Level
		}
		if len(cc.Bounds) == 0 {
			cc.Bounds = d.Bounds
		}
		if cc.Polarity == "" {
			cc.Polarity = d.Polarity
		}
		if cc.Convert == "" {
			cc.Convert = d.Convert
		}
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	var errs []error

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Buttons.LeftPin == c.Buttons.RightPin {
		errs = append(errs, fmt.Errorf("buttons: left and right both use pin %d", c.Buttons.LeftPin))
	}
	if c.LED.Pin == c.Buttons.LeftPin || c.LED.Pin == c.Buttons.RightPin {
		errs = append(errs, fmt.Errorf("led: pin %d is already used by a button", c.LED.Pin))
	}
	if c.Serial.Port == "" {
		errs = append(errs, errors.New("serial: port is required"))
	}
	if c.Serial.MaxAge < 0 {
		errs = append(errs, errors.New("serial: max_age must not be negative"))
	}
	if c.Timing.Poll <= 0 || c.Timing.Poll > c.Timing.CoincidenceWindow {
		errs = append(errs, fmt.Errorf("timing: poll %v must be positive and no longer than the coincidence window %v",
			c.Timing.Poll, c.Timing.CoincidenceWindow))
	}
	for name, h := range map[string]int{"day_start_hour": c.Schedule.DayStartHour, "night_start_hour": c.Schedule.NightStartHour} {
		if h < 0 || h > 23 {
			errs = append(errs, fmt.Errorf("schedule: %s %d out of range 0-23", name, h))
		}
	}
	if mc, err := c.Monitor(); err != nil {
		errs = append(errs, err)
	} else if _, err := logic.NewMonitor(mc); err != nil {
		errs = append(errs, fmt.Errorf("timing: %w", err))
	}

	return errors.Join(errs...)
}

// Divider returns the thermistor divider described by the adc section.
func (c *Config) Divider() logic.Divider {
	return logic.Divider{
		VDD:        c.ADC.VDD,
		Resolution: c.ADC.Resolution,
		Resistor:   c.ADC.DividerResistor,
	}
}

// Monitor builds the core configuration.
func (c *Config) Monitor() (logic.Config, error) {
	mc := logic.DefaultConfig()
	mc.CoincidenceWindow = c.Timing.CoincidenceWindow
	mc.LongPress = c.Timing.LongPress
	mc.SensorInterval = c.Timing.SensorInterval
	mc.ErrorInterval = c.Timing.ErrorInterval

	divider := c.Divider()
	if err := divider.Validate(); err != nil {
		return mc, fmt.Errorf("adc: %w", err)
	}

	for ch, cc := range c.Channels.byChannel() {
		level, err := logic.ParseLevel(cc.Level)
		if err != nil {
			return mc, fmt.Errorf("channels.%s: %w", logic.Channel(ch), err)
		}
		spec, err := cc.spec(divider)
		if err != nil {
			return mc, fmt.Errorf("channels.%s: %w", logic.Channel(ch), err)
		}
		if err := spec.Validate(); err != nil {
			return mc, fmt.Errorf("channels.%s: %w", logic.Channel(ch), err)
		}
		mc.Levels[ch] = level
		mc.Channels[ch] = spec
	}
	return mc, nil
}

func (cc *ChannelConfig) spec(divider logic.Divider) (logic.ChannelSpec, error) {
	var spec logic.ChannelSpec

	if len(cc.Bounds) != len(spec.Bounds) {
		return spec, fmt.Errorf("expected %d bounds, got %d", len(spec.Bounds), len(cc.Bounds))
	}
	copy(spec.Bounds[:], cc.Bounds)

	switch strings.ToLower(cc.Polarity) {
	case logic.PolarityInverse.String():
		spec.Polarity = logic.PolarityInverse
	case logic.PolarityDirect.String():
		spec.Polarity = logic.PolarityDirect
	default:
		return spec, fmt.Errorf("unknown polarity %q", cc.Polarity)
	}

	switch strings.ToLower(cc.Convert) {
	case ConvertIdentity:
		spec.Convert = logic.Identity
	case ConvertResistance:
		spec.Convert = divider.Resistance
	default:
		return spec, fmt.Errorf("unknown converter %q", cc.Convert)
	}

	return spec, nil
}

// StatusSchedule returns the day/night schedule for the status LED.
func (c *Config) StatusSchedule() status.Schedule {
	return status.Schedule{
		DayStartHour:   c.Schedule.DayStartHour,
		NightStartHour: c.Schedule.NightStartHour,
	}
}

// ParseLogLevel maps a level name to a zerolog level. Empty means info.
func ParseLogLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
