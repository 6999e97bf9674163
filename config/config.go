package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/gesture"
	"gopkg.in/ini.v1"
)

const (
	DeviceTouchScreen = "touchscreen"
	DeviceTouchpad    = "touchpad"

	engineSection = "engine"

	DefaultResolverCache = 128
)

// DefaultMapping is used when no settings file is given
const DefaultMapping = `[engine]
two_finger_zoom = false
resolver_cache  = 128

[touchscreen.swipe.4]
finished.left  = Meta+Left
finished.right = Meta+Right
finished.up    = Meta+Up
finished.down  = Meta+Down

[touchscreen.zoom.3]
finished.zoomin  = Meta+PgUp
finished.zoomout = Meta+PgUp

[touchpad.swipe.3]
finished.left  = Ctrl+Alt+Left
finished.right = Ctrl+Alt+Right
finished.up    = Meta+S
finished.down  = Meta+D

[touchpad.swipe.4]
update.up   = Meta+Up
update.down = Meta+Down

[touchpad.pinch.2]
finished.zoomin  = Meta+PgUp
finished.zoomout = Meta+PgUp
`

type mappingKey struct {
	device    string
	fingers   int
	kind      gesture.Kind
	phase     gesture.Phase
	direction gesture.Direction
}

// Config holds engine options and the gesture to action mapping
type Config struct {
	TwoFingerZoom bool
	ResolverCache int

	mapping map[mappingKey]actions.Action
}

// Load reads a settings file. An empty path loads DefaultMapping.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse([]byte(DefaultMapping))
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fromFile(file)
}

// Parse reads settings from memory
func Parse(data []byte) (*Config, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return fromFile(file)
}

func fromFile(file *ini.File) (*Config, error) {
	cfg := &Config{
		ResolverCache: DefaultResolverCache,
		mapping:       make(map[mappingKey]actions.Action),
	}

	if file.HasSection(engineSection) {
		section := file.Section(engineSection)
		cfg.TwoFingerZoom = section.Key("two_finger_zoom").MustBool(false)
		cfg.ResolverCache = section.Key("resolver_cache").MustInt(DefaultResolverCache)
		if cfg.ResolverCache < 0 {
			return nil, fmt.Errorf("resolver_cache must be non-negative, got %d", cfg.ResolverCache)
		}
	}

	for _, section := range file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection || name == engineSection {
			continue
		}

		device, kind, fingers, err := parseSectionName(name)
		if err != nil {
			return nil, err
		}

		for _, key := range section.Keys() {
			phase, direction, err := parseKeyName(key.Name())
			if err != nil {
				return nil, fmt.Errorf("section [%s]: %w", name, err)
			}

			value := strings.TrimSpace(key.String())
			if value == "" {
				continue
			}

			cfg.mapping[mappingKey{
				device:    device,
				fingers:   fingers,
				kind:      kind,
				phase:     phase,
				direction: direction,
			}] = actions.Action(value)
		}
	}

	return cfg, nil
}

// parseSectionName splits "touchscreen.swipe.4"
func parseSectionName(name string) (string, gesture.Kind, int, error) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("invalid section [%s], expected <device>.<kind>.<fingers>", name)
	}

	device := parts[0]
	if device != DeviceTouchScreen && device != DeviceTouchpad {
		return "", 0, 0, fmt.Errorf("invalid section [%s]: unknown device %q", name, device)
	}

	kind, ok := gesture.ParseKind(parts[1])
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid section [%s]: unknown gesture kind %q", name, parts[1])
	}

	fingers, err := strconv.Atoi(parts[2])
	if err != nil || fingers <= 0 {
		return "", 0, 0, fmt.Errorf("invalid section [%s]: bad finger count %q", name, parts[2])
	}

	return device, kind, fingers, nil
}

// parseKeyName splits "finished.left"
func parseKeyName(name string) (gesture.Phase, gesture.Direction, error) {
	phaseName, directionName, found := strings.Cut(name, ".")
	if !found {
		return 0, 0, fmt.Errorf("invalid key %q, expected <phase>.<direction>", name)
	}

	phase, ok := gesture.ParsePhase(phaseName)
	if !ok {
		return 0, 0, fmt.Errorf("invalid key %q: unknown phase %q", name, phaseName)
	}

	direction, ok := gesture.ParseDirection(directionName)
	if !ok {
		return 0, 0, fmt.Errorf("invalid key %q: unknown direction %q", name, directionName)
	}

	return phase, direction, nil
}

// Resolver returns the mapping for one device side
func (c *Config) Resolver(device string) actions.Resolver {
	return &deviceResolver{config: c, device: device}
}

// Entry is one mapped gesture, for listing
type Entry struct {
	Device    string `json:"device"`
	Fingers   int    `json:"fingers"`
	Kind      string `json:"kind"`
	Phase     string `json:"phase"`
	Direction string `json:"direction"`
	Action    string `json:"action"`
}

// Entries lists the mapping in a stable order
func (c *Config) Entries() []Entry {
	entries := make([]Entry, 0, len(c.mapping))
	for key, action := range c.mapping {
		entries = append(entries, Entry{
			Device:    key.device,
			Fingers:   key.fingers,
			Kind:      key.kind.String(),
			Phase:     key.phase.String(),
			Direction: key.direction.String(),
			Action:    string(action),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Device != b.Device {
			return a.Device < b.Device
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Fingers != b.Fingers {
			return a.Fingers < b.Fingers
		}
		if a.Phase != b.Phase {
			return a.Phase < b.Phase
		}
		return a.Direction < b.Direction
	})
	return entries
}

type deviceResolver struct {
	config *Config
	device string
}

func (r *deviceResolver) Resolve(fingers int, kind gesture.Kind, phase gesture.Phase, direction gesture.Direction) (actions.Action, bool) {
	action, ok := r.config.mapping[mappingKey{
		device:    r.device,
		fingers:   fingers,
		kind:      kind,
		phase:     phase,
		direction: direction,
	}]
	return action, ok
}
