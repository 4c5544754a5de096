package settings

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/spring-countdown/internal/storage"
	"github.com/ensigniasec/spring-countdown/internal/theme"
	"github.com/ensigniasec/spring-countdown/internal/validate"
)

// Settings is the persisted user settings record.
type Settings struct {
	SoundEnabled       bool    `json:"soundEnabled"`
	SoundVolume        float64 `json:"soundVolume" validate:"gte=0,lte=1"`
	DanmakuSpeed       int     `json:"danmakuSpeed" validate:"gte=1000,lte=120000"`
	DanmakuInterval    int     `json:"danmakuInterval" validate:"gte=100,lte=60000"`
	MaxDanmakuOnScreen int     `json:"maxDanmakuOnScreen" validate:"gte=1,lte=200"`
	MouseFollowEnabled bool    `json:"mouseFollowEnabled"`
	Theme              string  `json:"theme" validate:"theme_id"`
}

// Defaults returns the compiled-in settings.
func Defaults() Settings {
	return Settings{
		SoundEnabled:       true,
		SoundVolume:        0.3,
		DanmakuSpeed:       15000,
		DanmakuInterval:    2000,
		MaxDanmakuOnScreen: 15,
		MouseFollowEnabled: false,
		Theme:              theme.DefaultID,
	}
}

// Partial carries the fields to change in a Save. Nil fields are left alone.
type Partial struct {
	SoundEnabled       *bool
	SoundVolume        *float64
	DanmakuSpeed       *int
	DanmakuInterval    *int
	MaxDanmakuOnScreen *int
	MouseFollowEnabled *bool
	Theme              *string
}

func (p Partial) apply(s *Settings) {
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.SoundVolume != nil {
		s.SoundVolume = *p.SoundVolume
	}
	if p.DanmakuSpeed != nil {
		s.DanmakuSpeed = *p.DanmakuSpeed
	}
	if p.DanmakuInterval != nil {
		s.DanmakuInterval = *p.DanmakuInterval
	}
	if p.MaxDanmakuOnScreen != nil {
		s.MaxDanmakuOnScreen = *p.MaxDanmakuOnScreen
	}
	if p.MouseFollowEnabled != nil {
		s.MouseFollowEnabled = *p.MouseFollowEnabled
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
}

// Manager reads and writes the settings record. Every call is a fresh
// read-modify-write against the store.
type Manager struct {
	store *storage.Store
	log   *logrus.Entry
}

// NewManager returns a Manager over store.
func NewManager(store *storage.Store) *Manager {
	return &Manager{store: store, log: logrus.WithField("component", "settings")}
}

// Load returns the persisted record merged over the defaults. Keys missing
// from the stored record keep their default; invalid values are healed back
// to their default.
func (m *Manager) Load() Settings {
	s := Defaults()
	var raw json.RawMessage
	found, err := m.store.Get(storage.KeySettings, &raw)
	if err != nil {
		m.log.Errorf("Error reading settings; using defaults: %v", err)
		return s
	}
	if !found {
		return s
	}
	// Decoding over the defaults keeps every key the record does not mention.
	if err := json.Unmarshal(raw, &s); err != nil {
		m.log.Errorf("Corrupt settings record; using defaults: %v", err)
		return Defaults()
	}
	heal(&s)
	return s
}

// Save merges p into the current settings and persists the whole record.
func (m *Manager) Save(p Partial) bool {
	s := m.Load()
	p.apply(&s)
	if err := validate.Struct(s); err != nil {
		m.log.Warnf("Rejecting invalid settings (%v): %v", validate.FieldErrors(err), err)
		return false
	}
	return m.store.Set(storage.KeySettings, s)
}

// Update sets a single setting by its persisted key, parsing value from text.
func (m *Manager) Update(key, value string) error {
	p, err := ParseField(key, value)
	if err != nil {
		return err
	}
	if !m.Save(p) {
		return fmt.Errorf("%w: %s=%s", ErrRejected, key, value)
	}
	return nil
}

// Reset overwrites the stored record with the defaults.
func (m *Manager) Reset() bool {
	return m.store.Set(storage.KeySettings, Defaults())
}

// heal restores the default for every field that fails validation.
func heal(s *Settings) {
	err := validate.Struct(*s)
	if err == nil {
		return
	}
	d := Defaults()
	for _, field := range validate.FieldErrors(err) {
		logrus.Warnf("Invalid %s found in settings; restoring default.", field)
		switch field {
		case "SoundVolume":
			s.SoundVolume = d.SoundVolume
		case "DanmakuSpeed":
			s.DanmakuSpeed = d.DanmakuSpeed
		case "DanmakuInterval":
			s.DanmakuInterval = d.DanmakuInterval
		case "MaxDanmakuOnScreen":
			s.MaxDanmakuOnScreen = d.MaxDanmakuOnScreen
		case "Theme":
			s.Theme = d.Theme
		}
	}
}

// ParseField builds a Partial for one persisted key from its text form.
func ParseField(key, value string) (Partial, error) {
	var p Partial
	switch key {
	case "soundEnabled":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return p, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		p.SoundEnabled = &v
	case "soundVolume":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return p, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		p.SoundVolume = &v
	case "danmakuSpeed", "danmakuInterval", "maxDanmakuOnScreen":
		v, err := strconv.Atoi(value)
		if err != nil {
			return p, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		switch key {
		case "danmakuSpeed":
			p.DanmakuSpeed = &v
		case "danmakuInterval":
			p.DanmakuInterval = &v
		default:
			p.MaxDanmakuOnScreen = &v
		}
	case "mouseFollowEnabled":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return p, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		p.MouseFollowEnabled = &v
	case "theme":
		p.Theme = &value
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return p, nil
}

// Keys lists the persisted setting keys in display order.
func Keys() []string {
	return []string{
		"soundEnabled", "soundVolume", "danmakuSpeed", "danmakuInterval",
		"maxDanmakuOnScreen", "mouseFollowEnabled", "theme",
	}
}
