package theme

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/spring-countdown/internal/validate"
)

// DefaultID is the theme used when none is configured.
const DefaultID = "default"

// Palette holds the named colors a theme provides.
type Palette struct {
	PrimaryPink   string
	SecondaryPink string
	LightPink     string
	SoftBlue      string
	SkyBlue       string
	Lavender      string
	Lilac         string
	White         string
	TextDark      string
	TextLight     string
}

// Theme is one entry of the static theme table.
type Theme struct {
	ID          string
	Name        string
	Description string
	Colors      Palette
	// Gradient holds the start and end colors of the accent gradient.
	Gradient [2]string
	// Background is the backdrop color; a terminal cannot show the image
	// backgrounds some themes were designed with.
	Background string
}

// Color returns a lipgloss color for a palette hex value.
func Color(hex string) lipgloss.Color { return lipgloss.Color(hex) }

//nolint:gochecknoglobals // Static theme registry populated at init.
var (
	mu     sync.RWMutex
	themes = map[string]*Theme{}
	order  []string
)

// Register adds t to the table. IDs must be unique and non-empty.
func Register(t *Theme) error {
	if t == nil || t.ID == "" {
		return fmt.Errorf("theme: missing id")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := themes[t.ID]; dup {
		return fmt.Errorf("theme: duplicate id %q", t.ID)
	}
	themes[t.ID] = t
	order = append(order, t.ID)
	return nil
}

// MustRegister is Register for init-time tables.
func MustRegister(t *Theme) {
	if err := Register(t); err != nil {
		panic(err)
	}
}

// Lookup returns the theme with the given id.
func Lookup(id string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := themes[id]
	if !ok {
		return Theme{}, false
	}
	return *t, true
}

// MustLookup returns the theme with the given id or the default theme.
func MustLookup(id string) Theme {
	if t, ok := Lookup(id); ok {
		return t
	}
	t, _ := Lookup(DefaultID)
	return t
}

// IDs returns theme ids in registration order.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), order...)
}

// Next returns the id after current in registration order, wrapping around.
// Unknown ids cycle to the first theme.
func Next(current string) string {
	ids := IDs()
	if len(ids) == 0 {
		return DefaultID
	}
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

// At returns the id at 1-based position n, as used by number shortcuts.
func At(n int) (string, bool) {
	ids := IDs()
	if n < 1 || n > len(ids) {
		return "", false
	}
	return ids[n-1], true
}

func init() {
	if err := validate.RegisterFunc("theme_id", func(v string) bool {
		_, ok := Lookup(v)
		return ok
	}); err != nil {
		panic(err)
	}
}
