package danmaku

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownKind = errors.New("unknown comment kind")
	ErrNoSurface   = errors.New("comment surface not available")
)

// Kind marks a special comment whose style is fixed instead of random.
type Kind int

const (
	KindNone Kind = iota
	KindFirework
	KindRainbow
	KindSparkle
)

// SpecialKinds are the kinds picked from for a random special comment.
//
//nolint:gochecknoglobals // Static table.
var SpecialKinds = []Kind{KindRainbow, KindSparkle, KindFirework}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return ""
	case KindFirework:
		return "firework"
	case KindRainbow:
		return "rainbow"
	case KindSparkle:
		return "sparkle"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= KindNone && k <= KindSparkle
}

// Style returns the fixed style for a special kind, or "" for KindNone.
func (k Kind) Style() string {
	if k == KindNone || !k.Valid() {
		return ""
	}
	return k.String() + "-style"
}

// ParseKind maps a kind name to its value. The empty string is KindNone.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "", "none":
		return KindNone, nil
	case "firework":
		return KindFirework, nil
	case "rainbow":
		return KindRainbow, nil
	case "sparkle":
		return KindSparkle, nil
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Styles is the set random styles are drawn from.
//
//nolint:gochecknoglobals // Static table.
var Styles = []string{"style-1", "style-2", "style-3", "style-4", "style-5", "style-6"}
