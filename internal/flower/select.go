package flower

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
	"unicode/utf16"

	"github.com/franckalain/nourishbloom/internal/models"
)

// SelectionMode controls how the day's flower variant is chosen.
type SelectionMode string

const (
	// SelectDaily derives the flower from the date alone, so it is stable
	// for the whole day.
	SelectDaily SelectionMode = "daily"
	// SelectRandom mixes a fresh draw in [0,1000) into the seed on every
	// call, so repeated calls on one date may disagree.
	SelectRandom SelectionMode = "random"
)

// ParseSelectionMode validates a mode name from configuration.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch SelectionMode(s) {
	case SelectDaily, SelectRandom:
		return SelectionMode(s), nil
	case "":
		return SelectDaily, nil
	default:
		return "", fmt.Errorf("unknown flower selection mode: %s", s)
	}
}

// Selector picks the flower variant for a date.
type Selector struct {
	mode SelectionMode
	draw func(n int) int
}

// NewSelector returns a selector for the given mode. draw is used for the
// random component; nil means math/rand.
func NewSelector(mode SelectionMode, draw func(n int) int) *Selector {
	if draw == nil {
		draw = rand.Intn
	}
	return &Selector{mode: mode, draw: draw}
}

// Mode reports how this selector chooses flowers.
func (s *Selector) Mode() SelectionMode {
	return s.mode
}

// Today returns the flower variant for the calendar day of date.
func (s *Selector) Today(date time.Time) models.FlowerType {
	seed := date.Format(models.DayLayout)
	if s.mode == SelectRandom {
		seed += strconv.Itoa(s.draw(1000))
	}
	return Types[HashString(seed)%uint32(len(Types))]
}

// HashString is the 32-bit rolling hash h = h*31 + c over UTF-16 code units,
// wrapping at each step, with the absolute value taken at the end.
func HashString(s string) uint32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}
