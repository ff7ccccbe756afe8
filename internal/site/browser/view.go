package browser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/builld/web/internal/site/stepper"
	"github.com/builld/web/internal/site/toast"
)

// ErrorScreenHTML replaces the page body after an unrecovered runtime panic.
const ErrorScreenHTML = `<main id="main"><div id="app-error-state" class="error-state" role="alert">` +
	`<p class="error-code">500</p>` +
	`<h1 class="error-title">Something went wrong</h1>` +
	`<p class="error-body">An unexpected error occurred. Please reload the page.</p>` +
	`<button type="button" class="btn btn-primary" data-reload>Reload</button>` +
	`</div></main>`

// CardStyle renders t as an inline style for a process card.
func CardStyle(t stepper.CardTransform) string {
	return fmt.Sprintf(
		"transform: translate(%spx, %spx) rotate(%sdeg) scale(%s); z-index: %d",
		formatFloat(t.X),
		formatFloat(t.Y),
		formatFloat(t.Rotate),
		formatFloat(t.Scale),
		t.Z,
	)
}

// SplashPercent is the label under the splash progress bar.
func SplashPercent(progress float64) string {
	return strconv.Itoa(int(math.Round(clamp(progress, 0, 100)))) + "%"
}

// SplashWidth is the CSS width of the splash bar.
func SplashWidth(progress float64) string {
	return formatFloat(clamp(progress, 0, 100)) + "%"
}

// ToastClass returns the class list of the toast element.
func ToastClass(t toast.Toast) string {
	kind := t.Type
	if !kind.Valid() {
		kind = toast.Info
	}
	classes := []string{"toast", "toast-" + string(kind)}
	if t.Paused {
		classes = append(classes, "toast-paused")
	}
	return strings.Join(classes, " ")
}

// ToastRegionClass returns the class list of the toast region for p.
func ToastRegionClass(p toast.Position) string {
	if !p.Valid() {
		p = toast.TopRight
	}
	return "toast-region toast-" + string(p)
}

// SeededToastOptions reads the options of a server-rendered toast from its
// data attributes. durationMS is in milliseconds; unparsable values fall
// back to the notifier defaults.
func SeededToastOptions(kind, position, durationMS, description string) toast.Options {
	opts := toast.Options{
		Description: strings.TrimSpace(description),
		Type:        toast.Type(kind),
		Position:    toast.Position(position),
	}
	if !opts.Position.Valid() {
		opts.Position = toast.TopRight
	}
	if ms, err := strconv.Atoi(strings.TrimSpace(durationMS)); err == nil && ms > 0 {
		opts.Duration = time.Duration(ms) * time.Millisecond
	}
	return opts
}

// ProgressWidth is the CSS width of the countdown bar: the share of the
// duration still left.
func ProgressWidth(progress float64) string {
	return formatFloat((1-clamp(progress, 0, 1))*100) + "%"
}

// Remaining returns the countdown left on t.
func Remaining(t toast.Toast) time.Duration {
	if t.Duration <= 0 {
		return 0
	}
	left := 1 - clamp(t.Progress, 0, 1)
	return time.Duration(float64(t.Duration) * left)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
