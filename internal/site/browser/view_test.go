package browser

import (
	"strings"
	"testing"
	"time"

	"github.com/builld/web/internal/site/stepper"
	"github.com/builld/web/internal/site/toast"
	"golang.org/x/net/html"
)

func TestCardStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   stepper.CardTransform
		want string
	}{
		{name: "front card", in: stepper.CardTransform{Z: 100, Scale: 1}, want: "transform: translate(0px, 0px) rotate(0deg) scale(1); z-index: 100"},
		{name: "fanned card", in: stepper.CardTransform{X: -12.5, Y: 8, Rotate: -3, Z: 40, Scale: 0.9}, want: "transform: translate(-12.5px, 8px) rotate(-3deg) scale(0.9); z-index: 40"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CardStyle(tc.in); got != tc.want {
				t.Fatalf("CardStyle() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSplashLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		progress    float64
		wantPercent string
		wantWidth   string
	}{
		{progress: 0, wantPercent: "0%", wantWidth: "0%"},
		{progress: 37.6, wantPercent: "38%", wantWidth: "37.6%"},
		{progress: 100, wantPercent: "100%", wantWidth: "100%"},
		{progress: 140, wantPercent: "100%", wantWidth: "100%"},
		{progress: -5, wantPercent: "0%", wantWidth: "0%"},
	}
	for _, tc := range tests {
		if got := SplashPercent(tc.progress); got != tc.wantPercent {
			t.Fatalf("SplashPercent(%v) = %q, want %q", tc.progress, got, tc.wantPercent)
		}
		if got := SplashWidth(tc.progress); got != tc.wantWidth {
			t.Fatalf("SplashWidth(%v) = %q, want %q", tc.progress, got, tc.wantWidth)
		}
	}
}

func TestToastClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   toast.Toast
		want string
	}{
		{name: "success", in: toast.Toast{Type: toast.Success}, want: "toast toast-success"},
		{name: "paused error", in: toast.Toast{Type: toast.Error, Paused: true}, want: "toast toast-error toast-paused"},
		{name: "unknown type", in: toast.Toast{Type: "loud"}, want: "toast toast-info"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ToastClass(tc.in); got != tc.want {
				t.Fatalf("ToastClass() = %q, want %q", got, tc.want)
			}
		})
	}

	if got := ToastRegionClass(toast.BottomRight); got != "toast-region toast-bottom-right" {
		t.Fatalf("ToastRegionClass() = %q", got)
	}
	if got := ToastRegionClass(""); got != "toast-region toast-top-right" {
		t.Fatalf("ToastRegionClass(empty) = %q", got)
	}
}

func TestSeededToastOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		kind        string
		position    string
		duration    string
		description string
		want        toast.Options
	}{
		{
			name:     "placement and duration",
			kind:     "error",
			position: "bottom-left",
			duration: "6000",
			want:     toast.Options{Type: toast.Error, Position: toast.BottomLeft, Duration: 6 * time.Second},
		},
		{
			name:        "description kept",
			kind:        "success",
			position:    "top-right",
			duration:    "4000",
			description: " We'll get back to you soon. ",
			want:        toast.Options{Type: toast.Success, Position: toast.TopRight, Duration: 4 * time.Second, Description: "We'll get back to you soon."},
		},
		{
			name:     "bad attributes fall back",
			kind:     "info",
			position: "middle",
			duration: "soon",
			want:     toast.Options{Type: toast.Info, Position: toast.TopRight},
		},
		{
			name:     "negative duration ignored",
			kind:     "warning",
			duration: "-5",
			want:     toast.Options{Type: toast.Warning, Position: toast.TopRight},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SeededToastOptions(tc.kind, tc.position, tc.duration, tc.description); got != tc.want {
				t.Fatalf("SeededToastOptions() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestToastCountdown(t *testing.T) {
	t.Parallel()

	notice := toast.Toast{Duration: 4 * time.Second, Progress: 0.25}
	if got := Remaining(notice); got != 3*time.Second {
		t.Fatalf("Remaining() = %s, want 3s", got)
	}
	if got := ProgressWidth(notice.Progress); got != "75%" {
		t.Fatalf("ProgressWidth() = %q, want 75%%", got)
	}
	if got := Remaining(toast.Toast{}); got != 0 {
		t.Fatalf("Remaining(zero) = %s, want 0", got)
	}
	if got := ProgressWidth(2); got != "0%" {
		t.Fatalf("ProgressWidth(overflow) = %q, want 0%%", got)
	}
}

func TestErrorScreenMarkup(t *testing.T) {
	t.Parallel()

	doc, err := html.Parse(strings.NewReader(ErrorScreenHTML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var foundState, foundReload bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == "app-error-state" {
					foundState = true
				}
				if a.Key == "data-reload" {
					foundReload = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if !foundState || !foundReload {
		t.Fatalf("error screen state=%t reload=%t", foundState, foundReload)
	}
}
