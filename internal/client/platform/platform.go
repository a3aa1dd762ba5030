// Package platform wraps host facilities the app cannot assume exist:
// a URL opener, a clipboard, a geolocation source, a speech engine.
// Each capability is probed once at startup; a feature whose capability
// is absent renders a fallback instead of failing at invocation time.
package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// Opener hands a URL to whatever the host uses for external links.
type Opener interface {
	OpenURL(ctx context.Context, url string) error
}

// Clipboard copies text for the user to paste elsewhere.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// Coordinates is a geographic position.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Geolocator resolves the device position.
type Geolocator interface {
	Current(ctx context.Context) (Coordinates, error)
}

type execOpener struct {
	bin string
}

func (o *execOpener) OpenURL(ctx context.Context, url string) error {
	return exec.CommandContext(ctx, o.bin, url).Start()
}

// ProbeOpener looks for a URL opener on the host. The second return is
// false when none exists.
func ProbeOpener() (Opener, bool) {
	candidates := []string{"xdg-open"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"open"}
	}
	for _, bin := range candidates {
		if path, err := exec.LookPath(bin); err == nil {
			return &execOpener{bin: path}, true
		}
	}
	return nil, false
}

type execClipboard struct {
	bin  string
	args []string
}

func (c *execClipboard) Copy(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, c.bin, c.args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// ProbeClipboard looks for a clipboard writer on the host.
func ProbeClipboard() (Clipboard, bool) {
	candidates := []struct {
		bin  string
		args []string
	}{
		{"pbcopy", nil},
		{"wl-copy", nil},
		{"xclip", []string{"-selection", "clipboard"}},
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c.bin); err == nil {
			return &execClipboard{bin: path, args: c.args}, true
		}
	}
	return nil, false
}

type envGeolocator struct {
	coords Coordinates
}

func (g *envGeolocator) Current(ctx context.Context) (Coordinates, error) {
	return g.coords, nil
}

// ProbeGeolocator reads a fixed position from LUZPALAVRA_GEO
// ("lat,lon"). Hosts without one simply lack the capability and the
// nearby-churches feature degrades to the text search.
func ProbeGeolocator() (Geolocator, bool) {
	raw := os.Getenv("LUZPALAVRA_GEO")
	if raw == "" {
		return nil, false
	}
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return nil, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return &envGeolocator{coords: Coordinates{Lat: lat, Lon: lon}}, true
}

// Capabilities is the probed set handed to the services. Nil fields mean
// the host lacks that capability.
type Capabilities struct {
	Opener     Opener
	Clipboard  Clipboard
	Geolocator Geolocator
}

// Probe runs every capability probe once.
func Probe() Capabilities {
	caps := Capabilities{}
	if o, ok := ProbeOpener(); ok {
		caps.Opener = o
	}
	if c, ok := ProbeClipboard(); ok {
		caps.Clipboard = c
	}
	if g, ok := ProbeGeolocator(); ok {
		caps.Geolocator = g
	}
	return caps
}

// String summarizes which capabilities were found, for the startup log.
func (c Capabilities) String() string {
	return fmt.Sprintf("opener=%t clipboard=%t geolocation=%t",
		c.Opener != nil, c.Clipboard != nil, c.Geolocator != nil)
}
