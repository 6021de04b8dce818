//go:build linux

package render

import (
	"os"
	"os/exec"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// DetectCompositor reports whether an X11 compositor is running. It checks
// the _NET_WM_CM_S0 selection owner and falls back to known process names.
func DetectCompositor() CompositorStatus {
	if status := detectCompositorAtom(); status != CompositorUnknown {
		return status
	}
	return detectCompositorProcess()
}

func detectCompositorAtom() CompositorStatus {
	conn, err := xgb.NewConn()
	if err != nil {
		return CompositorUnknown
	}
	defer conn.Close()

	const name = "_NET_WM_CM_S0"
	atom, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil || atom == nil {
		return CompositorUnknown
	}
	owner, err := xproto.GetSelectionOwner(conn, atom.Atom).Reply()
	if err != nil {
		return CompositorUnknown
	}
	if owner.Owner != xproto.WindowNone {
		return CompositorActive
	}
	return CompositorInactive
}

var knownCompositors = []string{
	"picom", "compton", "compiz", "mutter", "kwin_x11", "xfwm4", "marco", "muffin",
}

func detectCompositorProcess() CompositorStatus {
	for _, name := range knownCompositors {
		if exec.Command("pgrep", "-x", name).Run() == nil {
			return CompositorActive
		}
	}
	return CompositorInactive
}

// IsWayland reports whether the session runs on Wayland.
func IsWayland() bool {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// CheckTransparencySupport returns a warning if a transparent window is
// unlikely to composite, or "" when it should work.
func CheckTransparencySupport(transparent bool) string {
	if !transparent || IsWayland() {
		return ""
	}
	return transparencyWarning(DetectCompositor())
}
