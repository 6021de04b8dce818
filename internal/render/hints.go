package render

// WindowHints are the EWMH state hints that turn the window into a
// desktop wallpaper layer.
type WindowHints struct {
	SkipTaskbar bool
	SkipPager   bool
	Below       bool
	Sticky      bool
}

// Any reports whether at least one hint is set.
func (h WindowHints) Any() bool {
	return h.SkipTaskbar || h.SkipPager || h.Below || h.Sticky
}

// StateAtoms returns the _NET_WM_STATE atom names for the set hints,
// in a stable order.
func (h WindowHints) StateAtoms() []string {
	var names []string
	if h.SkipTaskbar {
		names = append(names, "_NET_WM_STATE_SKIP_TASKBAR")
	}
	if h.SkipPager {
		names = append(names, "_NET_WM_STATE_SKIP_PAGER")
	}
	if h.Below {
		names = append(names, "_NET_WM_STATE_BELOW")
	}
	if h.Sticky {
		names = append(names, "_NET_WM_STATE_STICKY")
	}
	return names
}

// CompositorStatus represents the detected compositor state.
type CompositorStatus int

const (
	// CompositorUnknown means detection failed.
	CompositorUnknown CompositorStatus = iota
	// CompositorActive means a compositor is running and transparency works.
	CompositorActive
	// CompositorInactive means no compositor was found.
	CompositorInactive
)

// String returns a human-readable compositor status.
func (cs CompositorStatus) String() string {
	switch cs {
	case CompositorActive:
		return "active"
	case CompositorInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// transparencyWarning maps a compositor status to a startup warning.
func transparencyWarning(status CompositorStatus) string {
	switch status {
	case CompositorActive:
		return ""
	case CompositorInactive:
		return "no compositor detected; a transparent gradient will render over black"
	default:
		return "could not detect compositor status; transparency may not work"
	}
}
