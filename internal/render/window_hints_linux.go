//go:build linux

package render

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// WindowHintApplier applies EWMH state hints to the active X11 window.
// It caches the connection and interned atoms.
type WindowHintApplier struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	atoms map[string]xproto.Atom
}

var globalHintApplier = &WindowHintApplier{
	atoms: make(map[string]xproto.Atom),
}

// ApplyBackgroundHints sets the given hints on the active window.
// It must be called after the window exists. Missing X11 is not an error.
func ApplyBackgroundHints(hints WindowHints) error {
	if !hints.Any() {
		return nil
	}
	return globalHintApplier.Apply(hints)
}

// Apply merges the hint atoms into the active window's _NET_WM_STATE.
func (h *WindowHintApplier) Apply(hints WindowHints) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn == nil {
		conn, err := xgb.NewConn()
		if err != nil {
			return nil
		}
		h.conn = conn
	}

	window, err := h.activeWindow()
	if err != nil || window == xproto.WindowNone {
		return nil
	}

	stateAtom, err := h.atom("_NET_WM_STATE")
	if err != nil {
		return nil
	}

	seen := make(map[xproto.Atom]bool)
	var final []xproto.Atom
	add := func(a xproto.Atom) {
		if !seen[a] {
			seen[a] = true
			final = append(final, a)
		}
	}

	current, _ := h.windowState(window, stateAtom)
	for _, a := range current {
		add(a)
	}
	for _, name := range hints.StateAtoms() {
		if a, err := h.atom(name); err == nil {
			add(a)
		}
	}

	data := make([]byte, len(final)*4)
	for i, a := range final {
		xgb.Put32(data[i*4:], uint32(a))
	}
	return xproto.ChangePropertyChecked(h.conn, xproto.PropModeReplace, window,
		stateAtom, xproto.AtomAtom, 32, uint32(len(final)), data).Check()
}

func (h *WindowHintApplier) atom(name string) (xproto.Atom, error) {
	if a, ok := h.atoms[name]; ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(h.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	h.atoms[name] = reply.Atom
	return reply.Atom, nil
}

// activeWindow prefers _NET_ACTIVE_WINDOW and falls back to input focus.
func (h *WindowHintApplier) activeWindow() (xproto.Window, error) {
	setup := xproto.Setup(h.conn)
	if len(setup.Roots) == 0 {
		return xproto.WindowNone, nil
	}
	root := setup.Roots[0].Root

	if active, err := h.atom("_NET_ACTIVE_WINDOW"); err == nil {
		reply, err := xproto.GetProperty(h.conn, false, root, active,
			xproto.AtomWindow, 0, 1).Reply()
		if err == nil && reply != nil && len(reply.Value) >= 4 {
			return xproto.Window(xgb.Get32(reply.Value)), nil
		}
	}

	focus, err := xproto.GetInputFocus(h.conn).Reply()
	if err != nil {
		return xproto.WindowNone, err
	}
	return focus.Focus, nil
}

func (h *WindowHintApplier) windowState(window xproto.Window, stateAtom xproto.Atom) ([]xproto.Atom, error) {
	reply, err := xproto.GetProperty(h.conn, false, window, stateAtom,
		xproto.AtomAtom, 0, 256).Reply()
	if err != nil || reply == nil {
		return nil, err
	}
	atoms := make([]xproto.Atom, 0, len(reply.Value)/4)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		atoms = append(atoms, xproto.Atom(xgb.Get32(reply.Value[i:])))
	}
	return atoms, nil
}

// Close releases the X11 connection.
func (h *WindowHintApplier) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conn != nil {
		h.conn.Close()
		h.conn = nil
	}
	h.atoms = make(map[string]xproto.Atom)
}

// CloseWindowHints releases the shared hint applier.
func CloseWindowHints() {
	globalHintApplier.Close()
}
