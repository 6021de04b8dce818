//go:build !linux

package render

// ApplyBackgroundHints is a no-op outside X11.
func ApplyBackgroundHints(hints WindowHints) error {
	return nil
}

// CloseWindowHints is a no-op outside X11.
func CloseWindowHints() {}
