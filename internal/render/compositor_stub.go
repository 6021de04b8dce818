//go:build !linux

package render

// DetectCompositor returns CompositorActive; Windows and macOS always composite.
func DetectCompositor() CompositorStatus {
	return CompositorActive
}

// IsWayland returns false on non-Linux platforms.
func IsWayland() bool {
	return false
}

// CheckTransparencySupport returns "" on non-Linux platforms.
func CheckTransparencySupport(transparent bool) string {
	return ""
}
