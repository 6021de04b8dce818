// Package rampfx provides the public API for embedding the moving gradient
// ramp. It runs the effect in a window or headless, with full lifecycle
// control and configuration hot reload.
//
// # Basic Usage
//
//	e, err := rampfx.New("/path/to/rampfx.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer e.Stop()
//
//	if err := e.Start(); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration Sources
//
//   - Disk file: Use [New] to load from a filesystem path
//   - Embedded FS: Use [NewFromFS] to load from an [io/fs.FS]
//   - io.Reader: Use [NewFromReader] for dynamic configurations
//   - Defaults: Use [NewDefault] for the built-in rainbow ramp
//
// # Headless Mode
//
// With Options.Headless the ramp is drawn on a CPU canvas from a ticker
// goroutine. [Effect.Snapshot] returns the latest frame, and [Effect.Render]
// advances a stopped instance by a fixed number of frames:
//
//	e, _ := rampfx.NewDefault(&rampfx.Options{Headless: true})
//	img, _ := e.Render(120)
//	png.Encode(f, img)
//
// All methods are safe for concurrent use.
package rampfx
