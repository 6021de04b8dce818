//go:build noebiten

package rampfx

import (
	"context"

	"github.com/opd-ai/go-rampfx/internal/ramp"
	"github.com/opd-ai/go-rampfx/internal/render"
)

// windowFrame returns a CPU frame; noebiten builds have no window.
func windowFrame(rc render.Config) ramp.Canvas {
	return render.NewRasterCanvas(rc.Width, rc.Height)
}

// runWindow falls back to headless ticking in noebiten builds.
func (c *effectImpl) runWindow(ctx context.Context, game *render.Game, rc render.Config) error {
	return c.runHeadless(ctx, game, rc.FPS)
}
