//go:build !noebiten

package rampfx

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/go-rampfx/internal/ramp"
	"github.com/opd-ai/go-rampfx/internal/render"
)

// windowFrame allocates the GPU frame the ramp is drawn into.
func windowFrame(rc render.Config) ramp.Canvas {
	return render.NewEbitenCanvas(rc.Width, rc.Height)
}

// runWindow runs the Ebiten loop until the window closes or the game's
// context is cancelled.
func (c *effectImpl) runWindow(_ context.Context, game *render.Game, rc render.Config) error {
	if msg := render.CheckTransparencySupport(rc.Transparent); msg != "" && c.opts.Logger != nil {
		c.opts.Logger.Warn(msg)
	}

	if err := game.Run(); err != nil && !errors.Is(err, render.ErrGameTerminated) {
		err = fmt.Errorf("render loop error: %w", err)
		c.notifyError(err)
		return err
	}
	return nil
}
