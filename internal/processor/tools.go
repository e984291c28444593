package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// checkFFmpeg fails with ErrToolMissing when the ffmpeg binary cannot be
// started. A binary that starts but fails is reported as is.
func (p *implProcessor) checkFFmpeg(ctx context.Context) error {
	if _, err := p.executor.Execute(ctx, p.ffmpegPath, "-version"); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrToolMissing, p.ffmpegPath)
		}
		return fmt.Errorf("check ffmpeg: %w", err)
	}
	return nil
}
