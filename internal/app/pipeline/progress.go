package pipeline

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progressBar renders batch progress on stderr, away from the
// transcript stream on stdout.
type progressBar struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

func newProgressBar(w io.Writer, total int, description string) *progressBar {
	container := mpb.New(
		mpb.WithOutput(w),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	bar := container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncSpace),
		),
	)
	return &progressBar{container: container, bar: bar}
}

func (p *progressBar) increment() {
	p.bar.Increment()
}

func (p *progressBar) wait() {
	p.container.Wait()
}
