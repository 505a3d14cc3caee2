package callbacks

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressConfig tunes the progress reporter.
type ProgressConfig struct {
	// Writer receives the bar and the epoch summary table. Defaults to stderr.
	Writer io.Writer
	// Width of the bar in characters. Defaults to the library default.
	Width int
	// HideTable suppresses the end-of-epoch summary table.
	HideTable bool
}

// Progress renders a per-epoch progress bar with a live loss readout and
// prints the tracker's summary table after each epoch. It is installed
// automatically by Fit unless suppressed.
type Progress struct {
	Base
	trainer Trainer
	cfg     ProgressConfig
	bar     *progressbar.ProgressBar
}

// NewProgress creates a progress reporter for the given trainer.
func NewProgress(trainer Trainer, cfg ProgressConfig) *Progress {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	return &Progress{trainer: trainer, cfg: cfg}
}

func (p *Progress) OnTrainEpochStart() error {
	t := p.trainer.Tracker()
	p.bar = p.newBar(fmt.Sprintf("epoch %d/%d", t.CurrentEpoch+1, t.MaxEpochs))
	return nil
}

func (p *Progress) OnTrainStepEnd(Payload) error {
	p.bar.Describe(p.describe("train"))
	return p.bar.Add(1)
}

func (p *Progress) OnTrainEpochEnd() error {
	return p.finishBar()
}

func (p *Progress) OnValEpochStart() error {
	t := p.trainer.Tracker()
	p.bar = p.newBar(fmt.Sprintf("epoch %d/%d [val]", t.CurrentEpoch+1, t.MaxEpochs))
	return nil
}

func (p *Progress) OnValStepEnd(Payload) error {
	p.bar.Describe(p.describe("val"))
	return p.bar.Add(1)
}

func (p *Progress) OnValEpochEnd() error {
	return p.finishBar()
}

func (p *Progress) OnEpochEnd() error {
	if p.cfg.HideTable {
		return nil
	}
	_, err := fmt.Fprintln(p.cfg.Writer, p.trainer.Tracker().CreateTable())
	return err
}

// Clean closes any bar left open by a cancelled or interrupted run.
func (p *Progress) Clean() {
	if p.bar != nil {
		_ = p.bar.Close()
		p.bar = nil
	}
}

func (p *Progress) newBar(description string) *progressbar.ProgressBar {
	// Unknown loader length renders as a spinner.
	total := p.trainer.Tracker().StepsPerEpoch
	if total <= 0 {
		total = -1
	}

	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(p.cfg.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	}
	if p.cfg.Width > 0 {
		opts = append(opts, progressbar.OptionSetWidth(p.cfg.Width))
	}
	return progressbar.NewOptions(total, opts...)
}

func (p *Progress) describe(mode string) string {
	t := p.trainer.Tracker()
	loss := t.TrainLoss()
	if mode == "val" {
		loss = t.ValLoss()
	}
	return fmt.Sprintf("epoch %d/%d [%s] loss=%.3f", t.CurrentEpoch+1, t.MaxEpochs, mode, loss)
}

func (p *Progress) finishBar() error {
	if p.bar == nil {
		return nil
	}
	err := p.bar.Finish()
	p.bar = nil
	return err
}
