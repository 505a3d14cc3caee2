package callbacks

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

// CSVLogger writes the tracker's full step log to a CSV file when the fit
// ends. Each fit call truncates and rewrites the file.
type CSVLogger struct {
	Base
	trainer Trainer
	path    string
}

// NewCSVLogger creates a CSV history logger writing to path.
func NewCSVLogger(trainer Trainer, path string) *CSVLogger {
	return &CSVLogger{trainer: trainer, path: path}
}

func (c *CSVLogger) OnFitEnd() error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv logger: %w", err)
	}
	defer f.Close()

	if err := c.trainer.Tracker().WriteCSV(f); err != nil {
		return fmt.Errorf("csv logger: %w", err)
	}
	klog.V(3).Infof("wrote training history to %s", c.path)
	return nil
}
