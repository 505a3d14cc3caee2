// Package main provides the GradsFlow CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"

	"github.com/arvindmuralie77/gradsflow/model"
	"github.com/arvindmuralie77/gradsflow/optim"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("GradsFlow %s\n", version)
			return
		case "train":
			if err := runDemo(os.Args[2:]); err != nil {
				log.Fatal(err)
			}
			return
		}
	}

	fmt.Println("GradsFlow - Training loop orchestration for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Run the built-in linear regression demo")
}

// runDemo trains a one-parameter linear model on synthetic data. It exists
// so the engine, callbacks and progress reporting can be exercised without
// writing any code. Ctrl-C stops the run gracefully.
func runDemo(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	epochs := fs.Int("epochs", 10, "Number of training epochs")
	lr := fs.Float64("lr", 0.05, "Learning rate for SGD")
	smoke := fs.Bool("smoke", false, "Run a single step and epoch only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	learner := newDemoLearner()
	cfg := model.DefaultConfig()
	cfg.SmokeTest = *smoke
	m := model.New(learner, cfg)

	err := m.Compile(model.CompileConfig{
		Loss: demoLoss{learner: learner},
		Optimizer: optim.NewSGD(learner.Parameters(), optim.SGDConfig{
			LR: *lr,
		}),
	})
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	rng := rand.New(rand.NewSource(7))
	batches := make([]any, 0, 16)
	for range 16 {
		xs := make([]float64, 8)
		ys := make([]float64, 8)
		for i := range xs {
			xs[i] = rng.Float64()*4 - 2
			ys[i] = 2.5 * xs[i]
		}
		batches = append(batches, model.Pair{Inputs: xs, Target: ys})
	}

	data, err := model.NewAutoDataset(model.SliceLoader(batches...), nil)
	if err != nil {
		return err
	}

	tracker, err := m.Fit(ctx, data, model.FitConfig{MaxEpochs: *epochs})
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}

	fmt.Printf("\nLearned slope: %.3f (target 2.5)\n", learner.w.Data[0])
	fmt.Printf("Final train loss: %.5f\n", tracker.TrainLoss())
	return nil
}

// demoLearner is a single-weight linear map y = w*x.
type demoLearner struct {
	w    *optim.Parameter
	last []float64
}

func newDemoLearner() *demoLearner {
	return &demoLearner{w: optim.NewParameter("w", 1)}
}

func (d *demoLearner) Forward(inputs any) any {
	xs := inputs.([]float64)
	d.last = xs
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = d.w.Data[0] * x
	}
	return out
}

func (d *demoLearner) Parameters() []*optim.Parameter {
	return []*optim.Parameter{d.w}
}

// demoLoss is mean squared error with an analytic backward pass.
type demoLoss struct {
	learner *demoLearner
}

func (l demoLoss) Compute(preds, target any) any {
	return &demoLossValue{
		learner: l.learner,
		preds:   preds.([]float64),
		target:  target.([]float64),
	}
}

type demoLossValue struct {
	learner *demoLearner
	preds   []float64
	target  []float64
}

func (v *demoLossValue) Item() float64 {
	var sum float64
	for i := range v.preds {
		diff := v.preds[i] - v.target[i]
		sum += diff * diff
	}
	if len(v.preds) == 0 {
		return 0
	}
	return sum / float64(len(v.preds))
}

func (v *demoLossValue) Backward() {
	n := float64(len(v.preds))
	for i := range v.preds {
		v.learner.w.Grad[0] += 2 * (v.preds[i] - v.target[i]) * v.learner.last[i] / n
	}
}
