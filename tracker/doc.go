// Copyright 2025 The GradsFlow Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tracker exposes the run-state aggregator of a fit call: rolling
// loss and metric averages per mode, epoch counters, the append-only step
// log, and its tabular/CSV renderings.
//
// # Basic Usage
//
//	tr, _ := m.Fit(ctx, data, model.FitConfig{MaxEpochs: 5})
//	fmt.Println(tr.CreateTable())
//	loss, _ := tr.Value("loss")
package tracker
