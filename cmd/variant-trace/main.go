// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command variant-trace walks through the life of a few variants and
// prints every step: construction and destruction of tracked payloads,
// failed access and failed construction, reference and read-only
// alternatives, and a recursive list summed by polling and by visitors.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"code.hybscloud.com/variant"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	logLevel := pflag.String("log-level", "info", "Log level (debug shows payload lifecycle events)")
	metrics := pflag.Bool("metrics", false, "Print lifecycle counters after the trace")
	length := pflag.Int("length", 3, "Length of the list summed by polling")
	pflag.Parse()

	level, err := zap.ParseAtomicLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level %#v: %s", *logLevel, err)
	}
	config := zap.NewDevelopmentConfig()
	config.Level = level
	logger, err := config.Build()
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer logger.Sync()
	variant.SetLogger(logger.Named("variant"))

	registry := prometheus.NewRegistry()
	stats, err := run(os.Stdout, logger, registry, *length)
	if err != nil {
		logger.Fatal("Trace failed", zap.Error(err))
	}
	logger.Info("Trace complete",
		zap.Int64("constructed", stats.Constructed),
		zap.Int64("cloned", stats.Cloned),
		zap.Int64("destroyed", stats.Destroyed))

	if *metrics {
		if err := dumpMetrics(os.Stdout, registry); err != nil {
			logger.Fatal("Failed to gather metrics", zap.Error(err))
		}
	}
}

// dumpMetrics writes every counter and gauge of g, one sample per line.
func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
			}
		}
	}
	return nil
}
