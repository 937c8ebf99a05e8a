package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/lox/indianpoker/internal/statistics"
)

// Reporter renders reports to a writer.
type Reporter struct {
	writer io.Writer
	logger zerolog.Logger
}

// NewReporter creates a reporter. A nil writer falls back to stdout.
func NewReporter(writer io.Writer, logger zerolog.Logger) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer, logger: logger}
}

// WriteJSON outputs the report as an indented JSON document.
func (r *Reporter) WriteJSON(rep *Report) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rep.Document()); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	r.logger.Debug().Str("run", rep.RunID).Msg("report written as json")
	return nil
}

// WriteSummary outputs the human-readable summary: batch header, group
// statistics, score histograms, and the test verdict.
func (r *Reporter) WriteSummary(rep *Report) error {
	var sb strings.Builder

	sb.WriteString("\nIndian Poker Simulation Report\n")
	sb.WriteString("==============================\n")
	sb.WriteString(fmt.Sprintf("Run: %s\n", rep.RunID))
	sb.WriteString(fmt.Sprintf("Batch: %d games x %d rounds, %d players (seed %d)\n",
		rep.Games, rep.Rounds, rep.Players, rep.Seed))
	sb.WriteString(fmt.Sprintf("Duration: %.2fs\n", rep.Duration.Seconds()))

	sb.WriteString("\nPolicy groups\n")
	sb.WriteString("-------------\n")
	for _, g := range rep.Groups() {
		if g.Sample.Count == 0 {
			sb.WriteString(fmt.Sprintf("%-9s no seats\n", g.Policy))
			continue
		}
		ciLow, ciHigh := g.Sample.ConfidenceInterval95()
		sb.WriteString(fmt.Sprintf("%-9s %d seats, mean %.2f (95%% CI [%.2f, %.2f])\n",
			g.Policy, g.Sample.Count, g.Sample.Mean(), ciLow, ciHigh))
		sb.WriteString(fmt.Sprintf("          median %.1f, stddev %.2f, range [%.0f, %.0f], honesty %.2f\n",
			g.Sample.Median(), g.Sample.StdDev(), g.Sample.Min(), g.Sample.Max(), g.MeanHonesty))
	}

	if err := r.writeHistograms(&sb, rep); err != nil {
		return err
	}

	w := rep.Welch
	sb.WriteString("\nComparison (Welch's t-test, rational - random)\n")
	sb.WriteString("----------------------------------------------\n")
	sb.WriteString(fmt.Sprintf("Difference: %.2f points over %d rounds\n", w.Difference, rep.Rounds))
	sb.WriteString(fmt.Sprintf("t = %.3f, df = %.1f\n", w.TStatistic, w.DF))
	sb.WriteString(fmt.Sprintf("P-Value: %.4f (%s)\n", w.PValue, statistics.InterpretPValue(w.PValue, rep.Alpha)))
	sb.WriteString(fmt.Sprintf("Effect Size: %.2f (%s)\n", w.EffectSize, statistics.InterpretEffectSize(w.EffectSize)))
	sb.WriteString(fmt.Sprintf("95%% CI of difference: [%.2f, %.2f]\n", w.CI95Low, w.CI95High))

	sb.WriteString(fmt.Sprintf("\nVerdict: %s\n", rep.Verdict()))

	if _, err := fmt.Fprint(r.writer, sb.String()); err != nil {
		return err
	}
	r.logger.Debug().Str("run", rep.RunID).Msg("report written as summary")
	return nil
}

// writeHistograms renders one bar chart per group over shared bucket
// edges, so the two charts are visually comparable.
func (r *Reporter) writeHistograms(sb *strings.Builder, rep *Report) error {
	lo, hi := rep.ScoreRange()

	sb.WriteString("\nScore distribution\n")
	sb.WriteString("------------------\n")
	for _, g := range rep.Groups() {
		if g.Sample.Count == 0 {
			continue
		}
		bins := statistics.Bins(g.Sample.Values, lo, hi, HistogramBins)
		bars := make(pterm.Bars, 0, len(bins))
		for _, bin := range bins {
			bars = append(bars, pterm.Bar{Label: bin.Label(), Value: bin.Count})
		}
		chart, err := pterm.DefaultBarChart.
			WithHorizontal().
			WithShowValue().
			WithBars(bars).
			Srender()
		if err != nil {
			return fmt.Errorf("rendering %s histogram: %w", g.Policy, err)
		}
		sb.WriteString(fmt.Sprintf("%s\n", g.Policy))
		sb.WriteString(chart)
	}
	return nil
}
