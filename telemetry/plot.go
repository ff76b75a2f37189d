package telemetry

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotScores draws score, best score and mean fitness per generation.
func PlotScores(history []GenerationSummary, path string) error {
	if len(history) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = "Score per generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Score"

	scorePts := make(plotter.XYs, len(history))
	bestPts := make(plotter.XYs, len(history))
	meanPts := make(plotter.XYs, len(history))
	for i, s := range history {
		x := float64(s.Generation)
		scorePts[i] = plotter.XY{X: x, Y: float64(s.Score)}
		bestPts[i] = plotter.XY{X: x, Y: float64(s.BestScore)}
		meanPts[i] = plotter.XY{X: x, Y: s.MeanFitness}
	}

	scoreLine, err := plotter.NewLine(scorePts)
	if err != nil {
		return fmt.Errorf("score line: %w", err)
	}
	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return fmt.Errorf("best line: %w", err)
	}
	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return fmt.Errorf("mean line: %w", err)
	}
	bestLine.Color = color.RGBA{R: 200, A: 255}
	meanLine.Color = color.RGBA{B: 200, A: 255}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(scoreLine, bestLine, meanLine)
	p.Legend.Add("score", scoreLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean fitness", meanLine)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
