// Package trend fits the least-squares line relating score to rank across
// the catalog, used for the correlation chart overlay.
package trend

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/internal/domain/scoring"
)

// Sentinel errors. Callers suppress the trend overlay on either.
var (
	ErrNoPoints   = errors.New("trend: no points")
	ErrDegenerate = errors.New("trend: fewer than two distinct x values")
)

const predictionPrecision = 2

// Point is one (x, y) observation.
type Point struct {
	X float64
	Y float64
}

// Line is y = Slope·x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 { return l.Slope*x + l.Intercept }

// Fit computes the ordinary least squares line through points. It returns
// ErrNoPoints for empty input and ErrDegenerate when all x are identical,
// where n·Σx² − (Σx)² is zero.
func Fit(points []Point) (Line, error) {
	if len(points) == 0 {
		return Line{}, ErrNoPoints
	}
	xs, ys := split(points)
	if !distinct(xs) {
		return Line{}, ErrDegenerate
	}
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return Line{}, ErrDegenerate
	}
	return Line{Slope: slope, Intercept: intercept}, nil
}

// Observation is a game placed on the chart with its predicted rank.
type Observation struct {
	Game      model.Game
	Predicted float64
}

// Analysis is the correlation chart model.
type Analysis struct {
	Line        Line
	Correlation float64
	// Points are ordered by rank ascending.
	Points []Observation
}

// RankOnScore regresses rank (y) on score (x) over all games at once and
// predicts a rank per game, rounded to 2 decimal places. On ErrNoPoints or
// ErrDegenerate the returned Analysis still carries the ordered points with
// zero predictions so the scatter can be drawn without an overlay.
func RankOnScore(games []model.Game) (Analysis, error) {
	sorted := make([]model.Game, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	a := Analysis{Points: make([]Observation, len(sorted))}
	points := make([]Point, len(sorted))
	for i, g := range sorted {
		a.Points[i] = Observation{Game: g}
		points[i] = Point{X: g.Score, Y: float64(g.Rank)}
	}

	line, err := Fit(points)
	if err != nil {
		return a, err
	}
	a.Line = line
	for i := range a.Points {
		a.Points[i].Predicted = scoring.Round(line.At(points[i].X), predictionPrecision)
	}

	xs, ys := split(points)
	if r := stat.Correlation(xs, ys, nil); !math.IsNaN(r) {
		a.Correlation = r
	}
	return a, nil
}

func split(points []Point) ([]float64, []float64) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

func distinct(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return true
		}
	}
	return false
}
