package coveranalysis

import (
	"errors"
	"image"
	"math"

	"stegojpeg/pkg/imagecodec"
)

// flatVarianceThreshold is the luma variance below which an 8x8 block is
// considered too smooth to absorb a middle-frequency QIM nudge without a
// visible ripple.
const flatVarianceThreshold = 4.0

// flatWarningFraction is the fraction of flat blocks above which the
// report recommends a busier cover image.
const flatWarningFraction = 0.5

// VarianceAnalyzer flags cover images whose luma is mostly flat, since
// smooth regions make middle-frequency DCT modulation more visible after
// JPEG re-encoding.
type VarianceAnalyzer struct {
	BaseAnalyzer
}

// NewVarianceAnalyzer builds a VarianceAnalyzer.
func NewVarianceAnalyzer() *VarianceAnalyzer {
	return &VarianceAnalyzer{
		BaseAnalyzer: NewBaseAnalyzer(
			"block-variance",
			"flags cover images with too many low-variance 8x8 luma blocks",
		),
	}
}

// Analyze computes the fraction of flat 8x8 luma blocks in img.
func (a *VarianceAnalyzer) Analyze(img image.Image) (*SuitabilityReport, error) {
	if img == nil {
		return nil, errors.New("coveranalysis: nil image")
	}

	ycc := imagecodec.FromImage(img)
	cols, rows := ycc.Y.BlockCount()
	report := &SuitabilityReport{TotalBlocks: cols * rows}

	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			block := ycc.Y.Block(bx, by)
			if blockVariance(block) < flatVarianceThreshold {
				report.FlatBlocks++
			}
		}
	}

	if report.TotalBlocks > 0 {
		report.FlatFraction = float64(report.FlatBlocks) / float64(report.TotalBlocks)
	}
	if report.FlatFraction > flatWarningFraction {
		report.Recommendations = append(report.Recommendations,
			"cover image is mostly flat; prefer a busier photo to keep the embedding imperceptible")
	}
	return report, nil
}

func blockVariance(b [8][8]float64) float64 {
	sum, sumSq := 0.0, 0.0
	const n = 64.0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := b[y][x]
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / n
	return math.Max(0, sumSq/n-mean*mean)
}
