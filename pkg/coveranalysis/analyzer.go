// Package coveranalysis checks whether a candidate cover image is a good
// fit for embedding: enough textured 8x8 luma blocks that a QIM nudge won't
// be visible. It does not consider the payload size.
package coveranalysis

import "image"

// CoverAnalyzer inspects a candidate cover image and reports on its
// suitability for embedding.
type CoverAnalyzer interface {
	Name() string
	Description() string
	Analyze(img image.Image) (*SuitabilityReport, error)
}

// SuitabilityReport summarizes how well a cover image is suited to
// carrying an embedded payload.
type SuitabilityReport struct {
	TotalBlocks     int
	FlatBlocks      int
	FlatFraction    float64
	Recommendations []string
}

// BaseAnalyzer provides the name/description bookkeeping shared by
// concrete analyzers.
type BaseAnalyzer struct {
	name        string
	description string
}

// NewBaseAnalyzer builds a BaseAnalyzer with a fixed name and description.
func NewBaseAnalyzer(name, description string) BaseAnalyzer {
	return BaseAnalyzer{name: name, description: description}
}

// Name returns the analyzer's name.
func (b *BaseAnalyzer) Name() string { return b.name }

// Description returns the analyzer's description.
func (b *BaseAnalyzer) Description() string { return b.description }
