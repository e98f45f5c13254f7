// Package models holds the report types returned by embed and extract
// operations.
package models

import "time"

// EmbedReport describes the outcome of embedding a payload into a cover
// image.
type EmbedReport struct {
	CoverWidth      int           `json:"coverWidth"`
	CoverHeight     int           `json:"coverHeight"`
	Quality         int           `json:"quality"`
	PayloadBytes    int           `json:"payloadBytes"`
	CapacityBytes   int           `json:"capacityBytes"`
	BlocksUsed      int           `json:"blocksUsed"`
	BlocksAvailable int           `json:"blocksAvailable"`
	Findings        []Finding     `json:"findings"`
	Duration        time.Duration `json:"duration"`
}

// ExtractReport describes the outcome of extracting a payload from a
// stego image.
type ExtractReport struct {
	RecoveredBytes  int           `json:"recoveredBytes"`
	ChannelBitFlips int           `json:"channelBitFlips"`
	Findings        []Finding     `json:"findings"`
	Duration        time.Duration `json:"duration"`
}

// Finding is a single notable observation surfaced during embed or
// extract, e.g. a capacity margin warning or a high estimated bit error
// rate.
type Finding struct {
	Description string  `json:"description"`
	Severity    string  `json:"severity"` // "info", "warning"
	Confidence  float64 `json:"confidence"`
}

// AddFinding appends a finding to an EmbedReport.
func (r *EmbedReport) AddFinding(description, severity string, confidence float64) {
	r.Findings = append(r.Findings, Finding{Description: description, Severity: severity, Confidence: confidence})
}

// AddFinding appends a finding to an ExtractReport.
func (r *ExtractReport) AddFinding(description, severity string, confidence float64) {
	r.Findings = append(r.Findings, Finding{Description: description, Severity: severity, Confidence: confidence})
}
