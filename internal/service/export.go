package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dechbar/kpause/internal/domain"
	"gopkg.in/yaml.v3"
)

type exportDocument struct {
	Count        int              `json:"count" yaml:"count"`
	Measurements []exportedRecord `json:"measurements" yaml:"measurements"`
}

type exportedRecord struct {
	ID           string `json:"id" yaml:"id"`
	MeasuredAt   string `json:"measured_at" yaml:"measured_at"`
	TimeOfDay    string `json:"time_of_day" yaml:"time_of_day"`
	Valid        bool   `json:"valid" yaml:"valid"`
	Score        int    `json:"score" yaml:"score"`
	Rating       string `json:"rating" yaml:"rating"`
	AttemptCount int    `json:"attempt_count" yaml:"attempt_count"`
	Attempts     []int  `json:"attempts" yaml:"attempts,flow"`
	Note         string `json:"note,omitempty" yaml:"note,omitempty"`
}

// EncodeMeasurements renders ms in the given format, preserving order.
func EncodeMeasurements(ms []*domain.Measurement, format ExportFormat) ([]byte, error) {
	doc := exportDocument{Count: len(ms), Measurements: make([]exportedRecord, 0, len(ms))}
	for _, m := range ms {
		attempts := m.Attempts
		if attempts == nil {
			attempts = []int{}
		}
		doc.Measurements = append(doc.Measurements, exportedRecord{
			ID:           m.ID,
			MeasuredAt:   m.MeasuredAt.Format(time.RFC3339),
			TimeOfDay:    string(m.TimeOfDay),
			Valid:        m.Valid,
			Score:        m.Score,
			Rating:       string(m.Rating()),
			AttemptCount: m.AttemptCount,
			Attempts:     attempts,
			Note:         m.Note,
		})
	}

	switch format {
	case FormatJSON, "":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json export: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml export: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
