package services

import (
	"fmt"
	"path/filepath"

	"ads-unifier/models"
	"ads-unifier/storage"
	"ads-unifier/utils"
)

// OutputFileName is the unified table written under the data directory.
const OutputFileName = "unified_ads_performance.csv"

// Pipeline runs the single load → map → combine → derive → write pass.
type Pipeline struct {
	dataDir  string
	mappings []PlatformMapping
	reader   storage.RawTableReader
	sinks    []storage.UnifiedWriter
	logger   *utils.Logger

	mapper   *Mapper
	combiner *Combiner
	metrics  *MetricsCalculator
}

// NewPipeline reads the platform exports from dataDir and writes the unified
// CSV back into it. Extra sinks receive the same final table after the CSV.
func NewPipeline(dataDir string, logger *utils.Logger, sinks ...storage.UnifiedWriter) *Pipeline {
	return &Pipeline{
		dataDir:  dataDir,
		mappings: Mappings,
		reader:   storage.NewCSVReader(dataDir),
		sinks:    sinks,
		logger:   logger,
		mapper:   NewMapper(logger),
		combiner: NewCombiner(logger),
		metrics:  NewMetricsCalculator(logger),
	}
}

// OutputPath returns where Run writes the unified CSV.
func (p *Pipeline) OutputPath() string {
	return filepath.Join(p.dataDir, OutputFileName)
}

// Run executes the pass once. Any load, lookup or write failure aborts it.
func (p *Pipeline) Run() (*models.UnifiedTable, error) {
	mapped := make([]*models.UnifiedTable, 0, len(p.mappings))
	for _, pm := range p.mappings {
		raw, err := p.reader.Read(pm.File)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", pm.Platform, err)
		}
		p.logger.Info("[loader] Read %d rows from %s", len(raw.Rows), raw.Path)

		t, err := p.mapper.Map(pm, raw)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", pm.Platform, err)
		}
		mapped = append(mapped, t)
	}

	combined := p.combiner.Combine(mapped...)
	final := p.metrics.Apply(combined)

	if err := p.writeCSV(final); err != nil {
		return nil, err
	}
	p.logger.Info("[writer] Wrote %d rows to %s", final.Len(), p.OutputPath())

	for _, sink := range p.sinks {
		if err := sink.Write(final); err != nil {
			return nil, fmt.Errorf("write sink: %w", err)
		}
	}

	return final, nil
}

func (p *Pipeline) writeCSV(t *models.UnifiedTable) error {
	w, err := storage.NewCSVWriter(p.OutputPath())
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.Write(t); err != nil {
		_ = w.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
