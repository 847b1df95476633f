package worker

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soilgrade/soilgrade/internal/model"
)

// Engine defines the interface for classifying a single sample.
type Engine interface {
	ClassifySample(ctx context.Context, sample *model.SampleInput) (*model.Report, error)
}

// ClassifyJob classifies one sample.
type ClassifyJob struct {
	Sample *model.SampleInput
	Engine Engine
}

// Execute runs the classification.
func (j *ClassifyJob) Execute(ctx context.Context) Result {
	report, err := j.Engine.ClassifySample(ctx, j.Sample)
	return &ClassifyResult{
		SampleID: j.Sample.ID,
		Report:   report,
		Error:    err,
	}
}

// ClassifyResult is the outcome of one classification job. Error is
// non-nil only for malformed input; everything else degrades inside the
// report itself.
type ClassifyResult struct {
	SampleID string
	Report   *model.Report
	Error    error
}

// GetError returns the error from the result.
func (r *ClassifyResult) GetError() error {
	return r.Error
}

// BatchProcessor classifies many samples concurrently.
type BatchProcessor struct {
	engine      Engine
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(engine Engine, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		engine:      engine,
		concurrency: concurrency,
	}
}

// ProcessSamples classifies the samples on the worker pool. Results
// arrive in completion order, not submission order.
func (b *BatchProcessor) ProcessSamples(ctx context.Context, samples []*model.SampleInput) []*ClassifyResult {
	if len(samples) == 0 {
		return []*ClassifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, sample := range samples {
		pool.Submit(&ClassifyJob{Sample: sample, Engine: b.engine})
	}

	results := pool.Wait()

	classifyResults := make([]*ClassifyResult, len(results))
	for i, result := range results {
		classifyResults[i] = result.(*ClassifyResult)
	}
	return classifyResults
}

// ProcessFile reads samples from a YAML file and classifies them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*ClassifyResult, error) {
	samples, err := ReadSamplesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	return b.ProcessSamples(ctx, samples), nil
}

// sampleFile is the on-disk batch format.
type sampleFile struct {
	Samples []*model.SampleInput `yaml:"samples"`
}

// ReadSamplesFromFile reads a YAML sample file. Samples without an ID
// get a positional one so batch output files stay distinguishable.
func ReadSamplesFromFile(path string) ([]*model.SampleInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var file sampleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(file.Samples) == 0 {
		return nil, fmt.Errorf("no samples in %s", path)
	}

	for i, s := range file.Samples {
		if s.ID == "" {
			s.ID = fmt.Sprintf("sample-%03d", i+1)
		}
	}
	return file.Samples, nil
}
