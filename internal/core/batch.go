package core

import (
	"fmt"

	"basic-video-processing/internal/algorithms"
)

// Job pairs a registered transform name with its output path.
type Job struct {
	Transform string
	Output    string
}

// RunBatch runs every job against the same input, in order, and stops at the
// first failure. Reports for the runs that were attempted are returned, the
// failed one included.
func (p *FrameTransformPipeline) RunBatch(input string, jobs []Job) ([]RunReport, error) {
	transforms := make([]algorithms.Transform, len(jobs))
	for i, job := range jobs {
		transform, ok := algorithms.Get(job.Transform)
		if !ok {
			return nil, fmt.Errorf("job %d: unknown transform %q", i, job.Transform)
		}
		transforms[i] = transform
	}

	reports := make([]RunReport, 0, len(jobs))
	for i, job := range jobs {
		p.debugger.Reset()

		report, err := p.Run(input, job.Output, transforms[i])
		reports = append(reports, report)
		if err != nil {
			return reports, fmt.Errorf("%s: %w", job.Transform, err)
		}
	}

	return reports, nil
}
