package metrics

import (
	"time"

	"github.com/katalvlaran/epigrid/disease"
)

// ObserveGeneration records the state of the population after a step.
func (r *Registry) ObserveGeneration(scenario string, generation int, counts disease.Counts, dur time.Duration) {
	for _, s := range disease.States() {
		r.Population.WithLabelValues(s.String()).Set(float64(counts.Get(s)))
	}
	r.Generation.Set(float64(generation))
	r.Deaths.Set(float64(counts.Get(disease.Dead)))
	r.GenerationsTotal.WithLabelValues(scenario).Inc()
	r.StepDuration.Observe(dur.Seconds())
}

// ObserveRun records a completed run.
func (r *Registry) ObserveRun(scenario string, deaths int) {
	r.RunsTotal.WithLabelValues(scenario).Inc()
	r.RunDeaths.WithLabelValues(scenario).Observe(float64(deaths))
}
