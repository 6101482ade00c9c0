package schedulers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"os-scheduler/internal/core"
	"os-scheduler/internal/logging"
)

var tracer = otel.Tracer("os-scheduler/internal/schedulers")

// ResultSet maps engine display names to results, keeping insertion order.
type ResultSet struct {
	names   []string
	results map[string]*core.SchedulerResult
}

func newResultSet(capacity int) *ResultSet {
	return &ResultSet{
		names:   make([]string, 0, capacity),
		results: make(map[string]*core.SchedulerResult, capacity),
	}
}

func (r *ResultSet) add(name string, result *core.SchedulerResult) {
	if _, ok := r.results[name]; !ok {
		r.names = append(r.names, name)
	}
	r.results[name] = result
}

func (r *ResultSet) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *ResultSet) Get(name string) (*core.SchedulerResult, bool) {
	result, ok := r.results[name]
	return result, ok
}

func (r *ResultSet) Len() int {
	return len(r.names)
}

// Results returns the results in insertion order.
func (r *ResultSet) Results() []*core.SchedulerResult {
	ordered := make([]*core.SchedulerResult, 0, len(r.names))
	for _, name := range r.names {
		ordered = append(ordered, r.results[name])
	}
	return ordered
}

// MarshalJSON encodes the set as an object whose keys keep insertion order.
func (r *ResultSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.results[name])
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *ResultSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range r.names {
		value := &yaml.Node{}
		if err := value.Encode(r.results[name]); err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, value)
	}
	return node, nil
}

// RunAllSchedulers runs every engine over the same processes. Engines work
// on private copies, so they run concurrently and share only the read-only
// configuration.
func RunAllSchedulers(ctx context.Context, processes []*core.Process, config *core.Configuration, logger *slog.Logger) (*ResultSet, error) {
	config, logger, err := prepare(processes, config, logger)
	if err != nil {
		return nil, err
	}

	algorithms := Algorithms()
	engines := make([]Scheduler, 0, len(algorithms))
	for _, alg := range algorithms {
		engine, err := New(alg, config, logger)
		if err != nil {
			return nil, err
		}
		engines = append(engines, engine)
	}

	logger.Info("running all schedulers", "processes", len(processes), "quantum", config.Quantum, "aging", config.AgingRate)

	results := make([]*core.SchedulerResult, len(engines))
	var wg sync.WaitGroup
	wg.Add(len(engines))
	for i, engine := range engines {
		go func(i int, engine Scheduler) {
			defer wg.Done()
			results[i] = schedule(ctx, engine, processes)
		}(i, engine)
	}
	wg.Wait()

	set := newResultSet(len(engines))
	for i, engine := range engines {
		set.add(engine.Name(), results[i])
	}
	return set, nil
}

// RunScheduler runs the single engine registered under key.
func RunScheduler(ctx context.Context, key string, processes []*core.Process, config *core.Configuration, logger *slog.Logger) (*core.SchedulerResult, error) {
	alg, err := ParseAlgorithm(key)
	if err != nil {
		return nil, err
	}
	config, logger, err = prepare(processes, config, logger)
	if err != nil {
		return nil, err
	}
	engine, err := New(alg, config, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("running scheduler", "algorithm", alg, "processes", len(processes))
	return schedule(ctx, engine, processes), nil
}

func schedule(ctx context.Context, engine Scheduler, processes []*core.Process) *core.SchedulerResult {
	_, span := tracer.Start(ctx, "schedule", trace.WithAttributes(
		attribute.String("algorithm", engine.Name()),
		attribute.Int("processes", len(processes)),
	))
	defer span.End()

	result := engine.Schedule(processes)
	span.SetAttributes(
		attribute.Int("context_switches", result.ContextSwitches),
		attribute.Int("total_time", result.Cpu.TotalTime),
	)
	return result
}

func prepare(processes []*core.Process, config *core.Configuration, logger *slog.Logger) (*core.Configuration, *slog.Logger, error) {
	if len(processes) == 0 {
		return nil, nil, ErrNoProcesses
	}
	if err := validateProcesses(processes); err != nil {
		return nil, nil, err
	}
	if config == nil {
		defaults := core.DefaultConfiguration()
		config = &defaults
	}
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return config, logger.With("component", "schedulers"), nil
}

// validateProcesses rejects input an engine could never drive to completion.
func validateProcesses(processes []*core.Process) error {
	seen := make(map[int]bool, len(processes))
	for i, p := range processes {
		switch {
		case p == nil:
			return fmt.Errorf("%w: entry %d is nil", ErrInvalidProcess, i)
		case seen[p.ID]:
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidProcess, p.ID)
		case p.ArrivalTime < 0:
			return fmt.Errorf("%w: P%d arrival time %d is negative", ErrInvalidProcess, p.ID, p.ArrivalTime)
		case p.BurstTime <= 0:
			return fmt.Errorf("%w: P%d burst time %d is not positive", ErrInvalidProcess, p.ID, p.BurstTime)
		case p.Priority < 1:
			return fmt.Errorf("%w: P%d priority %d is below 1", ErrInvalidProcess, p.ID, p.Priority)
		}
		seen[p.ID] = true
	}
	return nil
}
