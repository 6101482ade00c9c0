package schedulers

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"os-scheduler/internal/core"
)

var reportOrder = []string{
	"FCFS (First Come, First Served)",
	"SJF (Shortest Job First)",
	"SRTF (Shortest Remaining Time First)",
	"Priority (non-preemptive)",
	"Priority (preemptive)",
	"Round-Robin (quantum=2)",
	"Round-Robin with Priority and Aging (quantum=2, aging=1)",
}

func TestRunAllSchedulers(t *testing.T) {
	processes := sampleProcesses()
	set, err := RunAllSchedulers(context.Background(), processes, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, reportOrder, set.Names())
	assert.Equal(t, 7, set.Len())
	assert.Equal(t, sampleProcesses(), processes)

	fcfs, ok := set.Get(reportOrder[0])
	require.True(t, ok)
	assert.InDelta(t, 8.25, fcfs.AverageTurnaroundTime, 1e-9)

	results := set.Results()
	require.Len(t, results, 7)
	for i, result := range results {
		assert.Equal(t, reportOrder[i], result.AlgorithmName)
	}
}

func TestRunAllSchedulers_MatchesIndividualRuns(t *testing.T) {
	set, err := RunAllSchedulers(context.Background(), sampleProcesses(), nil, nil)
	require.NoError(t, err)

	for i, alg := range Algorithms() {
		single, err := RunScheduler(context.Background(), string(alg), sampleProcesses(), nil, nil)
		require.NoError(t, err)
		fromSet, ok := set.Get(reportOrder[i])
		require.True(t, ok)
		assert.Equal(t, single, fromSet, string(alg))
	}
}

func TestRunAllSchedulers_Errors(t *testing.T) {
	_, err := RunAllSchedulers(context.Background(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoProcesses)

	_, err = RunAllSchedulers(context.Background(), sampleProcesses(), &core.Configuration{Quantum: 0, AgingRate: 1}, nil)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestRunAllSchedulers_RejectsInvalidProcesses(t *testing.T) {
	tests := []struct {
		name      string
		processes []*core.Process
	}{
		{"negative burst", []*core.Process{core.NewProcess(1, 0, -1, 1)}},
		{"zero burst", []*core.Process{core.NewProcess(1, 0, 0, 1)}},
		{"negative arrival", []*core.Process{core.NewProcess(1, -3, 2, 1)}},
		{"priority zero", []*core.Process{core.NewProcess(1, 0, 2, 0)}},
		{"duplicate id", []*core.Process{core.NewProcess(1, 0, 2, 1), core.NewProcess(1, 1, 2, 1)}},
		{"nil entry", []*core.Process{core.NewProcess(1, 0, 2, 1), nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunAllSchedulers(context.Background(), tt.processes, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidProcess)

			_, err = RunScheduler(context.Background(), "FCFS", tt.processes, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidProcess)
		})
	}
}

func TestRunAllSchedulers_FarArrivalReturns(t *testing.T) {
	processes := []*core.Process{
		core.NewProcess(1, 0, 1, 1),
		core.NewProcess(2, 9_000_000_000_000_000_000, 1, 1),
	}

	type outcome struct {
		set *ResultSet
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		set, err := RunAllSchedulers(context.Background(), processes, nil, nil)
		done <- outcome{set, err}
	}()

	select {
	case got := <-done:
		require.NoError(t, got.err)
		for _, result := range got.set.Results() {
			assert.Equal(t, 9_000_000_000_000_000_001, result.ProcessMetrics[2].CompletionTime, result.AlgorithmName)
			assert.Equal(t, 0, result.ProcessMetrics[2].WaitingTime, result.AlgorithmName)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunAllSchedulers did not return")
	}
}

func TestRunScheduler_UnknownAlgorithm(t *testing.T) {
	_, err := RunScheduler(context.Background(), "MLFQ", sampleProcesses(), nil, nil)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestResultSet_MarshalKeepsOrder(t *testing.T) {
	set, err := RunAllSchedulers(context.Background(), sampleProcesses(), nil, nil)
	require.NoError(t, err)

	encoded, err := json.Marshal(set)
	require.NoError(t, err)
	assertInOrder(t, string(encoded), reportOrder)

	var decoded map[string]core.SchedulerResult
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Len(t, decoded, 7)

	var buf bytes.Buffer
	require.NoError(t, yaml.NewEncoder(&buf).Encode(set))
	assertInOrder(t, buf.String(), reportOrder)
}

func assertInOrder(t *testing.T, document string, keys []string) {
	t.Helper()
	last := -1
	for _, key := range keys {
		at := strings.Index(document, key)
		require.GreaterOrEqual(t, at, 0, "missing %q", key)
		assert.Greater(t, at, last, "%q out of order", key)
		last = at
	}
}
