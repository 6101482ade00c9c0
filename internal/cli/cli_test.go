package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"os-scheduler/internal/core"
)

const sampleInput = "0 5 2\n0 2 3\n1 4 1\n3 3 4\n"

// execute runs the root command with args, using a private config file.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.txt")

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(append(args, "--config", configPath))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestRun_JSONFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processes.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleInput), 0o644))

	out, err := execute(t, "", "run", path, "--format", "json")
	require.NoError(t, err)

	var results map[string]core.SchedulerResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 7)
	assert.InDelta(t, 8.25, results["FCFS (First Come, First Served)"].AverageTurnaroundTime, 1e-9)
	assert.Less(t, strings.Index(out, "FCFS"), strings.Index(out, "Round-Robin"))
}

func TestRun_SingleAlgorithmFromStdin(t *testing.T) {
	out, err := execute(t, sampleInput, "run", "-a", "rr", "-f", "json")
	require.Error(t, err, "rr is not a registered key")
	assert.Empty(t, out)

	out, err = execute(t, sampleInput, "run", "-a", "round_robin", "-f", "json", "--quantum", "4")
	require.NoError(t, err)

	var result core.SchedulerResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Round-Robin (quantum=4)", result.AlgorithmName)
}

func TestRun_YAML(t *testing.T) {
	out, err := execute(t, sampleInput, "run", "-", "-a", "sjf", "-f", "yaml")
	require.NoError(t, err)

	var result core.SchedulerResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, "SJF (Shortest Job First)", result.AlgorithmName)
	assert.InDelta(t, 6.75, result.AverageTurnaroundTime, 1e-9)
}

func TestRun_Table(t *testing.T) {
	out, err := execute(t, sampleInput, "run", "--details")
	require.NoError(t, err)
	assert.Contains(t, out, "FCFS (First Come, First Served)")
	assert.Contains(t, out, "8.25")
	assert.Contains(t, out, " ##  ")
}

func TestRun_Errors(t *testing.T) {
	_, err := execute(t, "not a process\n", "run")
	assert.Error(t, err)

	_, err = execute(t, sampleInput, "run", "--quantum=-1")
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	_, err = execute(t, sampleInput, "run", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigSetThenGet(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.txt")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"config", "set", "--quantum", "5", "--config", configPath})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	out.Reset()
	root = NewRootCmd()
	root.SetArgs([]string{"config", "get", "--config", configPath})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "quantum:   5")
	assert.Contains(t, out.String(), "aging:     1")
}

func TestAlgorithmsCommand(t *testing.T) {
	out, err := execute(t, "", "algorithms")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[1], "FCFS")
	assert.Contains(t, lines[7], "Round-Robin with Priority and Aging (quantum=2, aging=1)")
}
