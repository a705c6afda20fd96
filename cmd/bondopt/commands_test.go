package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/guttosm/bond-optimizer/internal/domain/dto"
	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/guttosm/bond-optimizer/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testManifest = "../../data/datasets.yaml"
	testBonds    = "../../data/bonds_list.csv"
	testSample   = "../../data/dataset_sample.csv"
)

// capture redirects command output for the duration of the test.
func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })
	return out, errOut
}

func TestSolveCmd(t *testing.T) {
	tests := []struct {
		name       string
		cmd        solveCmd
		wantStatus subcommands.ExitStatus
		validate   func(*testing.T, string, string)
	}{
		{
			name:       "bonds with dynamic programming",
			cmd:        solveCmd{file: testBonds, funds: 500, algorithm: model.AlgorithmDynamic, format: formatJSON},
			wantStatus: subcommands.ExitSuccess,
			validate: func(t *testing.T, out, _ string) {
				var sel model.Selection
				require.NoError(t, json.Unmarshal([]byte(out), &sel))
				assert.InDelta(t, 99.08, sel.Profit, 1e-6)
				assert.LessOrEqual(t, sel.Cost, 500)
			},
		},
		{
			name:       "bonds with bitmask search",
			cmd:        solveCmd{file: testBonds, funds: 500, algorithm: model.AlgorithmBruteForceBitmask, format: formatJSON},
			wantStatus: subcommands.ExitSuccess,
			validate: func(t *testing.T, out, _ string) {
				var sel model.Selection
				require.NoError(t, json.Unmarshal([]byte(out), &sel))
				assert.InDelta(t, 99.08, sel.Profit, 1e-6)
			},
		},
		{
			name:       "exhaustive search rejects large inputs",
			cmd:        solveCmd{file: testSample, funds: 500, algorithm: model.AlgorithmBruteForceBitmask, format: formatJSON},
			wantStatus: subcommands.ExitFailure,
			validate: func(t *testing.T, out, errOut string) {
				assert.Empty(t, out)
				assert.Contains(t, errOut, "too many assets")
			},
		},
		{
			name:       "unknown algorithm",
			cmd:        solveCmd{file: testBonds, funds: 500, algorithm: "greedy", format: formatJSON},
			wantStatus: subcommands.ExitFailure,
			validate: func(t *testing.T, _, errOut string) {
				assert.Contains(t, errOut, "unknown algorithm")
			},
		},
		{
			name:       "missing file flag",
			cmd:        solveCmd{funds: 500, format: formatJSON},
			wantStatus: subcommands.ExitUsageError,
			validate: func(t *testing.T, _, errOut string) {
				assert.Contains(t, errOut, "bondopt solve")
			},
		},
		{
			name:       "unsupported format",
			cmd:        solveCmd{file: testBonds, funds: 500, format: "xml"},
			wantStatus: subcommands.ExitUsageError,
		},
		{
			name:       "unreadable file",
			cmd:        solveCmd{file: "missing.csv", funds: 500, format: formatJSON},
			wantStatus: subcommands.ExitFailure,
			validate: func(t *testing.T, _, errOut string) {
				assert.Contains(t, errOut, "missing.csv")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := capture(t)

			status := tt.cmd.Execute(context.Background(), nil)

			assert.Equal(t, tt.wantStatus, status)
			if tt.validate != nil {
				tt.validate(t, out.String(), errOut.String())
			}
		})
	}
}

func TestCompareCmd(t *testing.T) {
	t.Run("all algorithms agree on bonds", func(t *testing.T) {
		out, _ := capture(t)
		cmd := compareCmd{file: testBonds, funds: 500, format: formatJSON}

		require.Equal(t, subcommands.ExitSuccess, cmd.Execute(context.Background(), nil))

		var cmp model.Comparison
		require.NoError(t, json.Unmarshal(out.Bytes(), &cmp))
		assert.Len(t, cmp.Timings, 3)
		assert.True(t, cmp.Agree)
		assert.Equal(t, 20, cmp.Assets)
	})

	t.Run("exhaustive solvers skipped on large inputs", func(t *testing.T) {
		out, _ := capture(t)
		cmd := compareCmd{file: testSample, funds: 500, format: formatJSON}

		require.Equal(t, subcommands.ExitSuccess, cmd.Execute(context.Background(), nil))

		var cmp model.Comparison
		require.NoError(t, json.Unmarshal(out.Bytes(), &cmp))
		require.Len(t, cmp.Timings, 3)
		assert.NotNil(t, cmp.Timings[0].Selection)
		assert.NotEmpty(t, cmp.Timings[1].Error)
		assert.NotEmpty(t, cmp.Timings[2].Error)
	})

	t.Run("negative funds", func(t *testing.T) {
		_, errOut := capture(t)
		cmd := compareCmd{file: testBonds, funds: -1, format: formatJSON}

		assert.Equal(t, subcommands.ExitFailure, cmd.Execute(context.Background(), nil))
		assert.Contains(t, errOut.String(), "Error comparing")
	})
}

func TestDatasetsCmd(t *testing.T) {
	t.Run("lists manifest datasets", func(t *testing.T) {
		out, _ := capture(t)
		cmd := datasetsCmd{manifest: testManifest, format: formatJSON}

		require.Equal(t, subcommands.ExitSuccess, cmd.Execute(context.Background(), nil))

		var summaries []dto.DatasetSummary
		require.NoError(t, json.Unmarshal(out.Bytes(), &summaries))
		require.Len(t, summaries, 2)
		assert.Equal(t, "bonds", summaries[0].Name)
		assert.Equal(t, 20, summaries[0].Assets)
		assert.Equal(t, 500, summaries[0].Funds)
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, errOut := capture(t)
		cmd := datasetsCmd{manifest: "missing.yaml", format: formatJSON}

		assert.Equal(t, subcommands.ExitFailure, cmd.Execute(context.Background(), nil))
		assert.Contains(t, errOut.String(), "missing.yaml")
	})
}

func TestBacktest(t *testing.T) {
	catalog, err := dataset.NewCatalog(testManifest)
	require.NoError(t, err)
	datasets := catalog.List()

	results, err := backtest(datasets)
	require.NoError(t, err)
	require.Len(t, results, len(datasets))

	for i, r := range results {
		d := datasets[i]
		assert.Equal(t, d.Name, r.Dataset)
		assert.LessOrEqual(t, r.Selection.Cost, d.Funds)

		position := make(map[string]int, len(d.Assets))
		for j, a := range d.Assets {
			position[a.Name] = j
		}
		for j := 1; j < len(r.Selection.Assets); j++ {
			assert.Less(t, position[r.Selection.Assets[j-1].Name], position[r.Selection.Assets[j].Name],
				"%s assets should follow dataset order", d.Name)
		}
	}
	assert.InDelta(t, 99.08, results[0].Selection.Profit, 1e-6)
}

func TestBacktestCmd(t *testing.T) {
	out, _ := capture(t)
	cmd := backtestCmd{manifest: testManifest, format: formatJSON}

	require.Equal(t, subcommands.ExitSuccess, cmd.Execute(context.Background(), nil))

	var results []backtestResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	assert.Len(t, results, 2)
}

func TestTokenCmd(t *testing.T) {
	t.Run("issues a verifiable token", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "cli-secret")
		out, _ := capture(t)
		cmd := tokenCmd{subject: "analyst", ttl: time.Minute}

		require.Equal(t, subcommands.ExitSuccess, cmd.Execute(context.Background(), nil))

		subject, err := middleware.ParseToken([]byte("cli-secret"), strings.TrimSpace(out.String()))
		require.NoError(t, err)
		assert.Equal(t, "analyst", subject)
	})

	t.Run("requires a secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "")
		out, errOut := capture(t)
		cmd := tokenCmd{subject: "analyst"}

		assert.Equal(t, subcommands.ExitFailure, cmd.Execute(context.Background(), nil))
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "JWT_SECRET_KEY")
	})
}
