package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/modelbind/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_Batch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	dataPath := filepath.Join(tempDir, "gdp.txt")
	data := "LATA 2015 2016\n" +
		"twKI 1 1.1\ntwKS 1 1\ntwINW 1 1\ntwEKS 1 1\ntwIMP 1 1\n" +
		"KI 100\nKS 50\nINW 20\nEKS 30\nIMP 40\n"
	require.NoError(t, os.WriteFile(dataPath, []byte(data), 0o600))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"run", "--model", "Model1", "--data", dataPath, "-e", "share = KI[1] / PKB[1]"})

	// --- Assert ---
	require.NoError(t, err, errOut.String())
	require.Contains(t, out.String(), "LATA\t2015\t2016\n")
	require.Contains(t, out.String(), "PKB\t160\t170\n")
	require.Contains(t, out.String(), "share\t0,647\n")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "help is not an error")
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_UsageErrors(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"unknown flag":    {"run", "--this-is-not-a-valid-flag"},
		"missing model":   {"run", "--data", "x.txt"},
		"unknown command": {"nope"},
		"bad log level":   {"list", "--log-level", "loud"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)

			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code, exitErr.Message)
		})
	}
}

func TestRun_FailureExitCode(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"run", "--model", "Model1", "--data", filepath.Join(t.TempDir(), "missing.txt")})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, exitErr.Message, "io error")
}
