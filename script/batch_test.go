//
//
// Copyright (C) 2026 The ChristmasQueue Authors.
// All rights reserved.
//
// Licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

package script

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christmasqueue/collections/errs"
)

func TestRunFiles(t *testing.T) {
	r := &Runner{Capacity: 3}
	paths := []string{
		"testdata/scenario.stack",
		"testdata/homogeneous.stack",
		"testdata/underflow.stack",
	}
	reports, err := RunFiles(context.Background(), r, paths, 2)
	require.NoError(t, err)
	require.Len(t, reports, len(paths))
	for i, rep := range reports {
		require.NotNil(t, rep)
		assert.Equal(t, paths[i], rep.Name, "reports keep the order of paths")
		assert.Empty(t, rep.Error)
	}
	assert.EqualValues(t, 10+9+6, r.Executed())
}

func TestRunFilesManyInParallel(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 32; i++ {
		p := filepath.Join(dir, strconv.Itoa(i)+".stack")
		src := "push " + strconv.Itoa(i) + " => true\npeek => \"" + strconv.Itoa(i) + "\"\npop\n"
		require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
		paths = append(paths, p)
	}
	r := &Runner{Capacity: 1}
	reports, err := RunFiles(context.Background(), r, paths, 0)
	require.NoError(t, err)
	for i, rep := range reports {
		assert.Equal(t, `"`+strconv.Itoa(i)+`"`, rep.Steps[1].Outcome)
	}
	assert.EqualValues(t, 96, r.Executed())
	assert.EqualValues(t, 0, r.Rejected())
}

func TestRunFilesErrors(t *testing.T) {
	r := &Runner{Capacity: 2}

	reports, err := RunFiles(context.Background(), r, []string{"testdata/mismatch.stack"}, 1)
	require.Error(t, err)
	assert.Equal(t, errs.RetExpectMismatch, errs.Code(err))
	require.NotNil(t, reports[0])
	assert.NotEmpty(t, reports[0].Error)

	reports, err = RunFiles(context.Background(), r, []string{"testdata/broken.stack"}, 1)
	require.Error(t, err)
	assert.Equal(t, errs.RetParseFail, errs.Code(err))
	assert.Nil(t, reports[0])

	_, err = RunFiles(context.Background(), r, []string{Stdin, Stdin}, 1)
	require.Error(t, err)
	assert.Equal(t, errs.RetParseFail, errs.Code(err))
}

func TestParseFiles(t *testing.T) {
	scripts, err := ParseFiles([]string{"testdata/scenario.stack", "testdata/mismatch.stack"})
	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Len(t, scripts[0], 10)
	assert.Len(t, scripts[1], 3)

	scripts, err = ParseFiles([]string{"testdata/mismatch.stack", "testdata/mismatch.stack"})
	require.NoError(t, err)
	assert.Len(t, scripts, 2, "a path given twice is parsed twice")

	_, err = ParseFiles([]string{"testdata/scenario.stack", "testdata/broken.stack"})
	require.Error(t, err)
}
