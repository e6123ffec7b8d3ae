// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/experience-extractor/internal/experience"
	"github.com/pdiddy/experience-extractor/internal/segment"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

// --- mock extractor ---

// scriptedExtractor fails or panics on texts containing a marker and
// delegates everything else to the real engine.
type scriptedExtractor struct {
	real  *experience.Extractor
	calls atomic.Int32
}

func (s *scriptedExtractor) Extract(text string) (types.Range, bool, error) {
	s.calls.Add(1)
	switch {
	case strings.Contains(text, "FAIL"):
		return types.Range{}, false, errors.New("segmenter crashed")
	case strings.Contains(text, "PANIC"):
		panic("index out of range")
	}
	return s.real.Extract(text)
}

func newScripted() *scriptedExtractor {
	return &scriptedExtractor{real: experience.New(segment.Simple{})}
}

func TestProcess(t *testing.T) {
	docs := []types.Document{
		{Name: "a.txt", Text: "3-5 years experience"},
		{Name: "b.txt", Text: "FAIL"},
		{Name: "c.txt", Text: "we like go"},
		{Name: "d.txt", Text: "PANIC"},
		{Name: "e.txt", Text: "minimum 5 years"},
	}

	core, logs := observer.New(zapcore.ErrorLevel)
	outcomes := Process(context.Background(), newScripted(), docs, Options{Workers: 2, Logger: zap.New(core)})

	require.Len(t, outcomes, len(docs))
	assert.Equal(t, types.FoundOutcome("a.txt", types.Range{Low: 3, High: 5}), outcomes[0])

	assert.Equal(t, types.StatusError, outcomes[1].Status)
	assert.Equal(t, types.ErrorMarker, outcomes[1].Experience)
	assert.Equal(t, "segmenter crashed", outcomes[1].Err)

	assert.Equal(t, types.NotFoundOutcome("c.txt"), outcomes[2])

	assert.Equal(t, types.StatusError, outcomes[3].Status)
	assert.Contains(t, outcomes[3].Err, "panic")

	assert.Equal(t, "5 - 7 Years", outcomes[4].Experience)

	assert.Equal(t, 1, logs.FilterMessage("extraction failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("extraction panicked").Len())

	assert.Equal(t, Summary{Found: 2, NotFound: 1, Failed: 2}, Summarize(outcomes))
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ext := newScripted()
	docs := []types.Document{{Name: "a.txt", Text: "5+ years"}, {Name: "b.txt", Text: "5+ years"}}
	outcomes := Process(ctx, ext, docs, Options{})

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.Equal(t, types.StatusError, o.Status)
		assert.Equal(t, context.Canceled.Error(), o.Err)
	}
	assert.Equal(t, int32(0), ext.calls.Load())
}

// gatedExtractor blocks on its first call until release is closed.
type gatedExtractor struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedExtractor) Extract(string) (types.Range, bool, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
		<-g.release
	}
	return types.Range{Low: 1, High: 3}, true, nil
}

func TestProcessCancelledWhileWaitingForWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ext := &gatedExtractor{started: make(chan struct{}), release: make(chan struct{})}
	docs := []types.Document{{Name: "a.txt"}, {Name: "b.txt"}}

	done := make(chan []types.Outcome)
	go func() {
		done <- Process(ctx, ext, docs, Options{Workers: 1})
	}()

	<-ext.started
	cancel()
	close(ext.release)
	outcomes := <-done

	require.Len(t, outcomes, 2)
	assert.Equal(t, types.StatusFound, outcomes[0].Status)
	assert.Equal(t, types.StatusError, outcomes[1].Status)
	assert.Equal(t, context.Canceled.Error(), outcomes[1].Err)
	assert.Equal(t, int32(1), ext.calls.Load())
}

func TestProcessEmpty(t *testing.T) {
	outcomes := Process(context.Background(), newScripted(), nil, Options{})
	assert.Empty(t, outcomes)
}

func TestSummary(t *testing.T) {
	s := Summary{Found: 3, NotFound: 1, Failed: 0}
	assert.Equal(t, 4, s.Total())
	assert.False(t, s.HasFailures())
	s.Failed = 1
	assert.True(t, s.HasFailures())
}

func TestExtractAll(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"backend.txt":  "Backend engineer.\nExperience: 3-5 years.",
		"designer.txt": "Designer with an eye for detail.",
		"broken.txt":   "FAIL",
		"readme.md":    "minimum 9 years",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	var out bytes.Buffer
	outcomes, summary, err := ExtractAll(context.Background(), newScripted(), dir, Options{Workers: 1}, &out)
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.Equal(t, "backend.txt", outcomes[0].Name)
	assert.Equal(t, "broken.txt", outcomes[1].Name)
	assert.Equal(t, "designer.txt", outcomes[2].Name)
	assert.Equal(t, Summary{Found: 1, NotFound: 1, Failed: 1}, summary)

	log := out.String()
	assert.Contains(t, log, "found     backend.txt: 3 - 5 Years")
	assert.Contains(t, log, "failed    broken.txt: segmenter crashed")
	assert.Contains(t, log, "not found designer.txt")
	assert.Contains(t, log, "found: 1, not found: 1, failed: 1")
}

func TestExtractAllMissingDir(t *testing.T) {
	var out bytes.Buffer
	outcomes, summary, err := ExtractAll(context.Background(), newScripted(), filepath.Join(t.TempDir(), "none"), Options{}, &out)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.Equal(t, 0, summary.Total())
}
