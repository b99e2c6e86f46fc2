// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/algodocs/internal/configdoc"
)

var _ configdoc.Recorder = (*Metrics)(nil)

func TestRecord(t *testing.T) {
	m := New()

	m.Record(configdoc.Result{Name: "PageRank", Outcome: configdoc.OutcomeWritten})
	m.Record(configdoc.Result{Name: "Degree Centrality", Outcome: configdoc.OutcomeWritten})
	m.Record(configdoc.Result{Name: "Louvain", Outcome: configdoc.OutcomeSkipped})
	m.RecordLoadError("extra")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Fragments.WithLabelValues("written")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fragments.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoadErrors.WithLabelValues("extra")))
}

func TestRunFinished(t *testing.T) {
	m := New()
	before := time.Now().Unix()

	m.RunFinished(time.Now().Add(-time.Second), 12)

	assert.Equal(t, 12.0, testutil.ToFloat64(m.Descriptors))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.LastRun), float64(before))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Record(configdoc.Result{Outcome: configdoc.OutcomeFailed})

	path := filepath.Join(t.TempDir(), "gen_config_docs.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# TYPE gen_config_docs_fragments_total counter")
	assert.Contains(t, out, `gen_config_docs_fragments_total{outcome="failed"} 1`)
	assert.True(t, strings.HasSuffix(out, "\n"))

	err = m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
