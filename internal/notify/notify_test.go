package notify

import (
	"bytes"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_SplitsStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	w := Writer{Out: &out, Err: &errOut}

	w.Success("Board created")
	w.Error("Board not found")

	assert.Contains(t, out.String(), "Board created")
	assert.NotContains(t, out.String(), "Board not found")
	assert.Contains(t, errOut.String(), "Board not found")
}

func TestWriter_ErrorFallsBackToOut(t *testing.T) {
	var out bytes.Buffer
	Writer{Out: &out}.Error("boom")
	assert.Contains(t, out.String(), "boom")
}

func TestLoggerAndMulti(t *testing.T) {
	log, hook := test.NewNullLogger()
	rec := &Recorder{}
	n := Multi(Logger{Log: log}, rec)

	n.Success("saved")
	n.Error("failed")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, []Note{{Msg: "saved"}, {Msg: "failed", Err: true}}, rec.Notes())
}

func TestRecorder_ConcurrentUse(t *testing.T) {
	rec := &Recorder{}
	_, ok := rec.Last()
	assert.False(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Success("ok")
		}()
	}
	wg.Wait()

	assert.Len(t, rec.Notes(), 20)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "ok", last.Msg)
}
