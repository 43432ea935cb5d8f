package cmd

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendSet_Close(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	var closed []string
	set := &backendSet{
		logger: logger,
		closers: []namedCloser{
			{name: "google-translate", close: func() error {
				closed = append(closed, "google-translate")
				return errors.New("connection already closed")
			}},
			{name: "other", close: func() error {
				closed = append(closed, "other")
				return nil
			}},
		},
	}

	set.Close()

	assert.Equal(t, []string{"google-translate", "other"}, closed)
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "google-translate", entry.Data["backend"])
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "connection already closed")
}
