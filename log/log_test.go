package log_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/dudk/tonic/log"
)

func TestGetLogger(t *testing.T) {
	l := log.GetLogger()
	assert.NotNil(t, l)
	assert.True(t, l.IsLevelEnabled(logrus.InfoLevel))

	s := log.Silent()
	assert.False(t, s.IsLevelEnabled(logrus.WarnLevel))
}
