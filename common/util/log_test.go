package util

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLogLevelConfig(t *testing.T) {
	assert := assert.New(t)

	ret := parseLogLevelConfig("*:error,rpc:debug,ledger:info")
	assert.Equal(3, len(ret))
	assert.Equal("error", ret["*"])
	assert.Equal("debug", ret["rpc"])
	assert.Equal("info", ret["ledger"])

	// Should set default level.
	ret2 := parseLogLevelConfig("rpc:debug, ledger:info")
	assert.Equal(3, len(ret2))
	assert.Equal("warn", ret2["*"])
	assert.Equal("info", ret2["ledger"])

	ret3 := parseLogLevelConfig("garbage")
	assert.Equal(1, len(ret3))
}

func TestGetLoggerForModule(t *testing.T) {
	assert := assert.New(t)

	mu.Lock()
	logLevels = parseLogLevelConfig("*:error,rpc:debug,ledger:info")
	loggers = map[string]*log.Entry{}
	mu.Unlock()

	assert.Equal(log.DebugLevel, GetLoggerForModule("rpc").Logger.Level)
	assert.Equal(log.InfoLevel, GetLoggerForModule("ledger").Logger.Level)
	assert.Equal(log.ErrorLevel, GetLoggerForModule("store").Logger.Level)
	assert.Equal("store", GetLoggerForModule("store").Data["prefix"])

	// cached
	assert.True(GetLoggerForModule("rpc") == GetLoggerForModule("rpc"))
}
