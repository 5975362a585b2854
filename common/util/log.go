package util

import (
	"os"
	"strings"
	"sync"

	isatty "github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/guildxyz/feeledger/common"
)

const defaultLogLevel = "warn"

var (
	logLevels map[string]string
	loggers   = map[string]*log.Entry{}
	mu        sync.Mutex
)

// InitLog configures the global formatter and reads per-module log levels.
// It should be called once the configuration has been loaded.
func InitLog() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	customFormatter.DisableColors = !isatty.IsTerminal(os.Stderr.Fd())
	log.SetFormatter(customFormatter)

	if viper.GetBool(common.CfgLogDebug) {
		log.SetLevel(log.DebugLevel)
	}

	mu.Lock()
	logLevels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
	loggers = map[string]*log.Entry{}
	mu.Unlock()
}

// parseLogLevelConfig parses "*:info,rpc:debug" into a module->level map. The
// "*" entry is always present.
func parseLogLevelConfig(cfg string) map[string]string {
	ret := map[string]string{"*": defaultLogLevel}
	for _, item := range strings.Split(cfg, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), ":", 2)
		if len(parts) != 2 {
			continue
		}
		ret[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return ret
}

// GetLoggerForModule returns a logger tagged with the module name and set to
// the level configured for it.
func GetLoggerForModule(module string) *log.Entry {
	mu.Lock()
	defer mu.Unlock()

	if entry, ok := loggers[module]; ok {
		return entry
	}

	levels := logLevels
	if levels == nil {
		levels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
	}
	levelStr, ok := levels[module]
	if !ok {
		levelStr = levels["*"]
	}
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		level = log.InfoLevel
	}
	if viper.GetBool(common.CfgLogDebug) {
		level = log.DebugLevel
	}

	logger := log.New()
	logger.Formatter = log.StandardLogger().Formatter
	logger.Out = log.StandardLogger().Out
	logger.SetLevel(level)

	entry := logger.WithFields(log.Fields{"prefix": module})
	loggers[module] = entry
	return entry
}
