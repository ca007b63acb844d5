package util

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/thetatoken/checkpoint/common"
)

const defaultLogLevel = "warn"

var (
	logLevels  map[string]string
	loggers    = map[string]*log.Entry{}
	loggersMtx sync.Mutex
)

func init() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
}

// InitLog reads the log level configuration. It needs to be called after the
// config file has been loaded.
func InitLog() {
	loggersMtx.Lock()
	defer loggersMtx.Unlock()

	logLevels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
	if level, err := log.ParseLevel(logLevels["*"]); err == nil {
		log.SetLevel(level)
	}
	for module, logger := range loggers {
		logger.Logger.SetLevel(levelForModule(module))
	}
}

// GetLoggerForModule returns the logger for the given module. The level of the
// logger is taken from the "log.levels" config, e.g. "*:info,ledger:debug".
func GetLoggerForModule(module string) *log.Entry {
	loggersMtx.Lock()
	defer loggersMtx.Unlock()

	if logger, ok := loggers[module]; ok {
		logger.Logger.SetLevel(levelForModule(module))
		return logger
	}

	l := log.New()
	l.SetFormatter(log.StandardLogger().Formatter)
	l.SetLevel(levelForModule(module))
	logger := l.WithFields(log.Fields{"prefix": module})
	loggers[module] = logger
	return logger
}

func levelForModule(module string) log.Level {
	if logLevels == nil {
		logLevels = parseLogLevelConfig(viper.GetString(common.CfgLogLevels))
	}
	levelStr, ok := logLevels[module]
	if !ok {
		levelStr = logLevels["*"]
	}
	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

func parseLogLevelConfig(config string) map[string]string {
	ret := map[string]string{"*": defaultLogLevel}
	for _, item := range strings.Split(config, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), ":", 2)
		if len(parts) != 2 {
			continue
		}
		module := strings.TrimSpace(parts[0])
		level := strings.TrimSpace(parts[1])
		if module == "" || level == "" {
			continue
		}
		ret[module] = level
	}
	return ret
}
