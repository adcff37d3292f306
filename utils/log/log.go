package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nwk-labs/network-backend/utils/flag"
)

// global accessible logger
var (
	LogV2 *Logger
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	initLogger()
}

type Logger struct {
	*logrus.Entry
}

func initLogger() {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})

	env := os.Getenv("NETWORK_ENV")
	if len(env) == 0 {
		env = "unknown"
	}
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	LogV2 = &Logger{
		l.WithFields(logrus.Fields{
			"env":     env,
			"service": strings.ReplaceAll(*flag.ServiceName, "_", "-"),
		}),
	}
}
