package log

import (
	"fmt"
	"io"
	l "log"
	"os"
	"strings"
	"sync"
)

type Level int
type Loggerf func(string, ...interface{})
type Loggerln func(...interface{})

const (
	FatalLevel = Level(iota)
	Error
	Info
	Debug
)

var (
	mu     sync.Mutex
	level  Level = Error
	logger       = l.New(os.Stderr, "rinha: ", 0)
	exit         = os.Exit

	Debugf  = GenLoggerf(Debug)
	Debugln = GenLoggerln(Debug)
	Infof   = GenLoggerf(Info)
	Infoln  = GenLoggerln(Info)
	Errorf  = GenLoggerf(Error)
	Errorln = GenLoggerln(Error)
	Fatalf  = GenLoggerf(FatalLevel)
	Fatal   = GenLoggerln(FatalLevel)
)

func (lv Level) String() string {
	switch lv {
	case FatalLevel:
		return "fatal"
	case Error:
		return "error"
	case Info:
		return "info"
	case Debug:
		return "debug"
	default:
		return fmt.Sprintf("level(%d)", int(lv))
	}
}

// ParseLevel maps a level name (case-insensitive) to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fatal":
		return FatalLevel, nil
	case "error", "":
		return Error, nil
	case "info":
		return Info, nil
	case "debug", "trace":
		return Debug, nil
	default:
		return Error, fmt.Errorf("unknown log level %q", name)
	}
}

func SetLevel(lv Level) {
	mu.Lock()
	level = lv
	mu.Unlock()
}

func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetOutput redirects log output; tests point it at a buffer.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func Enabled(lv Level) bool {
	return CurrentLevel() >= lv
}

func GenLoggerf(lv Level) Loggerf {
	n := lv
	return func(format string, v ...interface{}) {
		if Enabled(n) {
			logger.Output(2, n.String()+": "+fmt.Sprintf(format, v...))
		}
		if n == FatalLevel {
			exit(1)
		}
	}
}

func GenLoggerln(lv Level) Loggerln {
	n := lv
	return func(v ...interface{}) {
		if Enabled(n) {
			logger.Output(2, n.String()+": "+fmt.Sprint(v...))
		}
		if n == FatalLevel {
			exit(1)
		}
	}
}
