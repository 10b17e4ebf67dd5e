package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/fitplan/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger: level, format, trace correlation,
// optional sentry reporting and stdout and/or rotating file output.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.AddHook(NewTraceContextHook())

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetOutput(outputFor(params))
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 0.2,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry set up successfully")
}

func outputFor(params LoggerSetupParams) io.Writer {
	if params.LogFileName == "" {
		logrus.Println("writing logs only to STDOUT")
		return os.Stdout
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	rotatingFile := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    100, // megabytes
		MaxBackups: 14,
		MaxAge:     90, // days
		Compress:   true,
	}

	if !params.LogToStdout {
		return rotatingFile
	}
	logrus.Printf("writing logs to [%s] and STDOUT", fileName)
	return pkg.NewCombinedWriter(os.Stdout, rotatingFile)
}

// GetLevel parses a level name case-insensitively, unknown names fall back to info.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
