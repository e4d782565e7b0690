// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"io"
	"log"
	"os"

	"github.com/awslabs/ar-taint-summaries/analysis/summary"
)

// LogLevel controls how much a LogGroup prints.
type LogLevel int

const (
	// ErrLevel is the minimum level of logging.
	ErrLevel LogLevel = iota + 1

	// WarnLevel logs warnings and errors.
	WarnLevel

	// InfoLevel logs high-level information and results.
	InfoLevel

	// DebugLevel logs per-function analysis detail, including every
	// Recoverable condition surfaced by the core (see NewSummaryLogger).
	DebugLevel
)

// LogGroup is a set of leveled loggers, one per severity, all sharing a
// writer unless overridden individually.
type LogGroup struct {
	level LogLevel
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
}

// NewLogGroup returns a LogGroup configured from cfg's LogLevel.
func NewLogGroup(cfg *Config) *LogGroup {
	l := &LogGroup{
		level: LogLevel(cfg.LogLevel),
		debug: log.New(os.Stderr, "[DEBUG] ", log.LstdFlags),
		info:  log.New(os.Stderr, "[INFO] ", log.LstdFlags),
		warn:  log.New(os.Stderr, "[WARN] ", log.LstdFlags),
		err:   log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
	return l
}

// SetAllOutput redirects every leveled logger to w.
func (l *LogGroup) SetAllOutput(w io.Writer) {
	l.debug.SetOutput(w)
	l.info.SetOutput(w)
	l.warn.SetOutput(w)
	l.err.SetOutput(w)
}

// Debugf prints to the debug logger if the configured level allows it.
func (l *LogGroup) Debugf(format string, v ...any) {
	if l.level >= DebugLevel {
		l.debug.Printf(format, v...)
	}
}

// Infof prints to the info logger if the configured level allows it.
func (l *LogGroup) Infof(format string, v ...any) {
	if l.level >= InfoLevel {
		l.info.Printf(format, v...)
	}
}

// Warnf prints to the warn logger if the configured level allows it.
func (l *LogGroup) Warnf(format string, v ...any) {
	if l.level >= WarnLevel {
		l.warn.Printf(format, v...)
	}
}

// Errorf prints to the error logger if the configured level allows it.
func (l *LogGroup) Errorf(format string, v ...any) {
	if l.level >= ErrLevel {
		l.err.Printf(format, v...)
	}
}

// NewSummaryLogger adapts a LogGroup into the summary.Logger the fixpoint
// driver writes Recoverable conditions to. A Recoverable is not an error:
// it is a model-store miss, an unresolved callee, or a dropped assignment,
// so it is logged at Debug rather than Warn/Error.
func NewSummaryLogger(l *LogGroup) *summary.Logger {
	return &summary.Logger{
		Record: func(r summary.Recoverable) { l.Debugf("%s", r.String()) },
	}
}
