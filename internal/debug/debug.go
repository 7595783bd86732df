/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package debug is the module's leveled logger. The level and debug mode
// start from SHMATOMIC_LOG_LEVEL and SHMATOMIC_DEBUG_MODE.
package debug

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/srediag/shmatomic/pkg/pr"
)

const (
	LevelTrace = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelNoPrint
)

var (
	magenta = string([]byte{27, 91, 57, 53, 109}) // Trace
	green   = string([]byte{27, 91, 57, 50, 109}) // Debug
	blue    = string([]byte{27, 91, 57, 52, 109}) // Info
	yellow  = string([]byte{27, 91, 57, 51, 109}) // Warn
	red     = string([]byte{27, 91, 57, 49, 109}) // Error
	reset   = string([]byte{27, 91, 48, 109})

	colors    = []string{magenta, green, blue, yellow, red}
	levelName = []string{"Trace", "Debug", "Info", "Warn", "Error"}

	// level and debugMode are read on every log call from any goroutine.
	level     uint32 = LevelWarn
	debugMode uint32
)

func init() {
	if v := os.Getenv("SHMATOMIC_LOG_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			SetLogLevel(n)
		}
	}
	if os.Getenv("SHMATOMIC_DEBUG_MODE") != "" {
		pr.Store32(&debugMode, 1)
	}
}

// SetLogLevel changes the level of every logger. The default is Warn;
// out-of-range values are ignored.
func SetLogLevel(l int) {
	if l >= LevelTrace && l <= LevelNoPrint {
		pr.Store32(&level, uint32(l))
	}
}

// LogLevel returns the current level.
func LogLevel() int {
	return int(pr.Load32(&level))
}

// DebugMode reports whether SHMATOMIC_DEBUG_MODE was set or SetDebugMode
// turned it on.
func DebugMode() bool {
	return pr.Load32(&debugMode) != 0
}

func SetDebugMode(on bool) {
	var v uint32
	if on {
		v = 1
	}
	pr.Store32(&debugMode, v)
}

// Logger writes colored, leveled lines tagged with a component name and
// the caller's file and line.
type Logger struct {
	name      string
	out       io.Writer
	callDepth int
}

// New returns a logger for the named component. A nil out means stdout.
func New(name string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		name:      name,
		out:       out,
		// location, prefix, printf and the exported method sit above the caller.
		callDepth: 4,
	}
}

func (l *Logger) Errorf(format string, a ...interface{}) { l.printf(LevelError, format, a...) }
func (l *Logger) Warnf(format string, a ...interface{})  { l.printf(LevelWarn, format, a...) }
func (l *Logger) Infof(format string, a ...interface{})  { l.printf(LevelInfo, format, a...) }
func (l *Logger) Debugf(format string, a ...interface{}) { l.printf(LevelDebug, format, a...) }
func (l *Logger) Tracef(format string, a ...interface{}) { l.printf(LevelTrace, format, a...) }

func (l *Logger) Error(v interface{}) { l.println(LevelError, v) }
func (l *Logger) Info(v interface{})  { l.println(LevelInfo, v) }

func (l *Logger) printf(lv int, format string, a ...interface{}) {
	if LogLevel() > lv {
		return
	}
	if _, err := fmt.Fprintf(l.out, l.prefix(lv)+format+reset+"\n", a...); err != nil {
		fmt.Fprintf(os.Stderr, "logger %s failed: %v\n", levelName[lv], err)
	}
}

func (l *Logger) println(lv int, v interface{}) {
	if LogLevel() > lv {
		return
	}
	if _, err := fmt.Fprintln(l.out, l.prefix(lv), v, reset); err != nil {
		fmt.Fprintf(os.Stderr, "logger %s failed: %v\n", levelName[lv], err)
	}
}

func (l *Logger) prefix(lv int) string {
	var buffer [64]byte
	buf := bytes.NewBuffer(buffer[:0])
	_, _ = buf.WriteString(colors[lv])
	_, _ = buf.WriteString(levelName[lv])
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(time.Now().Format("2006-01-02 15:04:05.999999"))
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(l.location())
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(l.name)
	_ = buf.WriteByte(' ')
	return buf.String()
}

func (l *Logger) location() string {
	_, file, line, ok := runtime.Caller(l.callDepth)
	if !ok {
		file = "???"
		line = 0
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}
