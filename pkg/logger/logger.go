// Package logger 基于 zerolog 的日志组件，支持控制台与轮转文件输出。
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 封装了 zerolog.Logger 并包含同步机制
type Logger struct {
	logger zerolog.Logger
	level  zerolog.Level
	base   io.Writer
	mutex  sync.RWMutex
}

// consoleWriter 用于控制台输出
var consoleWriter = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// NewLogger 初始化日志系统，输出到控制台
func NewLogger(debug bool) *Logger {
	return NewWithWriter(debug, consoleWriter)
}

// NewWithWriter 使用指定输出初始化日志系统
func NewWithWriter(debug bool, w io.Writer) *Logger {
	l := &Logger{level: zerolog.InfoLevel, base: w}
	if debug {
		l.level = zerolog.DebugLevel
	}
	l.rebuild(w)
	return l
}

// New 根据日志配置创建 Logger，file 为空时只输出到控制台
func New(debug bool, file string) *Logger {
	l := NewLogger(debug)
	if file != "" {
		l.SetLogOutput(file)
	}
	return l
}

// Nop 返回丢弃所有输出的 Logger
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop(), level: zerolog.Disabled, base: io.Discard}
}

// GetLogger 返回带有上下文的日志记录器
func (l *Logger) GetLogger(component string) zerolog.Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.logger.With().
		Str("component", component).
		Logger()
}

// Level 当前日志级别
func (l *Logger) Level() zerolog.Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.level
}

// SetLogOutput 设置额外的日志输出（如文件）
func (l *Logger) SetLogOutput(logFilePath string) {
	// 使用 lumberjack 进行日志轮转
	fileWriter := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28,   // days
		Compress:   true, // 压缩旧文件
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.rebuild(zerolog.MultiLevelWriter(l.base, fileWriter))
}

// rebuild 调用方需持有写锁或处于初始化阶段
func (l *Logger) rebuild(w io.Writer) {
	l.logger = zerolog.New(w).
		Level(l.level).
		With().
		Timestamp().
		Caller().
		Logger()

	// 更新全局 logger
	log.Logger = l.logger
}
