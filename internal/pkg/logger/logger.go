package logger

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger define a interface para logging estruturado.
// Handlers, serviços, repositórios e a sessão dependem apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// LogEntry define a estrutura de uma linha de log em JSON.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
	"fatal": 4,
}

// SimpleLogger escreve uma entrada JSON por linha.
type SimpleLogger struct {
	logLevel string
	mu       sync.Mutex
	out      io.Writer
	exit     func(int)
}

// NewLogger cria um Logger que escreve em stdout.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stdout)
}

// NewLoggerWithWriter cria um Logger com destino customizado (usado nos testes).
func NewLoggerWithWriter(level string, out io.Writer) Logger {
	return &SimpleLogger{logLevel: strings.ToLower(level), out: out, exit: os.Exit}
}

func (l *SimpleLogger) logf(level, msg string, fields map[string]interface{}, err error) {
	if !l.shouldLog(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     strings.ToUpper(level),
		Message:   msg,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	jsonBytes, _ := json.Marshal(entry)

	l.mu.Lock()
	l.out.Write(append(jsonBytes, '\n'))
	l.mu.Unlock()

	if level == "fatal" {
		l.exit(1)
	}
}

// shouldLog compara o nível da entrada com o nível configurado (padrão: info).
func (l *SimpleLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.logLevel]
	if !ok {
		currentLevel = levels["info"]
	}
	return levels[level] >= currentLevel
}

func (l *SimpleLogger) Debug(msg string, fields map[string]interface{}) {
	l.logf("debug", msg, fields, nil)
}

func (l *SimpleLogger) Info(msg string, fields map[string]interface{}) {
	l.logf("info", msg, fields, nil)
}

func (l *SimpleLogger) Warn(msg string, fields map[string]interface{}) {
	l.logf("warn", msg, fields, nil)
}

func (l *SimpleLogger) Error(msg string, err error) {
	l.logf("error", msg, nil, err)
}

func (l *SimpleLogger) Fatal(msg string, err error) {
	l.logf("fatal", msg, nil, err)
}
