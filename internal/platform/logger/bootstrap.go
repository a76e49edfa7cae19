package logger

import (
	"context"
	"fmt"
	"log"
	"os"
)

// BootstrapLogger is used while configuration is still being loaded.
type BootstrapLogger struct {
	logger *log.Logger
}

// NewBootstrapLogger creates the startup logger. It writes to stderr so that
// commands printing to stdout (paths, export) keep a clean output stream.
func NewBootstrapLogger() *BootstrapLogger {
	return &BootstrapLogger{
		logger: log.New(os.Stderr, "[bootstrap] ", log.LstdFlags),
	}
}

func (b *BootstrapLogger) print(level, msg string, args []any) {
	line := level + " " + msg
	for i := 0; i+1 < len(args); i += 2 {
		line += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		line += fmt.Sprintf(" !EXTRA=%v", args[len(args)-1])
	}
	b.logger.Print(line)
}

// Debug logs a message at debug level
func (b *BootstrapLogger) Debug(_ context.Context, msg string, args ...any) {
	b.print("DEBUG", msg, args)
}

// Info logs a message at info level
func (b *BootstrapLogger) Info(_ context.Context, msg string, args ...any) {
	b.print("INFO", msg, args)
}

// Warn logs a message at warn level
func (b *BootstrapLogger) Warn(_ context.Context, msg string, args ...any) {
	b.print("WARN", msg, args)
}

// Error logs a message at error level
func (b *BootstrapLogger) Error(_ context.Context, msg string, args ...any) {
	b.print("ERROR", msg, args)
}

var _ Logger = (*BootstrapLogger)(nil)
