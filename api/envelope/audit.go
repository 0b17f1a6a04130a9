package envelope

import (
	"time"

	"go.uber.org/zap"
)

// AuditEntry records one priced request
type AuditEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
	InputHash  string    `json:"input_hash"`
	Service    string    `json:"service"`
	Total      string    `json:"total,omitempty"`
	Warnings   int       `json:"warnings"`
	ClientIP   string    `json:"client_ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
}

// AuditLogger receives audit entries
type AuditLogger interface {
	Log(entry AuditEntry) error
}

// ZapAuditLogger writes audit entries to a zap logger
type ZapAuditLogger struct {
	log *zap.Logger
}

// NewZapAuditLogger creates an audit logger writing to log
func NewZapAuditLogger(log *zap.Logger) *ZapAuditLogger {
	return &ZapAuditLogger{log: log}
}

// Log implements AuditLogger
func (l *ZapAuditLogger) Log(e AuditEntry) error {
	fields := []zap.Field{
		zap.String("request_id", e.RequestID),
		zap.String("input_hash", e.InputHash),
		zap.String("service", e.Service),
		zap.String("total", e.Total),
		zap.Int("warnings", e.Warnings),
		zap.String("client_ip", e.ClientIP),
		zap.String("user_agent", e.UserAgent),
		zap.Int64("duration_ms", e.DurationMs),
	}
	if !e.Success {
		l.log.Warn("quote failed", append(fields, zap.String("error", e.Error))...)
		return nil
	}
	l.log.Info("quote", fields...)
	return nil
}

// NewAuditEntry starts an entry for env
func NewAuditEntry(env *InputEnvelope, requestID, clientIP, userAgent string) AuditEntry {
	return AuditEntry{
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		InputHash: env.InputHash,
		Service:   env.Selection.Service.String(),
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Success:   true,
	}
}

// MarkFailed marks the entry as failed
func (e *AuditEntry) MarkFailed(err error) {
	e.Success = false
	e.Error = err.Error()
}

// SetDuration sets the duration
func (e *AuditEntry) SetDuration(d time.Duration) {
	e.DurationMs = d.Milliseconds()
}
