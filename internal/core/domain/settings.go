package domain

const unknownDescription = "Unknown"

// LogLevel is the minimum severity written by the logger.
type LogLevel string

// Available log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid returns true if the log level is recognised.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l LogLevel) String() string {
	return string(l)
}

// Description returns a human-readable description of the level.
func (l LogLevel) Description() string {
	switch l {
	case LogLevelDebug:
		return "Debug (every annotation write)"
	case LogLevelInfo:
		return "Info (sessions, relations, batches, exports)"
	case LogLevelWarn:
		return "Warn (rejected requests and archive failures)"
	case LogLevelError:
		return "Error (server failures only)"
	default:
		return unknownDescription
	}
}

// AllLogLevels returns all log levels from most to least verbose.
func AllLogLevels() []LogLevel {
	return []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
}

// LogSettings controls structured logging.
type LogSettings struct {
	// Level is the minimum level written.
	Level LogLevel

	// JSON switches the handler to JSON output.
	JSON bool
}

// HTTPSettings controls the HTTP transport.
type HTTPSettings struct {
	// Port is the listen port. Zero selects the stdio transport.
	Port int

	// RateLimit is the sustained request rate per second. Zero disables limiting.
	RateLimit int

	// Burst is the maximum burst above RateLimit.
	Burst int

	// MetricsEnabled exposes /metrics alongside the MCP handler.
	MetricsEnabled bool
}

// ArchiveSettings controls the export archive.
type ArchiveSettings struct {
	// Enabled records every successful export.
	Enabled bool

	// Dir is the directory holding the archive database.
	// Empty means the default data directory.
	Dir string
}

// ChunkSettings controls how 'annotator chunk' splits documents.
type ChunkSettings struct {
	// Size is the maximum number of characters per chunk.
	Size int

	// Overlap is the number of characters repeated from the previous chunk.
	Overlap int
}

// ServerSettings holds all server settings.
type ServerSettings struct {
	Log     LogSettings
	HTTP    HTTPSettings
	Archive ArchiveSettings
	Chunk   ChunkSettings
}

// DefaultServerSettings returns settings with sensible defaults.
func DefaultServerSettings() ServerSettings {
	return ServerSettings{
		Log: LogSettings{
			Level: LogLevelInfo,
		},
		HTTP: HTTPSettings{
			Port:           0,
			RateLimit:      50,
			Burst:          100,
			MetricsEnabled: true,
		},
		Archive: ArchiveSettings{
			Enabled: false,
		},
		Chunk: ChunkSettings{
			Size:    DefaultChunkSize,
			Overlap: 0,
		},
	}
}
