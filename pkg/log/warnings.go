package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// InstallWarningBridge routes pkg/errors warnings through a zerolog logger
// so that warning types carrying MarshalZerologObject are emitted as
// structured events instead of plain text.
func InstallWarningBridge() {
	InstallWarningBridgeWithWriter(os.Stderr)
}

// InstallWarningBridgeWithWriter routes warnings to the given writer.
func InstallWarningBridgeWithWriter(w io.Writer) {
	logger := zerolog.New(w).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.EmbedObject(obj)
		}
		event.Msg(warning.Error())
	})
}
