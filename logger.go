package socks5

import (
	"log"

	"github.com/rs/zerolog"
)

// Logger is used to provide debug logger
type Logger interface {
	Errorf(format string, arg ...interface{})
	Debugf(format string, arg ...interface{})
}

// Std std logger
type Std struct {
	*log.Logger
}

// NewLogger new std logger with log.logger
func NewLogger(l *log.Logger) *Std {
	return &Std{l}
}

// Errorf implement interface Logger
func (sf Std) Errorf(format string, args ...interface{}) {
	sf.Logger.Printf("[E]: "+format, args...)
}

// Debugf implement interface Logger
func (sf Std) Debugf(format string, args ...interface{}) {
	sf.Logger.Printf("[D]: "+format, args...)
}

// Zero zerolog logger
type Zero struct {
	zerolog.Logger
}

// NewZeroLogger new logger backed by zerolog
func NewZeroLogger(l zerolog.Logger) *Zero {
	return &Zero{l}
}

// Errorf implement interface Logger
func (sf Zero) Errorf(format string, args ...interface{}) {
	sf.Logger.Error().Msgf(format, args...)
}

// Debugf implement interface Logger
func (sf Zero) Debugf(format string, args ...interface{}) {
	sf.Logger.Debug().Msgf(format, args...)
}
