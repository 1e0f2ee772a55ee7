package loopy

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logger = log.With().Str("component", "loopy").Logger()

//SetLogger replaces the logger used by the package. The 'component' field is added to it.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "loopy").Logger()
}
