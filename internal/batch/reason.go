package batch

import (
	"cardstats/internal/extract"
	"cardstats/internal/manifest"
	"cardstats/internal/period"
	"cardstats/internal/workbook"
	"errors"
)

const (
	ReasonMissingInput          = "MissingInput"
	ReasonInvalidFormat         = "InvalidFormat"
	ReasonHeaderNotFound        = "HeaderNotFound"
	ReasonColumnNotFound        = "ColumnNotFound"
	ReasonYearMonthUnresolvable = "YearMonthUnresolvable"
	ReasonInvalidManifestLine   = "InvalidManifestLine"
	ReasonEmitFailed            = "EmitFailed"
)

// Reason maps an error to the name of its skip reason.
func Reason(err error) string {
	switch {
	case errors.Is(err, workbook.ErrMissingInput):
		return ReasonMissingInput
	case errors.Is(err, workbook.ErrInvalidFormat):
		return ReasonInvalidFormat
	case errors.Is(err, extract.ErrHeaderNotFound):
		return ReasonHeaderNotFound
	case errors.Is(err, extract.ErrColumnNotFound):
		return ReasonColumnNotFound
	case errors.Is(err, period.ErrUnresolvable):
		return ReasonYearMonthUnresolvable
	case errors.As(err, &manifest.LineError{}):
		return ReasonInvalidManifestLine
	}
	return ReasonEmitFailed
}
