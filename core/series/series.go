// Package series provides the demand and renewable input series: built-in
// reference profiles and CSV uploads.
package series

var defaultDemand = []float64{100, 90, 80, 70, 60, 50, 40, 30, 20, 15, 70, 123, 145, 108, 60, 15, 4, 100, 130, 98}

var defaultRenewable = []float64{10, 30, 40, 50, 70, 90, 100, 110, 105, 100, 90, 70, 60, 45, 50, 50, 60, 65, 60, 75, 85}

// DefaultDemand returns a copy of the 20 step reference demand profile (kW).
func DefaultDemand() []float64 { return append([]float64(nil), defaultDemand...) }

// DefaultRenewable returns a copy of the 21 value reference solar profile (kW).
func DefaultRenewable() []float64 { return append([]float64(nil), defaultRenewable...) }

// Source identifies where a series came from.
type Source int

const (
	SourceDefault Source = iota
	SourceConfig
	SourceUpload
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceConfig:
		return "config"
	case SourceUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// MarshalText renders the source name in JSON payloads.
func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Selection is a resolved series together with its origin.
type Selection struct {
	Values []float64
	Source Source
}

// Resolve picks the uploaded series when present, then the configured one,
// then the built-in renewable profile.
func Resolve(upload, configured []float64) Selection {
	switch {
	case upload != nil:
		return Selection{Values: upload, Source: SourceUpload}
	case len(configured) > 0:
		return Selection{Values: configured, Source: SourceConfig}
	default:
		return Selection{Values: DefaultRenewable(), Source: SourceDefault}
	}
}
