package config

import "strings"

// Quality is a yt-dlp format selector.
type Quality string

// The three presets offered at setup. The literals are stored verbatim in
// the settings file and passed to the download engine unchanged.
const (
	QualityHigh    Quality = "bestaudio/best"
	QualityMedium  Quality = "bestaudio"
	QualityDefault Quality = "m4a/bestaudio/best"
)

// QualityFromChoice maps a setup answer to a preset: "1" is high, "2" is
// medium, anything else (including empty) is the m4a-first default.
func QualityFromChoice(choice string) Quality {
	switch strings.TrimSpace(choice) {
	case "1":
		return QualityHigh
	case "2":
		return QualityMedium
	default:
		return QualityDefault
	}
}

// Valid reports whether q is one of the defined presets.
func (q Quality) Valid() bool {
	switch q {
	case QualityHigh, QualityMedium, QualityDefault:
		return true
	}
	return false
}

// Label returns a short human-readable name.
func (q Quality) Label() string {
	switch q {
	case QualityHigh:
		return "high"
	case QualityMedium:
		return "medium"
	default:
		return "default"
	}
}
