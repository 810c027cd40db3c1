package desert

import "github.com/ppiankov/deserts/internal/model"

// Severity bands by number of missing critical capabilities
const (
	criticalFrom = 6
	severeFrom   = 4
	moderateFrom = 2
)

// ClassifySeverity maps a missing-capability count to a severity band.
// It is monotone: more missing capabilities never give a milder band.
func ClassifySeverity(missing int) model.Severity {
	switch {
	case missing >= criticalFrom:
		return model.SeverityCritical
	case missing >= severeFrom:
		return model.SeveritySevere
	case missing >= moderateFrom:
		return model.SeverityModerate
	default:
		return model.SeverityMinimal
	}
}
