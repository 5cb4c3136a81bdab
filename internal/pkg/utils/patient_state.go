package utils

import (
	"clinica-service/internal/pkg/constvars"
	"errors"
	"slices"
)

var (
	ErrUnknownPatientStatus  = errors.New("unknown patient status")
	ErrTerminalPatientStatus = errors.New("patient is in a terminal status")
	ErrFollowUpNotAllowed    = errors.New("follow-up cannot be set from the current status")
)

func IsValidPatientStatus(status string) bool {
	return slices.Contains(constvars.PatientStatuses, status)
}

// IsTerminalPatientStatus reports whether status closes the patient's
// lifecycle (operated, not interested, inactive).
func IsTerminalPatientStatus(status string) bool {
	return slices.Contains(constvars.TerminalPatientStatuses, status)
}

// CanSetFollowUpFrom reports whether a patient currently in status may be
// moved into follow-up. Patients already in follow-up may be set again.
func CanSetFollowUpFrom(status string) bool {
	if status == "" || !IsValidPatientStatus(status) {
		return false
	}
	if IsTerminalPatientStatus(status) {
		return false
	}
	return true
}

// CanTransitionPatientStatus returns nil when a patient may move from one
// status to another.
func CanTransitionPatientStatus(from, to string) error {
	if !IsValidPatientStatus(to) {
		return ErrUnknownPatientStatus
	}
	if from == to {
		return nil
	}
	if IsTerminalPatientStatus(from) {
		return ErrTerminalPatientStatus
	}
	if to == constvars.PatientStatusFollowUp && !CanSetFollowUpFrom(from) {
		return ErrFollowUpNotAllowed
	}
	return nil
}

func PatientStatusLabel(status string) string {
	if label, ok := constvars.PatientStatusLabels[status]; ok {
		return label
	}
	return humanize(status)
}
