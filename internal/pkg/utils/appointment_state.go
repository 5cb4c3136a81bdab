package utils

import (
	"clinica-service/internal/pkg/constvars"
	"errors"
	"slices"
)

var (
	ErrUnknownAppointmentStatus  = errors.New("unknown appointment status")
	ErrTerminalAppointmentStatus = errors.New("appointment is in a terminal status")
	ErrAppointmentNotReopenable  = errors.New("confirmed appointment cannot go back to scheduled")
)

func IsValidAppointmentStatus(status string) bool {
	return slices.Contains(constvars.AppointmentStatuses, status)
}

func IsTerminalAppointmentStatus(status string) bool {
	return slices.Contains(constvars.TerminalAppointmentStatuses, status)
}

func CanTransitionAppointmentStatus(from, to string) error {
	if !IsValidAppointmentStatus(to) {
		return ErrUnknownAppointmentStatus
	}
	if from == to {
		return nil
	}
	if IsTerminalAppointmentStatus(from) {
		return ErrTerminalAppointmentStatus
	}
	if from == constvars.AppointmentStatusConfirmed && to == constvars.AppointmentStatusScheduled {
		return ErrAppointmentNotReopenable
	}
	return nil
}
