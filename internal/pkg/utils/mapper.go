package utils

import (
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/dto/responses"
)

func BuildPatientResponse(patient models.Patient) responses.Patient {
	fullName := FormatFullName(patient.FirstName, patient.LastName)
	return responses.Patient{
		Patient:        patient,
		FullName:       fullName,
		Initials:       GetInitials(fullName),
		StatusLabel:    PatientStatusLabel(patient.Status),
		IsTerminal:     IsTerminalPatientStatus(patient.Status),
		CanSetFollowUp: CanSetFollowUpFrom(patient.Status),
	}
}

func BuildPatientResponses(patients []models.Patient) []responses.Patient {
	result := make([]responses.Patient, 0, len(patients))
	for _, patient := range patients {
		result = append(result, BuildPatientResponse(patient))
	}
	return result
}

// BuildAppointmentResponses attaches patient names from names, keyed by
// patient id; unknown patients leave the name empty.
func BuildAppointmentResponses(appointments []models.Appointment, names map[string]string) []responses.Appointment {
	result := make([]responses.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		result = append(result, BuildAppointmentResponse(appointment, names[appointment.PatientID]))
	}
	return result
}

func BuildAppointmentResponse(appointment models.Appointment, patientName string) responses.Appointment {
	return responses.Appointment{
		Appointment: appointment,
		PatientName: patientName,
		IsTerminal:  IsTerminalAppointmentStatus(appointment.Status),
	}
}

func BuildProfileResponse(profile models.Profile, avatarURL string) responses.Profile {
	return responses.Profile{
		Profile:   profile,
		Initials:  GetInitials(profile.FullName),
		RoleLabel: FormatRole(profile.Role),
		AvatarURL: avatarURL,
	}
}
