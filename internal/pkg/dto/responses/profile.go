package responses

import "clinica-service/internal/app/models"

type Profile struct {
	models.Profile
	Initials  string `json:"initials"`
	RoleLabel string `json:"role_label"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
