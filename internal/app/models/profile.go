package models

import "time"

type Profile struct {
	ID         string     `json:"id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email,omitempty"`
	Role       string     `json:"role"`
	AvatarPath string     `json:"avatar_path,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
