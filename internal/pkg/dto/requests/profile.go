package requests

type UpdateProfile struct {
	FullName string `json:"full_name" validate:"required,min=2,max=150"`
}
