package dto

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=120"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url"`
	Headline    string `json:"headline" validate:"max=160"`
	Country     string `json:"country" validate:"max=80"`
	City        string `json:"city" validate:"max=80"`
	Bio         string `json:"bio" validate:"max=5000"`
	Phone       string `json:"phone" validate:"max=40"`
}
