package cv

// Data - содержимое резюме, которое присылает конструктор CV
type Data struct {
	Personal     PersonalInfo  `json:"personal" validate:"required"`
	Experiences  []Experience  `json:"experiences" validate:"omitempty,max=30,dive"`
	Education    []Education   `json:"education" validate:"omitempty,max=20,dive"`
	Skills       []string      `json:"skills" validate:"omitempty,max=60,dive,max=80"`
	Languages    []Language    `json:"languages" validate:"omitempty,max=20,dive"`
	Certificates []Certificate `json:"certificates" validate:"omitempty,max=30,dive"`
}

type PersonalInfo struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Title    string `json:"title" validate:"max=120"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"max=40"`
	Location string `json:"location" validate:"max=120"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
	Summary  string `json:"summary" validate:"max=3000"`
}

type Experience struct {
	Position    string `json:"position" validate:"required,max=120"`
	Company     string `json:"company" validate:"max=120"`
	Location    string `json:"location" validate:"max=120"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
	Description string `json:"description" validate:"max=3000"`
}

type Education struct {
	Degree       string `json:"degree" validate:"required,max=120"`
	Institution  string `json:"institution" validate:"max=160"`
	FieldOfStudy string `json:"field_of_study" validate:"max=120"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description" validate:"max=2000"`
}

type Language struct {
	Name  string `json:"name" validate:"required,max=60"`
	Level string `json:"level" validate:"max=60"`
}

type Certificate struct {
	Name   string `json:"name" validate:"required,max=160"`
	Issuer string `json:"issuer" validate:"max=160"`
	Date   string `json:"date"`
}
