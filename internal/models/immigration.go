package models

import "gorm.io/datatypes"

// ImmigrationPost - программа переезда / визовая возможность
type ImmigrationPost struct {
	BaseModelWithDeleted
	Title              string `gorm:"not null" json:"title"`
	DestinationCountry string `gorm:"index" json:"destination_country"`
	// Метаданные программы (visa_type, programme, requirements)
	Destination datatypes.JSONType[Destination] `gorm:"type:jsonb" json:"destination"`
	Description string                          `gorm:"type:text" json:"description"`
}

type Destination struct {
	VisaType     string   `json:"visa_type,omitempty"`
	Programme    string   `json:"programme,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}
