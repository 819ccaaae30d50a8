package dto

type CompetitionFilter struct {
	SearchQuery string `form:"q" validate:"max=100"`
	Location    string `form:"location" validate:"max=80"`
	Status      string `form:"status" validate:"omitempty,oneof=open closed"`
	Pagination
	FetchAll bool `form:"-"`
}

type ImmigrationFilter struct {
	SearchQuery        string `form:"q" validate:"max=100"`
	DestinationCountry string `form:"destination_country" validate:"max=80"`
	Pagination
	FetchAll bool `form:"-"`
}
