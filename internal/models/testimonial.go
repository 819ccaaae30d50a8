package models

type Testimonial struct {
	BaseModel
	AuthorName  string `gorm:"not null" json:"author_name"`
	AvatarColor string `json:"avatar_color,omitempty"`
	Rating      int    `gorm:"not null;default:5" json:"rating"`
	Content     string `gorm:"type:text;not null" json:"content"`
	PostedAt    string `json:"posted_at,omitempty"` // строка для отображения ("منذ أسبوع")
}

// ClampRating держит рейтинг в диапазоне 0..5
func (t *Testimonial) ClampRating() {
	switch {
	case t.Rating < 0:
		t.Rating = 0
	case t.Rating > 5:
		t.Rating = 5
	}
}
