package cv

// Template - фиксированная пара "разметка + стили"
type Template struct {
	ID     string `json:"id"`
	NameAr string `json:"name_ar"`
	NameEn string `json:"name_en"`
	Lang   string `json:"lang"`
	Dir    string `json:"dir"`

	layout     string
	stylesheet string
}

const (
	layoutSingle  = "single"
	layoutSidebar = "sidebar"
	layoutBanner  = "banner"
)

var registry = []Template{
	{ID: "classic", NameAr: "كلاسيكي", NameEn: "Classic", Lang: "en", Dir: "ltr", layout: layoutSingle, stylesheet: "classic.css"},
	{ID: "modern", NameAr: "عصري", NameEn: "Modern", Lang: "en", Dir: "ltr", layout: layoutSidebar, stylesheet: "modern.css"},
	{ID: "minimal", NameAr: "بسيط", NameEn: "Minimal", Lang: "en", Dir: "ltr", layout: layoutSingle, stylesheet: "minimal.css"},
	{ID: "arabic_rtl", NameAr: "عربي", NameEn: "Arabic (RTL)", Lang: "ar", Dir: "rtl", layout: layoutSidebar, stylesheet: "arabic_rtl.css"},
	{ID: "executive", NameAr: "تنفيذي", NameEn: "Executive", Lang: "en", Dir: "ltr", layout: layoutBanner, stylesheet: "executive.css"},
}

// Templates возвращает копию реестра в порядке отображения
func Templates() []Template {
	out := make([]Template, len(registry))
	copy(out, registry)
	return out
}

func LookupTemplate(id string) (Template, bool) {
	for _, t := range registry {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Labels - заголовки секций на языке шаблона
type Labels struct {
	Summary      string
	Experience   string
	Education    string
	Skills       string
	Languages    string
	Certificates string
	Contact      string
	Present      string
}

var labelsByLang = map[string]Labels{
	"en": {
		Summary:      "Profile",
		Experience:   "Experience",
		Education:    "Education",
		Skills:       "Skills",
		Languages:    "Languages",
		Certificates: "Certificates",
		Contact:      "Contact",
		Present:      "Present",
	},
	"ar": {
		Summary:      "نبذة",
		Experience:   "الخبرات العملية",
		Education:    "التعليم",
		Skills:       "المهارات",
		Languages:    "اللغات",
		Certificates: "الشهادات",
		Contact:      "التواصل",
		Present:      "حتى الآن",
	},
}
