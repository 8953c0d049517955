package site

// Meta — тег <meta>. Заполняется либо Charset, либо Name+Content.
type Meta struct {
	Charset string `json:"charset,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
}

// Link — тег <link>
type Link struct {
	Rel  string `json:"rel"`
	Type string `json:"type,omitempty"`
	Href string `json:"href"`
}

// Head — метаданные <head> страниц блога
type Head struct {
	Title string `json:"title"`
	Meta  []Meta `json:"meta"`
	Link  []Link `json:"link"`
}

const (
	Title       = "Blog Platform"
	Description = "A blog platform built with Nuxt and Strapi"
)

// DefaultHead возвращает статические head-теги по умолчанию
func DefaultHead() Head {
	return Head{
		Title: Title,
		Meta: []Meta{
			{Charset: "utf-8"},
			{Name: "viewport", Content: "width=device-width, initial-scale=1"},
			{Name: "description", Content: Description},
		},
		Link: []Link{
			{Rel: "icon", Type: "image/x-icon", Href: "/favicon.ico"},
		},
	}
}
