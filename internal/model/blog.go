package model

const (
	DefaultBlogCategory = "dental-care"
	DefaultBlogAuthor   = "Dr. Roma"
)

type Blog struct {
	ID       string `json:"blogId" db:"id"`
	Title    string `json:"title" db:"title" validate:"required,max=200"`
	Content  string `json:"content" db:"content"`
	Excerpt  string `json:"excerpt" db:"excerpt" validate:"max=500"`
	Category string `json:"category" db:"category"`
	Author   string `json:"author" db:"author"`
	Link     string `json:"link" db:"link" validate:"omitempty,url"`
	ImageRef
	Timestamps
}

func (b *Blog) EntityID() string      { return b.ID }
func (b *Blog) SetEntityID(id string) { b.ID = id }

func (b *Blog) ApplyDefaults() {
	if b.Category == "" {
		b.Category = DefaultBlogCategory
	}
	if b.Author == "" {
		b.Author = DefaultBlogAuthor
	}
}
