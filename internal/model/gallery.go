package model

const (
	DefaultGalleryTitle    = "Untitled"
	DefaultGalleryCategory = "general"
)

type GalleryImage struct {
	ID          string `json:"imageId" db:"id"`
	Title       string `json:"title" db:"title" validate:"max=200"`
	Description string `json:"description" db:"description" validate:"max=1000"`
	Category    string `json:"category" db:"category"`
	ImageRef
	Timestamps
}

func (g *GalleryImage) EntityID() string      { return g.ID }
func (g *GalleryImage) SetEntityID(id string) { g.ID = id }

func (g *GalleryImage) ApplyDefaults() {
	if g.Title == "" {
		g.Title = DefaultGalleryTitle
	}
	if g.Category == "" {
		g.Category = DefaultGalleryCategory
	}
}
