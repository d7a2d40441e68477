package model

const DefaultSocialColor = "#06b6d4"

type SocialLink struct {
	ID    string `json:"linkId" db:"id"`
	Name  string `json:"name" db:"name" validate:"required,max=60"`
	URL   string `json:"url" db:"url" validate:"required,url"`
	Icon  string `json:"icon" db:"icon"`
	Color string `json:"color" db:"color" validate:"omitempty,hexcolor"`
	Order int    `json:"order" db:"sort_order" validate:"min=0"`
	Timestamps
}

func (l *SocialLink) EntityID() string      { return l.ID }
func (l *SocialLink) SetEntityID(id string) { l.ID = id }

func (l *SocialLink) ApplyDefaults() {
	if l.Color == "" {
		l.Color = DefaultSocialColor
	}
}
