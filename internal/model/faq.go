package model

type FAQ struct {
	ID           string `json:"faqId" db:"id"`
	Question     string `json:"question" db:"question" validate:"required,max=500"`
	Answer       string `json:"answer" db:"answer" validate:"required"`
	DisplayOrder int    `json:"displayOrder" db:"display_order" validate:"min=0"`
	Timestamps
}

func (f *FAQ) EntityID() string      { return f.ID }
func (f *FAQ) SetEntityID(id string) { f.ID = id }
