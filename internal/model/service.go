package model

const (
	DefaultServiceIcon  = "tooth"
	DefaultDisplayOrder = 999
)

// Service is a treatment offered by the clinic. Its title is what visitors
// pick when booking.
type Service struct {
	ID           string `json:"serviceId" db:"id"`
	Title        string `json:"title" db:"title" validate:"required,max=120"`
	Description  string `json:"description" db:"description" validate:"max=2000"`
	Icon         string `json:"icon" db:"icon"`
	DisplayOrder int    `json:"displayOrder" db:"display_order" validate:"min=0"`
	Timestamps
}

func (s *Service) EntityID() string      { return s.ID }
func (s *Service) SetEntityID(id string) { s.ID = id }

// ApplyDefaults fills the icon and display order when left empty. An order
// of zero counts as unset and sorts the service last.
func (s *Service) ApplyDefaults() {
	if s.Icon == "" {
		s.Icon = DefaultServiceIcon
	}
	if s.DisplayOrder == 0 {
		s.DisplayOrder = DefaultDisplayOrder
	}
}
