package model

import (
	"strings"
	"time"
)

// Keys of the singleton content documents.
const (
	HomeContentKey  = "home-hero"
	AboutContentKey = "about-section"
	StatsKey        = "main-stats"
)

// Document is a singleton record stored under a fixed key.
type Document interface {
	Touch(now time.Time)
}

type OpeningHours struct {
	Days      string `json:"days"`
	Time      string `json:"time"`
	ClosedDay string `json:"closedDay"`
}

// HomeContent backs the landing page hero section.
type HomeContent struct {
	Tagline         string       `json:"tagline" validate:"max=200"`
	Heading         string       `json:"heading" validate:"max=200"`
	HighlightedText string       `json:"highlightedText" validate:"max=200"`
	Description     string       `json:"description" validate:"max=2000"`
	HeroImage       string       `json:"heroImage"`
	S3Key           string       `json:"s3Key,omitempty"`
	OpeningHours    OpeningHours `json:"openingHours"`
	PhoneNumber     string       `json:"phoneNumber" validate:"max=20"`
	WhatsappNumber  string       `json:"whatsappNumber" validate:"max=20"`
	UpdatedAt       *time.Time   `json:"updatedAt,omitempty"`
}

func (h *HomeContent) Touch(now time.Time) { h.UpdatedAt = &now }

func (h *HomeContent) Image() ImageRef {
	return ImageRef{URL: h.HeroImage, Key: h.S3Key}
}

func (h *HomeContent) SetImage(ref ImageRef) {
	h.HeroImage, h.S3Key = ref.URL, ref.Key
}

// Highlight is a titled blurb shown in feature and value lists.
type Highlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AboutContent backs the about section. Paragraphs is only read from older
// documents and is folded into Content.
type AboutContent struct {
	Subtitle         string      `json:"subtitle" validate:"max=200"`
	Title            string      `json:"title" validate:"max=200"`
	HighlightedTitle string      `json:"highlightedTitle" validate:"max=200"`
	Description      string      `json:"description"`
	MainImage        string      `json:"mainImage"`
	S3Key            string      `json:"s3Key,omitempty"`
	Heading          string      `json:"heading"`
	Content          string      `json:"content"`
	Paragraphs       []string    `json:"paragraphs,omitempty"`
	Mission          string      `json:"mission"`
	Vision           string      `json:"vision"`
	WhoWeAre         string      `json:"whoWeAre"`
	Technologies     string      `json:"technologies"`
	Features         []Highlight `json:"features"`
	Values           []Highlight `json:"values"`
	UpdatedAt        *time.Time  `json:"updatedAt,omitempty"`
}

func (a *AboutContent) Touch(now time.Time) { a.UpdatedAt = &now }

func (a *AboutContent) Image() ImageRef {
	return ImageRef{URL: a.MainImage, Key: a.S3Key}
}

func (a *AboutContent) SetImage(ref ImageRef) {
	a.MainImage, a.S3Key = ref.URL, ref.Key
}

// Normalize folds legacy paragraphs into Content.
func (a *AboutContent) Normalize() {
	if len(a.Paragraphs) > 0 && a.Content == "" {
		a.Content = strings.Join(a.Paragraphs, "\n\n")
	}
	a.Paragraphs = nil
}

// Stats are the headline numbers shown on the site.
type Stats struct {
	HappyPatients int        `json:"happyPatients" validate:"min=0"`
	Specialists   int        `json:"specialists" validate:"min=0"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func (s *Stats) Touch(now time.Time) { s.UpdatedAt = &now }

// Dashboard summarises the admin overview counts.
type Dashboard struct {
	TotalBookings   int `json:"totalBookings"`
	PendingBookings int `json:"pendingBookings"`
	TotalBlogs      int `json:"totalBlogs"`
	TotalImages     int `json:"totalImages"`
	TotalServices   int `json:"totalServices"`
}

func DefaultHomeContent() *HomeContent {
	return &HomeContent{
		Tagline:         "Your Smile, Our Priority",
		Heading:         "Experience",
		HighlightedText: "World-Class Dental Care",
		Description:     "Complete dental solutions with 10+ specialties and 1000+ satisfied patients. From routine checkups to advanced procedures, we're here for your whole family.",
		HeroImage:       "https://images.unsplash.com/photo-1629909613654-28e377c37b09?w=800&q=80",
		OpeningHours: OpeningHours{
			Days:      "6 Days",
			Time:      "10 AM - 8 PM",
			ClosedDay: "Tuesday",
		},
		PhoneNumber:    "+917499537267",
		WhatsappNumber: "917499537267",
	}
}

func DefaultAboutContent() *AboutContent {
	return &AboutContent{
		Subtitle:         "About Us",
		Title:            "Welcome to",
		HighlightedTitle: "Roma's Dental Care",
		Description:      "Your trusted partner for comprehensive dental care in Kharadi & Wadgaon Sheri",
		MainImage:        "https://images.unsplash.com/photo-1606811841689-23dfddce3e95?w=800&q=80",
		Heading:          "Advanced, Gentle Treatments by 13+ Years Experienced Doctor",
		Content: "At Roma's Dental Care, we aim to increase awareness about the importance of oral hygiene and dental health. We strongly believe that good oral health contributes to overall wellness.\n\n" +
			"Dr. Roma has worked across various cities and in mobile dental setups, gaining diverse experience and exposure. Her approach is gentle, kind, and compassionate, ensuring a comfortable experience for every patient.\n\n" +
			"Since awareness about the link between oral health and general health is still limited, we are dedicated to educating our community and providing reliable, patient-focused care.\n\n" +
			"Choose Roma's Dental Care for healthier teeth, healthier gums, and a healthier you.",
		Mission:  "To promote oral health awareness and provide compassionate, high-quality dental care to every patient.",
		Vision:   "To build a community that understands the deep connection between oral health and overall well-being, and to make quality dental care accessible, comforting, and effective for all.",
		WhoWeAre: "Roma's Dental Care is a modern, family-friendly dental clinic in Kharadi, Pune, offering advanced treatments with a compassionate, patient-first approach. Our mission is simple: deliver painless, ethical, and truly caring dentistry backed by the latest technology.",
		Technologies: strings.Join([]string{
			"Digital X-rays & RVG",
			"Intraoral scanning",
			"Laser-assisted dentistry",
			"Rotary endodontics",
			"Single-sitting RCT technology",
			"High-standard sterilization",
			"Premium Zirconia & E-max crowns",
			"Flexible denture systems",
		}, "\n"),
		Features: []Highlight{
			{Title: "State-of-the-Art Equipment", Description: "Latest dental technology for precise diagnosis and treatment"},
			{Title: "Experienced Team", Description: "Highly qualified dentists with 10+ specializations"},
			{Title: "Patient-Centered Care", Description: "Comfortable environment with personalized treatment plans"},
		},
		Values: []Highlight{
			{Title: "Trust & Safety", Description: "Sterilized equipment and strict hygiene protocols for your safety"},
			{Title: "Affordable Pricing", Description: "Quality dental care at competitive prices with flexible payment options"},
			{Title: "Flexible Hours", Description: "Open 6 days a week from 10 AM - 8 PM to fit your schedule"},
		},
	}
}

func DefaultStats() *Stats {
	return &Stats{HappyPatients: 1000, Specialists: 10}
}
