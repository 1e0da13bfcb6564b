package domain

import "time"

// Status possíveis de uma denúncia
const (
	ComplaintPending  = "pending"
	ComplaintApproved = "approved"
	ComplaintRejected = "rejected"
)

// Review é uma avaliação positiva de um posto, com foto de comprovação
type Review struct {
	ID         int       `json:"id"`
	StationID  string    `json:"station_id"`
	UserID     int       `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ProofURL   *string   `json:"proof_url,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// Complaint é uma denúncia de fraude contra um posto. Nasce como "pending"
// e só entra na tela de detalhes do posto depois de aprovada pela moderação.
type Complaint struct {
	ID            int        `json:"id"`
	Protocol      string     `json:"protocol"`
	StationID     string     `json:"station_id"`
	StationName   string     `json:"station_name,omitempty"`
	ReportedBy    int        `json:"reported_by"`
	ReporterName  string     `json:"reporter_name,omitempty"`
	FuelType      FuelType   `json:"fuel_type"`
	RefuelingDate time.Time  `json:"refueling_date"`
	Description   string     `json:"description"`
	ProofURL      *string    `json:"proof_url,omitempty"`
	Status        string     `json:"status"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewReviewRequest é o corpo do envio de uma avaliação
type NewReviewRequest struct {
	StationID string  `json:"station_id"`
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment"`
	ProofURL  *string `json:"proof_url"`
}

// NewComplaintRequest é o corpo do envio de uma denúncia
type NewComplaintRequest struct {
	StationID     string   `json:"station_id"`
	FuelType      FuelType `json:"fuel_type"`
	RefuelingDate string   `json:"refueling_date"`
	Description   string   `json:"description"`
	ProofURL      *string  `json:"proof_url"`
}
