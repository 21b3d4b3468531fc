package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas del pipeline comercial (ordenadas).
const (
	LeadStageNew         = "new"
	LeadStageQualified   = "qualified"
	LeadStageProposal    = "proposal"
	LeadStageNegotiation = "negotiation"
	LeadStageWon         = "won"
	LeadStageLost        = "lost"
)

var leadStageLabels = map[string]string{
	LeadStageNew:         "Initial Contact",
	LeadStageQualified:   "Qualification",
	LeadStageProposal:    "Proposal",
	LeadStageNegotiation: "Negotiation",
	LeadStageWon:         "Closed Won",
	LeadStageLost:        "Closed Lost",
}

// LeadStageLabel nombre comercial de la etapa.
func LeadStageLabel(stage string) string {
	if l, ok := leadStageLabels[stage]; ok {
		return l
	}
	return stage
}

// Lead oportunidad comercial asociada a un Customer.
type Lead struct {
	ID                string
	CompanyID         string
	Code              string // LED + 6
	Title             string
	CustomerID        string
	OwnerID           *string
	ContactName       string
	ContactEmail      string
	Source            string
	Priority          string
	EstimatedValue    decimal.Decimal
	Probability       int // 0..100
	Stage             string
	ExpectedCloseDate *time.Time
	ActualCloseDate   *time.Time
	Description       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WeightedValue valor estimado ponderado por la probabilidad de cierre.
func (l *Lead) WeightedValue() decimal.Decimal {
	return l.EstimatedValue.Mul(decimal.NewFromInt(int64(l.Probability))).Div(decimal.NewFromInt(100)).Round(2)
}

// IsOpen la oportunidad sigue en el pipeline.
func (l *Lead) IsOpen() bool {
	return l.Stage != LeadStageWon && l.Stage != LeadStageLost
}

// Tipos de LeadActivity.
const (
	ActivityCall         = "call"
	ActivityEmail        = "email"
	ActivityMeeting      = "meeting"
	ActivityNote         = "note"
	ActivityStatusChange = "status_change"
)

// LeadActivity entrada del historial comercial de un Lead.
type LeadActivity struct {
	ID           string
	CompanyID    string
	LeadID       string
	Type         string
	Subject      string
	Description  string
	Outcome      string
	FollowUpDate *time.Time
	CreatedBy    string
	CreatedAt    time.Time
}
