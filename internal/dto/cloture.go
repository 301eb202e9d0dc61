package dto

import (
	"github.com/SscSPs/farm_management_app/internal/core/domain"
)

// CreateClotureRequest opens the closure of one month.
type CreateClotureRequest struct {
	Mois  int `json:"mois" binding:"required,min=1,max=12"`
	Annee int `json:"annee" binding:"required,min=2000,max=2100"`
}

// ListCloturesParams defines query parameters for listing closures.
type ListCloturesParams struct {
	Annee int `form:"annee" binding:"required,min=2000,max=2100"`
}

// ExportCloturesParams defines query parameters for exporting closures.
type ExportCloturesParams struct {
	Annee  int    `form:"annee" binding:"required,min=2000,max=2100"`
	Format string `form:"format,default=xlsx" binding:"oneof=xlsx"`
}

// ClotureResponse is a closure plus the actions its status currently allows.
type ClotureResponse struct {
	domain.PeriodClosure
	Actions      domain.Actions `json:"actions"`
	LectureSeule bool           `json:"lecture_seule"`
}

// ToClotureResponse converts a domain closure to its API shape.
func ToClotureResponse(c domain.PeriodClosure) ClotureResponse {
	return ClotureResponse{
		PeriodClosure: c,
		Actions:       c.Actions(),
		LectureSeule:  c.Statut.IsReadOnly(),
	}
}

// ToClotureListResponse converts a slice of closures, never returning nil.
func ToClotureListResponse(closures []domain.PeriodClosure) []ClotureResponse {
	out := make([]ClotureResponse, len(closures))
	for i, c := range closures {
		out[i] = ToClotureResponse(c)
	}
	return out
}
