// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seal é o selo de confiança de um posto, definido pela moderação
type Seal string

const (
	SealTrusted     Seal = "trusted"
	SealObservation Seal = "observation" // Selo inicial de todo posto recém-cadastrado
	SealComplaints  Seal = "complaints"
)

// ValidSeal verifica se o valor recebido corresponde a um selo conhecido
func ValidSeal(s Seal) bool {
	switch s {
	case SealTrusted, SealObservation, SealComplaints:
		return true
	}
	return false
}

// FuelType é a tag de um tipo de combustível
type FuelType string

const (
	FuelGNV                FuelType = "gnv"
	FuelGasolinaComum      FuelType = "gasolina_comum"
	FuelGasolinaAditivada  FuelType = "gasolina_aditivada"
	FuelEtanol             FuelType = "etanol"
	FuelDiesel             FuelType = "diesel"
)

// FuelTypeLabels mapeia as tags para os rótulos exibidos ao usuário
var FuelTypeLabels = map[FuelType]string{
	FuelGNV:               "GNV",
	FuelGasolinaComum:     "Gasolina Comum",
	FuelGasolinaAditivada: "Gasolina Aditivada",
	FuelEtanol:            "Etanol",
	FuelDiesel:            "Diesel",
}

// Label retorna o rótulo de exibição do combustível; tags desconhecidas
// voltam como vieram do banco
func (f FuelType) Label() string {
	if label, ok := FuelTypeLabels[f]; ok {
		return label
	}
	return string(f)
}

// ValidFuelType verifica se a tag recebida corresponde a um combustível conhecido
func ValidFuelType(f FuelType) bool {
	_, ok := FuelTypeLabels[f]
	return ok
}

// FuelPriceEntry é o preço vigente de um combustível em um posto
type FuelPriceEntry struct {
	FuelType  FuelType        `json:"fuel_type"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Station é um posto de combustível cadastrado por um usuário
type Station struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Brand           string           `json:"brand"`
	Address         string           `json:"address"`
	Lat             float64          `json:"lat"`
	Lng             float64          `json:"lng"`
	Rating          float64          `json:"rating"`
	ReviewCount     int              `json:"review_count"`
	ComplaintsCount int              `json:"complaints_count"`
	Seal            Seal             `json:"seal"`
	HasPromotion    bool             `json:"has_promotion"`
	PromotionText   *string          `json:"promotion_text,omitempty"`
	CreatedBy       *int             `json:"created_by,omitempty"`
	Prices          []FuelPriceEntry `json:"prices"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PriceFor retorna o preço vigente do combustível informado, se houver
func (s *Station) PriceFor(fuel FuelType) (FuelPriceEntry, bool) {
	for _, entry := range s.Prices {
		if entry.FuelType == fuel {
			return entry, true
		}
	}
	return FuelPriceEntry{}, false
}

// NewStationRequest é o corpo do cadastro de um novo posto
type NewStationRequest struct {
	Name    string  `json:"name"`
	Brand   string  `json:"brand"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// PriceReportRequest é o corpo do envio de um novo preço para um posto
type PriceReportRequest struct {
	FuelType FuelType `json:"fuel_type"`
	Price    string   `json:"price"`
}

// StationDetailResponse agrega o posto, seus preços e as denúncias aprovadas
type StationDetailResponse struct {
	Station    *Station     `json:"station"`
	Complaints []*Complaint `json:"complaints"`
}
