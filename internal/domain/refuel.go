package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Refuel é um abastecimento registrado por um usuário
type Refuel struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	StationID   string          `json:"station_id"`
	StationName string          `json:"station_name,omitempty"`
	FuelType    FuelType        `json:"fuel_type"`
	Liters      decimal.Decimal `json:"liters"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RefuelFilter são os filtros da listagem de histórico de abastecimentos.
// FuelType vazio ou "all" não restringe; PeriodDays <= 0 não restringe.
type RefuelFilter struct {
	FuelType   string
	PeriodDays int
}

// NewRefuelRequest é o corpo do registro de um abastecimento
type NewRefuelRequest struct {
	StationID string   `json:"station_id"`
	FuelType  FuelType `json:"fuel_type"`
	Liters    string   `json:"liters"`
	TotalPaid string   `json:"total_paid"`
	Date      string   `json:"date"`
}
