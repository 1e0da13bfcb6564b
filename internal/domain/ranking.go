package domain

import "github.com/shopspring/decimal"

// Sentinelas do filtro de combustível. "todos" não restringe nada e
// "favoritos" restringe aos postos favoritados pelo usuário.
const (
	FuelFilterAll       = "todos"
	FuelFilterFavorites = "favoritos"
)

// Critérios de ordenação do ranking de postos
const (
	SortByPrice  = "price"
	SortByRating = "rating"
)

// RankingContext é a configuração efêmera de uma execução do pipeline de
// ranking. Não é persistido; é reconstruído a cada requisição.
type RankingContext struct {
	SearchQuery string
	FuelFilter  string
	SortBy      string
	HideFlagged bool

	// Posição do usuário, quando informada, habilita o cálculo de distância
	UserLat *float64
	UserLng *float64
}

// RankedStation é um posto que sobreviveu aos filtros, anotado com o preço
// escolhido para exibição e com a marcação de oportunidade
type RankedStation struct {
	Station
	DisplayedPrice decimal.Decimal `json:"displayed_price"`
	DisplayedFuel  FuelType        `json:"displayed_fuel"`
	IsCheapest     bool            `json:"is_cheapest"`
	DistanceKm     *float64        `json:"distance_km,omitempty"`
}

// RankingResponse é a resposta da listagem ranqueada de postos
type RankingResponse struct {
	Stations []RankedStation `json:"stations"`
	Total    int             `json:"total"`
}
