package domain

import "time"

// Pontos concedidos por cada tipo de contribuição
const (
	PointsReview            = 10
	PointsApprovedComplaint = 15
	PointsRefuel            = 5
)

// Níveis de influência em ordem crescente de pontos
const (
	LevelIniciante    = "Iniciante"
	LevelColaborador  = "Colaborador"
	LevelInfluente    = "Influente"
	LevelEspecialista = "Especialista"
	LevelEmbaixador   = "Embaixador"
)

// InfluenceLevelFor retorna o nível de influência correspondente à pontuação
func InfluenceLevelFor(points int) string {
	switch {
	case points >= 1200:
		return LevelEmbaixador
	case points >= 800:
		return LevelEspecialista
	case points >= 500:
		return LevelInfluente
	case points >= 100:
		return LevelColaborador
	default:
		return LevelIniciante
	}
}

// LeaderboardEntry é a posição de um usuário no ranking de contribuidores
type LeaderboardEntry struct {
	UserID         int       `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	Points         int       `json:"points"`
	InfluenceLevel string    `json:"influence_level"`
	TotalRefuels   int       `json:"total_refuels"`
	Position       int       `json:"position"`
	PositionChange int       `json:"position_change"` // Positivo = subiu, negativo = desceu, 0 = manteve
	SnapshotAt     time.Time `json:"snapshot_at"`
}

// LeaderboardResponse é a resposta do ranking de contribuidores
type LeaderboardResponse struct {
	Ranking    []LeaderboardEntry `json:"ranking"`
	LastUpdate time.Time          `json:"last_update"`
}
