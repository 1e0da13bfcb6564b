// Package ranking implementa o pipeline de agregação e ranqueamento de postos:
// filtragem, escolha do preço exibido, ordenação e marcação de oportunidade.
//
// O pipeline é uma transformação pura e síncrona: não faz I/O, não muta as
// coleções de entrada e produz o mesmo resultado para as mesmas entradas.
// Todas as telas de listagem consomem esta mesma função em vez de reimplementar
// filtros localmente.
package ranking

import (
	"sort"
	"strings"

	"github.com/fuelrank/fuelrank-api/internal/domain"
	"github.com/golang/geo/s2"
	"github.com/shopspring/decimal"
)

// Raio médio da Terra em quilômetros, usado no cálculo de distância
const earthRadiusKm = 6371.01

// Rank aplica os quatro estágios do pipeline sobre a coleção recebida.
//
// A coleção de entrada pode estar vazia ou parcialmente carregada; o pipeline
// opera sobre o que receber. O conjunto de favoritos é um snapshot imutável
// pertencente ao chamador.
func Rank(stations []*domain.Station, ctx domain.RankingContext, favorites map[string]struct{}) []domain.RankedStation {
	result := make([]domain.RankedStation, 0, len(stations))

	for _, station := range stations {
		if station == nil || !matchesFilters(station, ctx, favorites) {
			continue
		}

		// Postos sem nenhum preço cadastrado nunca chegam à tela: não há
		// o que exibir no card
		entry, ok := selectDisplayedPrice(station, ctx)
		if !ok {
			continue
		}

		ranked := domain.RankedStation{
			Station:        *station,
			DisplayedPrice: entry.Price,
			DisplayedFuel:  entry.FuelType,
		}

		if ctx.UserLat != nil && ctx.UserLng != nil {
			km := distanceKm(*ctx.UserLat, *ctx.UserLng, station.Lat, station.Lng)
			ranked.DistanceKm = &km
		}

		result = append(result, ranked)
	}

	sortStations(result, ctx.SortBy)
	markCheapest(result)

	return result
}

// matchesFilters aplica os filtros ativos como um AND lógico, com
// curto-circuito: o primeiro filtro reprovado descarta o posto.
func matchesFilters(station *domain.Station, ctx domain.RankingContext, favorites map[string]struct{}) bool {
	if ctx.SearchQuery != "" && !matchesSearch(station, ctx.SearchQuery) {
		return false
	}

	if ctx.FuelFilter == domain.FuelFilterFavorites {
		if _, ok := favorites[station.ID]; !ok {
			return false
		}
	}

	if isSpecificFuel(ctx.FuelFilter) {
		// Comparação exata de tag, nunca substring de rótulo traduzido
		if _, ok := station.PriceFor(domain.FuelType(ctx.FuelFilter)); !ok {
			return false
		}
	}

	if ctx.HideFlagged && station.Seal == domain.SealComplaints {
		// Selos desconhecidos vindos de dados corrompidos não são tratados
		// como "complaints": na dúvida o posto continua visível
		return false
	}

	return true
}

// matchesSearch compara a busca, sem diferenciar maiúsculas, contra nome,
// endereço, bandeira e os rótulos dos combustíveis cadastrados no posto
func matchesSearch(station *domain.Station, query string) bool {
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(station.Name), q) ||
		strings.Contains(strings.ToLower(station.Address), q) ||
		strings.Contains(strings.ToLower(station.Brand), q) {
		return true
	}

	for _, entry := range station.Prices {
		if strings.Contains(strings.ToLower(entry.FuelType.Label()), q) {
			return true
		}
	}

	return false
}

// isSpecificFuel indica se o filtro nomeia um combustível de fato, e não
// uma das sentinelas "todos"/"favoritos"
func isSpecificFuel(fuelFilter string) bool {
	return fuelFilter != "" &&
		fuelFilter != domain.FuelFilterAll &&
		fuelFilter != domain.FuelFilterFavorites
}

// selectDisplayedPrice escolhe o preço que representa o posto no card.
//
// Com um combustível específico selecionado, o preço exibido é o daquele
// combustível. Sem seleção, o GNV tem preferência (é o combustível foco do
// público) e, na ausência dele, vale a primeira entrada da lista — que o
// repositório entrega com no máximo uma entrada vigente por combustível.
func selectDisplayedPrice(station *domain.Station, ctx domain.RankingContext) (domain.FuelPriceEntry, bool) {
	if isSpecificFuel(ctx.FuelFilter) {
		return station.PriceFor(domain.FuelType(ctx.FuelFilter))
	}

	if entry, ok := station.PriceFor(domain.FuelGNV); ok {
		return entry, true
	}

	if len(station.Prices) > 0 {
		return station.Prices[0], true
	}

	return domain.FuelPriceEntry{}, false
}

// sortStations ordena o resultado pelo critério escolhido. A ordenação é
// estável: empates preservam a ordem relativa original. Critérios
// desconhecidos não reordenam nada.
func sortStations(stations []domain.RankedStation, sortBy string) {
	switch sortBy {
	case domain.SortByPrice:
		sort.SliceStable(stations, func(i, j int) bool {
			return stations[i].DisplayedPrice.LessThan(stations[j].DisplayedPrice)
		})
	case domain.SortByRating:
		sort.SliceStable(stations, func(i, j int) bool {
			return stations[i].Rating > stations[j].Rating
		})
	}
}

// markCheapest marca com IsCheapest todos os postos cujo preço exibido é o
// mínimo do resultado. Em lista vazia não há mínimo e nada é marcado.
func markCheapest(stations []domain.RankedStation) {
	if len(stations) == 0 {
		return
	}

	min := stations[0].DisplayedPrice
	for i := 1; i < len(stations); i++ {
		if stations[i].DisplayedPrice.LessThan(min) {
			min = stations[i].DisplayedPrice
		}
	}

	for i := range stations {
		stations[i].IsCheapest = stations[i].DisplayedPrice.Equal(min)
	}
}

// distanceKm calcula a distância esférica entre dois pontos em quilômetros
func distanceKm(fromLat, fromLng, toLat, toLng float64) float64 {
	from := s2.LatLngFromDegrees(fromLat, fromLng)
	to := s2.LatLngFromDegrees(toLat, toLng)
	return float64(from.Distance(to)) * earthRadiusKm
}

// MinDisplayedPrice retorna o menor preço exibido do resultado, quando houver
func MinDisplayedPrice(stations []domain.RankedStation) (decimal.Decimal, bool) {
	if len(stations) == 0 {
		return decimal.Decimal{}, false
	}

	min := stations[0].DisplayedPrice
	for _, s := range stations[1:] {
		if s.DisplayedPrice.LessThan(min) {
			min = s.DisplayedPrice
		}
	}

	return min, true
}
