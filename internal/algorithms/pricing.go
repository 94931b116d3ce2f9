package algorithms

import (
	"math"

	"collab_backend/pkg/apperrors"
)

const (
	// DefaultBaseRate - цена за 1000 подписчиков на 1% вовлеченности
	DefaultBaseRate = 100.0
	// MinimumPrice - нижняя граница ненулевой цены
	MinimumPrice int64 = 500
	Currency           = "INR"
)

// EngagementRate = (avgLikes + avgComments) / followers * 100, округление до 2 знаков.
// При followers <= 0 возвращает 0.
func EngagementRate(avgLikes, avgComments, followers float64) (float64, error) {
	if err := checkInputs(map[string]float64{
		"avgLikes":    avgLikes,
		"avgComments": avgComments,
		"followers":   followers,
	}); err != nil {
		return 0, err
	}
	if followers <= 0 {
		return 0, nil
	}
	return round2((avgLikes + avgComments) / followers * 100), nil
}

// EstimatedPrice - цена коллаборации с базовой ставкой DefaultBaseRate
func EstimatedPrice(followers, engagementRate float64) (int64, error) {
	return EstimatedPriceWithBase(followers, engagementRate, DefaultBaseRate)
}

// EstimatedPriceWithBase = round(followers/1000 * engagementRate * baseRate), не ниже MinimumPrice.
// Если followers или engagementRate равны нулю, цена 0.
func EstimatedPriceWithBase(followers, engagementRate, baseRate float64) (int64, error) {
	if err := checkInputs(map[string]float64{
		"followers":      followers,
		"engagementRate": engagementRate,
		"baseRate":       baseRate,
	}); err != nil {
		return 0, err
	}
	if followers == 0 || engagementRate == 0 {
		return 0, nil
	}

	price := int64(math.Round((followers / 1000) * engagementRate * baseRate))
	if price < MinimumPrice {
		return MinimumPrice, nil
	}
	return price, nil
}

// PriceInRange - фильтр дискавери. Нулевая граница означает "без ограничения".
func PriceInRange(price, min, max int64) bool {
	if min > 0 && price < min {
		return false
	}
	if max > 0 && price > max {
		return false
	}
	return true
}

func checkInputs(values map[string]float64) error {
	invalid := map[string]string{}
	for name, v := range values {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			invalid[name] = "Must be a finite number"
		case v < 0:
			invalid[name] = "Must not be negative"
		}
	}
	if len(invalid) > 0 {
		return apperrors.ValidationError(invalid)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
