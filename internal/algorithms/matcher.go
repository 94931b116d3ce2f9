package algorithms

import (
	"strings"

	"collab_backend/internal/models"
)

// Веса компонентов, сумма = 100
const (
	weightCategory   = 30.0
	weightFollowers  = 20.0
	weightEngagement = 20.0
	weightLocation   = 10.0
	weightBudget     = 20.0
)

// CalculateMatchScore оценивает, насколько профиль подходит кампании (0-100).
// Цена профиля считается через EstimatedPriceWithBase.
func CalculateMatchScore(campaign *models.BrandCampaign, profile *models.InfluencerProfile, baseRate float64) (float64, []string) {
	score := 0.0
	reasons := []string{}

	// Category (30 points)
	if len(campaign.Categories) == 0 {
		score += weightCategory / 2
	} else if profile.Category != "" && containsFold(campaign.Categories, profile.Category) {
		score += weightCategory
		reasons = append(reasons, "Category matches")
	}

	// Followers (20 points)
	if campaign.MinFollowers == 0 && campaign.MaxFollowers == 0 {
		score += weightFollowers / 2
	} else if inRangeInt(profile.Followers, campaign.MinFollowers, campaign.MaxFollowers) {
		score += weightFollowers
		reasons = append(reasons, "Follower count within target range")
	}

	// Engagement (20 points)
	if campaign.MinEngagement == 0 && campaign.MaxEngagement == 0 {
		score += weightEngagement / 2
	} else if inRangeFloat(profile.EngagementRate, campaign.MinEngagement, campaign.MaxEngagement) {
		score += weightEngagement
		reasons = append(reasons, "Engagement rate within target range")
	}

	// Location (10 points)
	if campaign.Location == "" {
		score += weightLocation / 2
	} else if strings.EqualFold(strings.TrimSpace(campaign.Location), strings.TrimSpace(profile.Location)) {
		score += weightLocation
		reasons = append(reasons, "Same location")
	}

	// Budget (20 points)
	price, err := EstimatedPriceWithBase(float64(profile.Followers), profile.EngagementRate, baseRate)
	if err == nil && price > 0 {
		switch {
		case price >= campaign.BudgetMin && price <= campaign.BudgetMax:
			score += weightBudget
			reasons = append(reasons, "Price within budget")
		case price < campaign.BudgetMin:
			score += weightBudget * 0.75
			reasons = append(reasons, "Price below budget")
		}
	}

	if score > 100 {
		score = 100
	}
	return round2(score), reasons
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

// Нулевая верхняя граница - без ограничения
func inRangeInt(v, min, max int64) bool {
	return v >= min && (max == 0 || v <= max)
}

func inRangeFloat(v, min, max float64) bool {
	return v >= min && (max == 0 || v <= max)
}
