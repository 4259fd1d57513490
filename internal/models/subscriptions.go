package models

// Plan — тариф подписки; Features — имена фич, которые он открывает.
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	PriceRub int64    `json:"price_rub"`
	Period   string   `json:"period"` // "month" | "year"
	Features []string `json:"features"`
}

type PlansResponse struct {
	Plans []Plan `json:"plans"`
}

// FeatureCheckResponse — ответ GET /subscriptions/features/{name}/check.
// Авторитетный серверный ответ о доступности фичи для текущего пользователя.
type FeatureCheckResponse struct {
	Available bool `json:"available"`
}

type FeaturesResponse struct {
	Features []string `json:"features"`
}
