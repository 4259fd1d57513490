package models

// Profile — карточка кандидата в дискавери.
type Profile struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Bio       string   `json:"bio,omitempty"`
	Distance  float64  `json:"distance_km,omitempty"`
	PhotoURLs []string `json:"photo_urls,omitempty"`
}

// DiscoverPage — страница кандидатов; подбор — целиком серверная логика,
// клиент только отображает.
type DiscoverPage struct {
	Profiles   []Profile `json:"profiles"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// SwipeDirection — действие пользователя по карточке.
type SwipeDirection string

const (
	SwipeLike SwipeDirection = "like"
	SwipePass SwipeDirection = "pass"
)

type SwipeRequest struct {
	TargetID  int64          `json:"target_id"`
	Direction SwipeDirection `json:"direction"`
}

// SwipeResult — Matched == true, когда лайк оказался взаимным.
type SwipeResult struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id,omitempty"`
}
