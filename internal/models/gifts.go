package models

// Gift — позиция каталога подарков.
type Gift struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IconURL  string `json:"icon_url,omitempty"`
	PriceRub int64  `json:"price_rub"`
}

type GiftCatalog struct {
	Gifts []Gift `json:"gifts"`
}

type SendGiftRequest struct {
	TargetID int64  `json:"target_id"`
	GiftID   int64  `json:"gift_id"`
	Note     string `json:"note,omitempty"`
}

// SendGiftResult — подтверждение отправки; Balance — остаток после списания.
type SendGiftResult struct {
	Sent    bool  `json:"sent"`
	Balance int64 `json:"balance"`
}
