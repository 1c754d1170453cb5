package core

import (
	"errors"
	"strings"
)

type (
	// Receipt is a single receipt document as the backend stores it.
	// Field names and JSON tags follow the backend contract and must not
	// be renamed.
	Receipt struct {
		ID               int64   `json:"id"`
		TelegramUserID   string  `json:"telegram_user_id"`
		TelegramUsername string  `json:"telegram_username"`
		FirstName        string  `json:"first_name"`
		LastName         string  `json:"last_name"`
		ReceiptDate      string  `json:"receipt_date"`
		ReceiptNo        string  `json:"receipt_no"`
		TotalAmount      float64 `json:"total_amount"`
		KDV10Amount      float64 `json:"kdv_10_amount"`
		TopKDVAmount     float64 `json:"top_kdv_amount"`
		NetAmount        float64 `json:"net_amount"`
		CreatedAt        string  `json:"created_at"`
		UpdatedAt        string  `json:"updated_at"`
	}

	// ReceiptPage is one page of a filtered listing together with the
	// unfiltered-by-pagination total count.
	ReceiptPage struct {
		Data  []Receipt `json:"data"`
		Total int       `json:"total"`
	}
)

var (
	ErrInvalidID     = errors.New("invalid receipt id")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// DisplayName resolves the submitter to something showable: the Telegram
// username, then "first last", then the anonymous placeholder.
func (r Receipt) DisplayName() string {
	if r.TelegramUsername != "" {
		return r.TelegramUsername
	}
	if name := strings.TrimSpace(r.FirstName + " " + r.LastName); name != "" {
		return name
	}
	return "Anonim"
}

// Validate checks the fields the dashboard is allowed to write back.
// Submitter identity and timestamps belong to the backend and are not
// validated here.
func (r Receipt) Validate() error {
	if r.ID <= 0 {
		return ErrInvalidID
	}
	if r.TotalAmount < 0 || r.KDV10Amount < 0 || r.TopKDVAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// FindByID returns the index of the receipt with the given id, or -1.
func FindByID(receipts []Receipt, id int64) int {
	for i := range receipts {
		if receipts[i].ID == id {
			return i
		}
	}
	return -1
}
