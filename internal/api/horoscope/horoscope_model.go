package horoscope

import "github.com/astraldaily/horoscope-api/internal/zodiac"

// TodayResponse is the payload for GET /horoscope/today.
type TodayResponse struct {
	ZodiacSign zodiac.Sign `json:"zodiacSign"`
	Date       string      `json:"date"` // YYYY-MM-DD, UTC
	Horoscope  string      `json:"horoscope"`
}

// HistoryEntry is one past day's horoscope.
type HistoryEntry struct {
	Date      string `json:"date"`
	Horoscope string `json:"horoscope"`
}

// HistoryResponse is the payload for GET /horoscope/history.
type HistoryResponse struct {
	ZodiacSign zodiac.Sign    `json:"zodiacSign"`
	History    []HistoryEntry `json:"history"`
}
