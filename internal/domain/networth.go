package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NetWorthSnapshot is a point-in-time net worth figure kept for trend tracking
type NetWorthSnapshot struct {
	RecordMeta
	Date        time.Time       `json:"date"`
	NetWorth    decimal.Decimal `json:"netWorth"`
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
}

func (s *NetWorthSnapshot) Kind() RecordKind { return KindNetWorthHistory }

func (s *NetWorthSnapshot) Validate() error {
	if s.Date.IsZero() {
		return ErrInvalidInput
	}
	return nil
}
