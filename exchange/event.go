package exchange

import (
	"gorm.io/gorm"

	"market/model"
)

// appendEvent writes one structured event row inside the transaction of the
// state change it records
func appendEvent(t *gorm.DB, e *model.Event) error {
	if e.Timestamp == 0 {
		e.Timestamp = Now()
	}
	if e.Amount == "" {
		e.Amount = "0"
	}
	return t.Create(e).Error
}
