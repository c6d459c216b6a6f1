package exchange

import (
	"errors"

	"gorm.io/gorm"

	"market/common/types"
	"market/model"
)

// ErrRes error return of the HTTP surface
type ErrRes struct {
	ErrStr string `json:"err_str"` //error string
}

// ProjectsRes project paging return parameters
type ProjectsRes struct {
	Total    int64           `json:"total"` //total number of registered projects
	Projects []model.Project `json:"projects"`
}

// FetchProjects pages registered projects in reverse tokenize order,
// optionally filtered by creator
func FetchProjects(creator string, page, size int) (res ProjectsRes, err error) {
	db := DB.Model(&model.Project{})
	if creator != "" {
		db = db.Where("creator=?", creator)
	}
	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("timestamp DESC").Offset((page - 1) * size).Limit(size).Find(&res.Projects).Error
	return
}

// SalesRes sale paging return parameters
type SalesRes struct {
	Total int64        `json:"total"` //total number of matching sales
	Sales []model.Sale `json:"sales"`
}

// FetchSales pages sale records, optionally filtered by seller, token and
// status
func FetchSales(seller, tokenId string, status int, page, size int) (res SalesRes, err error) {
	db := DB.Model(&model.Sale{})
	if seller != "" {
		db = db.Where("seller=?", seller)
	}
	if tokenId != "" {
		db = db.Where("token_id=?", tokenId)
	}
	if status != 0 {
		db = db.Where("status=?", status)
	}
	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("timestamp DESC").Offset((page - 1) * size).Limit(size).Find(&res.Sales).Error
	return
}

// GetSale sale record by sell id
func GetSale(sellId types.Hash) (model.Sale, error) {
	var sale model.Sale
	err := DB.Where("sell_id=?", sellId).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sale, ErrSaleNotFound
	}
	return sale, err
}

// EventsRes event paging return parameters
type EventsRes struct {
	Total  int64         `json:"total"` //total number of matching events
	Events []model.Event `json:"events"`
}

// FetchEvents pages the event stream in insertion order so an indexer can
// replay state, optionally filtered by type, token and account
func FetchEvents(eventType, tokenId, account string, page, size int) (res EventsRes, err error) {
	db := DB.Model(&model.Event{})
	if eventType != "" {
		db = db.Where("type=?", eventType)
	}
	if tokenId != "" {
		db = db.Where("token_id=?", tokenId)
	}
	if account != "" {
		db = db.Where("`from`=? OR `to`=?", account, account)
	}
	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("id ASC").Offset((page - 1) * size).Limit(size).Find(&res.Events).Error
	return
}

// HoldingsRes holding paging return parameters
type HoldingsRes struct {
	Total    int64           `json:"total"` //total number of holdings of the owner
	Holdings []model.Holding `json:"holdings"`
}

// FetchHoldings pages the project token units held by an owner
func FetchHoldings(owner string, page, size int) (res HoldingsRes, err error) {
	db := DB.Model(&model.Holding{}).Where("owner=? AND amount>0", owner)
	err = db.Count(&res.Total).Error
	if err != nil {
		return
	}
	err = db.Order("token_id DESC").Offset((page - 1) * size).Limit(size).Find(&res.Holdings).Error
	return
}
