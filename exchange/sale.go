package exchange

import (
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"

	"market/conf"
	"market/common/types"
	"market/common/utils"
	"market/model"
)

// createListing shared validation and storage of fixed price and auction
// listings. One active sale per (token, seller): the sell id is the primary
// key, a removed or sold record under the same id is recycled.
func createListing(t *gorm.DB, sale *model.Sale) error {
	if _, err := getConfig(t); err != nil {
		return err
	}
	if sale.Quantity == 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if ok, err := isPayable(t, sale.PaymentToken); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%w: %s", ErrTokenNotPayable, sale.PaymentToken)
	}
	held, err := holdingOf(t, sale.TokenId, sale.Seller)
	if err != nil {
		return err
	}
	if held < sale.Quantity {
		return fmt.Errorf("%w: %s holds %d units of token %s, lists %d", ErrRequireTokenOwner, sale.Seller, held, sale.TokenId, sale.Quantity)
	}
	if ok, err := isApprovedForAll(t, sale.Seller, conf.Market); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%w: marketplace is not an approved operator of %s", ErrRequireApproval, sale.Seller)
	}
	var existing model.Sale
	err = t.Where("sell_id=?", sale.SellId).First(&existing).Error
	if err == nil {
		if existing.Status == types.SaleActive {
			return fmt.Errorf("%w: %s", ErrSaleAlreadyExists, sale.SellId)
		}
		return t.Model(&model.Sale{}).Where("sell_id=?", sale.SellId).Updates(map[string]interface{}{
			"payment_token": sale.PaymentToken,
			"price":         sale.Price,
			"quantity":      sale.Quantity,
			"kind":          sale.Kind,
			"status":        types.SaleActive,
			"end_time":      sale.EndTime,
			"settled":       false,
			"timestamp":     sale.Timestamp,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return t.Create(sale).Error
}

// CreateSale lists quantity units of a token at a fixed unit price. Each
// purchase takes one unit, the listing stays active until quantity runs out.
func CreateSale(seller types.Address, tokenId types.BigInt, price *big.Int, paymentToken types.Address, quantity uint64) (types.Hash, error) {
	sellId := utils.SellId(tokenId.T(), seller)
	err := DB.Transaction(func(t *gorm.DB) error {
		sale := &model.Sale{
			SellId:       sellId,
			TokenId:      tokenId,
			Seller:       seller,
			PaymentToken: paymentToken,
			Price:        utils.BigToDec(price),
			Quantity:     quantity,
			Kind:         types.KindFixedPrice,
			Status:       types.SaleActive,
			Timestamp:    Now(),
		}
		if err := createListing(t, sale); err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:     model.EventSaleCreated,
			TokenId:  tokenId,
			SellId:   sellId,
			From:     seller,
			Token:    paymentToken,
			Amount:   utils.BigToDec(price),
			Quantity: quantity,
		})
	})
	if err != nil {
		return "", err
	}
	return sellId, nil
}

// CreateAuction lists quantity units of a token as one timed lot, the start
// price is the minimum first bid and the end time must lie in the future
func CreateAuction(seller types.Address, tokenId types.BigInt, startPrice *big.Int, endTime uint64, paymentToken types.Address, quantity uint64) (types.Hash, error) {
	sellId := utils.SellId(tokenId.T(), seller)
	err := DB.Transaction(func(t *gorm.DB) error {
		if endTime <= Now() {
			return fmt.Errorf("end time %d is not in the future", endTime)
		}
		sale := &model.Sale{
			SellId:       sellId,
			TokenId:      tokenId,
			Seller:       seller,
			PaymentToken: paymentToken,
			Price:        utils.BigToDec(startPrice),
			Quantity:     quantity,
			Kind:         types.KindAuction,
			Status:       types.SaleActive,
			EndTime:      endTime,
			Timestamp:    Now(),
		}
		if err := createListing(t, sale); err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:     model.EventSaleCreated,
			TokenId:  tokenId,
			SellId:   sellId,
			From:     seller,
			Token:    paymentToken,
			Amount:   utils.BigToDec(startPrice),
			Quantity: quantity,
		})
	})
	if err != nil {
		return "", err
	}
	return sellId, nil
}

// activeSale loads a sale and checks it is still open
func activeSale(t *gorm.DB, sellId types.Hash) (model.Sale, error) {
	var sale model.Sale
	err := t.Where("sell_id=?", sellId).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sale, fmt.Errorf("%w: %s", ErrSaleNotFound, sellId)
	}
	if err != nil {
		return sale, err
	}
	if sale.Status != types.SaleActive {
		return sale, fmt.Errorf("%w: %s is not active", ErrSaleNotFound, sellId)
	}
	return sale, nil
}

// hasBid whether an auction already holds an escrowed bid
func hasBid(t *gorm.DB, sellId types.Hash) (model.Bid, bool, error) {
	var bid model.Bid
	err := t.Where("sell_id=?", sellId).First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bid, false, nil
	}
	if err != nil {
		return bid, false, err
	}
	return bid, true, nil
}

// UpdateSale seller-only price update, refused once an auction holds a bid
func UpdateSale(caller types.Address, sellId types.Hash, price *big.Int) error {
	return DB.Transaction(func(t *gorm.DB) error {
		sale, err := activeSale(t, sellId)
		if err != nil {
			return err
		}
		if sale.Seller != caller {
			return fmt.Errorf("%w: %s", ErrNotSeller, caller)
		}
		if sale.Kind == types.KindAuction {
			if _, ok, err := hasBid(t, sellId); err != nil {
				return err
			} else if ok {
				return fmt.Errorf("%w: %s", ErrAuctionHasBid, sellId)
			}
		}
		err = t.Model(&model.Sale{}).Where("sell_id=?", sellId).
			Update("price", utils.BigToDec(price)).Error
		if err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:    model.EventSaleUpdated,
			TokenId: sale.TokenId,
			SellId:  sellId,
			From:    caller,
			Token:   sale.PaymentToken,
			Amount:  utils.BigToDec(price),
		})
	})
}

// RemoveSale seller-only delisting, refused once an auction holds a bid
func RemoveSale(caller types.Address, sellId types.Hash) error {
	return DB.Transaction(func(t *gorm.DB) error {
		sale, err := activeSale(t, sellId)
		if err != nil {
			return err
		}
		if sale.Seller != caller {
			return fmt.Errorf("%w: %s", ErrNotSeller, caller)
		}
		if sale.Kind == types.KindAuction {
			if _, ok, err := hasBid(t, sellId); err != nil {
				return err
			} else if ok {
				return fmt.Errorf("%w: %s", ErrAuctionHasBid, sellId)
			}
		}
		err = t.Model(&model.Sale{}).Where("sell_id=?", sellId).
			Update("status", types.SaleRemoved).Error
		if err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:    model.EventSaleRemoved,
			TokenId: sale.TokenId,
			SellId:  sellId,
			From:    caller,
		})
	})
}

// BuyNFT buys one unit off a fixed price listing. The buyer states the price
// it agreed to, a listing repriced above it fails instead of charging more.
func BuyNFT(buyer types.Address, sellId types.Hash, price *big.Int) error {
	return DB.Transaction(func(t *gorm.DB) error {
		cfg, err := getConfig(t)
		if err != nil {
			return err
		}
		sale, err := activeSale(t, sellId)
		if err != nil {
			return err
		}
		if sale.Kind != types.KindFixedPrice {
			return fmt.Errorf("%s is not a fixed price sale", sellId)
		}
		if price.Cmp(sale.Price.T()) < 0 {
			return fmt.Errorf("%w: asking %s, offered %s", ErrPriceNotMatched, sale.Price, price)
		}
		gross := sale.Price.T()
		// ledger updates before value movement
		update := map[string]interface{}{"quantity": sale.Quantity - 1}
		if sale.Quantity == 1 {
			update["status"] = types.SaleSold
		}
		if err = t.Model(&model.Sale{}).Where("sell_id=?", sellId).Updates(update).Error; err != nil {
			return err
		}
		if err = transferUnits(t, sale.TokenId, sale.Seller, buyer, 1); err != nil {
			return err
		}
		if err = erc20TransferFrom(t, sale.PaymentToken, buyer, conf.Market, conf.Market, gross); err != nil {
			return err
		}
		if err = settle(t, cfg, sale.TokenId, sale.Seller, gross, sale.PaymentToken); err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:     model.EventNFTBought,
			TokenId:  sale.TokenId,
			SellId:   sellId,
			From:     sale.Seller,
			To:       buyer,
			Token:    sale.PaymentToken,
			Amount:   sale.Price,
			Quantity: 1,
		})
	})
}
