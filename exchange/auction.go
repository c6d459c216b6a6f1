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

// PlaceBid escrows a bid on a running auction. Each accepted bid must
// strictly exceed the current highest (or meet the start price first), the
// displaced bidder is refunded into its withdrawable balance in the same
// transaction and never has to act itself.
func PlaceBid(bidder types.Address, sellId types.Hash, amount *big.Int) error {
	return DB.Transaction(func(t *gorm.DB) error {
		if _, err := getConfig(t); err != nil {
			return err
		}
		sale, err := activeSale(t, sellId)
		if err != nil {
			return err
		}
		if sale.Kind != types.KindAuction {
			return fmt.Errorf("%s is not an auction", sellId)
		}
		if Now() >= sale.EndTime {
			return fmt.Errorf("%w: %s closed at %d", ErrAuctionEnded, sellId, sale.EndTime)
		}
		prev, outbid, err := hasBid(t, sellId)
		if err != nil {
			return err
		}
		if outbid {
			if amount.Cmp(prev.Amount.T()) <= 0 {
				return fmt.Errorf("%w: highest is %s, offered %s", ErrBidTooLow, prev.Amount, amount)
			}
		} else if amount.Sign() <= 0 || amount.Cmp(sale.Price.T()) < 0 {
			return fmt.Errorf("%w: start price is %s, offered %s", ErrBidTooLow, sale.Price, amount)
		}

		// replace the highest bid, refund the displaced bidder, then escrow
		if outbid {
			err = t.Model(&model.Bid{}).Where("sell_id=?", sellId).Updates(map[string]interface{}{
				"bidder":    bidder,
				"amount":    utils.BigToDec(amount),
				"timestamp": Now(),
			}).Error
		} else {
			err = t.Create(&model.Bid{SellId: sellId, Bidder: bidder, Amount: utils.BigToDec(amount), Timestamp: Now()}).Error
		}
		if err != nil {
			return err
		}
		if outbid {
			if err = creditBalance(t, prev.Bidder, sale.PaymentToken, prev.Amount.T()); err != nil {
				return err
			}
		}
		if err = erc20TransferFrom(t, sale.PaymentToken, bidder, conf.Market, conf.Market, amount); err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:    model.EventBidPlaced,
			TokenId: sale.TokenId,
			SellId:  sellId,
			From:    bidder,
			Token:   sale.PaymentToken,
			Amount:  utils.BigToDec(amount),
		})
	})
}

// HighestBid current highest bid of an auction, ok is false when no bid has
// been placed yet
func HighestBid(sellId types.Hash) (model.Bid, bool, error) {
	var bid model.Bid
	err := DB.Where("sell_id=?", sellId).First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bid, false, nil
	}
	if err != nil {
		return bid, false, err
	}
	return bid, true, nil
}

// FinalizeAuction clears an ended auction, callable by anyone. With a bid the
// lot moves to the highest bidder and the escrowed amount settles to seller,
// creator and treasury. Without one the listing just closes as removed.
// Finalizing twice fails.
func FinalizeAuction(caller types.Address, sellId types.Hash) error {
	return DB.Transaction(func(t *gorm.DB) error {
		cfg, err := getConfig(t)
		if err != nil {
			return err
		}
		var sale model.Sale
		err = t.Where("sell_id=?", sellId).First(&sale).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrSaleNotFound, sellId)
		}
		if err != nil {
			return err
		}
		if sale.Kind != types.KindAuction {
			return fmt.Errorf("%s is not an auction", sellId)
		}
		if sale.Settled {
			return fmt.Errorf("%w: %s", ErrAuctionAlreadySettled, sellId)
		}
		if sale.Status != types.SaleActive {
			return fmt.Errorf("%w: %s is not active", ErrSaleNotFound, sellId)
		}
		if Now() < sale.EndTime {
			return fmt.Errorf("%w: %s runs until %d", ErrAuctionRunning, sellId, sale.EndTime)
		}
		bid, ok, err := hasBid(t, sellId)
		if err != nil {
			return err
		}
		if !ok {
			// nothing to clear, the lot stays with the seller
			err = t.Model(&model.Sale{}).Where("sell_id=?", sellId).
				Updates(map[string]interface{}{"status": types.SaleRemoved, "settled": true}).Error
			if err != nil {
				return err
			}
			return appendEvent(t, &model.Event{
				Type:    model.EventAuctionSettled,
				TokenId: sale.TokenId,
				SellId:  sellId,
				From:    sale.Seller,
			})
		}
		err = t.Model(&model.Sale{}).Where("sell_id=?", sellId).
			Updates(map[string]interface{}{"status": types.SaleSold, "settled": true, "quantity": 0}).Error
		if err != nil {
			return err
		}
		// the escrow is consumed here, a relisting under the recycled sell id
		// must not inherit the settled bid
		if err = t.Where("sell_id=?", sellId).Delete(&model.Bid{}).Error; err != nil {
			return err
		}
		if err = transferUnits(t, sale.TokenId, sale.Seller, bid.Bidder, sale.Quantity); err != nil {
			return err
		}
		// the winning amount is already in custody since the bid was escrowed
		if err = settle(t, cfg, sale.TokenId, sale.Seller, bid.Amount.T(), sale.PaymentToken); err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:     model.EventAuctionSettled,
			TokenId:  sale.TokenId,
			SellId:   sellId,
			From:     sale.Seller,
			To:       bid.Bidder,
			Token:    sale.PaymentToken,
			Amount:   bid.Amount,
			Quantity: sale.Quantity,
		})
	})
}
