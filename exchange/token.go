package exchange

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"market/common/types"
	"market/model"
)

// holdingOf project token units held by owner inside the transaction
func holdingOf(t *gorm.DB, tokenId types.BigInt, owner types.Address) (uint64, error) {
	var h model.Holding
	err := t.Where("token_id=? AND owner=?", tokenId, owner).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return h.Amount, nil
}

// mintUnits issues quantity project token units to an owner. A depleted
// holder keeps its row at amount 0, so only a truly missing row is created.
func mintUnits(t *gorm.DB, tokenId types.BigInt, to types.Address, quantity uint64) error {
	var h model.Holding
	err := t.Where("token_id=? AND owner=?", tokenId, to).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t.Create(&model.Holding{TokenId: tokenId, Owner: to, Amount: quantity}).Error
	}
	if err != nil {
		return err
	}
	return t.Model(&model.Holding{}).Where("token_id=? AND owner=?", tokenId, to).
		Update("amount", h.Amount+quantity).Error
}

// transferUnits moves quantity project token units between owners
func transferUnits(t *gorm.DB, tokenId types.BigInt, from, to types.Address, quantity uint64) error {
	held, err := holdingOf(t, tokenId, from)
	if err != nil {
		return err
	}
	if held < quantity {
		return fmt.Errorf("%w: %s holds %d units of token %s, needs %d", ErrRequireTokenOwner, from, held, tokenId, quantity)
	}
	err = t.Model(&model.Holding{}).Where("token_id=? AND owner=?", tokenId, from).
		Update("amount", held-quantity).Error
	if err != nil {
		return err
	}
	return mintUnits(t, tokenId, to, quantity)
}

// isApprovedForAll whether operator may move any of the owner's units
func isApprovedForAll(t *gorm.DB, owner, operator types.Address) (bool, error) {
	var a model.Approval
	err := t.Where("owner=? AND operator=?", owner, operator).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.Approved, nil
}

// SetApprovalForAll grants or revokes the operator over all of the caller's
// project token units. Listing a token requires approving the marketplace.
func SetApprovalForAll(caller, operator types.Address, approved bool) error {
	return DB.Transaction(func(t *gorm.DB) error {
		var a model.Approval
		err := t.Where("owner=? AND operator=?", caller, operator).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return t.Create(&model.Approval{Owner: caller, Operator: operator, Approved: approved}).Error
		}
		if err != nil {
			return err
		}
		return t.Model(&model.Approval{}).Where("owner=? AND operator=?", caller, operator).
			Update("approved", approved).Error
	})
}

// BalanceOf project token units held by owner
func BalanceOf(owner types.Address, tokenId types.BigInt) (uint64, error) {
	var held uint64
	err := DB.Transaction(func(t *gorm.DB) (err error) {
		held, err = holdingOf(t, tokenId, owner)
		return
	})
	return held, err
}
