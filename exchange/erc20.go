package exchange

import (
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"

	"market/common/types"
	"market/common/utils"
	"market/model"
)

// maxUint256 approvals at this value are unlimited and never decremented
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// erc20Credit adds amount to the owner's balance of token
func erc20Credit(t *gorm.DB, token, owner types.Address, amount *big.Int) error {
	var b model.Erc20Balance
	err := t.Where("token=? AND owner=?", token, owner).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t.Create(&model.Erc20Balance{Token: token, Owner: owner, Amount: utils.BigToDec(amount)}).Error
	}
	if err != nil {
		return err
	}
	return t.Model(&model.Erc20Balance{}).Where("token=? AND owner=?", token, owner).
		Update("amount", addDec(b.Amount, amount)).Error
}

// erc20Debit removes amount from the owner's balance of token
func erc20Debit(t *gorm.DB, token, owner types.Address, amount *big.Int) error {
	var b model.Erc20Balance
	err := t.Where("token=? AND owner=?", token, owner).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s has no balance of %s", ErrInsufficientBalance, owner, token)
	}
	if err != nil {
		return err
	}
	left, ok := subDec(b.Amount, amount)
	if !ok {
		return fmt.Errorf("%w: %s holds %s of %s, needs %s", ErrInsufficientBalance, owner, b.Amount, token, amount)
	}
	return t.Model(&model.Erc20Balance{}).Where("token=? AND owner=?", token, owner).
		Update("amount", left).Error
}

// erc20Transfer moves amount of token between owners inside the transaction
func erc20Transfer(t *gorm.DB, token, from, to types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if err := erc20Debit(t, token, from, amount); err != nil {
		return err
	}
	return erc20Credit(t, token, to, amount)
}

// erc20TransferFrom moves amount of token from owner to recipient on behalf
// of spender, consuming allowance unless it is unlimited
func erc20TransferFrom(t *gorm.DB, token, owner, spender, to types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	var a model.Erc20Allowance
	err := t.Where("token=? AND owner=? AND spender=?", token, owner, spender).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s did not approve %s", ErrInsufficientAllowance, owner, spender)
	}
	if err != nil {
		return err
	}
	if a.Amount.T().Cmp(maxUint256) < 0 {
		left, ok := subDec(a.Amount, amount)
		if !ok {
			return fmt.Errorf("%w: approved %s, needs %s", ErrInsufficientAllowance, a.Amount, amount)
		}
		err = t.Model(&model.Erc20Allowance{}).Where("token=? AND owner=? AND spender=?", token, owner, spender).
			Update("amount", left).Error
		if err != nil {
			return err
		}
	}
	return erc20Transfer(t, token, owner, to, amount)
}

// Erc20Mint issues amount of token to an account, admin faucet of the
// in-process payment token substrate
func Erc20Mint(token, to types.Address, amount *big.Int) error {
	return DB.Transaction(func(t *gorm.DB) error {
		return erc20Credit(t, token, to, amount)
	})
}

// Erc20Approve lets spender move up to amount of the caller's token
func Erc20Approve(caller, token, spender types.Address, amount *big.Int) error {
	return DB.Transaction(func(t *gorm.DB) error {
		var a model.Erc20Allowance
		err := t.Where("token=? AND owner=? AND spender=?", token, caller, spender).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return t.Create(&model.Erc20Allowance{Token: token, Owner: caller, Spender: spender, Amount: utils.BigToDec(amount)}).Error
		}
		if err != nil {
			return err
		}
		return t.Model(&model.Erc20Allowance{}).Where("token=? AND owner=? AND spender=?", token, caller, spender).
			Update("amount", utils.BigToDec(amount)).Error
	})
}

// Erc20BalanceOf current balance, missing rows count as zero
func Erc20BalanceOf(token, owner types.Address) (types.BigInt, error) {
	var b model.Erc20Balance
	err := DB.Where("token=? AND owner=?", token, owner).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return b.Amount, nil
}
