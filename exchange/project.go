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

// TokenizeProject registers a brand new project under a signed voucher and
// mints the first ownership unit to the voucher's beneficiary. Fails with
// ProjectExist when the derived token id is already registered, any voucher.
func TokenizeProject(v *utils.TokenizeVoucher) (types.BigInt, error) {
	tokenId := types.BigInt(utils.ProjectId(v.ProjectUrl).String())
	err := DB.Transaction(func(t *gorm.DB) error {
		if err := verifyVoucher(t, v); err != nil {
			return err
		}
		var existing model.Project
		err := t.Where("token_id=?", tokenId).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: %s", ErrProjectExist, v.ProjectUrl)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		project := &model.Project{
			TokenId:               tokenId,
			ProjectUrl:            v.ProjectUrl,
			Creator:               v.To,
			PaymentToken:          v.PaymentToken,
			BasePrice:             v.BasePrice,
			PopularityFactorPrice: v.PopularityFactorPrice,
			Royality:              v.Royality,
			TokenCount:            1,
			TreasuryTotalAmount:   "0",
			LastMintPrice:         "0",
			Timestamp:             Now(),
		}
		if err = t.Create(project).Error; err != nil {
			return err
		}
		if err = mintUnits(t, tokenId, v.To, 1); err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:       model.EventProjectTokenize,
			TokenId:    tokenId,
			To:         v.To,
			Token:      v.PaymentToken,
			Amount:     v.BasePrice,
			Royality:   v.Royality,
			ProjectUrl: v.ProjectUrl,
		})
	})
	if err != nil {
		return "", err
	}
	return tokenId, nil
}

// MintPrice next mint price of a project, a non-decreasing curve over the
// number of units already minted
func MintPrice(p *model.Project) *big.Int {
	count := new(big.Int).SetUint64(p.TokenCount)
	price := new(big.Int).Mul(p.PopularityFactorPrice.T(), count)
	return price.Add(price, p.BasePrice.T())
}

// MintAdditional mints one more unit of a registered project to the buyer at
// the current curve price. The price is pulled from the buyer in the
// project's payment token, credited to the creator's withdrawable balance and
// recorded in the project treasury accrual.
func MintAdditional(tokenId types.BigInt, buyer types.Address) error {
	return DB.Transaction(func(t *gorm.DB) error {
		if _, err := getConfig(t); err != nil {
			return err
		}
		var project model.Project
		err := t.Where("token_id=?", tokenId).First(&project).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: token %s", ErrProjectNotFound, tokenId)
		}
		if err != nil {
			return err
		}
		price := MintPrice(&project)
		// ledger first, value movement last
		err = t.Model(&model.Project{}).Where("token_id=?", tokenId).Updates(map[string]interface{}{
			"token_count":           project.TokenCount + 1,
			"last_mint_price":       utils.BigToDec(price),
			"treasury_total_amount": addDec(project.TreasuryTotalAmount, price),
		}).Error
		if err != nil {
			return err
		}
		if err = mintUnits(t, tokenId, buyer, 1); err != nil {
			return err
		}
		if err = creditBalance(t, project.Creator, project.PaymentToken, price); err != nil {
			return err
		}
		if err = erc20TransferFrom(t, project.PaymentToken, buyer, conf.Market, conf.Market, price); err != nil {
			return err
		}
		return appendEvent(t, &model.Event{
			Type:     model.EventTokenMint,
			TokenId:  tokenId,
			To:       buyer,
			Token:    project.PaymentToken,
			Amount:   utils.BigToDec(price),
			Quantity: 1,
		})
	})
}

// GetProject project state by token id. Unregistered projects return a zero
// valued payment token as a sentinel, not an error, callers must check it.
func GetProject(tokenId types.BigInt) (model.Project, error) {
	var project model.Project
	err := DB.Where("token_id=?", tokenId).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Project{TokenId: tokenId, PaymentToken: types.ZeroAddress}, nil
	}
	return project, err
}
