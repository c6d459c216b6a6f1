package exchange

import (
	"math/big"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"market/conf"
	"market/common/types"
	"market/log"
	"market/model"
)

// DB marketplace state store, every externally callable operation runs inside
// one transaction on it so each call is atomic relative to all others
var DB *gorm.DB

// Now current time source of the engine, seconds since epoch. Replaceable so
// tests can drive deadlines and auction ends.
var Now = func() uint64 { return uint64(time.Now().Unix()) }

// Init opens the production database from configuration and syncs the table
// structure
func Init() {
	err := Open(mysql.Open(conf.MysqlDsn + "?charset=utf8mb4&parseTime=True&loc=Local"))
	if err != nil {
		panic(err)
	}
}

// Open attaches the engine to the given database, optionally resetting it,
// and migrates the tables
func Open(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return err
	}
	if conf.ResetDB {
		if err = model.DropTable(db); err != nil {
			return err
		}
	}
	if err = model.Migrate(db); err != nil {
		return err
	}
	log.Infof("Table structure synchronized, reset: %v", conf.ResetDB)
	DB = db
	return nil
}

// addDec decimal string plus big number
func addDec(a types.BigInt, b *big.Int) types.BigInt {
	return types.BigInt(new(big.Int).Add(a.T(), b).String())
}

// subDec decimal string minus big number, ok is false when the result would
// go negative
func subDec(a types.BigInt, b *big.Int) (types.BigInt, bool) {
	r := new(big.Int).Sub(a.T(), b)
	if r.Sign() < 0 {
		return "", false
	}
	return types.BigInt(r.String()), true
}
