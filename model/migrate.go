package model

import "gorm.io/gorm"

var Tables = []interface{}{
	&Project{},
	&Sale{},
	&Bid{},
	&Balance{},
	&Treasury{},
	&Holding{},
	&Approval{},
	&Erc20Balance{},
	&Erc20Allowance{},
	&PayableToken{},
	&Config{},
	&Event{},
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Tables...)
}

func DropTable(db *gorm.DB) error {
	return db.Migrator().DropTable(Tables...)
}
