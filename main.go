package main

import (
	"errors"

	"market/conf"
	"market/exchange"
	"market/log"
	"market/router"
)

// @title       project marketplace API
// @version     1.0
// @description NFT marketplace back-end interface, tokenizes projects under relayer-signed vouchers and runs fixed price sales, auctions, settlement and withdrawal
func main() {
	exchange.Init()
	// one-shot setup, a restart against an initialized store is a no-op
	err := exchange.Initialize(conf.Owner, conf.Signer, uint8(conf.Royality))
	if err != nil && !errors.Is(err, exchange.ErrAlreadyInitialized) {
		log.Fatal("Marketplace failed to initialize: ", err)
	}
	log.Infof("Marketplace owner: %s, relayer: %s", conf.Owner, conf.Signer)
	log.Infof("Server listening on %s", conf.ServerAddr)
	if err := router.Run(conf.ServerAddr); err != nil {
		log.Fatal("Server failed to run: ", err)
	}
}
