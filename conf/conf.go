package conf

import (
	"log"
	"os"
	"strconv"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/joho/godotenv"

	"market/common/types"
	"market/common/utils"
)

// default allocation
var (
	ChainId       int64 = 51888
	HexKey              = "7b2546a5d4e658d079c6b2755c6d7495edd01a686fddae010830e9c93b23e398"
	ServerAddr          = ":3000"
	MysqlDsn            = "root:123456@tcp(127.0.0.1:3306)/market"
	ResetDB             = false
	MarketAddr          = "0x00000000000000000000000000000000004d6b74" //marketplace identity, bound into voucher signatures
	OwnerAddr           = ""                                           //admin address, defaults to the signer address
	Royality      int64 = 2                                            //marketplace royalty percentage at initialization
	AllowSelfSign       = false                                        //accept vouchers signed by the tokenizing account itself
)

// globally available object instantiated from config
var (
	PrivateKey *secp256k1.PrivateKey //Relayer signing key
	Signer     types.Address         //Address of the relayer signing key
	Owner      types.Address         //Marketplace admin address
	Market     types.Address         //Marketplace identity address
)

func init() {
	// set log printout to stdout instead of stderr
	log.SetOutput(os.Stdout)

	// read configuration to override default value
	setConf()

	var err error
	PrivateKey, err = utils.HexToECDSA(HexKey)
	if err != nil {
		panic(err)
	}
	Signer = utils.PubkeyToAddress(PrivateKey.PubKey())
	if OwnerAddr == "" {
		Owner = Signer
	} else {
		Owner, err = utils.ParseAddress(OwnerAddr)
		if err != nil {
			panic(err)
		}
	}
	Market, err = utils.ParseAddress(MarketAddr)
	if err != nil {
		panic(err)
	}
	if Royality < 0 || Royality > 100 {
		panic("conf.Royality out of [0,100]")
	}
}

func setConf() {
	err := godotenv.Load("market.env")
	if err != nil {
		log.Println("Failed to load environment variables from .env file,", err)
	}

	// Parse the basic configuration of the server
	if chainId := os.Getenv("CHAIN_ID"); chainId != "" {
		ChainId, err = strconv.ParseInt(chainId, 0, 64)
		if err != nil {
			panic(err)
		}
	}
	if hexKey := os.Getenv("HEX_KEY"); hexKey != "" {
		HexKey = hexKey
	}
	if serverAddr := os.Getenv("SERVER_ADDR"); serverAddr != "" {
		ServerAddr = serverAddr
	}
	if mysqlDsn := os.Getenv("MYSQL_DSN"); mysqlDsn != "" {
		MysqlDsn = mysqlDsn
	}
	if resetDB := os.Getenv("RESET_DB"); resetDB != "" {
		ResetDB = resetDB == "true"
	}
	if marketAddr := os.Getenv("MARKET_ADDR"); marketAddr != "" {
		MarketAddr = marketAddr
	}
	if ownerAddr := os.Getenv("OWNER_ADDR"); ownerAddr != "" {
		OwnerAddr = ownerAddr
	}
	if royality := os.Getenv("ROYALITY"); royality != "" {
		Royality, err = strconv.ParseInt(royality, 0, 64)
		if err != nil {
			panic(err)
		}
	}
	if selfSign := os.Getenv("ALLOW_SELF_SIGN"); selfSign != "" {
		AllowSelfSign = selfSign == "true"
	}
}
