package middleware

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"market/common/types"
	"market/common/utils"
	"market/log"
)

const callerKey = "caller"

// maximum age of a signed request in seconds
const sigWindow = 300

// Auth authenticates state changing calls. The caller signs the raw request
// body concatenated with the X-Sig-Time unix timestamp using the Ethereum
// personal message prefix and sends the signature in X-Signature. The
// recovered address becomes the caller identity of the operation.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sig := c.GetHeader("X-Signature")
		sigTime := c.GetHeader("X-Sig-Time")
		if sig == "" || sigTime == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err_str": "missing X-Signature or X-Sig-Time header"})
			return
		}
		ts, err := strconv.ParseInt(sigTime, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err_str": "illegal X-Sig-Time: " + sigTime})
			return
		}
		now := time.Now().Unix()
		if ts < now-sigWindow || ts > now+sigWindow {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err_str": "signature time outside the allowed window"})
			return
		}
		body, err := ioutil.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"err_str": err.Error()})
			return
		}
		c.Request.Body = ioutil.NopCloser(bytes.NewBuffer(body))
		caller, err := utils.RecoverPersonal(string(body)+sigTime, sig)
		if err != nil {
			log.Warnf("Signature recovery failed on %s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err_str": "signature recovery failed: " + err.Error()})
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// Caller authenticated caller address of the request, empty without Auth
func Caller(c *gin.Context) types.Address {
	v, ok := c.Get(callerKey)
	if !ok {
		return ""
	}
	return v.(types.Address)
}

// SignRequest produces the X-Signature value for a body and timestamp, used
// by clients and tests
func SignRequest(body []byte, sigTime string, hexKey string) (string, error) {
	key, err := utils.HexToECDSA(hexKey)
	if err != nil {
		return "", err
	}
	msg := string(body) + sigTime
	wrapped := "\x19Ethereum Signed Message:\n" + strconv.Itoa(len(msg)) + msg
	sig, err := utils.SignDigest(utils.Keccak256([]byte(wrapped)), key)
	if err != nil {
		return "", err
	}
	return utils.BytesToHex(sig), nil
}
