package common

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// StableID 以語意字串產生穩定的識別碼，相同輸入必得相同結果
func StableID(prefix, seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return prefix + hex.EncodeToString(sum[:])[:10]
}

// RequestID 取得請求 ID：優先用中間件產生的，其次是請求標頭，沒有則產生新的
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return GenerateUUID()
}

// WriteError 寫入錯誤響應
func WriteError(c *gin.Context, err error) {
	ce := AsCustomError(err)
	c.JSON(ce.Status, ce.ToResponse(gin.Mode() == gin.DebugMode))
}
