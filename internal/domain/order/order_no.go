package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNo 生成展示用订单号
// 格式：ORD + 时间戳(秒) + 6位随机数，例如ORD1699248000123456
// 订单主键是UUID，订单号只用于展示与客服查询，唯一性由索引保证
func GenerateOrderNo() string {
	return fmt.Sprintf("ORD%d%06d", time.Now().Unix(), rand.Intn(1000000))
}
