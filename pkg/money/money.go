// Package money 金额换算
//
// 系统内部一律以"分"(int64)存储金额，对外以货币单位(两位小数)展示。
// 涉及比率的计算(如税费)使用decimal，结果四舍五入到分。
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToDecimal 分 → 货币单位
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FromDecimal 货币单位 → 分（四舍五入）
func FromDecimal(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// FromFloat 货币单位(float) → 分
func FromFloat(f float64) int64 {
	return FromDecimal(decimal.NewFromFloat(f))
}

// Float 分 → float64，仅用于JSON输出
func Float(cents int64) float64 {
	return ToDecimal(cents).InexactFloat64()
}

// Format 格式化为两位小数字符串，例如 1250 → "12.50"
func Format(cents int64) string {
	return ToDecimal(cents).StringFixed(2)
}

// ApplyRate 按比率计算金额，例如税率0.10
func ApplyRate(cents int64, rate decimal.Decimal) int64 {
	return FromDecimal(ToDecimal(cents).Mul(rate).Round(2))
}
