package progression

import "math"

// RequiredXP 返回升到指定等级所需的增量经验值。
// 曲线为 100 * 1.2^(level-1)，向下取整。
func RequiredXP(level int) int {
	return int(math.Floor(100 * math.Pow(1.2, float64(level-1))))
}

// CalculateLevel 根据累计经验值计算当前等级。
// 等级由增量需求的前缀和决定：累计值越过前N级需求之和即为N级。
func CalculateLevel(totalXP int) int {
	level := 1
	requiredXP := 0
	for requiredXP <= totalXP {
		level++
		requiredXP += RequiredXP(level)
	}
	return level - 1
}
