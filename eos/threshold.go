package eos

// MinValidTemperature 求出使 field > 0 对所有密度行同时成立的最低温度。
//
// 算法：对每个密度行，从低温向高温找第一个正值的温度下标；
// 行内没有正值时取最后一个下标 NT-1 做保守上界。
// 结果取所有行下标的最大值，再映射回温度值 —— 只要还有某个密度
// 在该温度附近不满足条件，整体阈值就会被抬高。
//
// 整个网格没有任何正值、或 ND == 0 时返回 nil（未定义）。
// 纯函数，同样的输入重复调用结果相同。
func MinValidTemperature(field [][]float64, temps []float64) *float64 {
	if len(field) == 0 || len(temps) == 0 {
		return nil
	}
	anyPositive := false
	maxIdx := 0
	for _, row := range field {
		first := len(temps) - 1
		for t := 0; t < len(temps) && t < len(row); t++ {
			if row[t] > 0 {
				first = t
				anyPositive = true
				break
			}
		}
		if first > maxIdx {
			maxIdx = first
		}
	}
	if !anyPositive {
		return nil
	}
	v := temps[maxIdx]
	return &v
}
