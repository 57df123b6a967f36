package eos

// 类型优先级，从高到低。ioncc 数据物理上最完整，优先使用。
// 顺序是领域约定，不要改动。
var priority = []Variant{VariantIonCC, VariantEle, VariantIon, VariantTotal, VariantCC}

// SelectDefault 在实际存在的类型里选出默认类型：
// 按优先级顺序线性扫描，返回第一个命中的。
func SelectDefault(available []Variant) (Variant, error) {
	for _, want := range priority {
		for _, have := range available {
			if have == want {
				return want, nil
			}
		}
	}
	return "", ErrNoVariantAvailable
}

// ParseVariant 把前端传来的类型名转成 Variant
func ParseVariant(s string) (Variant, bool) {
	for _, v := range priority {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}
