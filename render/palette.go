package render

import "image/color"

// 仿 matplotlib nipy_spectral 的控制点：黑-紫-蓝-青-绿-黄-红-浅灰。
// 色相跨度大，跨多个数量级时仍有足够对比度。
type stop struct {
	pos     float64
	r, g, b float64
}

type Palette struct {
	stops []stop
}

func Spectral() *Palette {
	return &Palette{stops: []stop{
		{0.00, 0.0000, 0.0000, 0.0000},
		{0.05, 0.4667, 0.0000, 0.5333},
		{0.10, 0.5333, 0.0000, 0.6000},
		{0.15, 0.0000, 0.0000, 0.6667},
		{0.20, 0.0000, 0.0000, 0.8667},
		{0.25, 0.0000, 0.4667, 0.8667},
		{0.30, 0.0000, 0.6000, 0.8667},
		{0.35, 0.0000, 0.6667, 0.6667},
		{0.40, 0.0000, 0.6667, 0.5333},
		{0.45, 0.0000, 0.6000, 0.0000},
		{0.50, 0.0000, 0.7333, 0.0000},
		{0.55, 0.0000, 0.8667, 0.0000},
		{0.60, 0.0000, 1.0000, 0.0000},
		{0.65, 0.7333, 1.0000, 0.0000},
		{0.70, 0.9333, 0.9333, 0.0000},
		{0.75, 1.0000, 0.8000, 0.0000},
		{0.80, 1.0000, 0.6000, 0.0000},
		{0.85, 1.0000, 0.0000, 0.0000},
		{0.90, 0.8667, 0.0000, 0.0000},
		{0.95, 0.8000, 0.0000, 0.0000},
		{1.00, 0.8000, 0.8000, 0.8000},
	}}
}

// At 返回归一化位置 t∈[0,1] 处的颜色，段内线性插值
func (p *Palette) At(t float64) color.Color {
	if t <= 0 {
		return toColor(p.stops[0])
	}
	if t >= 1 {
		return toColor(p.stops[len(p.stops)-1])
	}
	for i := 1; i < len(p.stops); i++ {
		if t <= p.stops[i].pos {
			a, b := p.stops[i-1], p.stops[i]
			f := (t - a.pos) / (b.pos - a.pos)
			return color.NRGBA{
				R: uint8((a.r + (b.r-a.r)*f) * 255),
				G: uint8((a.g + (b.g-a.g)*f) * 255),
				B: uint8((a.b + (b.b-a.b)*f) * 255),
				A: 255,
			}
		}
	}
	return toColor(p.stops[len(p.stops)-1])
}

// Bands 把色带离散成 n 档，对应 n 个等值层级
func (p *Palette) Bands(n int) []color.Color {
	if n < 2 {
		n = 2
	}
	out := make([]color.Color, n)
	for k := 0; k < n; k++ {
		out[k] = p.At(float64(k) / float64(n-1))
	}
	return out
}

func toColor(s stop) color.Color {
	return color.NRGBA{R: uint8(s.r * 255), G: uint8(s.g * 255), B: uint8(s.b * 255), A: 255}
}
