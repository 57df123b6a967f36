package render

import "math"

// drawColorbar 在绘图区右侧画正值覆盖层的色条。
// 刻度沿对数范围分布，标签用真正的 10^x 指数形式而不是 1e+08。
func (f *Figure) drawColorbar(pal *Palette, vmin, vmax float64, label string) {
	lmin, lmax := math.Log10(vmin), math.Log10(vmax)
	if lmax-lmin < 1e-12 {
		lmin, lmax = lmin-0.5, lmax+0.5
	}

	x := f.right + 36
	w := 26.0
	levels := cfg.Levels
	bandH := (f.bottom - f.top) / float64(levels)
	for k := 0; k < levels; k++ {
		f.ctx.SetColor(pal.At(float64(k) / float64(levels-1)))
		y := f.bottom - float64(k+1)*bandH
		f.ctx.DrawRectangle(x, y-0.5, w, bandH+1)
		f.ctx.Fill()
	}
	f.ctx.SetRGB(0, 0, 0)
	f.ctx.SetLineWidth(1)
	f.ctx.DrawRectangle(x, f.top, w, f.bottom-f.top)
	f.ctx.Stroke()

	for _, e := range logTicks(lmin, lmax, cfg.ColorbarTicks) {
		frac := (float64(e) - lmin) / (lmax - lmin)
		y := f.bottom - frac*(f.bottom-f.top)
		f.ctx.DrawLine(x+w, y, x+w+5, y)
		f.ctx.Stroke()
		f.drawPow10(x+w+26, y+5, e, cfg.FontSize*0.75)
	}

	// 色条标题竖排在刻度右侧
	cx := x + w + 78
	cy := (f.top + f.bottom) / 2
	f.ctx.SetFont(face(cfg.FontSize))
	f.ctx.Push()
	f.ctx.RotateAbout(math.Pi/2, cx, cy)
	f.ctx.DrawStringAnchored(label, cx, cy, 0.5, 0.5)
	f.ctx.Pop()
}

// logTicks 在 [lmin, lmax] 内取十进位刻度，数量不超过 maxTicks。
// 数量超限时按整数倍步长抽稀，和 LogLocator 的取法一致。
func logTicks(lmin, lmax float64, maxTicks int) []int {
	if maxTicks < 2 {
		maxTicks = 2
	}
	elo := int(math.Ceil(lmin - 1e-9))
	ehi := int(math.Floor(lmax + 1e-9))
	if ehi < elo {
		return []int{int(math.Round((lmin + lmax) / 2))}
	}
	stride := 1
	for (ehi-elo)/stride+1 > maxTicks {
		stride++
	}
	start := elo
	if rem := ((elo % stride) + stride) % stride; rem != 0 {
		start = elo + (stride - rem)
	}
	var out []int
	for e := start; e <= ehi; e += stride {
		out = append(out, e)
	}
	if len(out) == 0 {
		out = append(out, elo)
	}
	return out
}
