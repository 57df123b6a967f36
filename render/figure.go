package render

import (
	"math"
	"strconv"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/goregular"
)

var fontSource *ggtext.FontSource

func init() {
	var err error
	fontSource, err = ggtext.NewFontSource(goregular.TTF)
	if err != nil {
		// 字体缺失不致命，图里只是没有文字
		log.Warn("font load failed, figures will have no text: ", err)
	}
}

func face(size float64) ggtext.Face {
	if fontSource == nil {
		return nil
	}
	return fontSource.Face(size)
}

// Figure 持有一次渲染的全部绘图状态。
// 每次 Render 新建一个，调用之间没有共享的画布或隐式"当前图"。
type Figure struct {
	ctx *gg.Context

	// 绘图区像素边界
	left, right, top, bottom float64

	// 双对数坐标范围 (log10)
	dlo, dhi, tlo, thi float64
}

func newFigure(w, h int, dens, temps []float64) *Figure {
	ctx := gg.NewContext(w, h)
	ctx.SetRGB(1, 1, 1)
	ctx.DrawRectangle(0, 0, float64(w), float64(h))
	ctx.Fill()

	f := &Figure{
		ctx:    ctx,
		left:   float64(w) * 0.10,
		right:  float64(w) * 0.76,
		top:    float64(h) * 0.08,
		bottom: float64(h) * 0.88,
		dlo:    math.Log10(dens[0]),
		dhi:    math.Log10(dens[len(dens)-1]),
		tlo:    math.Log10(temps[0]),
		thi:    math.Log10(temps[len(temps)-1]),
	}
	// 单点轴的退化范围，扩成一个十进位避免除零
	if f.dhi-f.dlo < 1e-12 {
		f.dlo, f.dhi = f.dlo-0.5, f.dhi+0.5
	}
	if f.thi-f.tlo < 1e-12 {
		f.tlo, f.thi = f.tlo-0.5, f.thi+0.5
	}
	return f
}

// x/y 把物理坐标映射到像素（双对数）
func (f *Figure) x(d float64) float64 {
	return f.left + (math.Log10(d)-f.dlo)/(f.dhi-f.dlo)*(f.right-f.left)
}

func (f *Figure) y(t float64) float64 {
	return f.bottom - (math.Log10(t)-f.tlo)/(f.thi-f.tlo)*(f.bottom-f.top)
}

// gridX / gridY 把小数网格下标映射到像素，格点间按对数空间内插
func (f *Figure) gridX(axis []float64, fi float64) float64 {
	i := int(fi)
	if i >= len(axis)-1 {
		return f.x(axis[len(axis)-1])
	}
	frac := fi - float64(i)
	return f.x(axis[i] * math.Pow(axis[i+1]/axis[i], frac))
}

func (f *Figure) gridY(axis []float64, fi float64) float64 {
	i := int(fi)
	if i >= len(axis)-1 {
		return f.y(axis[len(axis)-1])
	}
	frac := fi - float64(i)
	return f.y(axis[i] * math.Pow(axis[i+1]/axis[i], frac))
}

// cellEdgesX 返回第 i 个密度格子的左右像素边界。
// 格子边界取相邻格点的几何中点，首尾格子贴轴。
func (f *Figure) cellEdgesX(dens []float64, i int) (float64, float64) {
	lo := dens[i]
	if i > 0 {
		lo = math.Sqrt(dens[i-1] * dens[i])
	}
	hi := dens[i]
	if i < len(dens)-1 {
		hi = math.Sqrt(dens[i] * dens[i+1])
	}
	return f.x(lo), f.x(hi)
}

func (f *Figure) cellEdgesY(temps []float64, j int) (float64, float64) {
	lo := temps[j]
	if j > 0 {
		lo = math.Sqrt(temps[j-1] * temps[j])
	}
	hi := temps[j]
	if j < len(temps)-1 {
		hi = math.Sqrt(temps[j] * temps[j+1])
	}
	return f.y(lo), f.y(hi) // y 轴向下，lo 在下方
}

// drawPow10 以 10^exp 的指数形式画刻度标签，cx 为水平中心，cy 为基线
func (f *Figure) drawPow10(cx, cy float64, exp int, size float64) {
	base := "10"
	sup := strconv.Itoa(exp)
	f.ctx.SetFont(face(size))
	bw, _ := f.ctx.MeasureString(base)
	f.ctx.SetFont(face(size * 0.7))
	sw, _ := f.ctx.MeasureString(sup)
	x := cx - (bw+sw+1)/2
	f.ctx.SetFont(face(size))
	f.ctx.DrawString(base, x, cy)
	f.ctx.SetFont(face(size * 0.7))
	f.ctx.DrawString(sup, x+bw+1, cy-size*0.45)
}

// drawAxes 画边框、十进位刻度和标题
func (f *Figure) drawAxes(title string) {
	f.ctx.SetRGB(0, 0, 0)
	f.ctx.SetLineWidth(1)
	f.ctx.DrawRectangle(f.left, f.top, f.right-f.left, f.bottom-f.top)
	f.ctx.Stroke()

	for e := int(math.Ceil(f.dlo)); e <= int(math.Floor(f.dhi)); e++ {
		x := f.x(math.Pow(10, float64(e)))
		f.ctx.DrawLine(x, f.bottom, x, f.bottom+6)
		f.ctx.Stroke()
		f.drawPow10(x, f.bottom+26, e, cfg.FontSize*0.85)
	}
	for e := int(math.Ceil(f.tlo)); e <= int(math.Floor(f.thi)); e++ {
		y := f.y(math.Pow(10, float64(e)))
		f.ctx.DrawLine(f.left-6, y, f.left, y)
		f.ctx.Stroke()
		f.drawPow10(f.left-28, y+5, e, cfg.FontSize*0.85)
	}

	f.ctx.SetFont(face(cfg.FontSize))
	f.ctx.DrawStringAnchored("Density [g/cm³]", (f.left+f.right)/2, f.bottom+58, 0.5, 0.5)

	ly := (f.top + f.bottom) / 2
	lx := f.left - 66
	f.ctx.Push()
	f.ctx.RotateAbout(-math.Pi/2, lx, ly)
	f.ctx.DrawStringAnchored("Temperature [eV]", lx, ly, 0.5, 0.5)
	f.ctx.Pop()

	f.ctx.SetFont(face(cfg.FontSize * 1.15))
	f.ctx.DrawStringAnchored(title, (f.left+f.right)/2, f.top-24, 0.5, 0.5)
}
