package render

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/leafzhao/sesame-eos-gui/eos"
)

// 渲染告警：字段里没有任何正值，跳过正值覆盖层和阈值标注
const WarnNoPositiveRegion = "NoPositiveRegion"

// Result 是渲染结果的结构化部分，随图像一起交给调用方
type Result struct {
	EosType       eos.Variant
	Field         eos.FieldKind
	ThresholdTemp *float64 // eV，nil 表示未定义
	Warnings      []string
}

// Rendered 把画好的图和结构化结果绑在一起
type Rendered struct {
	Result
	fig *Figure
}

func (r *Rendered) Image() image.Image {
	return r.fig.ctx.Image()
}

func (r *Rendered) EncodePNG(w io.Writer) error {
	return r.fig.ctx.EncodePNG(w)
}

// 字段的显示属性
type fieldSpec struct {
	scale         float64 // 原始值 -> 显示单位
	title         string
	barLabel      string
	thresholdText string
	// 阈值参考线颜色
	lineR, lineG, lineB float64
}

var fieldSpecs = map[eos.FieldKind]fieldSpec{
	eos.FieldPressure: {
		scale:         1, // 原始数据已经是 GPa
		title:         "Pressure Distribution",
		barLabel:      "Pressure [GPa] (log scale; gray = P <= 0)",
		thresholdText: "Min positive P temp = %.2e eV",
		lineR:         1, lineG: 1, lineB: 1,
	},
	eos.FieldEnergy: {
		scale:         1e-10, // erg/g -> MJ/kg
		title:         "Internal Energy Distribution",
		barLabel:      "Internal Energy [MJ/kg] (log scale; gray = U <= 0)",
		thresholdText: "Min positive T = %.2e eV",
		lineR:         1, lineG: 0.85, lineB: 0,
	},
}

type drawPass struct {
	name string
	fn   func()
}

// Render 画出带符号场的三层合成图：
//  1. 灰色背景层，无条件铺满绘图区，代表 value <= 0 的非物理区域；
//  2. 正值覆盖层，只画 value > 0 的格点，80 个几何层级的对数色标；
//  3. value == 0 的虚线等值线。
//
// 之后叠加阈值温度参考线和标签。没有任何正值时跳过第 2 层和标注，
// 结果里报 NoPositiveRegion，渲染本身不失败。
func Render(ds *eos.Dataset, v eos.Variant, kind eos.FieldKind) (*Rendered, error) {
	raw, err := ds.Field(v, kind)
	if err != nil {
		return nil, err
	}
	spec := fieldSpecs[kind]

	dens, temps, grid := validWindow(ds.Dens, ds.Temps, raw)
	if len(dens) == 0 || len(temps) == 0 {
		return nil, fmt.Errorf("%w: no valid grid points to plot", eos.ErrIncompleteDataset)
	}

	// 显示单位换算；符号不变，阈值和等值线直接用换算后的场
	field := make([][]float64, len(grid))
	for i := range grid {
		field[i] = make([]float64, len(grid[i]))
		for j := range grid[i] {
			field[i][j] = grid[i][j] * spec.scale
		}
	}

	var pos []float64
	for i := range field {
		for j := range field[i] {
			if field[i][j] > 0 {
				pos = append(pos, field[i][j])
			}
		}
	}

	f := newFigure(cfg.Width, cfg.Height, dens, temps)
	for _, p := range composePasses(f, field, dens, temps, pos) {
		p.fn()
	}

	out := &Rendered{Result: Result{EosType: v, Field: kind}, fig: f}
	if len(pos) == 0 {
		out.Warnings = append(out.Warnings, WarnNoPositiveRegion)
	} else {
		out.ThresholdTemp = eos.MinValidTemperature(field, temps)
		if out.ThresholdTemp != nil {
			f.annotateThreshold(*out.ThresholdTemp, dens, temps, spec)
		}
		f.drawColorbar(Spectral(), floats.Min(pos), floats.Max(pos), spec.barLabel)
	}

	title := fmt.Sprintf("%s EoS %s", strings.ToUpper(string(v)), spec.title)
	f.drawAxes(title)
	return out, nil
}

// composePasses 把三个绘制层组织成固定顺序的列表。
// 背景层先画、等值线最后画，零值边界的无缝是顺序的性质，不依赖掩码。
// 没有正值时第 2 层是空操作，但层的顺序不变。
func composePasses(f *Figure, field [][]float64, dens, temps []float64, pos []float64) []drawPass {
	return []drawPass{
		{"background", func() {
			f.fillBackground()
		}},
		{"positive-overlay", func() {
			if len(pos) == 0 {
				return
			}
			f.drawPositiveOverlay(field, dens, temps, floats.Min(pos), floats.Max(pos))
		}},
		{"zero-contour", func() {
			f.drawZeroContour(field, dens, temps)
		}},
	}
}

// 背景层：整个绘图区铺一层浅灰，代表非物理或未定义区域。
// 不做条件填充，整块打底，零值交界处才不会出现接缝。
func (f *Figure) fillBackground() {
	f.ctx.SetRGB(0.83, 0.83, 0.83)
	f.ctx.DrawRectangle(f.left, f.top, f.right-f.left, f.bottom-f.top)
	f.ctx.Fill()
}

// 正值覆盖层：value <= 0 的格点一律不画，露出背景层。
// 层级间不做平滑，和背景的交界保持清晰。
func (f *Figure) drawPositiveOverlay(field [][]float64, dens, temps []float64, vmin, vmax float64) {
	lmin, lmax := math.Log10(vmin), math.Log10(vmax)
	if lmax-lmin < 1e-12 {
		lmin, lmax = lmin-0.5, lmax+0.5
	}
	levels := cfg.Levels
	bands := Spectral().Bands(levels)
	for i := range field {
		x0, x1 := f.cellEdgesX(dens, i)
		for j := range field[i] {
			v := field[i][j]
			if v <= 0 {
				continue
			}
			band := int((math.Log10(v) - lmin) / (lmax - lmin) * float64(levels))
			if band < 0 {
				band = 0
			}
			if band >= levels {
				band = levels - 1
			}
			y0, y1 := f.cellEdgesY(temps, j)
			f.ctx.SetColor(bands[band])
			// 多画半个像素，相邻格子之间不留缝
			f.ctx.DrawRectangle(x0-0.5, y1-0.5, x1-x0+1, y0-y1+1)
			f.ctx.Fill()
		}
	}
}

// 零值等值线：黑色虚线，最后绘制，压在所有填充层之上
func (f *Figure) drawZeroContour(field [][]float64, dens, temps []float64) {
	segs := zeroSegments(field)
	if len(segs) == 0 {
		return
	}
	f.ctx.SetRGBA(0, 0, 0, 0.8)
	f.ctx.SetLineWidth(1.5)
	f.ctx.SetDash(7, 4)
	for _, s := range segs {
		f.ctx.MoveTo(f.gridX(dens, s.x1), f.gridY(temps, s.y1))
		f.ctx.LineTo(f.gridX(dens, s.x2), f.gridY(temps, s.y2))
		f.ctx.Stroke()
	}
	f.ctx.ClearDash()
}

// 阈值标注：水平虚线参考线 + 文本标签。
// 标签位置按轴范围做几何平均偏移，数据范围再极端也落在图内
func (f *Figure) annotateThreshold(th float64, dens, temps []float64, spec fieldSpec) {
	y := f.y(th)
	f.ctx.SetRGBA(spec.lineR, spec.lineG, spec.lineB, 0.8)
	f.ctx.SetLineWidth(2)
	f.ctx.SetDash(8, 5)
	f.ctx.DrawLine(f.left, y, f.right, y)
	f.ctx.Stroke()
	f.ctx.ClearDash()

	dmin, dmax := dens[0], dens[len(dens)-1]
	tmax := temps[len(temps)-1]
	lx := f.x(dmin * math.Pow(dmax/dmin, 0.2))
	ly := f.y(th * math.Pow(tmax/th, 0.1))

	label := fmt.Sprintf(spec.thresholdText, th)
	f.ctx.SetFont(face(cfg.FontSize * 0.8))
	w, h := f.ctx.MeasureString(label)
	pad := 5.0
	f.ctx.SetRGBA(spec.lineR, spec.lineG, spec.lineB, 0.75)
	f.ctx.DrawRectangle(lx-pad, ly-h-pad, w+2*pad, h+2*pad)
	f.ctx.Fill()
	f.ctx.SetRGB(0, 0, 0)
	f.ctx.SetLineWidth(1)
	f.ctx.DrawRectangle(lx-pad, ly-h-pad, w+2*pad, h+2*pad)
	f.ctx.Stroke()
	f.ctx.DrawString(label, lx, ly)
}

// validWindow 过滤掉上游解析残留的占位零坐标，只保留有效格点
func validWindow(dens, temps []float64, grid [][]float64) ([]float64, []float64, [][]float64) {
	var di, ti []int
	for i, d := range dens {
		if d > 1e-10 {
			di = append(di, i)
		}
	}
	for j, t := range temps {
		if t > 1e-10 {
			ti = append(ti, j)
		}
	}
	fd := make([]float64, len(di))
	for k, i := range di {
		fd[k] = dens[i]
	}
	ft := make([]float64, len(ti))
	for k, j := range ti {
		ft[k] = temps[j]
	}
	fg := make([][]float64, len(di))
	for k, i := range di {
		row := make([]float64, len(ti))
		for l, j := range ti {
			row[l] = grid[i][j]
		}
		fg[k] = row
	}
	return fd, ft, fg
}
