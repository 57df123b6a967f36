package ionmix

import (
	"errors"
	"fmt"
	"math"

	"github.com/leafzhao/sesame-eos-gui/eos"
)

var (
	// 转换参数不合法，在碰任何数组之前就拒绝
	ErrInvalidRequest = errors.New("ionmix: invalid request")
	// 数据集缺少转换必需的字段
	ErrIncompleteDataset = errors.New("ionmix: incomplete dataset")
	// 温度过滤把所有行都滤掉了，绝不输出一张空表
	ErrEmptyGridAfterFilter = errors.New("ionmix: empty grid after temperature filter")
)

const fracSumTol = 1e-6

// Request 对应 opac 转换的命令行参数
type Request struct {
	Znum   []int     // 原子序数
	Xfracs []float64 // 元素质量分数，和为 1
	Tmin   *float64  // eV；为空时取数据集最低温度
}

func (r Request) Validate() error {
	if len(r.Znum) == 0 {
		return fmt.Errorf("%w: atomic numbers required", ErrInvalidRequest)
	}
	if len(r.Znum) != len(r.Xfracs) {
		return fmt.Errorf("%w: %d atomic numbers but %d fractions",
			ErrInvalidRequest, len(r.Znum), len(r.Xfracs))
	}
	sum := 0.0
	for i, z := range r.Znum {
		if z < 1 {
			return fmt.Errorf("%w: atomic number %d must be >= 1", ErrInvalidRequest, z)
		}
		x := r.Xfracs[i]
		// 上界同样放宽到求和容差，单元素 1.0000005 这类输入要放行
		if x < 0 || x > 1+fracSumTol {
			return fmt.Errorf("%w: fraction %v outside [0,1]", ErrInvalidRequest, x)
		}
		sum += x
	}
	if math.Abs(sum-1) > fracSumTol {
		return fmt.Errorf("%w: fractions sum to %v, want 1.0", ErrInvalidRequest, sum)
	}
	if r.Tmin != nil && *r.Tmin < 0 {
		return fmt.Errorf("%w: negative Tmin %v", ErrInvalidRequest, *r.Tmin)
	}
	return nil
}

// Grid 按 IONMIX 目标格式的字段布局组织数据
type Grid struct {
	Znum    []int
	Xfracs  []float64
	NumDens []float64 // atoms/cm³，SESAME 原生离子数密度逐值透传
	Temps   []float64 // eV，已做最低温度过滤

	// 可选表，形状 [len(NumDens)][len(Temps)]，缺失的由写出端补零
	Zbar [][]float64
	Pion [][]float64
	Pele [][]float64
	Eion [][]float64
	Eele [][]float64
}

// Convert 把数据集重排成 IONMIX 布局。
//
// 密度轴必须直接使用数据集原生的离子数密度字段。
// 用 质量密度 / (abar × 1.66054e-24) 重新推导在数学上看似等价，
// 但与参考转换器会差出约 0.015%，下游辐射输运工具不接受这种偏差。
// 转换是原子的：要么返回完整的 Grid，要么返回错误。
func Convert(ds *eos.Dataset, req Request) (*Grid, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(ds.Idens) == 0 || len(ds.Temps) == 0 {
		return nil, fmt.Errorf("%w: missing ion density or temperature axis", ErrIncompleteDataset)
	}

	tmin := ds.Temps[0]
	if req.Tmin != nil {
		tmin = *req.Tmin
	}
	var keep []int
	for j, t := range ds.Temps {
		if t >= tmin {
			keep = append(keep, j)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("%w: Tmin=%v removes all %d temperatures",
			ErrEmptyGridAfterFilter, tmin, len(ds.Temps))
	}

	g := &Grid{
		Znum:    append([]int(nil), req.Znum...),
		Xfracs:  append([]float64(nil), req.Xfracs...),
		NumDens: append([]float64(nil), ds.Idens...),
		Temps:   make([]float64, len(keep)),
	}
	for k, j := range keep {
		g.Temps[k] = ds.Temps[j]
	}

	// 离子表和电子表分别来自 ion、ele 两个 EoS 类型
	if tab, ok := ds.Tables[eos.VariantIon]; ok && tab != nil {
		g.Pion = filterCols(tab.Pres, keep)
		g.Eion = filterCols(tab.Eint, keep)
	}
	if tab, ok := ds.Tables[eos.VariantEle]; ok && tab != nil {
		g.Pele = filterCols(tab.Pres, keep)
		g.Eele = filterCols(tab.Eint, keep)
	}
	return g, nil
}

func filterCols(grid [][]float64, keep []int) [][]float64 {
	if len(grid) == 0 {
		return nil
	}
	out := make([][]float64, len(grid))
	for i := range grid {
		row := make([]float64, len(keep))
		for k, j := range keep {
			row[k] = grid[i][j]
		}
		out[i] = row
	}
	return out
}
