package eos

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/leafzhao/sesame-eos-gui/model"
)

var (
	// 数据集中没有任何可用的 EoS 类型
	ErrNoVariantAvailable = errors.New("eos: no variant available")
	// 当前操作需要的字段缺失
	ErrIncompleteDataset = errors.New("eos: incomplete dataset")
	// 网格形状不满足 ND x NT 约束
	ErrShapeMismatch = errors.New("eos: grid shape mismatch")
)

// EoS 类型，对应 SESAME 数据里的不同物理贡献
type Variant string

const (
	VariantIonCC Variant = "ioncc" // 离子 + 芯修正
	VariantEle   Variant = "ele"   // 电子
	VariantIon   Variant = "ion"   // 离子
	VariantTotal Variant = "total" // 总量
	VariantCC    Variant = "cc"    // 芯修正
)

// 物理量类型
type FieldKind string

const (
	FieldPressure FieldKind = "pressure" // 压强 GPa
	FieldEnergy   FieldKind = "energy"   // 比内能 erg/g
)

// 单个 EoS 类型的二维数据表，形状均为 [ND][NT]
type Table struct {
	Pres [][]float64 `json:"pres"` // 压强 GPa
	Eint [][]float64 `json:"eint"` // 比内能 erg/g
}

// Dataset 是外部解析器交付的只读数据集。
// 三条坐标轴被所有 EoS 类型共享：Dens/Idens 长度 ND，Temps 长度 NT。
// Idens 是 SESAME 原生的离子数密度字段，转换时必须直接透传，
// 绝不允许用 Dens / (abar * amu) 重新推导。
type Dataset struct {
	MaterialID int     `json:"material_id"`
	Abar       float64 `json:"abar"`
	Zmax       float64 `json:"zmax"`
	Rho0       float64 `json:"rho0"`
	Bulkmod    float64 `json:"bulkmod"`

	Dens  []float64 `json:"dens"`  // 质量密度 g/cm³
	Idens []float64 `json:"idens"` // 离子数密度 atoms/cm³
	Temps []float64 `json:"temps"` // 温度 eV

	Tables map[Variant]*Table `json:"tables"`
}

func (d *Dataset) ND() int {
	return len(d.Dens)
}

func (d *Dataset) NT() int {
	return len(d.Temps)
}

// Validate 校验加载后的数据集是否满足网格不变量
func (d *Dataset) Validate() error {
	nd, nt := d.ND(), d.NT()
	if nd == 0 || nt == 0 {
		return fmt.Errorf("%w: empty density or temperature axis", ErrIncompleteDataset)
	}
	if len(d.Idens) != nd {
		return fmt.Errorf("%w: idens length %d, want %d", ErrShapeMismatch, len(d.Idens), nd)
	}
	for v, tab := range d.Tables {
		if tab == nil {
			continue
		}
		for kind, grid := range map[FieldKind][][]float64{FieldPressure: tab.Pres, FieldEnergy: tab.Eint} {
			if grid == nil {
				continue
			}
			if len(grid) != nd {
				return fmt.Errorf("%w: %s %s has %d density rows, want %d", ErrShapeMismatch, v, kind, len(grid), nd)
			}
			for i := range grid {
				if len(grid[i]) != nt {
					return fmt.Errorf("%w: %s %s row %d has %d temps, want %d", ErrShapeMismatch, v, kind, i, len(grid[i]), nt)
				}
			}
		}
	}
	return nil
}

// Available 返回实际存在数据的 EoS 类型，按固定优先级排序
func (d *Dataset) Available() []Variant {
	var out []Variant
	for _, v := range priority {
		tab, ok := d.Tables[v]
		if ok && tab != nil && (len(tab.Pres) > 0 || len(tab.Eint) > 0) {
			out = append(out, v)
		}
	}
	return out
}

// Field 取出指定类型、指定物理量的二维网格
func (d *Dataset) Field(v Variant, kind FieldKind) ([][]float64, error) {
	tab, ok := d.Tables[v]
	if !ok || tab == nil {
		return nil, fmt.Errorf("%w: no %s table", ErrIncompleteDataset, v)
	}
	var grid [][]float64
	switch kind {
	case FieldPressure:
		grid = tab.Pres
	case FieldEnergy:
		grid = tab.Eint
	default:
		return nil, fmt.Errorf("%w: unknown field kind %q", ErrIncompleteDataset, kind)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: %s has no %s data", ErrIncompleteDataset, v, kind)
	}
	return grid, nil
}

// MaterialInfo 汇总材料的基本信息
func (d *Dataset) MaterialInfo() model.MaterialInfo {
	types := d.Available()
	names := make([]string, len(types))
	for i, v := range types {
		names[i] = string(v)
	}
	return model.MaterialInfo{
		MaterialID:     d.MaterialID,
		Abar:           d.Abar,
		Zmax:           d.Zmax,
		Rho0:           d.Rho0,
		Bulkmod:        d.Bulkmod,
		AvailableTypes: names,
	}
}

// QualitySummary 统计某个类型的负值/零值数量，用于数据质量评估
type QualitySummary struct {
	PresNegative int
	PresZero     int
	PresTotal    int
	EintNegative int
	EintTotal    int
}

func (d *Dataset) Quality(v Variant) (QualitySummary, error) {
	tab, ok := d.Tables[v]
	if !ok || tab == nil {
		return QualitySummary{}, fmt.Errorf("%w: no %s table", ErrIncompleteDataset, v)
	}
	var q QualitySummary
	for i := range tab.Pres {
		for j := range tab.Pres[i] {
			q.PresTotal++
			if tab.Pres[i][j] < 0 {
				q.PresNegative++
			} else if tab.Pres[i][j] == 0 {
				q.PresZero++
			}
		}
	}
	for i := range tab.Eint {
		for j := range tab.Eint[i] {
			q.EintTotal++
			if tab.Eint[i][j] < 0 {
				q.EintNegative++
			}
		}
	}
	return q, nil
}

// SuggestConvertParams 根据材料信息推荐一组转换参数
func (d *Dataset) SuggestConvertParams() model.SuggestedParams {
	s := model.SuggestedParams{
		Znum:    "1,6", // 聚苯乙烯类有机材料的默认组合
		Xfracs:  "0.5,0.5",
		Tabnum:  strconv.Itoa(d.MaterialID),
		OutName: fmt.Sprintf("material_%d", d.MaterialID),
	}
	switch {
	case d.Zmax > 0 && d.Zmax < 2: // 氢类
		s.Znum, s.Xfracs = "1", "1.0"
	case d.Zmax >= 4 && d.Zmax < 10: // 中等元素
		s.Znum, s.Xfracs = "6", "1.0"
	}
	if len(d.Temps) > 0 {
		s.Tmin = strconv.FormatFloat(d.Temps[0], 'e', 2, 64)
	}
	return s
}
