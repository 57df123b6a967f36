package eos

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

const validEps = 1e-10 // 小于该值的坐标点视为占位零

// Load 读取外部解析器导出的数据集 json 文件。
// 二进制 SESAME 文件的解析不在本程序内，这里只消费解析结果。
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("eos: read dataset: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("eos: decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	// 坐标轴的有效段必须严格递增，渲染和转换都依赖这一点。
	// 上游解析器常在轴前部留占位零（<= 1e-10），这些点不参与检查，
	// 渲染端的有效窗口会把它们滤掉。
	for name, axis := range map[string][]float64{"dens": ds.Dens, "idens": ds.Idens, "temps": ds.Temps} {
		prev := validEps
		for i, x := range axis {
			if x <= validEps {
				continue
			}
			if x <= prev {
				return nil, fmt.Errorf("%w: %s axis not strictly increasing at %d", ErrShapeMismatch, name, i)
			}
			prev = x
		}
	}

	// 有效点过少通常意味着上游解析出了问题，只告警不拒绝
	if countAbove(ds.Dens, validEps) <= 5 || countAbove(ds.Temps, validEps) <= 5 {
		log.Warnf("dataset %d: fewer than 6 valid grid points on an axis", ds.MaterialID)
	}

	log.WithFields(log.Fields{
		"material_id": ds.MaterialID,
		"nd":          ds.ND(),
		"nt":          ds.NT(),
		"types":       ds.Available(),
	}).Info("dataset loaded")

	for _, v := range ds.Available() {
		q, err := ds.Quality(v)
		if err != nil {
			continue
		}
		if q.PresTotal > 0 {
			log.Infof("%s pressure: %d/%d negative (%.1f%%)",
				v, q.PresNegative, q.PresTotal, float64(q.PresNegative)/float64(q.PresTotal)*100)
		}
		if q.EintTotal > 0 {
			log.Infof("%s internal energy: %d/%d negative (%.1f%%)",
				v, q.EintNegative, q.EintTotal, float64(q.EintNegative)/float64(q.EintTotal)*100)
		}
	}
	return &ds, nil
}

func countAbove(axis []float64, eps float64) int {
	n := 0
	for _, x := range axis {
		if x > eps {
			n++
		}
	}
	return n
}
