package render

// 网格坐标系下的一条等值线段，端点是 (密度下标, 温度下标) 的小数位置
type segment struct {
	x1, y1, x2, y2 float64
}

type point struct {
	x, y float64
	ok   bool
}

// zeroSegments 用 marching squares 在 field == 0 处取等值线。
// 内侧判定为 value > 0，和正值覆盖层用同一谓词，边界不会错位。
// 全正或全非正的网格没有交线，返回空。
func zeroSegments(field [][]float64) []segment {
	nd := len(field)
	if nd < 2 {
		return nil
	}
	nt := len(field[0])
	if nt < 2 {
		return nil
	}
	var segs []segment
	for i := 0; i < nd-1; i++ {
		for j := 0; j < nt-1; j++ {
			v00 := field[i][j]     // (i, j)
			v10 := field[i+1][j]   // (i+1, j)
			v11 := field[i+1][j+1] // (i+1, j+1)
			v01 := field[i][j+1]   // (i, j+1)

			bottom := crossing(v00, v10, float64(i), float64(j), 1, 0)
			right := crossing(v10, v11, float64(i+1), float64(j), 0, 1)
			top := crossing(v01, v11, float64(i), float64(j+1), 1, 0)
			left := crossing(v00, v01, float64(i), float64(j), 0, 1)

			pts := []point{bottom, right, top, left}
			n := 0
			for _, p := range pts {
				if p.ok {
					n++
				}
			}
			switch n {
			case 2:
				var a, b point
				for _, p := range pts {
					if !p.ok {
						continue
					}
					if !a.ok {
						a = p
					} else {
						b = p
					}
				}
				segs = append(segs, segment{a.x, a.y, b.x, b.y})
			case 4:
				// 鞍点：用格心均值决定对角连接方向
				center := (v00 + v10 + v01 + v11) / 4
				if (center > 0) == (v00 > 0) {
					segs = append(segs,
						segment{bottom.x, bottom.y, right.x, right.y},
						segment{top.x, top.y, left.x, left.y})
				} else {
					segs = append(segs,
						segment{bottom.x, bottom.y, left.x, left.y},
						segment{top.x, top.y, right.x, right.y})
				}
			}
		}
	}
	return segs
}

// crossing 求一条格边上的零值交点。va 在 (x0,y0)，vb 在 (x0+dx, y0+dy)。
func crossing(va, vb, x0, y0, dx, dy float64) point {
	if (va > 0) == (vb > 0) {
		return point{}
	}
	f := va / (va - vb)
	return point{x: x0 + dx*f, y: y0 + dy*f, ok: true}
}
