package ionmix

import (
	"bufio"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Write 输出 IONMIX (.cn4) 文本格式。
// 头部是网格尺寸、原子序数和质量分数；正文把所有数组按固定顺序拼接，
// 每行 4 个数，%12.6E。缺失的可选表补零。
// 字段顺序和数值格式都必须与参考转换器逐字节一致，不要调整。
func (g *Grid) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%10d%10d\n", len(g.Temps), len(g.NumDens)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, " atomic #s of gases: "); err != nil {
		return err
	}
	for _, z := range g.Znum {
		if _, err := fmt.Fprintf(bw, "%10d", z); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, " relative fractions: "); err != nil {
		return err
	}
	for _, x := range g.Xfracs {
		if _, err := fmt.Fprintf(bw, "%10.2E", x); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}

	vals := g.flatten()
	for i, v := range vals {
		if _, err := fmt.Fprintf(bw, "%12.6E", v); err != nil {
			return err
		}
		if (i+1)%4 == 0 {
			if _, err := fmt.Fprintln(bw); err != nil {
				return err
			}
		}
	}
	if len(vals)%4 != 0 {
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// flatten 按参考实现的顺序拼接全部数组
func (g *Grid) flatten() []float64 {
	nd, nt := len(g.NumDens), len(g.Temps)
	out := make([]float64, 0, nd+nt+12*nd*nt)
	out = append(out, g.NumDens...)
	out = append(out, g.Temps...)

	appendTable := func(tab [][]float64) {
		if len(tab) == 0 {
			out = append(out, make([]float64, nd*nt)...)
			return
		}
		for i := range tab {
			out = append(out, tab[i]...)
		}
	}
	appendTable(g.Zbar) // 平均电离度
	appendTable(nil)    // dzbar/dT
	appendTable(g.Pion)
	appendTable(g.Pele)
	appendTable(nil) // dpion/dT
	appendTable(nil) // dpele/dT
	appendTable(g.Eion)
	appendTable(g.Eele)
	appendTable(nil) // cv_ion
	appendTable(nil) // cv_ele
	appendTable(nil) // deion/dn
	appendTable(nil) // deele/dn
	return out
}

// WriteFile 把转换结果写到磁盘并返回文件大小
func (g *Grid) WriteFile(path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("ionmix: create output: %w", err)
	}
	defer f.Close()
	if err := g.Write(f); err != nil {
		return 0, fmt.Errorf("ionmix: write output: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{"file": path, "bytes": st.Size()}).Info("ionmix file written")
	return st.Size(), nil
}
