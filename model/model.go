package model

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 加载请求
type LoadReqData struct {
	Path string `json:"path"` // 外部解析器导出的数据集 json 文件
}

// 渲染请求
type RenderReqData struct {
	EosType string `json:"eos_type"` // 为空时由服务端按优先级选默认类型
	Field   string `json:"field"`    // "pressure" / "energy"
}

// 转换请求
type ConvertReqData struct {
	Znum    []int     `json:"znum"`   // 原子序数
	Xfracs  []float64 `json:"xfracs"` // 元素质量分数，和为 1
	Tmin    *float64  `json:"tmin"`   // eV，为空时取数据集最低温度
	OutName string    `json:"out_name"`
}

// 渲染结果，连同 base64 图像一起推送给前端
type RenderResult struct {
	EosType       string   `json:"eos_type"`
	Field         string   `json:"field"`
	ThresholdTemp *float64 `json:"threshold_temp"` // eV，null 表示未定义
	Warnings      []string `json:"warnings,omitempty"`
	Image         string   `json:"image"` // PNG, base64
}

// 转换结果
type ConvertResult struct {
	OutputFile string `json:"output_file"`
	SizeBytes  int64  `json:"size_bytes"`
}

// 材料基本信息
type MaterialInfo struct {
	MaterialID     int      `json:"material_id"`
	Abar           float64  `json:"abar"`    // 平均原子质量 amu
	Zmax           float64  `json:"zmax"`    // 平均原子序数
	Rho0           float64  `json:"rho0"`    // 标准密度 g/cm³
	Bulkmod        float64  `json:"bulkmod"` // 体积模量
	AvailableTypes []string `json:"available_types"`
}

// 转换参数建议
type SuggestedParams struct {
	Znum    string `json:"znum"`
	Xfracs  string `json:"xfracs"`
	Tabnum  string `json:"tabnum"`
	Tmin    string `json:"tmin"`
	OutName string `json:"out_name"`
}
