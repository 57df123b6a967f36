package render

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

var cfg Config

type Config struct {
	Width  int
	Height int
	// 正值覆盖层的对数层级数，固定默认 80
	Levels int
	// 色条刻度数，固定默认 12
	ColorbarTicks int
	FontSize      float64
}

func init() {
	file, err := ini.Load("conf/config.ini")
	if err != nil {
		file, err = ini.Load("../conf/config.ini")
	}
	if err != nil {
		// 测试或独立使用时没有配置文件，全部用默认值
		log.Debug("render config not found, using defaults: ", err)
		file = ini.Empty()
	}
	loadCfg(file)
}

func loadCfg(file *ini.File) {
	cfg = Config{
		Width:         file.Section("render").Key("Width").MustInt(1200),
		Height:        file.Section("render").Key("Height").MustInt(900),
		Levels:        file.Section("render").Key("Levels").MustInt(80),
		ColorbarTicks: file.Section("render").Key("ColorbarTicks").MustInt(12),
		FontSize:      file.Section("render").Key("FontSize").MustFloat64(14),
	}
}
