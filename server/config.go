package server

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

var srvCfg Config

type Config struct {
	Addr   string
	OutDir string // 转换结果输出目录
}

func init() {
	file, err := ini.Load("conf/config.ini")
	if err != nil {
		file, err = ini.Load("../conf/config.ini")
	}
	if err != nil {
		log.Debug("server config not found, using defaults: ", err)
		file = ini.Empty()
	}
	srvCfg = Config{
		Addr:   file.Section("server").Key("Addr").MustString(":9000"),
		OutDir: file.Section("server").Key("OutDir").MustString("./output"),
	}
}

// Addr 返回配置的监听地址
func Addr() string {
	return srvCfg.Addr
}
