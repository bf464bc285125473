package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"thermotube/calculator"
	"thermotube/model"
	"thermotube/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	confPath := flag.String("conf", "conf/config.ini", "config file")
	flag.Parse()

	file, err := ini.Load(*confPath)
	if err != nil {
		log.WithError(err).Warn("配置文件读取错误，使用缺省配置")
		file = ini.Empty()
	}
	level, err := log.ParseLevel(file.Section("log").Key("Level").MustString("info"))
	if err != nil {
		log.WithError(err).Warn("unknown log level")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	cfg := calculator.LoadConfig(file)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("bad tube config")
	}

	addr := file.Section("server").Key("Addr").MustString(":9000")
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(addr, upgrader, server.Settings{
		Tube:    cfg,
		Dt:      file.Section("simulation").Key("Dt").MustFloat64(model.DefaultDt),
		Workers: file.Section("server").Key("Workers").MustInt(4),
		Window:  file.Section("simulation").Key("Window").MustInt(1000),
	})
	if err := s.Serve(); err != nil {
		log.WithError(err).Fatal("ListenAndServe")
	}
}
