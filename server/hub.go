package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/leafzhao/sesame-eos-gui/eos"
	"github.com/leafzhao/sesame-eos-gui/ionmix"
	"github.com/leafzhao/sesame-eos-gui/model"
	"github.com/leafzhao/sesame-eos-gui/render"
)

// Hub 维护一个前端连接，分发加载/渲染/转换请求并推送结果
type Hub struct {
	ds   *eos.Dataset
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response
	loaded    chan model.Msg
	rendered  chan model.Msg
	converted chan model.Msg
	failed    chan model.Msg
	// 连接关闭时 close，两个处理协程随之退出
	done chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		msg:       make(chan model.Msg, 10),
		loaded:    make(chan model.Msg, 10),
		rendered:  make(chan model.Msg, 10),
		converted: make(chan model.Msg, 10),
		failed:    make(chan model.Msg, 10),
		done:      make(chan struct{}),
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.msg:
			switch msg.Type {
			case "load":
				reply, err := h.loadReply(msg.Content)
				if err != nil {
					h.failed <- failMsg("load", err)
					break
				}
				h.loaded <- reply
			case "render":
				reply, err := h.renderReply(msg.Content)
				if err != nil {
					h.failed <- failMsg("render", err)
					break
				}
				h.rendered <- reply
			case "convert":
				reply, err := h.convertReply(msg.Content)
				if err != nil {
					h.failed <- failMsg("convert", err)
					break
				}
				h.converted <- reply
			default:
				log.Warn("no such type: ", msg.Type)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case <-h.done:
			return
		case reply := <-h.loaded:
			h.write(reply)
		case reply := <-h.rendered:
			h.write(reply)
		case reply := <-h.converted:
			h.write(reply)
		case reply := <-h.failed:
			h.write(reply)
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (h *Hub) write(reply model.Msg) {
	if err := h.conn.WriteJSON(&reply); err != nil {
		log.Warn("write response: ", err)
	}
}

func failMsg(op string, err error) model.Msg {
	log.Warnf("%s failed: %v", op, err)
	return model.Msg{Type: "error", Content: fmt.Sprintf("%s: %v", op, err)}
}

// loadReply 加载外部解析器导出的数据集，回传材料信息和转换参数建议
func (h *Hub) loadReply(content string) (model.Msg, error) {
	var req model.LoadReqData
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return model.Msg{}, fmt.Errorf("bad load request: %w", err)
	}
	ds, err := eos.Load(req.Path)
	if err != nil {
		return model.Msg{}, err
	}
	h.ds = ds

	payload := struct {
		Info      model.MaterialInfo    `json:"info"`
		Suggested model.SuggestedParams `json:"suggested"`
	}{ds.MaterialInfo(), ds.SuggestConvertParams()}
	data, err := json.Marshal(&payload)
	if err != nil {
		return model.Msg{}, err
	}
	return model.Msg{Type: "loaded", Content: string(data)}, nil
}

// renderReply 渲染一张带符号场分布图并编码为 base64 PNG
func (h *Hub) renderReply(content string) (model.Msg, error) {
	if h.ds == nil {
		return model.Msg{}, fmt.Errorf("no dataset loaded")
	}
	var req model.RenderReqData
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return model.Msg{}, fmt.Errorf("bad render request: %w", err)
	}

	var v eos.Variant
	if req.EosType == "" {
		def, err := eos.SelectDefault(h.ds.Available())
		if err != nil {
			return model.Msg{}, err
		}
		v = def
	} else {
		parsed, ok := eos.ParseVariant(req.EosType)
		if !ok {
			return model.Msg{}, fmt.Errorf("unknown eos type %q", req.EosType)
		}
		v = parsed
	}

	kind := eos.FieldPressure
	switch req.Field {
	case "", "pressure":
	case "energy":
		kind = eos.FieldEnergy
	default:
		return model.Msg{}, fmt.Errorf("unknown field %q", req.Field)
	}

	out, err := render.Render(h.ds, v, kind)
	if err != nil {
		return model.Msg{}, err
	}
	var buf bytes.Buffer
	if err := out.EncodePNG(&buf); err != nil {
		return model.Msg{}, err
	}

	result := model.RenderResult{
		EosType:       string(out.EosType),
		Field:         string(out.Field),
		ThresholdTemp: out.ThresholdTemp,
		Warnings:      out.Warnings,
		Image:         base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
	data, err := json.Marshal(&result)
	if err != nil {
		return model.Msg{}, err
	}
	return model.Msg{Type: "rendered", Content: string(data)}, nil
}

// convertReply 执行 IONMIX 转换并写盘
func (h *Hub) convertReply(content string) (model.Msg, error) {
	if h.ds == nil {
		return model.Msg{}, fmt.Errorf("no dataset loaded")
	}
	var req model.ConvertReqData
	if err := json.Unmarshal([]byte(content), &req); err != nil {
		return model.Msg{}, fmt.Errorf("bad convert request: %w", err)
	}

	grid, err := ionmix.Convert(h.ds, ionmix.Request{
		Znum:   req.Znum,
		Xfracs: req.Xfracs,
		Tmin:   req.Tmin,
	})
	if err != nil {
		return model.Msg{}, err
	}

	name := req.OutName
	if name == "" {
		name = fmt.Sprintf("material_%d_converted", h.ds.MaterialID)
	}
	if err := os.MkdirAll(srvCfg.OutDir, 0755); err != nil {
		return model.Msg{}, err
	}
	path := filepath.Join(srvCfg.OutDir, name+".cn4")
	size, err := grid.WriteFile(path)
	if err != nil {
		return model.Msg{}, err
	}

	data, err := json.Marshal(&model.ConvertResult{OutputFile: path, SizeBytes: size})
	if err != nil {
		return model.Msg{}, err
	}
	return model.Msg{Type: "converted", Content: string(data)}, nil
}
