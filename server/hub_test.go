package server

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leafzhao/sesame-eos-gui/model"
)

func writeTestDataset(t *testing.T) string {
	t.Helper()
	raw := `{
		"material_id": 7592,
		"abar": 6.51,
		"zmax": 3.5,
		"rho0": 1.044,
		"bulkmod": 1.0e10,
		"dens": [0.1, 1.0],
		"idens": [9.25e21, 9.25e22],
		"temps": [0.025, 1.0, 100.0],
		"tables": {
			"total": {
				"pres": [[-1.0, 2.0, 3.0], [-0.5, 1.0, 4.0]],
				"eint": [[1e9, 2e9, 3e9], [1e9, 2e9, 3e9]]
			},
			"ion": {
				"pres": [[0.1, 0.2, 0.3], [0.1, 0.2, 0.3]],
				"eint": [[1e8, 2e8, 3e8], [1e8, 2e8, 3e8]]
			},
			"ele": {
				"pres": [[0.4, 0.5, 0.6], [0.4, 0.5, 0.6]],
				"eint": [[4e8, 5e8, 6e8], [4e8, 5e8, 6e8]]
			}
		}
	}`
	path := filepath.Join(t.TempDir(), "ds.json")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadedHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	req, _ := json.Marshal(model.LoadReqData{Path: writeTestDataset(t)})
	reply, err := h.loadReply(string(req))
	if err != nil {
		t.Fatal(err)
	}
	if reply.Type != "loaded" {
		t.Fatalf("reply type = %q", reply.Type)
	}
	return h
}

func TestLoadReply(t *testing.T) {
	h := loadedHub(t)
	if h.ds == nil || h.ds.MaterialID != 7592 {
		t.Fatal("dataset not attached to hub")
	}
}

func TestRenderRequiresDataset(t *testing.T) {
	h := NewHub()
	if _, err := h.renderReply(`{}`); err == nil {
		t.Error("render without dataset should fail")
	}
	if _, err := h.convertReply(`{}`); err == nil {
		t.Error("convert without dataset should fail")
	}
}

func TestRenderReplyDefaultVariant(t *testing.T) {
	h := loadedHub(t)
	reply, err := h.renderReply(`{}`)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Type != "rendered" {
		t.Fatalf("reply type = %q", reply.Type)
	}
	var result model.RenderResult
	if err := json.Unmarshal([]byte(reply.Content), &result); err != nil {
		t.Fatal(err)
	}
	// 数据集里没有 ioncc，默认应落到 ele
	if result.EosType != "ele" {
		t.Errorf("default eos type = %q, want ele", result.EosType)
	}
	img, err := base64.StdEncoding.DecodeString(result.Image)
	if err != nil {
		t.Fatal(err)
	}
	// PNG magic
	if len(img) < 8 || img[1] != 'P' || img[2] != 'N' || img[3] != 'G' {
		t.Error("image is not a PNG")
	}
}

func TestRenderReplyRejectsUnknownType(t *testing.T) {
	h := loadedHub(t)
	if _, err := h.renderReply(`{"eos_type":"bogus"}`); err == nil {
		t.Error("unknown eos type should fail")
	}
	if _, err := h.renderReply(`{"field":"entropy"}`); err == nil {
		t.Error("unknown field should fail")
	}
}

func TestConvertReply(t *testing.T) {
	h := loadedHub(t)
	srvCfg.OutDir = t.TempDir()

	req, _ := json.Marshal(model.ConvertReqData{
		Znum:   []int{1, 6},
		Xfracs: []float64{0.5, 0.5},
	})
	reply, err := h.convertReply(string(req))
	if err != nil {
		t.Fatal(err)
	}
	if reply.Type != "converted" {
		t.Fatalf("reply type = %q", reply.Type)
	}
	var result model.ConvertResult
	if err := json.Unmarshal([]byte(reply.Content), &result); err != nil {
		t.Fatal(err)
	}
	if filepath.Base(result.OutputFile) != "material_7592_converted.cn4" {
		t.Errorf("output file = %q", result.OutputFile)
	}
	info, err := os.Stat(result.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != result.SizeBytes || result.SizeBytes == 0 {
		t.Errorf("size = %d, stat = %d", result.SizeBytes, info.Size())
	}
}

// 连接关闭后两个处理协程必须退出，不能留下空转的循环
func TestHubHandlersStopOnClose(t *testing.T) {
	h := NewHub()
	reqStopped := make(chan struct{})
	respStopped := make(chan struct{})
	go func() {
		h.handleRequest()
		close(reqStopped)
	}()
	go func() {
		h.handleResponse()
		close(respStopped)
	}()

	close(h.done)
	for name, ch := range map[string]chan struct{}{"request": reqStopped, "response": respStopped} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("%s handler still running after hub close", name)
		}
	}
}

func TestConvertReplyBadFractions(t *testing.T) {
	h := loadedHub(t)
	req, _ := json.Marshal(model.ConvertReqData{
		Znum:   []int{1, 6},
		Xfracs: []float64{0.5, 0.6},
	})
	if _, err := h.convertReply(string(req)); err == nil {
		t.Error("fractions not summing to 1 should fail")
	}
}
