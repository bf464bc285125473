package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermotube/calculator"
	"thermotube/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	s := NewServer(":0", websocket.Upgrader{}, Settings{
		Tube:    calculator.DefaultConfig(),
		Workers: 2,
		Window:  100,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestHandleSimulateGet(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/simular")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, map[string]bool{"test": true}, got)
}

func TestHandleSimulatePost(t *testing.T) {
	ts := newTestServer(t)
	resp, body := post(t, ts.URL+"/api/simular", `{"temperaturas": [20, 20, 20], "dt": 5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got model.SimulationResp
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, model.SimulationResp{
		Dt:               5,
		Points:           3,
		Time:             []float64{0, 5, 10},
		Input:            []float64{20, 20, 20},
		Output:           []float64{20, 20, 20},
		FinalTemperature: 20,
	}, got)
}

func TestHandleSimulateDefaultDt(t *testing.T) {
	ts := newTestServer(t)
	for _, body := range []string{`{"temperaturas": [20, 21]}`, `{"temperaturas": [20, 21], "dt": null}`} {
		resp, data := post(t, ts.URL+"/api/simular", body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.SimulationResp
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, model.DefaultDt, got.Dt)
		assert.Equal(t, []float64{0, model.DefaultDt}, got.Time)
	}
}

func TestHandleSimulateBadRequest(t *testing.T) {
	tcs := map[string]string{
		"not json":          `temperaturas`,
		"missing array":     `{"dt": 5}`,
		"not an array":      `{"temperaturas": "20,21"}`,
		"empty array":       `{"temperaturas": []}`,
		"zero dt":           `{"temperaturas": [20], "dt": 0}`,
		"negative dt":       `{"temperaturas": [20], "dt": -5}`,
		"non numeric entry": `{"temperaturas": [20, "x"]}`,
		"huge dt":           `{"temperaturas": [20], "dt": 1.5e8}`,
	}
	ts := newTestServer(t)
	for name, body := range tcs {
		t.Run(name, func(t *testing.T) {
			resp, data := post(t, ts.URL+"/api/simular", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var got model.ErrorResp
			require.NoError(t, json.Unmarshal(data, &got))
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestHandleSimulateMethod(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/simular", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleSimulateCORS(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/simular", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:4200")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHandleBatch(t *testing.T) {
	ts := newTestServer(t)
	resp, body := post(t, ts.URL+"/api/simular/batch", `{"jobs": [
		{"temperaturas": [20, 20, 20], "dt": 5},
		{"temperaturas": [30, 40]},
		{"temperaturas": [1], "dt": 0.5}
	]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got model.BatchResp
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Results, 3)
	assert.Equal(t, []float64{20, 20, 20}, got.Results[0].Output)
	assert.Equal(t, []float64{30, 40}, got.Results[1].Input)
	assert.Equal(t, model.DefaultDt, got.Results[1].Dt)
	assert.Equal(t, 1, got.Results[2].Points)
	assert.Equal(t, 1.0, got.Results[2].FinalTemperature)
}

func TestHandleBatchBadJob(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := post(t, ts.URL+"/api/simular/batch", `{"jobs": [{"temperaturas": [20]}, {"temperaturas": []}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, ts.URL+"/api/simular/batch", `{"jobs": [{"temperaturas": [20], "dt": -1}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
