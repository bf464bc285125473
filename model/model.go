package model

// 缺省采样间隔，单位 s
const DefaultDt = 5.0

// 管道物性参数，websocket env 消息的内容
type Env struct {
	Length   float64 `json:"length"`   // 管长 m
	Radius   float64 `json:"radius"`   // 管半径 m
	Velocity float64 `json:"velocity"` // 流速 m/s
	Sections int     `json:"sections"` // 网格数
}

// 仿真请求，temperaturas 为入口温度序列
type SimulationReq struct {
	Temperatures []float64 `json:"temperaturas"`
	Dt           *float64  `json:"dt"`
}

// GetDt returns the requested sampling interval, or def when it was omitted.
func (r *SimulationReq) GetDt(def float64) float64 {
	if r.Dt == nil {
		return def
	}
	return *r.Dt
}

type BatchReq struct {
	Jobs []SimulationReq `json:"jobs"`
}

// 仿真结果，字段名与前端保持一致
type SimulationResp struct {
	Dt               float64   `json:"dt_segundos"`
	Points           int       `json:"n_puntos"`
	Time             []float64 `json:"tiempo"`
	Input            []float64 `json:"entrada"`
	Output           []float64 `json:"salida"`
	FinalTemperature float64   `json:"temperatura_final"`
}

type BatchResp struct {
	Results []*SimulationResp `json:"results"`
}

// 单个采样点
type Sample struct {
	Index  int     `json:"index"`
	Time   float64 `json:"time"`
	Inlet  float64 `json:"inlet"`
	Outlet float64 `json:"outlet"`
}

type ErrorResp struct {
	Error  string `json:"error"`
	Detail string `json:"detalle,omitempty"`
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 消息类型
const (
	MsgEnv      = "env"
	MsgEnvSet   = "envSet"
	MsgStart    = "start"
	MsgSample   = "sample"
	MsgFinished = "finished"
	MsgStop     = "stop"
	MsgStopped  = "stopped"
	MsgHistory  = "history"
	MsgError    = "error"
)
