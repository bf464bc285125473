package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"thermotube/calculator"
	"thermotube/model"
)

// GET 用于连通性检查，POST 执行一次仿真
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]bool{"test": true})
	case http.MethodPost:
		var req model.SimulationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResp{Error: "temperaturas debe ser un array", Detail: err.Error()})
			return
		}
		if msg := s.checkReq(&req); msg != "" {
			writeJSON(w, http.StatusBadRequest, model.ErrorResp{Error: msg})
			return
		}

		// 客户端断开后停止计算
		res, err := calculator.Stream(r.Context(), s.settings.Tube, req.Temperatures, req.GetDt(s.settings.Dt), nil)
		if err != nil {
			writeSimulateError(w, err)
			return
		}
		log.WithFields(log.Fields{
			"points": len(req.Temperatures),
			"dt":     res.Dt,
			"steps":  res.TimeStep.Steps,
			"final":  res.FinalTemperature(),
		}).Info("simulation done")
		writeJSON(w, http.StatusOK, res.Response())
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.BatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResp{Error: "jobs debe ser un array", Detail: err.Error()})
		return
	}
	jobs := make([]calculator.Job, 0, len(req.Jobs))
	for i := range req.Jobs {
		if msg := s.checkReq(&req.Jobs[i]); msg != "" {
			writeJSON(w, http.StatusBadRequest, model.ErrorResp{Error: msg})
			return
		}
		jobs = append(jobs, calculator.Job{Temperatures: req.Jobs[i].Temperatures, Dt: req.Jobs[i].GetDt(s.settings.Dt)})
	}

	results, err := calculator.RunBatch(r.Context(), s.settings.Tube, jobs, s.settings.Workers)
	if err != nil {
		writeSimulateError(w, err)
		return
	}
	resp := model.BatchResp{Results: make([]*model.SimulationResp, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, res.Response())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) checkReq(req *model.SimulationReq) string {
	if req.Temperatures == nil {
		return "temperaturas debe ser un array"
	}
	if req.GetDt(s.settings.Dt) <= 0 {
		return "dt debe ser un numero mayor a 0"
	}
	return ""
}

func writeSimulateError(w http.ResponseWriter, err error) {
	if errors.Is(err, calculator.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, model.ErrorResp{Error: err.Error()})
		return
	}
	log.WithError(err).Error("simulation failed")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResp{Error: "Error en simulacion", Detail: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("write response failed")
	}
}
