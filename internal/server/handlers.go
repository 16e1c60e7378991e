package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/store"
	"github.com/shopspring/decimal"
)

// computeRequest is the profile subset the stateless endpoints read.
type computeRequest struct {
	Age           int                          `json:"age"`
	MonthlyIncome decimal.Decimal              `json:"monthlyIncome"`
	Payroll       *domain.PayrollSection       `json:"payroll,omitempty"`
	Retirement    *domain.RetirementSection    `json:"retirement,omitempty"`
	IncomeReality *domain.IncomeRealitySection `json:"incomeReality,omitempty"`
}

func (c computeRequest) profile() domain.Profile {
	return domain.Profile{
		Age:           c.Age,
		MonthlyIncome: c.MonthlyIncome,
		Payroll:       c.Payroll,
		Retirement:    c.Retirement,
		IncomeReality: c.IncomeReality,
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", GetRequestID(r.Context()))
			return false
		}
		Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", GetRequestID(r.Context()))
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := GetRequestID(r.Context())
	if issues, ok := domain.AsValidationErrors(err); ok {
		FailValidation(w, issues, reqID)
		return
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		Fail(w, http.StatusNotFound, "not_found", "profile not found", reqID)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		Fail(w, http.StatusServiceUnavailable, "cancelled", "request cancelled", reqID)
	default:
		s.Log.Error("request failed", "err", err, "requestId", reqID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal error", reqID)
	}
}

// cacheKey hashes the canonical encoding of req under route and the rules in force.
func (s *Server) cacheKey(route string, req any) (string, error) {
	canonical, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return "rmgo:" + s.Engine.Rules().Name + ":" + route + ":" + strconv.FormatUint(xxhash.Sum64(canonical), 16), nil
}

// cached answers from the cache or runs compute and stores its result.
func (s *Server) cached(w http.ResponseWriter, r *http.Request, route string, req any, compute func() (any, error)) {
	ctx := r.Context()
	reqID := GetRequestID(ctx)
	key, err := s.cacheKey(route, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if hit, ok := s.Cache.Get(ctx, key); ok {
		w.Header().Set("X-Cache", "HIT")
		Success(w, json.RawMessage(hit), reqID)
		return
	}

	data, err := compute()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Cache.Set(ctx, key, string(payload), s.CacheTTL); err != nil {
		s.Log.Warn("cache set failed", "err", err, "key", key)
	}
	w.Header().Set("X-Cache", "MISS")
	Success(w, json.RawMessage(payload), reqID)
}

func (s *Server) handlePayroll(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !decode(w, r, &req) {
		return
	}
	s.cached(w, r, "payroll", req, func() (any, error) {
		return s.Engine.ComputeNetPay(req.profile().PayrollInput(s.Engine.Rules()))
	})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !decode(w, r, &req) {
		return
	}
	s.cached(w, r, "projection", req, func() (any, error) {
		return s.Engine.Project(req.profile().ProjectionInput(s.Engine.Rules()))
	})
}

type withdrawalResponse struct {
	MonthlyWithdrawal decimal.Decimal `json:"monthlyWithdrawal"`
	FinalBalance      decimal.Decimal `json:"finalBalance"`
	Iterations        int             `json:"iterations"`
	ProbeWithdrawal   decimal.Decimal `json:"probeWithdrawal"`
	ProbeFinalBalance decimal.Decimal `json:"probeFinalBalance"`
	ProbeDepletionAge *int            `json:"probeDepletionAge,omitempty"`
	Convergence       string          `json:"convergence"`
}

func (s *Server) handleWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !decode(w, r, &req) {
		return
	}
	s.cached(w, r, "withdrawal", req, func() (any, error) {
		res, err := s.Solver.SustainableWithdrawal(r.Context(), req.profile().ProjectionInput(s.Engine.Rules()))
		if err != nil {
			return nil, err
		}
		return withdrawalResponse{
			MonthlyWithdrawal: res.MonthlyWithdrawal,
			FinalBalance:      res.FinalBalance,
			Iterations:        res.Iterations,
			ProbeWithdrawal:   res.ProbeWithdrawal,
			ProbeFinalBalance: res.ProbeFinalBalance,
			ProbeDepletionAge: res.ProbeDepletionAge,
			Convergence:       res.ConvergenceInfo,
		}, nil
	})
}

func (s *Server) handleIncomeReality(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if !decode(w, r, &req) {
		return
	}
	s.cached(w, r, "income-reality", req, func() (any, error) {
		return s.Engine.CompareIncomeToBaseline(req.profile().IncomeRealityInput(s.Engine.Rules(), req.MonthlyIncome))
	})
}

func (s *Server) handleIncomeTier(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("income"))
	income, err := decimal.NewFromString(raw)
	if err != nil || income.IsNegative() {
		FailValidation(w, domain.ValidationErrors{{Field: "income", Reason: "must be a non-negative number"}}, GetRequestID(r.Context()))
		return
	}
	Success(w, s.Engine.ClassifyIncome(income), GetRequestID(r.Context()))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.Profiles.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	Success(w, profiles, GetRequestID(r.Context()))
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.Profile
	if !decode(w, r, &p) {
		return
	}
	p.ID = ""
	if err := domain.ValidateProfile(p); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.Profiles.Create(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Created(w, created, GetRequestID(r.Context()))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.Profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, p, GetRequestID(r.Context()))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.Profile
	if !decode(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := domain.ValidateProfile(p); err != nil {
		s.fail(w, r, err)
		return
	}
	updated, err := s.Profiles.Update(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, updated, GetRequestID(r.Context()))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	p, err := s.Profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.Dashboards.Build(r.Context(), p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, d, GetRequestID(r.Context()))
}
