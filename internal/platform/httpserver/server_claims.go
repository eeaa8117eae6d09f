package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	claimerrors "claimerapi/contexts/snapshot-claims/claim-service/domain/errors"
	claimhttp "claimerapi/contexts/snapshot-claims/claim-service/transport/http"
	redisterrors "claimerapi/contexts/snapshot-claims/redistribution-service/domain/errors"
)

const maxRequestBody = 1 << 20

func (s *Server) handleVerifySnapshot(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeClaimError(w, http.StatusBadRequest, "invalid_request", "unable to read request body")
		return
	}

	var req claimhttp.VerifySnapshotRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeClaimError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	resp, err := s.claims.Handler.VerifySnapshotHandler(r.Context(), req, r.Header.Get("signature"), body)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.claims.Handler.CheckBalanceHandler(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyAddress(w http.ResponseWriter, r *http.Request) {
	resp, err := s.claims.Handler.VerifyAddressHandler(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBlockHeight(w http.ResponseWriter, r *http.Request) {
	resp, err := s.claims.Handler.BlockHeightHandler(r.Context())
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTotalClaimed(w http.ResponseWriter, r *http.Request) {
	resp, err := s.claims.Handler.TotalClaimedHandler(r.Context())
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListClaims(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parseIntOrDefault(query.Get("page"), 1)
	pageSize := parseIntOrDefault(query.Get("pageSize"), 0)

	resp, err := s.claims.Handler.ListClaimsHandler(r.Context(), page, pageSize)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRedistribution(w http.ResponseWriter, r *http.Request) {
	detailed := parseBool(r.URL.Query().Get("detailed"))
	resp, err := s.redistribution.Handler.RedistributionHandler(r.Context(), detailed)
	if err != nil {
		writeClaimDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	detailed := parseBool(r.URL.Query().Get("detailed"))

	// Render fully before sending anything so a compute or store fault can
	// still be reported as a plain error response.
	var buf bytes.Buffer
	if err := s.redistribution.Handler.WriteCSV(r.Context(), &buf, detailed); err != nil {
		s.logger.Error("csv export failed",
			"event", "http_csv_export_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"detailed", detailed,
			"error", err.Error(),
		)
		writeClaimDomainError(w, err)
		return
	}

	filename := "redistribution.csv"
	if detailed {
		filename = "redistribution-detailed.csv"
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(buf.Bytes())
}

func writeClaimDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, claimerrors.ErrSignatureRequired):
		writeClaimError(w, http.StatusBadRequest, "signature_required", err.Error())
	case errors.Is(err, claimerrors.ErrWrongBlockHeight):
		writeClaimError(w, http.StatusBadRequest, "wrong_block_height", err.Error())
	case errors.Is(err, claimerrors.ErrClaimPeriodEnded):
		writeClaimError(w, http.StatusBadRequest, "claim_period_ended", err.Error())
	case errors.Is(err, claimerrors.ErrInvalidAddress):
		writeClaimError(w, http.StatusBadRequest, "invalid_address", err.Error())
	case errors.Is(err, claimerrors.ErrDuplicateAddress):
		writeClaimError(w, http.StatusBadRequest, "duplicate_address", err.Error())
	case errors.Is(err, claimerrors.ErrBalanceMismatch):
		writeClaimError(w, http.StatusBadRequest, "balance_mismatch", err.Error())
	case errors.Is(err, claimerrors.ErrSignatureInvalid):
		writeClaimError(w, http.StatusBadRequest, "signature_invalid", err.Error())
	case errors.Is(err, claimerrors.ErrInvalidInput):
		writeClaimError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, claimerrors.ErrAddressRequired):
		writeClaimError(w, http.StatusBadRequest, "address_required", err.Error())
	case errors.Is(err, redisterrors.ErrConservationViolated):
		writeClaimError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	default:
		// Operational faults (chain node unreachable, storage error) are
		// reported generically; detail stays in server logs.
		writeClaimError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeClaimError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, claimhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseIntOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}
