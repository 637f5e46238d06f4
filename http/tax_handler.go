package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"tax-agent/domain"
	"tax-agent/service"
)

type TaxHandler struct {
	service        *service.TaxService
	supportedYears map[int]bool
	yearsMessage   string
}

// NewTaxHandler creates the /calculate-tax handler. An empty supportedYears
// list disables the allowlist check.
func NewTaxHandler(service *service.TaxService, supportedYears []int) *TaxHandler {
	years := make(map[int]bool, len(supportedYears))
	labels := make([]string, 0, len(supportedYears))
	sorted := append([]int(nil), supportedYears...)
	sort.Ints(sorted)
	for _, y := range sorted {
		years[y] = true
		labels = append(labels, strconv.Itoa(y))
	}
	return &TaxHandler{
		service:        service,
		supportedYears: years,
		yearsMessage:   strings.Join(labels, ", "),
	}
}

// CalculateTax handles GET /calculate-tax?annual_income=...&tax_year=...
func (h *TaxHandler) CalculateTax(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	incomeParam := query.Get("annual_income")
	yearParam := query.Get("tax_year")

	if incomeParam == "" || yearParam == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	income, err := strconv.ParseFloat(incomeParam, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "annual_income must be a number")
		return
	}

	year, err := strconv.Atoi(yearParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "tax_year must be an integer")
		return
	}

	if len(h.supportedYears) > 0 && !h.supportedYears[year] {
		writeError(w, http.StatusBadRequest,
			"Unsupported tax year. Supported years are: "+h.yearsMessage)
		return
	}

	result, err := h.service.CalculateTax(r.Context(), domain.TaxCalculationInput{
		AnnualIncome: income,
		TaxYear:      year,
	})
	if err != nil {
		log.Printf("Error calculating tax: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	// Encode into a buffer first so a failure never writes a broken 200.
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		log.Printf("Error encoding response: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

// statusForError maps the core error kinds onto HTTP statuses so clients
// can tell their own bad input from upstream failures.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidIncome):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownYear):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSchedule):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
