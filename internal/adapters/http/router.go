package httpadapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"halalradar/internal/core/domain"
	"halalradar/internal/core/ports"
	"halalradar/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	query   ports.RestaurantQueryService
	metrics *metrics.HTTPServerMetrics
}

func NewRouter(query ports.RestaurantQueryService, m *metrics.HTTPServerMetrics) *Router {
	return &Router{query: query, metrics: m}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/restaurants", rt.listRestaurants)
	mux.HandleFunc("/api/admin/restaurants", rt.adminList)
	mux.HandleFunc("/api/admin/restaurants/export", rt.adminExport)
	mux.HandleFunc("/api/admin/restaurants/", rt.adminGet)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) listRestaurants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
		return
	}

	summaries, err := rt.query.ListSummaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordListingServed(serviceName, "/api/restaurants", len(summaries))
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (rt *Router) adminList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
		return
	}

	page, err := rt.query.AdminList(r.Context(), adminFilterFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordListingServed(serviceName, "/api/admin/restaurants", len(page.Data))
	}
	writeJSON(w, http.StatusOK, page)
}

func (rt *Router) adminGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
		return
	}

	rawID := strings.TrimPrefix(r.URL.Path, "/api/admin/restaurants/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid ID"})
		return
	}

	restaurant, err := rt.query.AdminGet(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

// adminExport streams the full admin listing as an XLSX workbook.
func (rt *Router) adminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
		return
	}

	filter := adminFilterFromQuery(r)
	filter.Page = 1
	filter.Limit = exportRowCap

	page, err := rt.query.AdminList(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	book, err := buildExportWorkbook(page.Data)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordExportRows(serviceName, len(page.Data))
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="restaurants.xlsx"`)
	if err := book.Write(w); err != nil {
		slogWriteFailure(r, err)
	}
}

const exportRowCap = 10000

func buildExportWorkbook(restaurants []domain.Restaurant) (*excelize.File, error) {
	book := excelize.NewFile()
	const sheet = "Restaurants"
	if err := book.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename export sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Address", "Category", "Rating", "Halal Status", "Alcohol Status", "Potential Halal", "Dietary Labels"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export header cell: %w", err)
		}
		if err := book.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write export header: %w", err)
		}
	}

	for row, rest := range restaurants {
		values := []any{
			rest.ID, rest.Name, rest.Address, rest.Category, rest.Rating,
			string(rest.HalalStatus), string(rest.AlcoholStatus),
			rest.IsPotentialHalal, strings.Join(rest.DietaryLabels, ", "),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("export cell: %w", err)
			}
			if err := book.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write export cell: %w", err)
			}
		}
	}
	return book, nil
}

func adminFilterFromQuery(r *http.Request) domain.AdminFilter {
	q := r.URL.Query()
	return domain.AdminFilter{
		Search: q.Get("search"),
		Zip:    q.Get("zip"),
		Page:   intQueryParam(q.Get("page")),
		Limit:  intQueryParam(q.Get("limit")),
	}
}

func intQueryParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func writeError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"message": errorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
