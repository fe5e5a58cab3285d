package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "milyem/internal/errors"
	"milyem/internal/services"
)

type mockReportService struct {
	batchPDFFn         func(userID, batchID uint) ([]byte, error)
	analysesExcelFn    func(userID uint, filter services.AnalysisFilter) ([]byte, error)
	analysesCSVFn      func(userID uint, filter services.AnalysisFilter) ([]byte, error)
	emailBatchReportFn func(userID, batchID uint, recipient string) error
}

func (m *mockReportService) BatchPDF(userID, batchID uint) ([]byte, error) {
	if m.batchPDFFn != nil {
		return m.batchPDFFn(userID, batchID)
	}
	return []byte("%PDF-1.4"), nil
}

func (m *mockReportService) AnalysesExcel(userID uint, filter services.AnalysisFilter) ([]byte, error) {
	if m.analysesExcelFn != nil {
		return m.analysesExcelFn(userID, filter)
	}
	return []byte("PK"), nil
}

func (m *mockReportService) AnalysesCSV(userID uint, filter services.AnalysisFilter) ([]byte, error) {
	if m.analysesCSVFn != nil {
		return m.analysesCSVFn(userID, filter)
	}
	return []byte("Product Code\n"), nil
}

func (m *mockReportService) EmailBatchReport(userID, batchID uint, recipient string) error {
	if m.emailBatchReportFn != nil {
		return m.emailBatchReportFn(userID, batchID, recipient)
	}
	return nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/batches/:id/report", handler.GetBatchPDF)
	auth.POST("/batches/:id/report/email", handler.EmailBatchReport)
	auth.GET("/analyses/export/excel", handler.GetAnalysesExcel)
	auth.GET("/analyses/export/csv", handler.GetAnalysesCSV)
	return r
}

func TestReportHandler_GetBatchPDF(t *testing.T) {
	t.Run("returns PDF with attachment disposition", func(t *testing.T) {
		svc := &mockReportService{
			batchPDFFn: func(_, batchID uint) ([]byte, error) {
				if batchID != 5 {
					t.Errorf("expected batch 5, got %d", batchID)
				}
				return []byte("%PDF-1.4 fake"), nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/batches/5/report", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected application/pdf, got %s", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=batch-5-report.pdf" {
			t.Errorf("unexpected disposition: %s", cd)
		}
		if !strings.HasPrefix(rec.Body.String(), "%PDF") {
			t.Errorf("expected PDF body, got %q", rec.Body.String())
		}
	})

	t.Run("returns 404 when batch not found", func(t *testing.T) {
		svc := &mockReportService{
			batchPDFFn: func(_, _ uint) ([]byte, error) {
				return nil, apperrors.ErrBatchNotFound
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/batches/999/report", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 409 when batch has no analyses", func(t *testing.T) {
		svc := &mockReportService{
			batchPDFFn: func(_, _ uint) ([]byte, error) {
				return nil, apperrors.ErrEmptyBatch
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/batches/5/report", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EMPTY_BATCH")
	})
}

func TestReportHandler_GetAnalysesExcel(t *testing.T) {
	t.Run("returns workbook with filters applied", func(t *testing.T) {
		var captured services.AnalysisFilter
		svc := &mockReportService{
			analysesExcelFn: func(_ uint, filter services.AnalysisFilter) ([]byte, error) {
				captured = filter
				return []byte("PK workbook"), nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/analyses/export/excel?batch_id=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
			t.Errorf("unexpected content type: %s", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=analyses.xlsx" {
			t.Errorf("unexpected disposition: %s", cd)
		}
		if captured.BatchID == nil || *captured.BatchID != 3 {
			t.Errorf("expected batch filter 3, got %v", captured.BatchID)
		}
	})

	t.Run("returns 400 on bad filter", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/analyses/export/excel?batch_id=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReportHandler_GetAnalysesCSV(t *testing.T) {
	t.Run("returns CSV", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "GET", "/analyses/export/csv", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=analyses.csv" {
			t.Errorf("unexpected disposition: %s", cd)
		}
	})
}

func TestReportHandler_EmailBatchReport(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var capturedRecipient string
		svc := &mockReportService{
			emailBatchReportFn: func(_, _ uint, recipient string) error {
				capturedRecipient = recipient
				return nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "POST", "/batches/5/report/email", `{"recipient":"buyer@example.com"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedRecipient != "buyer@example.com" {
			t.Errorf("unexpected recipient: %s", capturedRecipient)
		}
	})

	t.Run("returns 400 on malformed recipient", func(t *testing.T) {
		r := setupReportRouter(NewReportHandler(&mockReportService{}))

		rec := doRequest(r, "POST", "/batches/5/report/email", `{"recipient":"nope"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 when mail is not configured", func(t *testing.T) {
		svc := &mockReportService{
			emailBatchReportFn: func(_, _ uint, _ string) error {
				return apperrors.ErrMailNotConfigured
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "POST", "/batches/5/report/email", `{"recipient":"buyer@example.com"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MAIL_NOT_CONFIGURED")
	})

	t.Run("returns 502 when delivery fails", func(t *testing.T) {
		svc := &mockReportService{
			emailBatchReportFn: func(_, _ uint, _ string) error {
				return apperrors.Wrap(apperrors.ErrMailSendFailed, errors.New("smtp: connection refused"))
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "POST", "/batches/5/report/email", `{"recipient":"buyer@example.com"}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MAIL_SEND_FAILED")
	})
}
