package mcp

import (
	"context"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report      *domain.IngestReport
	err         error
	reingested  bool
	ingestCalls int
}

func (m *mockIngestService) Ingest(context.Context) (*domain.IngestReport, error) {
	m.ingestCalls++
	return m.report, m.err
}

func (m *mockIngestService) Reingest(context.Context) (*domain.IngestReport, error) {
	m.reingested = true
	return m.report, m.err
}

func (m *mockIngestService) AutoIngest(context.Context) *domain.IngestReport {
	return m.report
}

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results []domain.QueryResult
	gotText string
	gotOpts domain.QueryOptions
	err     error
}

func (m *mockQueryService) Query(_ context.Context, text string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	m.gotText = text
	m.gotOpts = opts
	return m.results, m.err
}

// mockStatusService is a mock implementation of driving.StatusService.
type mockStatusService struct {
	status *driving.Status
	err    error
}

func (m *mockStatusService) Status(context.Context) (*driving.Status, error) {
	return m.status, m.err
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []driving.SourceInfo
	err     error
}

func (m *mockSourceService) ListSources(context.Context) ([]driving.SourceInfo, error) {
	return m.sources, m.err
}

// newTestPorts returns ports with all mocks wired.
func newTestPorts() *Ports {
	return &Ports{
		Ingest:  &mockIngestService{report: &domain.IngestReport{}},
		Query:   &mockQueryService{},
		Status:  &mockStatusService{status: &driving.Status{}},
		Sources: &mockSourceService{},
	}
}
