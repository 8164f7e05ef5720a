package cli

import (
	"context"

	"github.com/alejandro-ao/rag-mcp/internal/core/domain"
	"github.com/alejandro-ao/rag-mcp/internal/core/ports/driving"
)

// fakeIngestService returns canned ingestion reports.
type fakeIngestService struct {
	report     *domain.IngestReport
	err        error
	reingested bool
}

func (f *fakeIngestService) Ingest(context.Context) (*domain.IngestReport, error) {
	return f.report, f.err
}

func (f *fakeIngestService) Reingest(context.Context) (*domain.IngestReport, error) {
	f.reingested = true
	return f.report, f.err
}

func (f *fakeIngestService) AutoIngest(context.Context) *domain.IngestReport {
	return f.report
}

// fakeQueryService returns canned query results.
type fakeQueryService struct {
	results []domain.QueryResult
	gotOpts domain.QueryOptions
	err     error
}

func (f *fakeQueryService) Query(_ context.Context, _ string, opts domain.QueryOptions) ([]domain.QueryResult, error) {
	f.gotOpts = opts
	return f.results, f.err
}

// fakeStatusService returns a canned status.
type fakeStatusService struct {
	status *driving.Status
	err    error
}

func (f *fakeStatusService) Status(context.Context) (*driving.Status, error) {
	return f.status, f.err
}

// fakeSourceService returns canned sources.
type fakeSourceService struct {
	sources []driving.SourceInfo
	err     error
}

func (f *fakeSourceService) ListSources(context.Context) ([]driving.SourceInfo, error) {
	return f.sources, f.err
}

// setupTestServices wires fakes into the package-level services and
// returns a cleanup restoring the unwired state.
func setupTestServices() func() {
	ingestService = &fakeIngestService{report: &domain.IngestReport{}}
	queryService = &fakeQueryService{}
	statusService = &fakeStatusService{status: &driving.Status{}}
	sourceService = &fakeSourceService{}
	wired = true

	return func() {
		ingestService = nil
		queryService = nil
		statusService = nil
		sourceService = nil
		wired = false
	}
}
