package payslip

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bmoutsourcing/payslip-api/internal/models"
)

func newTestGateway(t *testing.T, store *mockStore) (*Gateway, string) {
	t.Helper()
	docRoot := t.TempDir()
	return NewGateway(store, docRoot, discardLog()), docRoot
}

func writeTestPDF(t *testing.T, docRoot, relPath string, content []byte) {
	t.Helper()
	fullPath := filepath.Join(docRoot, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, content, 0o644))
}

func TestResolve_CopyTypeIsExact(t *testing.T) {
	store := new(mockStore)
	gw, _ := newTestGateway(t, store)

	for _, copyType := range []string{"Agent", "AGENT", "Admin", "pdf", ""} {
		t.Run("rejects "+copyType, func(t *testing.T) {
			_, err := gw.Resolve(context.Background(), 1, copyType)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, `PDF type must be either "agent" or "admin"`, ve.Message)
		})
	}
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestResolve_PayslipNotFound(t *testing.T) {
	store := new(mockStore)
	gw, _ := newTestGateway(t, store)

	store.On("Get", mock.Anything, 42).Return(nil, pgx.ErrNoRows)

	_, err := gw.Resolve(context.Background(), 42, CopyAgent)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotFoundPayslip, nf.Kind)
	assert.Equal(t, "Payslip not found", nf.Message)
}

func TestResolve_PathColumnEmpty(t *testing.T) {
	store := new(mockStore)
	gw, _ := newTestGateway(t, store)

	store.On("Get", mock.Anything, 4).Return(&models.Payslip{
		ID:        4,
		PayslipNo: "PS-2025-000004",
	}, nil)

	_, err := gw.Resolve(context.Background(), 4, CopyAgent)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotFoundArtifactUnavailable, nf.Kind)
	assert.Equal(t, "PDF file not available. Please regenerate the payslip.", nf.Message)
}

func TestResolve_FileGoneFromDisk(t *testing.T) {
	store := new(mockStore)
	gw, _ := newTestGateway(t, store)

	store.On("Get", mock.Anything, 4).Return(&models.Payslip{
		ID:           4,
		PayslipNo:    "PS-2025-000004",
		AgentPDFPath: "pdfs/agent/stale.pdf",
	}, nil)

	_, err := gw.Resolve(context.Background(), 4, CopyAgent)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, NotFoundArtifactMissing, nf.Kind)
	assert.Equal(t, "PDF file not found on server. Please regenerate the payslip.", nf.Message)
}

func TestResolve_PicksColumnForCopyType(t *testing.T) {
	store := new(mockStore)
	gw, docRoot := newTestGateway(t, store)

	content := []byte("%PDF-1.4 admin")
	writeTestPDF(t, docRoot, "pdfs/admin/p.pdf", content)

	store.On("Get", mock.Anything, 4).Return(&models.Payslip{
		ID:           4,
		PayslipNo:    "PS-2025-000004",
		AgentPDFPath: "pdfs/agent/missing.pdf",
		AdminPDFPath: "pdfs/admin/p.pdf",
	}, nil)

	artifact, err := gw.Resolve(context.Background(), 4, CopyAdmin)

	require.NoError(t, err)
	assert.Equal(t, "admin_payslip_PS-2025-000004.pdf", artifact.Filename)
	assert.Equal(t, int64(len(content)), artifact.Size)
	assert.Equal(t, filepath.Join(docRoot, "pdfs", "admin", "p.pdf"), artifact.FullPath)
}

func TestStream_AttachmentHeadersAndBody(t *testing.T) {
	store := new(mockStore)
	gw, docRoot := newTestGateway(t, store)

	content := []byte("%PDF-1.4 agent copy")
	writeTestPDF(t, docRoot, "pdfs/agent/p.pdf", content)

	store.On("Get", mock.Anything, 4).Return(&models.Payslip{
		ID:           4,
		PayslipNo:    "PS-2025-000004",
		AgentPDFPath: "pdfs/agent/p.pdf",
	}, nil)

	artifact, err := gw.Resolve(context.Background(), 4, CopyAgent)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, gw.Stream(rec, artifact, false))

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="agent_payslip_PS-2025-000004.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "19", rec.Header().Get("Content-Length"))
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestStream_InlineDisposition(t *testing.T) {
	store := new(mockStore)
	gw, docRoot := newTestGateway(t, store)

	content := []byte("%PDF-1.4")
	writeTestPDF(t, docRoot, "pdfs/agent/p.pdf", content)

	store.On("Get", mock.Anything, 4).Return(&models.Payslip{
		ID:           4,
		PayslipNo:    "PS-2025-000004",
		AgentPDFPath: "pdfs/agent/p.pdf",
	}, nil)

	artifact, err := gw.Resolve(context.Background(), 4, CopyAgent)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, gw.Stream(rec, artifact, true))

	assert.Equal(t, `inline; filename="agent_payslip_PS-2025-000004.pdf"`, rec.Header().Get("Content-Disposition"))
}

// Serving is a pure read: two downloads of the same payslip return
// byte-identical content and leave the file untouched.
func TestStream_ReadIsIdempotent(t *testing.T) {
	store := new(mockStore)
	gw, docRoot := newTestGateway(t, store)

	content := []byte("%PDF-1.4 stable content")
	writeTestPDF(t, docRoot, "pdfs/agent/p.pdf", content)

	store.On("Get", mock.Anything, 4).Return(&models.Payslip{
		ID:           4,
		PayslipNo:    "PS-2025-000004",
		AgentPDFPath: "pdfs/agent/p.pdf",
	}, nil)

	first := httptest.NewRecorder()
	second := httptest.NewRecorder()

	for _, rec := range []*httptest.ResponseRecorder{first, second} {
		artifact, err := gw.Resolve(context.Background(), 4, CopyAgent)
		require.NoError(t, err)
		require.NoError(t, gw.Stream(rec, artifact, false))
	}

	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())

	onDisk, err := os.ReadFile(filepath.Join(docRoot, "pdfs", "agent", "p.pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}
