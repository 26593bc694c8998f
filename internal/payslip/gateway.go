package payslip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Copy types the gateway serves. Comparison is case-sensitive and exact;
// "Agent" or "AGENT" are rejected.
const (
	CopyAgent = "agent"
	CopyAdmin = "admin"
)

// ResolvedArtifact points at an on-disk PDF ready to stream.
type ResolvedArtifact struct {
	FullPath string
	Filename string
	Size     int64
}

// Gateway resolves stored artifact paths against the document root and
// streams them. It never mutates the payslip row or the file.
type Gateway struct {
	store    Store
	docRoot  string
	errorLog *log.Logger
}

func NewGateway(store Store, docRoot string, errorLog *log.Logger) *Gateway {
	return &Gateway{
		store:    store,
		docRoot:  docRoot,
		errorLog: errorLog,
	}
}

// Resolve looks up the payslip, picks the path column for the copy type
// and verifies the file exists. The three failure cases carry distinct
// messages so callers can tell "no such payslip" from "no PDF yet" from
// "PDF path is stale, regenerate".
func (g *Gateway) Resolve(ctx context.Context, payslipID int, copyType string) (*ResolvedArtifact, error) {
	if copyType != CopyAgent && copyType != CopyAdmin {
		return nil, &ValidationError{Message: `PDF type must be either "agent" or "admin"`}
	}

	p, err := g.store.Get(ctx, payslipID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: NotFoundPayslip, Message: "Payslip not found"}
		}
		return nil, &StorageError{Op: "get payslip", Err: err}
	}

	relPath := p.AgentPDFPath
	if copyType == CopyAdmin {
		relPath = p.AdminPDFPath
	}
	if relPath == "" {
		return nil, &NotFoundError{
			Kind:    NotFoundArtifactUnavailable,
			Message: "PDF file not available. Please regenerate the payslip.",
		}
	}

	fullPath := filepath.Join(g.docRoot, filepath.FromSlash(strings.TrimPrefix(relPath, "/")))
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{
				Kind:    NotFoundArtifactMissing,
				Message: "PDF file not found on server. Please regenerate the payslip.",
			}
		}
		g.errorLog.Println("ERROR_01_Resolve:", err)
		return nil, fmt.Errorf("stat pdf file: %w", err)
	}

	return &ResolvedArtifact{
		FullPath: fullPath,
		Filename: fmt.Sprintf("%s_payslip_%s.pdf", copyType, p.PayslipNo),
		Size:     info.Size(),
	}, nil
}

// Stream writes the resolved file to the response. inline selects the
// browser-tab view disposition; otherwise the file downloads as an
// attachment.
func (g *Gateway) Stream(w http.ResponseWriter, artifact *ResolvedArtifact, inline bool) error {
	f, err := os.Open(artifact.FullPath)
	if err != nil {
		return fmt.Errorf("open pdf file: %w", err)
	}
	defer f.Close()

	disposition := "attachment"
	if inline {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", artifact.Size))
	w.Header().Set("Cache-Control", "private, max-age=0, must-revalidate")

	_, err = io.Copy(w, f)
	return err
}
