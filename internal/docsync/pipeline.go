// Package docsync implements the document synchronization pipeline:
// template plan, placeholder substitution, PDF export/merge, upload to
// the per-employee Drive folder and the audit/bookkeeping around it.
package docsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/irwhub/employee-contract-app/config"
	"github.com/irwhub/employee-contract-app/internal/apperr"
	"github.com/irwhub/employee-contract-app/internal/gdocs"
	"github.com/irwhub/employee-contract-app/models"
)

// DriveAPI is the slice of the document store the pipeline needs.
// *gdocs.Client implements it.
type DriveAPI interface {
	CopyFile(ctx context.Context, templateID, title, parentID string) (string, error)
	ReplaceAllText(ctx context.Context, docID string, repl map[string]string) error
	ExportPDF(ctx context.Context, fileID string) ([]byte, error)
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
	DeleteFile(ctx context.Context, fileID string) error
	FindFolder(ctx context.Context, name, parentID string) (string, error)
	CreateFolder(ctx context.Context, name, parentID string) (string, error)
	ListFilesNamed(ctx context.Context, name, parentID string) ([]gdocs.File, error)
	Upload(ctx context.Context, name, parentID string, pdf []byte) (gdocs.File, error)
}

// SheetsAPI appends audit rows. *gdocs.Client implements it.
type SheetsAPI interface {
	AppendRow(ctx context.Context, row []interface{}) (string, error)
}

// ClientFactory builds the Google clients for one sync call.
// Credentials are resolved per request so the server boots fine without
// them; a missing credential is a ConfigurationError at sync time.
type ClientFactory func(ctx context.Context, cfg config.Google) (DriveAPI, SheetsAPI, error)

func googleClients(ctx context.Context, cfg config.Google) (DriveAPI, SheetsAPI, error) {
	client, err := gdocs.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, client, nil
}

// Caller is the authenticated employee a sync runs on behalf of.
type Caller struct {
	ID   uint
	Name string
	Role string
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

type GeneratedFile struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
	Link string `json:"link"`
}

type Result struct {
	OK                 bool            `json:"ok"`
	DriveFileID        string          `json:"drive_file_id"`
	DriveLink          string          `json:"drive_link"`
	GeneratedFiles     []GeneratedFile `json:"generated_files"`
	EmployeeFolderID   string          `json:"employee_folder_id"`
	EmployeeFolderName string          `json:"employee_folder_name"`
	SheetRow           *int64          `json:"sheet_row"`
	UpdatedRange       string          `json:"updated_range"`
}

type Syncer struct {
	db      *gorm.DB
	cfg     config.Google
	clients ClientFactory
	merge   MergeFunc
	now     func() time.Time
}

func NewSyncer(db *gorm.DB, cfg config.Google) *Syncer {
	return &Syncer{
		db:      db,
		cfg:     cfg,
		clients: googleClients,
		merge:   MergePDFs,
		now:     time.Now,
	}
}

// loadAuthorized fetches the contract and enforces the owner-or-admin
// rule shared by sync and PDF download. Nothing with side effects runs
// before this passes.
func (s *Syncer) loadAuthorized(ctx context.Context, caller Caller, contractID uint) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.WithContext(ctx).First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("계약을 찾을 수 없습니다")
		}
		return nil, apperr.Upstreamf("contract_load", err, "contract lookup failed")
	}
	if contract.CreatedBy != caller.ID && !caller.IsAdmin() {
		return nil, apperr.Forbiddenf("본인이 작성한 계약만 접근할 수 있습니다")
	}
	return &contract, nil
}

// Sync runs the whole pipeline for one contract. Steps are sequential
// and none is retried internally: a failure aborts the sync with the
// failing stage's name, and re-invoking from scratch is safe — the
// folder is looked up or created, the destination filename is
// deterministic and any previous copy is deleted before upload.
func (s *Syncer) Sync(ctx context.Context, caller Caller, contractID uint) (*Result, error) {
	contract, err := s.loadAuthorized(ctx, caller, contractID)
	if err != nil {
		return nil, err
	}

	driveAPI, sheetsAPI, err := s.clients(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	if s.cfg.RootFolderID == "" {
		return nil, apperr.Configf("folder", "GOOGLE_ROOT_FOLDER_ID is not configured")
	}

	now := s.now()

	var sheetRow *int64
	var updatedRange string
	if s.cfg.SpreadsheetID != "" {
		updatedRange, err = sheetsAPI.AppendRow(ctx, auditRow(contract, now))
		if err != nil {
			return nil, err
		}
		if row, ok := gdocs.RowFromRange(updatedRange); ok {
			sheetRow = &row
		}
	}

	plan := ResolvePlan(contract.ContractType, Templates{
		A:        s.cfg.TemplateAID,
		B:        s.cfg.TemplateBID,
		Combined: s.cfg.TemplateCombinedID,
	})
	if len(plan) == 0 {
		return nil, apperr.Configf("template_plan",
			"no template configured for contract type %q", contract.ContractType)
	}

	folderName := SanitizeName(contract.EmployeeName)
	folderID, err := s.ensureFolder(ctx, driveAPI, folderName)
	if err != nil {
		return nil, err
	}

	repl := BuildPlaceholderMap(contract, now)

	pdfs := make([][]byte, 0, len(plan))
	for _, entry := range plan {
		pdf, err := s.generateOne(ctx, driveAPI, entry, folderID, repl)
		if err != nil {
			return nil, err
		}
		pdfs = append(pdfs, pdf)
	}

	final := pdfs[0]
	if len(pdfs) > 1 {
		if final, err = s.merge(pdfs); err != nil {
			return nil, err
		}
	}

	fileName := PDFFileName(contract.CustomerName, contract.CreatedAt, now)

	// Last writer wins: at most one live copy per name. Two concurrent
	// syncs can still race between this cleanup and the upload;
	// re-running converges.
	existing, err := driveAPI.ListFilesNamed(ctx, fileName, folderID)
	if err != nil {
		return nil, err
	}
	for _, f := range existing {
		if err := driveAPI.DeleteFile(ctx, f.ID); err != nil {
			return nil, err
		}
	}

	uploaded, err := driveAPI.Upload(ctx, fileName, folderID, final)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"drive_file_id": uploaded.ID, "sheet_row": sheetRow}
	if err := s.db.WithContext(ctx).Model(&models.Contract{}).
		Where("id = ?", contract.ID).Updates(updates).Error; err != nil {
		return nil, apperr.Upstreamf("contract_update", err, "persisting sync result failed")
	}

	generated := make([]GeneratedFile, 0, len(plan))
	for _, entry := range plan {
		generated = append(generated, GeneratedFile{Kind: entry.Kind, ID: uploaded.ID, Link: uploaded.Link})
	}

	slog.Info("Contract synced", "contract_id", contract.ID, "file_id", uploaded.ID,
		"folder", folderName, "documents", len(plan))

	return &Result{
		OK:                 true,
		DriveFileID:        uploaded.ID,
		DriveLink:          uploaded.Link,
		GeneratedFiles:     generated,
		EmployeeFolderID:   folderID,
		EmployeeFolderName: folderName,
		SheetRow:           sheetRow,
		UpdatedRange:       updatedRange,
	}, nil
}

// DownloadPDF streams back the most recently synced PDF for a contract.
func (s *Syncer) DownloadPDF(ctx context.Context, caller Caller, contractID uint) (string, []byte, error) {
	contract, err := s.loadAuthorized(ctx, caller, contractID)
	if err != nil {
		return "", nil, err
	}
	if contract.DriveFileID == nil || *contract.DriveFileID == "" {
		return "", nil, apperr.Validationf("PDF가 아직 생성되지 않았습니다")
	}

	driveAPI, _, err := s.clients(ctx, s.cfg)
	if err != nil {
		return "", nil, err
	}
	data, err := driveAPI.DownloadFile(ctx, *contract.DriveFileID)
	if err != nil {
		return "", nil, err
	}

	return PDFFileName(contract.CustomerName, contract.CreatedAt, s.now()), data, nil
}

// generateOne copies the template, substitutes placeholders and exports
// the PDF. The working copy is deleted no matter how substitution or
// export went; a failed cleanup is logged but never masks the real
// error.
func (s *Syncer) generateOne(ctx context.Context, driveAPI DriveAPI, entry PlanEntry, folderID string, repl map[string]string) ([]byte, error) {
	title := fmt.Sprintf("tmp-%s-%s", entry.Kind, uuid.NewString())
	copyID, err := driveAPI.CopyFile(ctx, entry.TemplateID, title, folderID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if delErr := driveAPI.DeleteFile(ctx, copyID); delErr != nil {
			slog.Error("Failed to delete temporary document copy", "file_id", copyID, "error", delErr)
		}
	}()

	if err := driveAPI.ReplaceAllText(ctx, copyID, repl); err != nil {
		return nil, err
	}
	return driveAPI.ExportPDF(ctx, copyID)
}

// ensureFolder is the best-effort lookup-or-create for the employee
// folder. Two concurrent syncs can both create it; the race window is
// accepted.
func (s *Syncer) ensureFolder(ctx context.Context, driveAPI DriveAPI, name string) (string, error) {
	id, err := driveAPI.FindFolder(ctx, name, s.cfg.RootFolderID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	return driveAPI.CreateFolder(ctx, name, s.cfg.RootFolderID)
}

func auditRow(contract *models.Contract, now time.Time) []interface{} {
	return []interface{}{
		contract.ID,
		contract.EmployeeName,
		contract.CustomerName,
		contract.CustomerPhone,
		contract.ContractType,
		BoolToken(contract.ConsentDelegation),
		contract.CreatedAt.UTC().Format(time.RFC3339),
		now.UTC().Format(time.RFC3339),
	}
}
