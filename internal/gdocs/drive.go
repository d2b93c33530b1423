package gdocs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/irwhub/employee-contract-app/internal/apperr"
)

const folderMimeType = "application/vnd.google-apps.folder"

// File is the subset of Drive file metadata the pipeline cares about.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// ViewLink builds a viewable link for files where the API did not
// return one.
func ViewLink(fileID string) string {
	return "https://drive.google.com/file/d/" + fileID + "/view"
}

// CopyFile copies a template document into the given folder under a new
// title and returns the copy's id.
func (c *Client) CopyFile(ctx context.Context, templateID, title, parentID string) (string, error) {
	f, err := c.drive.Files.Copy(templateID, &drive.File{Name: title, Parents: []string{parentID}}).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).Do()
	if err != nil {
		return "", apperr.Upstreamf("template_copy", err, "copying template %s failed", templateID)
	}
	return f.Id, nil
}

// ExportPDF renders a Drive document as PDF bytes.
func (c *Client) ExportPDF(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.drive.Files.Export(fileID, "application/pdf").Context(ctx).Download()
	if err != nil {
		return nil, apperr.Upstreamf("pdf_export", err, "exporting %s failed", fileID)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Upstreamf("pdf_export", err, "reading export of %s failed", fileID)
	}
	return data, nil
}

// DownloadFile fetches a stored file's raw bytes.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.drive.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, apperr.Upstreamf("file_download", err, "downloading %s failed", fileID)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Upstreamf("file_download", err, "reading %s failed", fileID)
	}
	return data, nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	err := c.drive.Files.Delete(fileID).SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return apperr.Upstreamf("file_delete", err, "deleting %s failed", fileID)
	}
	return nil
}

// FindFolder looks up a folder by exact name under the given parent.
// Returns "" when no folder matches.
func (c *Client) FindFolder(ctx context.Context, name, parentID string) (string, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		escapeQuery(name), escapeQuery(parentID), folderMimeType)
	list, err := c.drive.Files.List().Q(q).
		Fields("files(id, name)").
		PageSize(10).
		SupportsAllDrives(true).IncludeItemsFromAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return "", apperr.Upstreamf("folder_lookup", err, "searching folder %q failed", name)
	}
	for _, f := range list.Files {
		// The query matches loosely on some backends; keep only exact names.
		if f.Name == name {
			return f.Id, nil
		}
	}
	return "", nil
}

func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	f, err := c.drive.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).SupportsAllDrives(true).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", apperr.Upstreamf("folder_create", err, "creating folder %q failed", name)
	}
	return f.Id, nil
}

// ListFilesNamed returns every non-trashed file in the folder whose name
// equals name exactly. No case or whitespace normalization.
func (c *Client) ListFilesNamed(ctx context.Context, name, parentID string) ([]File, error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		escapeQuery(name), escapeQuery(parentID))
	list, err := c.drive.Files.List().Q(q).
		Fields("files(id, name, webViewLink)").
		PageSize(100).
		SupportsAllDrives(true).IncludeItemsFromAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, apperr.Upstreamf("file_lookup", err, "searching file %q failed", name)
	}
	var files []File
	for _, f := range list.Files {
		if f.Name == name {
			files = append(files, File{ID: f.Id, Name: f.Name, Link: f.WebViewLink})
		}
	}
	return files, nil
}

// Upload stores the PDF bytes as a new file in the folder.
func (c *Client) Upload(ctx context.Context, name, parentID string, pdf []byte) (File, error) {
	f, err := c.drive.Files.Create(&drive.File{Name: name, Parents: []string{parentID}}).
		Media(bytes.NewReader(pdf), googleapi.ContentType("application/pdf")).
		SupportsAllDrives(true).
		Fields("id, webViewLink").
		Context(ctx).Do()
	if err != nil {
		return File{}, apperr.Upstreamf("file_upload", err, "uploading %q failed", name)
	}
	link := f.WebViewLink
	if link == "" {
		link = ViewLink(f.Id)
	}
	return File{ID: f.Id, Name: name, Link: link}, nil
}

// escapeQuery escapes a literal for a Drive search query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
