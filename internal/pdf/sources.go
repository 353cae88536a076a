package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/Epistemic-Technology/pdfsplit/models"
	"github.com/Epistemic-Technology/zotero/zotero"
)

// IsPDF reports whether data starts with the PDF magic header
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// GetData loads PDF bytes from whichever source is set, in order:
// local path, Zotero attachment, URL.
func GetData(ctx context.Context, sourceInfo models.SourceInfo) (models.PdfData, error) {
	var data models.PdfData
	var err error
	switch {
	case sourceInfo.Path != "":
		data, err = os.ReadFile(sourceInfo.Path)
	case sourceInfo.ZoteroID != "":
		zoteroAPIKey := os.Getenv("ZOTERO_API_KEY")
		libraryID := os.Getenv("ZOTERO_LIBRARY_ID")
		data, err = GetFromZotero(ctx, sourceInfo.ZoteroID, zoteroAPIKey, libraryID)
	case sourceInfo.URL != "":
		data, err = GetFromURL(ctx, sourceInfo.URL)
	default:
		return nil, errors.New("no data provided")
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errors.New("no data retrieved")
	}

	return data, nil
}

func GetFromURL(ctx context.Context, url string) (models.PdfData, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func GetFromZotero(ctx context.Context, zoteroID string, apiKey string, libraryID string) (models.PdfData, error) {
	if apiKey == "" || libraryID == "" {
		return nil, errors.New("ZOTERO_API_KEY and ZOTERO_LIBRARY_ID must be set to fetch from Zotero")
	}
	client := zotero.NewClient(libraryID, zotero.LibraryTypeUser, zotero.WithAPIKey(apiKey))
	data, err := client.File(ctx, zoteroID)
	if err != nil {
		return nil, err
	}
	return data, nil
}
