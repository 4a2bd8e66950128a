package gateway

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/filedash/filedash/internal/domain"
	"github.com/filedash/filedash/internal/metrics"
)

// uploadMultipart streams one file as a multipart body to the given
// path. The body is piped, not buffered, so large uploads do not sit in
// memory.
func (c *Client) uploadMultipart(ctx context.Context, op, path, field, filename string, r io.Reader, folderID domain.ItemID) error {
	if !folderID.IsZero() {
		path += "?folder_id=" + url.QueryEscape(folderID.String())
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	var uploaded int64
	go func() {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		n, err := io.Copy(part, r)
		uploaded = n
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, path, pr)
	if err != nil {
		pr.CloseWithError(err)
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	metrics.AddBytesUploaded(uploaded)
	return nil
}

// UploadFile streams a multipart file upload into the given folder
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader, folderID domain.ItemID) error {
	return c.uploadMultipart(ctx, "upload file", "/upload_files", "file", filename, r, folderID)
}

// UploadArchive streams a zip archive the server expands into a folder
// structure
func (c *Client) UploadArchive(ctx context.Context, filename string, r io.Reader, folderID domain.ItemID) error {
	return c.uploadMultipart(ctx, "upload archive", "/upload_zip_file", "zip_file", filename, r, folderID)
}

// downloadTo streams a binary response body into w
func (c *Client) downloadTo(ctx context.Context, op, path string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.do(op, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	metrics.AddBytesDownloaded(n)
	if err != nil {
		return n, domain.NewNetworkError(op, err)
	}
	return n, nil
}

// DownloadFile streams a file's binary content into w
func (c *Client) DownloadFile(ctx context.Context, id domain.ItemID, w io.Writer) (int64, error) {
	return c.downloadTo(ctx, "download file", "/myfiles/download/"+url.PathEscape(id.String()), w)
}

// DownloadFolderArchive streams a folder as a zip into w
func (c *Client) DownloadFolderArchive(ctx context.Context, id domain.ItemID, w io.Writer) (int64, error) {
	return c.downloadTo(ctx, "download folder", "/folders/download/"+url.PathEscape(id.String()), w)
}
