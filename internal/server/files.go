package server

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"
)

const indexFile = "index.html"

// serveContent resolves the request path against the content source.
// Unknown paths are 404; there is no fallback document.
func (s *Server) serveContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name, ok := contentName(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, info, err := openFile(s.content, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("opening content", zap.String("name", name), zap.Error(err))
		}
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			s.logger.Error("reading content", zap.String("name", name), zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		content = bytes.NewReader(data)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

// contentName maps a URL path to an fs.FS name.
func contentName(urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}
	return name, fs.ValidPath(name)
}

// openFile opens name, descending into a directory's index.html. Directories
// without one are reported as not existing.
func openFile(fsys fs.FS, name string) (fs.File, fs.FileInfo, error) {
	f, info, err := open(fsys, name)
	if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		return f, info, nil
	}
	f.Close()

	f, info, err = open(fsys, path.Join(name, indexFile))
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, fs.ErrNotExist
	}
	return f, info, nil
}

func open(fsys fs.FS, name string) (fs.File, fs.FileInfo, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, info, nil
}
