package display

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/banshee-data/position.report/internal/httputil"
	"github.com/banshee-data/position.report/internal/monitoring"
	"github.com/banshee-data/position.report/internal/render"
	"github.com/banshee-data/position.report/internal/security"
)

// DefaultBrowserAddr binds a loopback listener on an ephemeral port.
const DefaultBrowserAddr = "127.0.0.1:0"

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body><h1>{{.Title}}</h1><ul>
{{range .Artifacts}}<li><a href="/{{.Path}}">{{.Title}}</a> ({{.Path}})</li>
{{end}}</ul></body></html>
`))

type artifactInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// BrowserDisplay serves artifacts over HTTP and opens the system browser
// on an index page. Show blocks until ctx is cancelled.
type BrowserDisplay struct {
	Addr  string
	Title string
	// Open launches a browser at url. Nil uses the platform opener.
	Open func(url string) error
	// OnListen, when set, receives the index URL once the server is up.
	OnListen func(url string)
	Logger   monitoring.Logger
}

// NewBrowserDisplay returns a BrowserDisplay on DefaultBrowserAddr.
func NewBrowserDisplay(title string) *BrowserDisplay {
	return &BrowserDisplay{Addr: DefaultBrowserAddr, Title: title, Open: openBrowser, Logger: monitoring.Nop{}}
}

// Handler serves the index at "/", a JSON listing at "/artifacts.json" and
// each artifact at its sanitized name.
func (b *BrowserDisplay) Handler(artifacts ...render.Artifact) http.Handler {
	type entry struct{ Path, Title string }
	entries := make([]entry, 0, len(artifacts))
	listing := make([]artifactInfo, 0, len(artifacts))

	mux := http.NewServeMux()
	seen := map[string]bool{"artifacts.json": true}
	for _, a := range artifacts {
		a := a
		name := security.SanitizeFilename(a.Name)
		if seen[name] {
			monitoring.Logf("skipping duplicate artifact %q", a.Name)
			continue
		}
		seen[name] = true
		entries = append(entries, entry{Path: name, Title: a.Title})
		listing = append(listing, artifactInfo{Name: name, Title: a.Title, ContentType: a.ContentType, Size: len(a.Body)})
		mux.HandleFunc("/"+name, func(w http.ResponseWriter, r *http.Request) {
			if httputil.AllowRead(w, r) {
				httputil.WriteBody(w, a.ContentType, a.Body)
			}
		})
	}
	mux.HandleFunc("/artifacts.json", func(w http.ResponseWriter, r *http.Request) {
		if httputil.AllowRead(w, r) {
			httputil.WriteJSON(w, http.StatusOK, listing)
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httputil.NotFound(w, "no such chart: "+r.URL.Path)
			return
		}
		if !httputil.AllowRead(w, r) {
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := struct {
			Title     string
			Artifacts []entry
		}{b.Title, entries}
		if err := indexTmpl.Execute(w, data); err != nil {
			monitoring.Logf("index render error: %v", err)
		}
	})
	return mux
}

// Show implements Display.
func (b *BrowserDisplay) Show(ctx context.Context, artifacts ...render.Artifact) error {
	addr := b.Addr
	if addr == "" {
		addr = DefaultBrowserAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener for chart server: %w", err)
	}

	srv := &http.Server{Handler: b.Handler(artifacts...), ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	url := fmt.Sprintf("http://%s/", ln.Addr().String())
	monitoring.Logf("charts available at %s (Ctrl-C to exit)", url)
	b.logger().Debugf("serving %d artifacts", len(artifacts))
	if b.OnListen != nil {
		b.OnListen(url)
	}
	if b.Open != nil {
		if err := b.Open(url); err != nil {
			monitoring.Logf("Failed to open browser: %v", err)
		}
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("chart server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("chart server shutdown: %w", err)
	}
	return nil
}

func (b *BrowserDisplay) logger() monitoring.Logger {
	if b.Logger == nil {
		return monitoring.Nop{}
	}
	return b.Logger
}

func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return exec.Command(cmd, args...).Start()
}
