package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/atlasdocs/siteatlas/internal/docs"
	"github.com/atlasdocs/siteatlas/internal/htmlgen"
	"github.com/atlasdocs/siteatlas/internal/robots"
	"github.com/atlasdocs/siteatlas/internal/site"
	"github.com/atlasdocs/siteatlas/internal/sitemap"
	"github.com/atlasdocs/siteatlas/internal/telemetry"
)

func (s *Server) robotsTxt(w http.ResponseWriter, _ *http.Request) {
	cfg := robots.Config{
		BlockAITraining:  s.cfg.Robots.BlockAITraining,
		AllowAISearch:    s.cfg.Robots.AllowAISearch,
		AllowTraditional: s.cfg.Robots.AllowTraditional,
		CrawlDelay:       s.cfg.Robots.CrawlDelay,
		CustomRules:      s.cfg.Robots.CustomRules,
		DisallowedPaths:  s.cfg.Robots.DisallowedPaths,
	}
	body := robots.Generate(cfg, s.app.BaseURL+"/sitemap.xml", s.app.BaseURL)
	telemetry.ObserveDocGenerated("robots")
	s.writeText(w, "text/plain; charset=utf-8", body)
}

func (s *Server) sitemapXML(w http.ResponseWriter, _ *http.Request) {
	body, err := sitemap.Generate(s.registry.Pages(), s.app.BaseURL, sitemap.Options{
		IsHidden: s.registry.IsHidden,
		Clock:    s.clock,
	})
	if err != nil {
		s.logger.Error("sitemap generation failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "sitemap generation failed")
		return
	}
	telemetry.ObserveDocGenerated("sitemap")
	s.writeText(w, "application/xml; charset=utf-8", body)
}

// docMarkers resolves the component flags used for extraction. When
// docs.include_hidden is set, hidden subtrees are documented instead of
// dropped.
func (s *Server) docMarkers() docs.Markers {
	if s.cfg.Docs.IncludeHidden {
		return docs.AllComponents{Markers: s.registry}
	}
	return s.registry
}

func (s *Server) siteLLMSText(w http.ResponseWriter, _ *http.Request) {
	body := docs.GenerateLLMSText(s.rootPage(), s.app, s.registry.VisiblePages(), s.docMarkers())
	telemetry.ObserveDocGenerated("llms")
	s.writeText(w, "text/markdown; charset=utf-8", body)
}

func (s *Server) sitePageJSON(w http.ResponseWriter, _ *http.Request) {
	doc := docs.GeneratePageJSON(s.rootPage(), s.docMarkers(), s.cfg.Docs.MaxDepth, s.clock.Now())
	telemetry.ObserveDocGenerated("page_json")
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) architectureText(w http.ResponseWriter, _ *http.Request) {
	body := docs.GenerateArchitectureText(s.app, s.registry.VisiblePages(), s.docMarkers(), s.cfg.Docs.MaxDepth)
	telemetry.ObserveDocGenerated("architecture")
	s.writeText(w, "text/plain; charset=utf-8", body)
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	body := htmlgen.GenerateIndexHTML(s.app, s.registry.VisiblePages())
	telemetry.ObserveDocGenerated("index")
	s.writeText(w, "text/html; charset=utf-8", body)
}

// pageRoute serves per-page artifacts by suffix and falls back to the
// application shell for plain page paths. Hidden and unregistered pages
// return 404 for every artifact.
func (s *Server) pageRoute(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	for suffix, serve := range map[string]func(http.ResponseWriter, site.Page){
		"/llms.txt":    s.pageLLMSText,
		"/page.json":   s.pagePageJSON,
		"/static.html": s.pageStaticHTML,
	} {
		if !strings.HasSuffix(path, suffix) {
			continue
		}
		pagePath := strings.TrimSuffix(path, suffix)
		page, ok := s.visiblePage(pagePath)
		if !ok {
			http.NotFound(w, r)
			return
		}
		serve(w, page)
		return
	}

	if _, ok := s.visiblePage(path); !ok {
		http.NotFound(w, r)
		return
	}
	body := htmlgen.GenerateIndexHTML(s.app, s.registry.VisiblePages())
	s.writeText(w, "text/html; charset=utf-8", body)
}

func (s *Server) pageLLMSText(w http.ResponseWriter, page site.Page) {
	body := docs.GenerateLLMSText(page, s.app, s.registry.VisiblePages(), s.docMarkers())
	telemetry.ObserveDocGenerated("llms")
	s.writeText(w, "text/markdown; charset=utf-8", body)
}

func (s *Server) pagePageJSON(w http.ResponseWriter, page site.Page) {
	doc := docs.GeneratePageJSON(page, s.docMarkers(), s.cfg.Docs.MaxDepth, s.clock.Now())
	telemetry.ObserveDocGenerated("page_json")
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) pageStaticHTML(w http.ResponseWriter, page site.Page) {
	body := htmlgen.GeneratePageHTML(page, s.registry.VisiblePages(), s.app, s.pageSections(page))
	telemetry.ObserveDocGenerated("static_html")
	s.writeText(w, "text/html; charset=utf-8", body)
}

// pageSections renders the page's important components as standalone HTML
// fragments. Hidden subtrees are skipped; an important component is rendered
// whole, without descending further.
func (s *Server) pageSections(page site.Page) []htmlgen.Section {
	if page.Layout == nil {
		return nil
	}
	var sections []htmlgen.Section
	var walk func(c *site.Component, remaining int)
	walk = func(c *site.Component, remaining int) {
		if c == nil || remaining <= 0 {
			return
		}
		if c.ID != "" && s.registry.IsComponentHidden(c.ID) {
			return
		}
		if c.ID != "" && s.registry.IsImportant(c.ID) {
			sections = append(sections, htmlgen.Section{
				PagePath: page.Path,
				ID:       c.ID,
				HTML:     htmlgen.RenderComponent(c),
			})
			return
		}
		for _, child := range c.Children {
			walk(child, remaining-1)
		}
	}
	walk(page.Layout(), docs.DefaultMaxDepth)
	return sections
}
